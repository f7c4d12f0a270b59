package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/carteira-app/carteira/internal/gateway/bankapi"
	"github.com/carteira-app/carteira/internal/ledger"
	"github.com/carteira-app/carteira/internal/platform/wallet"
	"github.com/carteira-app/carteira/internal/transport/httpapi/middleware"
	"github.com/carteira-app/carteira/pkg/money"
)

// WalletServiceInterface defines the wallet operations needed by WalletHandler
type WalletServiceInterface interface {
	List(ctx context.Context, token string) ([]wallet.Wallet, error)
	Detail(ctx context.Context, token, accountID, walletID string) (wallet.Detail, error)
	Create(ctx context.Context, token, name string, goal, initialDeposit decimal.Decimal) (wallet.Wallet, error)
	Update(ctx context.Context, token, walletID, name string, goal decimal.Decimal) (wallet.Wallet, error)
	Delete(ctx context.Context, token, walletID string) error
	Deposit(ctx context.Context, token, walletID string, amount decimal.Decimal) (wallet.Wallet, error)
	Withdraw(ctx context.Context, token, walletID string, amount decimal.Decimal) (wallet.Wallet, error)
}

// WalletHandler handles wallet-related HTTP requests
type WalletHandler struct {
	wallets WalletServiceInterface
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(wallets WalletServiceInterface) *WalletHandler {
	return &WalletHandler{
		wallets: wallets,
	}
}

// CreateWalletRequest represents the wallet creation request.
// Amounts travel as strings to keep cents exact.
type CreateWalletRequest struct {
	Name           string `json:"name"`
	Goal           string `json:"goal"`
	InitialDeposit string `json:"initial_deposit"`
}

// UpdateWalletRequest represents the wallet update request
type UpdateWalletRequest struct {
	Name string `json:"name"`
	Goal string `json:"goal"`
}

// MovementRequest represents a deposit or withdrawal request
type MovementRequest struct {
	Amount string `json:"amount"`
}

// WalletResponse represents a wallet response
type WalletResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Balance    string `json:"balance"`
	BalanceBRL string `json:"balance_brl"`
	Goal       string `json:"goal"`
	State      string `json:"state"`
}

// TransactionResponse is one row of a wallet's movement history
type TransactionResponse struct {
	Kind       string    `json:"kind"`
	Amount     string    `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WalletDetailResponse is the wallet screen payload
type WalletDetailResponse struct {
	WalletResponse
	Icon              string                `json:"icon"`
	OpeningBalance    string                `json:"opening_balance"`
	OpeningBalanceBRL string                `json:"opening_balance_brl"`
	GoalProgress      string                `json:"goal_progress"`
	Transactions      []TransactionResponse `json:"transactions"`
}

// WalletsListResponse represents the response for listing wallets
type WalletsListResponse struct {
	Wallets []WalletResponse `json:"wallets"`
}

func toWalletResponse(w wallet.Wallet) WalletResponse {
	return WalletResponse{
		ID:         w.ID,
		Name:       w.Name,
		Balance:    w.Balance.StringFixed(money.Scale),
		BalanceBRL: money.FormatBRL(w.Balance),
		Goal:       w.Goal.StringFixed(money.Scale),
		State:      w.State,
	}
}

func toDetailResponse(d wallet.Detail) WalletDetailResponse {
	txs := make([]TransactionResponse, 0, len(d.Transactions))
	for _, tx := range d.Transactions {
		txs = append(txs, TransactionResponse{
			Kind:       string(tx.Kind),
			Amount:     tx.Amount.StringFixed(money.Scale),
			OccurredAt: tx.OccurredAt,
		})
	}
	return WalletDetailResponse{
		WalletResponse:    toWalletResponse(d.Wallet),
		Icon:              d.Icon,
		OpeningBalance:    d.OpeningBalance.StringFixed(money.Scale),
		OpeningBalanceBRL: money.FormatBRL(d.OpeningBalance),
		GoalProgress:      d.GoalProgress.StringFixed(4),
		Transactions:      txs,
	}
}

// auth pulls the backend token and account ID the middleware stored
func auth(r *http.Request) (token, accountID string, ok bool) {
	token, ok = middleware.GetBackendTokenFromContext(r.Context())
	if !ok {
		return "", "", false
	}
	accountID, ok = middleware.GetAccountIDFromContext(r.Context())
	return token, accountID, ok
}

// GetWallets handles GET /wallets
func (h *WalletHandler) GetWallets(w http.ResponseWriter, r *http.Request) {
	token, _, ok := auth(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	wallets, err := h.wallets.List(r.Context(), token)
	if err != nil {
		respondGatewayError(w, err, "failed to list wallets")
		return
	}

	resp := WalletsListResponse{Wallets: make([]WalletResponse, 0, len(wallets))}
	for _, wl := range wallets {
		resp.Wallets = append(resp.Wallets, toWalletResponse(wl))
	}
	respondJSON(w, resp, http.StatusOK)
}

// GetWallet handles GET /wallets/{id}
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	token, accountID, ok := auth(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	detail, err := h.wallets.Detail(r.Context(), token, accountID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, wallet.ErrStaleRefresh) {
			respondError(w, "refresh superseded, retry", http.StatusConflict)
			return
		}
		if errors.Is(err, ledger.ErrInvalidAmount) || errors.Is(err, ledger.ErrInvalidKind) {
			respondError(w, "wallet history is inconsistent", http.StatusBadGateway)
			return
		}
		respondGatewayError(w, err, "failed to load wallet")
		return
	}

	respondJSON(w, toDetailResponse(detail), http.StatusOK)
}

// CreateWallet handles POST /wallets
func (h *WalletHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	token, _, ok := auth(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := parseAmountField(req.Goal)
	if err != nil {
		respondError(w, "invalid goal amount", http.StatusBadRequest)
		return
	}
	deposit, err := parseAmountField(req.InitialDeposit)
	if err != nil {
		respondError(w, "invalid initial deposit amount", http.StatusBadRequest)
		return
	}

	created, err := h.wallets.Create(r.Context(), token, req.Name, goal, deposit)
	if err != nil {
		if isValidationError(err) {
			respondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondGatewayError(w, err, "failed to create wallet")
		return
	}

	respondJSON(w, toWalletResponse(created), http.StatusCreated)
}

// UpdateWallet handles PUT /wallets/{id}
func (h *WalletHandler) UpdateWallet(w http.ResponseWriter, r *http.Request) {
	token, _, ok := auth(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := parseAmountField(req.Goal)
	if err != nil {
		respondError(w, "invalid goal amount", http.StatusBadRequest)
		return
	}

	updated, err := h.wallets.Update(r.Context(), token, chi.URLParam(r, "id"), req.Name, goal)
	if err != nil {
		if isValidationError(err) {
			respondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondGatewayError(w, err, "failed to update wallet")
		return
	}

	respondJSON(w, toWalletResponse(updated), http.StatusOK)
}

// DeleteWallet handles DELETE /wallets/{id}
func (h *WalletHandler) DeleteWallet(w http.ResponseWriter, r *http.Request) {
	token, _, ok := auth(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.wallets.Delete(r.Context(), token, chi.URLParam(r, "id")); err != nil {
		respondGatewayError(w, err, "failed to delete wallet")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Deposit handles POST /wallets/{id}/deposit
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.movement(w, r, h.wallets.Deposit)
}

// Withdraw handles POST /wallets/{id}/withdraw
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.movement(w, r, h.wallets.Withdraw)
}

func (h *WalletHandler) movement(w http.ResponseWriter, r *http.Request, op func(context.Context, string, string, decimal.Decimal) (wallet.Wallet, error)) {
	token, _, ok := auth(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		respondError(w, "invalid amount", http.StatusBadRequest)
		return
	}

	updated, err := op(r.Context(), token, chi.URLParam(r, "id"), amount)
	if err != nil {
		if isValidationError(err) {
			respondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondGatewayError(w, err, "wallet movement failed")
		return
	}

	respondJSON(w, toWalletResponse(updated), http.StatusOK)
}

// parseAmountField parses an optional money field; empty means zero
func parseAmountField(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return money.Parse(s)
}

func isValidationError(err error) bool {
	return errors.Is(err, wallet.ErrMissingWalletName) ||
		errors.Is(err, wallet.ErrWalletNameTooLong) ||
		errors.Is(err, wallet.ErrNegativeGoal) ||
		errors.Is(err, wallet.ErrNonPositiveAmount) ||
		errors.Is(err, money.ErrInvalidAmount)
}

// respondGatewayError maps backend failures onto client responses
func respondGatewayError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case bankapi.IsNotFound(err):
		respondError(w, "wallet not found", http.StatusNotFound)
	case bankapi.IsUnauthorized(err):
		respondError(w, "backend rejected credentials", http.StatusUnauthorized)
	case bankapi.IsRateLimitError(err):
		respondError(w, "backend rate limit exceeded, retry later", http.StatusServiceUnavailable)
	default:
		respondError(w, fallback, http.StatusBadGateway)
	}
}
