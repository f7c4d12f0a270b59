package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carteira-app/carteira/internal/platform/prefs"
	"github.com/carteira-app/carteira/internal/screen"
)

// PrefsServiceInterface defines the preference operations needed by PrefsHandler
type PrefsServiceInterface interface {
	WalletIcon(ctx context.Context, accountID, walletID string) (string, error)
	SetWalletIcon(ctx context.Context, accountID, walletID, icon string) error
	WalletScreenState(ctx context.Context, accountID, walletID string) (screen.WalletState, error)
	SetWalletScreenState(ctx context.Context, accountID string, state screen.WalletState) error
	ExtractScreenState(ctx context.Context, accountID string) (screen.ExtractState, error)
	SetExtractScreenState(ctx context.Context, accountID string, state screen.ExtractState) error
}

// PrefsHandler handles per-account display preferences and restorable
// screen state
type PrefsHandler struct {
	prefs PrefsServiceInterface
}

// NewPrefsHandler creates a new prefs handler
func NewPrefsHandler(p PrefsServiceInterface) *PrefsHandler {
	return &PrefsHandler{
		prefs: p,
	}
}

// IconResponse represents a wallet icon preference
type IconResponse struct {
	WalletID string `json:"wallet_id"`
	Icon     string `json:"icon"`
}

// SetIconRequest represents the icon update request body
type SetIconRequest struct {
	Icon string `json:"icon"`
}

// GetWalletIcon handles GET /wallets/{id}/icon
func (h *PrefsHandler) GetWalletIcon(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := auth(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	walletID := chi.URLParam(r, "id")
	icon, err := h.prefs.WalletIcon(r.Context(), accountID, walletID)
	if err != nil {
		respondError(w, "failed to load icon", http.StatusInternalServerError)
		return
	}

	respondJSON(w, IconResponse{WalletID: walletID, Icon: icon}, http.StatusOK)
}

// SetWalletIcon handles PUT /wallets/{id}/icon
func (h *PrefsHandler) SetWalletIcon(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := auth(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req SetIconRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	walletID := chi.URLParam(r, "id")
	if err := h.prefs.SetWalletIcon(r.Context(), accountID, walletID, req.Icon); err != nil {
		if errors.Is(err, prefs.ErrInvalidIcon) {
			respondError(w, "unknown icon", http.StatusBadRequest)
			return
		}
		respondError(w, "failed to save icon", http.StatusInternalServerError)
		return
	}

	respondJSON(w, IconResponse{WalletID: walletID, Icon: req.Icon}, http.StatusOK)
}

// GetWalletScreenState handles GET /screens/wallet/{id}
func (h *PrefsHandler) GetWalletScreenState(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := auth(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	state, err := h.prefs.WalletScreenState(r.Context(), accountID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "failed to load screen state", http.StatusInternalServerError)
		return
	}

	respondJSON(w, state, http.StatusOK)
}

// SetWalletScreenState handles PUT /screens/wallet/{id}
func (h *PrefsHandler) SetWalletScreenState(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := auth(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var state screen.WalletState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	state.WalletID = chi.URLParam(r, "id")

	if err := h.prefs.SetWalletScreenState(r.Context(), accountID, state); err != nil {
		if errors.Is(err, screen.ErrInvalidPopup) {
			respondError(w, "unknown popup", http.StatusBadRequest)
			return
		}
		respondError(w, "failed to save screen state", http.StatusInternalServerError)
		return
	}

	respondJSON(w, state, http.StatusOK)
}

// GetExtractScreenState handles GET /screens/extract
func (h *PrefsHandler) GetExtractScreenState(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := auth(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	state, err := h.prefs.ExtractScreenState(r.Context(), accountID)
	if err != nil {
		respondError(w, "failed to load screen state", http.StatusInternalServerError)
		return
	}

	respondJSON(w, state, http.StatusOK)
}

// SetExtractScreenState handles PUT /screens/extract
func (h *PrefsHandler) SetExtractScreenState(w http.ResponseWriter, r *http.Request) {
	_, accountID, ok := auth(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var state screen.ExtractState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.prefs.SetExtractScreenState(r.Context(), accountID, state); err != nil {
		respondError(w, "failed to save screen state", http.StatusInternalServerError)
		return
	}

	respondJSON(w, state, http.StatusOK)
}

// IconsResponse lists the icons a wallet can use
type IconsResponse struct {
	Icons []string `json:"icons"`
}

// GetIcons handles GET /icons
func (h *PrefsHandler) GetIcons(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, IconsResponse{Icons: prefs.Icons()}, http.StatusOK)
}
