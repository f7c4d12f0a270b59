package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/carteira-app/carteira/internal/platform/extract"
)

// ExtractServiceInterface defines the statement operations needed by ExtractHandler
type ExtractServiceInterface interface {
	Refresh(ctx context.Context, token, accountID, filterCode string) (extract.View, error)
}

// ExtractHandler handles the extract screen requests
type ExtractHandler struct {
	extracts ExtractServiceInterface
}

// NewExtractHandler creates a new extract handler
func NewExtractHandler(extracts ExtractServiceInterface) *ExtractHandler {
	return &ExtractHandler{
		extracts: extracts,
	}
}

// GetExtract handles GET /extract
// The optional "code" query parameter narrows the statement to a
// single transaction code.
func (h *ExtractHandler) GetExtract(w http.ResponseWriter, r *http.Request) {
	token, accountID, ok := auth(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	view, err := h.extracts.Refresh(r.Context(), token, accountID, r.URL.Query().Get("code"))
	if err != nil {
		if errors.Is(err, extract.ErrUnknownFilter) {
			respondError(w, "unknown transaction code", http.StatusBadRequest)
			return
		}
		if errors.Is(err, extract.ErrStaleRefresh) {
			respondError(w, "refresh superseded, retry", http.StatusConflict)
			return
		}
		respondGatewayError(w, err, "failed to load extract")
		return
	}

	respondJSON(w, view, http.StatusOK)
}
