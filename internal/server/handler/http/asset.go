package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/finflow/finflow/internal/models"
	"github.com/finflow/finflow/internal/service"
)

// AssetService defines the interface for holding operations required by the
// AssetHandler.
type AssetService interface {
	// ListPage returns one page of holdings with products embedded.
	ListPage(ctx context.Context, page, perPage int64) (*service.AssetPage, error)
	// Create adds a new holding.
	Create(ctx context.Context, h *models.Holding) error
	// Update applies partial updates and returns the updated rows.
	Update(ctx context.Context, updates []models.HoldingUpdate) ([]models.Holding, error)
	// Delete removes the holdings identified by the key pairs.
	Delete(ctx context.Context, keys []models.Holding) error
}

// AssetHandler handles HTTP requests for portfolio holdings.
type AssetHandler struct {
	AssetService AssetService
}

// pageParams parses the page/per_page query parameters. page starts at 1;
// per_page is capped at 100.
func pageParams(r *http.Request) (page, perPage int64, ok bool) {
	page, perPage = 1, 10
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 {
			return 0, 0, false
		}
		page = n
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 || n > 100 {
			return 0, 0, false
		}
		perPage = n
	}
	return page, perPage, true
}

// List handles GET /assets with paging.
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage, ok := pageParams(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid paging parameters")
		return
	}

	result, err := h.AssetService.ListPage(r.Context(), page, perPage)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Create handles POST /assets.
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.Holding
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.PortfolioID == 0 || req.FinancialProductID == 0 ||
		req.CurrencyCode == "" || req.Price == "" || req.Quantity == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.AssetService.Create(r.Context(), &req); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// Update handles PATCH /assets with a list of partial updates. Updates for
// unknown (portfolio, product) pairs are skipped.
func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	var updates []models.HoldingUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	updated, err := h.AssetService.Update(r.Context(), updates)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if updated == nil {
		updated = []models.Holding{}
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /assets with a list of key pairs.
func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var keys []models.Holding
	if err := json.NewDecoder(r.Body).Decode(&keys); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.AssetService.Delete(r.Context(), keys); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "selected holdings deleted"})
}
