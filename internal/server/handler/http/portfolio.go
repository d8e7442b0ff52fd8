package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/finflow/finflow/internal/middleware"
	"github.com/finflow/finflow/internal/models"
)

// PortfolioService defines the interface for portfolio operations required
// by the PortfolioHandler.
type PortfolioService interface {
	// List returns all portfolios owned by the user.
	List(ctx context.Context, userID int64) ([]models.Portfolio, error)
	// Create makes a new portfolio for the user.
	Create(ctx context.Context, userID int64, name string) (*models.Portfolio, error)
	// Rename changes a portfolio's name, owner only.
	Rename(ctx context.Context, userID, portfolioID int64, name string) (*models.Portfolio, error)
	// Delete removes a portfolio, owner only.
	Delete(ctx context.Context, userID, portfolioID int64) error
}

// PortfolioHandler handles HTTP requests for portfolio management.
type PortfolioHandler struct {
	PortfolioService PortfolioService
}

// PortfolioRequest represents the JSON payload for portfolio creation and
// renaming.
type PortfolioRequest struct {
	PortfolioName string `json:"portfolio_name"`
}

// List handles GET /portfolio and returns the caller's portfolios.
func (h *PortfolioHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	portfolios, err := h.PortfolioService.List(r.Context(), user.UID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if portfolios == nil {
		portfolios = []models.Portfolio{}
	}
	writeJSON(w, http.StatusOK, portfolios)
}

// Create handles POST /portfolio.
func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req PortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PortfolioName == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	p, err := h.PortfolioService.Create(r.Context(), user.UID, req.PortfolioName)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Rename handles PATCH /portfolio/{portfolio_id}.
func (h *PortfolioHandler) Rename(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	portfolioID, err := strconv.ParseInt(chi.URLParam(r, "portfolioID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid portfolio id")
		return
	}

	var req PortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PortfolioName == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	p, err := h.PortfolioService.Rename(r.Context(), user.UID, portfolioID, req.PortfolioName)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /portfolio/{portfolio_id} and responds 204 on
// success.
func (h *PortfolioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	portfolioID, err := strconv.ParseInt(chi.URLParam(r, "portfolioID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid portfolio id")
		return
	}

	if err := h.PortfolioService.Delete(r.Context(), user.UID, portfolioID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
