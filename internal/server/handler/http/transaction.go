package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/finflow/finflow/internal/models"
	"github.com/finflow/finflow/internal/service"
)

// TransactionService defines the interface for transaction-history
// operations required by the TransactionHandler.
type TransactionService interface {
	// ListPage returns one page of a portfolio's history, newest first.
	ListPage(ctx context.Context, portfolioID, page, perPage int64) (*service.TransactionPage, error)
	// Create records a new transaction.
	Create(ctx context.Context, t *models.Transaction) error
	// Delete removes transactions by ID, returning the IDs not found.
	Delete(ctx context.Context, ids []int64) ([]int64, error)
}

// TransactionHandler handles HTTP requests for transaction history.
type TransactionHandler struct {
	TransactionService TransactionService
}

// List handles GET /transactions?portfolio_id=&page=&per_page=.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	portfolioID, err := strconv.ParseInt(r.URL.Query().Get("portfolio_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid portfolio_id")
		return
	}
	page, perPage, ok := pageParams(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid paging parameters")
		return
	}

	result, err := h.TransactionService.ListPage(r.Context(), portfolioID, page, perPage)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Create handles POST /transactions.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.PortfolioID == 0 || req.FinancialProductID == 0 ||
		req.TransactionType == "" || req.Price == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.TransactionService.Create(r.Context(), &req); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// Delete handles DELETE /transactions with a JSON array of transaction IDs.
// When some IDs do not exist, responds 404 naming them; the rest are still
// deleted.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var ids []int64
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil || len(ids) == 0 {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	notFound, err := h.TransactionService.Delete(r.Context(), ids)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if len(notFound) > 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("transactions not found: %v", notFound))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "transactions deleted"})
}
