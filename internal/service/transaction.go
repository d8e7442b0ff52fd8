package service

import (
	"context"

	"github.com/finflow/finflow/internal/models"
)

// TransactionRepository defines the persistence operations needed by the
// TransactionService.
type TransactionRepository interface {
	// CountTransactions returns the number of transactions in a portfolio.
	CountTransactions(ctx context.Context, portfolioID int64) (int64, error)
	// GetTransactionsPage fetches one page, newest first, with products
	// and sectors embedded.
	GetTransactionsPage(ctx context.Context, portfolioID, offset, limit int64) ([]models.Transaction, error)
	// CreateTransaction inserts a row and fills in the generated ID.
	CreateTransaction(ctx context.Context, t *models.Transaction) error
	// DeleteTransaction removes a row, reporting whether it existed.
	DeleteTransaction(ctx context.Context, transactionID int64) (bool, error)
}

// TransactionPage is one page of a portfolio's history plus paging metadata.
type TransactionPage struct {
	Total   int64                `json:"total"`
	Page    int64                `json:"page"`
	PerPage int64                `json:"per_page"`
	Data    []models.Transaction `json:"data"`
}

// TransactionService implements transaction-history reads and deletes.
type TransactionService struct {
	repo          TransactionRepository
	portfolioRepo PortfolioRepository
}

// NewTransactionService constructs a TransactionService. portfolioRepo is
// used to reject requests against portfolios that do not exist.
func NewTransactionService(repo TransactionRepository, portfolioRepo PortfolioRepository) *TransactionService {
	return &TransactionService{repo: repo, portfolioRepo: portfolioRepo}
}

// ListPage returns one page of the portfolio's history. Returns
// models.ErrNotFound when the portfolio does not exist.
func (s *TransactionService) ListPage(ctx context.Context, portfolioID, page, perPage int64) (*TransactionPage, error) {
	if _, err := s.portfolioRepo.GetPortfolioByID(ctx, portfolioID); err != nil {
		return nil, err
	}

	total, err := s.repo.CountTransactions(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * perPage
	transactions, err := s.repo.GetTransactionsPage(ctx, portfolioID, offset, perPage)
	if err != nil {
		return nil, err
	}

	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return &TransactionPage{Total: total, Page: page, PerPage: perPage, Data: transactions}, nil
}

// Create records a new transaction.
func (s *TransactionService) Create(ctx context.Context, t *models.Transaction) error {
	if _, err := s.portfolioRepo.GetPortfolioByID(ctx, t.PortfolioID); err != nil {
		return err
	}
	return s.repo.CreateTransaction(ctx, t)
}

// Delete removes the transactions with the given IDs and returns the IDs
// that were not found.
func (s *TransactionService) Delete(ctx context.Context, ids []int64) ([]int64, error) {
	var notFound []int64
	for _, id := range ids {
		ok, err := s.repo.DeleteTransaction(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			notFound = append(notFound, id)
		}
	}
	return notFound, nil
}
