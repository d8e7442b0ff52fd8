package service

import (
	"context"

	"github.com/finflow/finflow/internal/models"
)

// HoldingRepository defines the persistence operations needed by the
// AssetService.
type HoldingRepository interface {
	// CountHoldings returns the total number of holding rows.
	CountHoldings(ctx context.Context) (int64, error)
	// GetHoldingsPage fetches one page of holdings with products embedded.
	GetHoldingsPage(ctx context.Context, offset, limit int64) ([]models.Holding, error)
	// CreateHolding inserts a holding; models.ErrDuplicate when the
	// (portfolio, product) pair already exists.
	CreateHolding(ctx context.Context, h *models.Holding) error
	// UpdateHoldings applies partial updates in one transaction,
	// skipping unknown pairs, and returns the updated rows.
	UpdateHoldings(ctx context.Context, updates []models.HoldingUpdate) ([]models.Holding, error)
	// DeleteHoldings removes holdings by key pair, ignoring unknown pairs.
	DeleteHoldings(ctx context.Context, keys []models.Holding) error
}

// AssetPage is one page of holdings plus paging metadata.
type AssetPage struct {
	Total   int64            `json:"total"`
	Page    int64            `json:"page"`
	PerPage int64            `json:"per_page"`
	Assets  []models.Holding `json:"assets"`
}

// AssetService implements holdings ("assets") management.
type AssetService struct {
	repo HoldingRepository
}

// NewAssetService constructs an AssetService with the provided repository.
func NewAssetService(repo HoldingRepository) *AssetService {
	return &AssetService{repo: repo}
}

// ListPage returns one page of holdings. page starts at 1.
func (s *AssetService) ListPage(ctx context.Context, page, perPage int64) (*AssetPage, error) {
	total, err := s.repo.CountHoldings(ctx)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * perPage
	holdings, err := s.repo.GetHoldingsPage(ctx, offset, perPage)
	if err != nil {
		return nil, err
	}

	if holdings == nil {
		holdings = []models.Holding{}
	}
	return &AssetPage{Total: total, Page: page, PerPage: perPage, Assets: holdings}, nil
}

// Create adds a new holding.
func (s *AssetService) Create(ctx context.Context, h *models.Holding) error {
	return s.repo.CreateHolding(ctx, h)
}

// Update applies the given partial updates and returns the updated rows.
func (s *AssetService) Update(ctx context.Context, updates []models.HoldingUpdate) ([]models.Holding, error) {
	return s.repo.UpdateHoldings(ctx, updates)
}

// Delete removes the holdings identified by the key pairs.
func (s *AssetService) Delete(ctx context.Context, keys []models.Holding) error {
	return s.repo.DeleteHoldings(ctx, keys)
}
