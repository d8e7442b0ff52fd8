package service

import (
	"context"

	"github.com/finflow/finflow/internal/models"
)

// PortfolioRepository defines the persistence operations needed by the
// PortfolioService.
type PortfolioRepository interface {
	// GetPortfoliosByUser retrieves all portfolios owned by the user.
	GetPortfoliosByUser(ctx context.Context, userID int64) ([]models.Portfolio, error)
	// GetPortfolioByID fetches one portfolio, models.ErrNotFound if absent.
	GetPortfolioByID(ctx context.Context, portfolioID int64) (*models.Portfolio, error)
	// CreatePortfolio inserts a portfolio; models.ErrDuplicate on a name
	// the user already has.
	CreatePortfolio(ctx context.Context, p *models.Portfolio) error
	// RenamePortfolio updates the portfolio name.
	RenamePortfolio(ctx context.Context, portfolioID int64, name string) error
	// DeletePortfolio removes a portfolio, models.ErrNotFound if absent.
	DeletePortfolio(ctx context.Context, portfolioID int64) error
}

// PortfolioService implements portfolio management scoped to one owner.
type PortfolioService struct {
	repo PortfolioRepository
}

// NewPortfolioService constructs a PortfolioService with the provided
// repository.
func NewPortfolioService(repo PortfolioRepository) *PortfolioService {
	return &PortfolioService{repo: repo}
}

// List returns all portfolios owned by the user.
func (s *PortfolioService) List(ctx context.Context, userID int64) ([]models.Portfolio, error) {
	return s.repo.GetPortfoliosByUser(ctx, userID)
}

// Create makes a new portfolio for the user. Name uniqueness per user is
// enforced by the database key.
func (s *PortfolioService) Create(ctx context.Context, userID int64, name string) (*models.Portfolio, error) {
	p := &models.Portfolio{UserID: userID, PortfolioName: name}
	if err := s.repo.CreatePortfolio(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename changes a portfolio's name. Only the owner may rename it;
// anyone else gets models.ErrForbidden.
func (s *PortfolioService) Rename(ctx context.Context, userID, portfolioID int64, name string) (*models.Portfolio, error) {
	p, err := s.repo.GetPortfolioByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, models.ErrForbidden
	}

	if name != p.PortfolioName {
		if err := s.repo.RenamePortfolio(ctx, portfolioID, name); err != nil {
			return nil, err
		}
		p.PortfolioName = name
	}
	return p, nil
}

// Delete removes a portfolio owned by the user.
func (s *PortfolioService) Delete(ctx context.Context, userID, portfolioID int64) error {
	p, err := s.repo.GetPortfolioByID(ctx, portfolioID)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return models.ErrForbidden
	}
	return s.repo.DeletePortfolio(ctx, portfolioID)
}
