package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finflow/finflow/internal/models"
)

// MySQLPortfolioRepository implements portfolio persistence against a MySQL
// database.
type MySQLPortfolioRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewMySQLPortfolioRepository creates a new MySQLPortfolioRepository using
// the provided *sql.DB.
func NewMySQLPortfolioRepository(db *sql.DB) *MySQLPortfolioRepository {
	return &MySQLPortfolioRepository{DB: db}
}

// GetPortfoliosByUser fetches all portfolios owned by the given user.
func (r *MySQLPortfolioRepository) GetPortfoliosByUser(ctx context.Context, userID int64) ([]models.Portfolio, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT portfolio_id, user_id, portfolio_name FROM portfolios WHERE user_id = ?
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("GetPortfoliosByUser: %w", err)
	}
	defer rows.Close()

	var portfolios []models.Portfolio
	for rows.Next() {
		var p models.Portfolio
		if err := rows.Scan(&p.PortfolioID, &p.UserID, &p.PortfolioName); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		portfolios = append(portfolios, p)
	}
	return portfolios, rows.Err()
}

// GetPortfolioByID fetches a single portfolio. Returns models.ErrNotFound
// when it does not exist.
func (r *MySQLPortfolioRepository) GetPortfolioByID(ctx context.Context, portfolioID int64) (*models.Portfolio, error) {
	var p models.Portfolio
	err := r.DB.QueryRowContext(ctx, `
		SELECT portfolio_id, user_id, portfolio_name FROM portfolios WHERE portfolio_id = ?
	`, portfolioID).Scan(&p.PortfolioID, &p.UserID, &p.PortfolioName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("GetPortfolioByID: %w", err)
	}
	return &p, nil
}

// CreatePortfolio inserts a portfolio and fills in the generated ID.
// A duplicate (user_id, portfolio_name) pair is returned as
// models.ErrDuplicate via the table's unique key.
func (r *MySQLPortfolioRepository) CreatePortfolio(ctx context.Context, p *models.Portfolio) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO portfolios (user_id, portfolio_name) VALUES (?, ?)
	`, p.UserID, p.PortfolioName)
	if err != nil {
		if isDuplicate(err) {
			return models.ErrDuplicate
		}
		return fmt.Errorf("CreatePortfolio: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("CreatePortfolio last insert id: %w", err)
	}
	p.PortfolioID = id
	return nil
}

// RenamePortfolio updates the name of the given portfolio.
func (r *MySQLPortfolioRepository) RenamePortfolio(ctx context.Context, portfolioID int64, name string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE portfolios SET portfolio_name = ? WHERE portfolio_id = ?
	`, name, portfolioID)
	if err != nil {
		if isDuplicate(err) {
			return models.ErrDuplicate
		}
		return fmt.Errorf("RenamePortfolio: %w", err)
	}
	return nil
}

// DeletePortfolio removes a portfolio. Returns models.ErrNotFound when no
// row was deleted.
func (r *MySQLPortfolioRepository) DeletePortfolio(ctx context.Context, portfolioID int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM portfolios WHERE portfolio_id = ?`, portfolioID)
	if err != nil {
		return fmt.Errorf("DeletePortfolio: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return models.ErrNotFound
	}
	return nil
}
