package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finflow/finflow/internal/models"
)

// MySQLHoldingRepository implements portfolio-holding persistence against a
// MySQL database.
type MySQLHoldingRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewMySQLHoldingRepository creates a new MySQLHoldingRepository using the
// provided *sql.DB.
func NewMySQLHoldingRepository(db *sql.DB) *MySQLHoldingRepository {
	return &MySQLHoldingRepository{DB: db}
}

// CountHoldings returns the total number of holding rows.
func (r *MySQLHoldingRepository) CountHoldings(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM portfolio_holdings`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("CountHoldings: %w", err)
	}
	return total, nil
}

// GetHoldingsPage fetches one page of holdings with their financial
// products embedded.
//
//	ctx:    context for cancellation and deadlines
//	offset: number of rows to skip
//	limit:  maximum rows to return
func (r *MySQLHoldingRepository) GetHoldingsPage(ctx context.Context, offset, limit int64) ([]models.Holding, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT h.portfolio_id, h.currency_code, h.price, h.quantity,
		       p.financial_product_id, p.product_name, p.ticker
		  FROM portfolio_holdings h
		  JOIN financial_products p ON p.financial_product_id = h.financial_product_id
		 ORDER BY h.portfolio_id, p.financial_product_id
		 LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("GetHoldingsPage: %w", err)
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		var fp models.FinancialProduct
		if err := rows.Scan(&h.PortfolioID, &h.CurrencyCode, &h.Price, &h.Quantity,
			&fp.FinancialProductID, &fp.ProductName, &fp.Ticker); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		h.FinancialProduct = &fp
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// CreateHolding inserts a new holding row. An existing
// (portfolio_id, financial_product_id) pair is returned as
// models.ErrDuplicate via the composite primary key.
func (r *MySQLHoldingRepository) CreateHolding(ctx context.Context, h *models.Holding) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO portfolio_holdings (portfolio_id, financial_product_id, currency_code, price, quantity)
		VALUES (?, ?, ?, ?, ?)
	`, h.PortfolioID, h.FinancialProductID, h.CurrencyCode, h.Price, h.Quantity)
	if err != nil {
		if isDuplicate(err) {
			return models.ErrDuplicate
		}
		return fmt.Errorf("CreateHolding: %w", err)
	}
	return nil
}

// UpdateHoldings applies partial updates to multiple holdings within one
// transaction. Updates targeting rows that do not exist are skipped.
// Returns the resulting state of every updated row.
func (r *MySQLHoldingRepository) UpdateHoldings(ctx context.Context, updates []models.HoldingUpdate) ([]models.Holding, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	updated := make([]models.Holding, 0, len(updates))

	for _, upd := range updates {
		var h models.Holding
		err := tx.QueryRowContext(ctx, `
			SELECT portfolio_id, financial_product_id, currency_code, price, quantity
			  FROM portfolio_holdings
			 WHERE portfolio_id = ? AND financial_product_id = ?
		`, upd.PortfolioID, upd.FinancialProductID).
			Scan(&h.PortfolioID, &h.FinancialProductID, &h.CurrencyCode, &h.Price, &h.Quantity)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("select holding: %w", err)
		}

		if upd.CurrencyCode != nil {
			h.CurrencyCode = *upd.CurrencyCode
		}
		if upd.Price != nil {
			h.Price = *upd.Price
		}
		if upd.Quantity != nil {
			h.Quantity = *upd.Quantity
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE portfolio_holdings
			   SET currency_code = ?, price = ?, quantity = ?
			 WHERE portfolio_id = ? AND financial_product_id = ?
		`, h.CurrencyCode, h.Price, h.Quantity, h.PortfolioID, h.FinancialProductID)
		if err != nil {
			return nil, fmt.Errorf("update holding: %w", err)
		}
		updated = append(updated, h)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return updated, nil
}

// DeleteHoldings removes holdings by their (portfolio, product) key pairs.
// Missing pairs are ignored.
func (r *MySQLHoldingRepository) DeleteHoldings(ctx context.Context, keys []models.Holding) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, key := range keys {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM portfolio_holdings WHERE portfolio_id = ? AND financial_product_id = ?
		`, key.PortfolioID, key.FinancialProductID)
		if err != nil {
			return fmt.Errorf("delete holding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
