package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/finflow/finflow/internal/models"
)

// MySQLTransactionRepository implements transaction-history persistence
// against a MySQL database.
type MySQLTransactionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewMySQLTransactionRepository creates a new MySQLTransactionRepository
// using the provided *sql.DB.
func NewMySQLTransactionRepository(db *sql.DB) *MySQLTransactionRepository {
	return &MySQLTransactionRepository{DB: db}
}

// CountTransactions returns the number of transactions recorded for the
// given portfolio.
func (r *MySQLTransactionRepository) CountTransactions(ctx context.Context, portfolioID int64) (int64, error) {
	var total int64
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM transaction_history WHERE portfolio_id = ?
	`, portfolioID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("CountTransactions: %w", err)
	}
	return total, nil
}

// GetTransactionsPage fetches one page of a portfolio's transactions,
// newest first, each with its financial product and sector embedded.
func (r *MySQLTransactionRepository) GetTransactionsPage(ctx context.Context, portfolioID, offset, limit int64) ([]models.Transaction, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT t.transaction_id, t.portfolio_id, t.financial_product_id,
		       t.transaction_type, t.price, t.profit_rate, t.currency_code,
		       t.quantity, t.created_at,
		       p.product_name, p.ticker, s.sector_id, s.sector_name
		  FROM transaction_history t
		  JOIN financial_products p ON p.financial_product_id = t.financial_product_id
		  JOIN sectors s ON s.sector_id = p.sector_id
		 WHERE t.portfolio_id = ?
		 ORDER BY t.created_at DESC
		 LIMIT ? OFFSET ?
	`, portfolioID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("GetTransactionsPage: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		fp := models.FinancialProduct{Sector: &models.Sector{}}
		if err := rows.Scan(&t.TransactionID, &t.PortfolioID, &t.FinancialProductID,
			&t.TransactionType, &t.Price, &t.ProfitRate, &t.CurrencyCode,
			&t.Quantity, &t.CreatedAt,
			&fp.ProductName, &fp.Ticker, &fp.Sector.SectorID, &fp.Sector.SectorName); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		fp.FinancialProductID = t.FinancialProductID
		t.FinancialProduct = &fp
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// CreateTransaction inserts a transaction row and fills in the generated ID.
func (r *MySQLTransactionRepository) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO transaction_history
		       (portfolio_id, financial_product_id, transaction_type, price, profit_rate, currency_code, quantity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.PortfolioID, t.FinancialProductID, t.TransactionType, t.Price,
		t.ProfitRate, t.CurrencyCode, t.Quantity, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("CreateTransaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("CreateTransaction last insert id: %w", err)
	}
	t.TransactionID = id
	return nil
}

// DeleteTransaction removes the transaction with the given ID and reports
// whether a row was actually deleted.
func (r *MySQLTransactionRepository) DeleteTransaction(ctx context.Context, transactionID int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM transaction_history WHERE transaction_id = ?
	`, transactionID)
	if err != nil {
		return false, fmt.Errorf("DeleteTransaction: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeleteTransaction rows affected: %w", err)
	}
	return rows > 0, nil
}
