package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/finflow/finflow/internal/models"
)

func transactionFixture() *models.Transaction {
	currency := "USD"
	quantity := "3.0000"
	created := time.Now()
	return &models.Transaction{
		PortfolioID:        1,
		FinancialProductID: 2,
		TransactionType:    "buy",
		Price:              "150.00",
		CurrencyCode:       &currency,
		Quantity:           &quantity,
		CreatedAt:          &created,
	}
}

func setupTransactionMock(t *testing.T) (*MySQLTransactionRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewMySQLTransactionRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestGetTransactionsPage(t *testing.T) {
	repo, mock, cleanup := setupTransactionMock(t)
	defer cleanup()

	cols := []string{"transaction_id", "portfolio_id", "financial_product_id",
		"transaction_type", "price", "profit_rate", "currency_code",
		"quantity", "created_at", "product_name", "ticker", "sector_id", "sector_name"}
	created := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM transaction_history t`)).
		WithArgs(int64(1), int64(10), int64(0)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(5, 1, 2, "buy", "150.00", nil, "USD", "3.0000", created,
				"Apple Inc.", "AAPL", 1, "Technology"))

	transactions, err := repo.GetTransactionsPage(context.Background(), 1, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(transactions))
	}
	tx := transactions[0]
	if tx.ProfitRate != nil {
		t.Errorf("expected nil profit rate, got %v", *tx.ProfitRate)
	}
	if tx.FinancialProduct == nil || tx.FinancialProduct.Sector == nil ||
		tx.FinancialProduct.Sector.SectorName != "Technology" {
		t.Errorf("expected embedded product and sector, got %+v", tx.FinancialProduct)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	repo, mock, cleanup := setupTransactionMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM transaction_history WHERE transaction_id = ?`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM transaction_history WHERE transaction_id = ?`)).
		WithArgs(int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.DeleteTransaction(context.Background(), 5)
	if err != nil || !ok {
		t.Fatalf("expected deleted=true, got ok=%v err=%v", ok, err)
	}
	ok, err = repo.DeleteTransaction(context.Background(), 6)
	if err != nil || ok {
		t.Fatalf("expected deleted=false, got ok=%v err=%v", ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreateTransaction(t *testing.T) {
	repo, mock, cleanup := setupTransactionMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO transaction_history`)).
		WillReturnResult(sqlmock.NewResult(9, 1))

	tx := transactionFixture()
	if err := repo.CreateTransaction(context.Background(), tx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.TransactionID != 9 {
		t.Errorf("expected TransactionID 9, got %d", tx.TransactionID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
