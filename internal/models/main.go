// Package models defines the core data structures for users, portfolios,
// holdings, transactions, and the financial-product catalog.
package models

import "time"

// User represents an application user with credentials.
type User struct {
	// UID is the unique identifier for the user.
	UID int64 `json:"uid"`
	// Name is the display name chosen by the user.
	Name string `json:"name"`
	// Email is the unique login identifier of the user.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized out.
	PasswordHash string `json:"-"`
	// InvestmentProfile is an optional free-form risk profile.
	InvestmentProfile string `json:"investment_profile,omitempty"`
	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// Sector is a reference-data row grouping financial products.
type Sector struct {
	SectorID   int64  `json:"sector_id"`
	SectorName string `json:"sector_name"`
}

// FinancialProduct is a tradable instrument belonging to a sector.
type FinancialProduct struct {
	FinancialProductID int64  `json:"financial_product_id"`
	ProductName        string `json:"product_name"`
	Ticker             string `json:"ticker"`
	// Sector is populated on reads that join the catalog.
	Sector *Sector `json:"sector,omitempty"`
}

// Portfolio groups a user's holdings under a name unique per user.
type Portfolio struct {
	PortfolioID   int64  `json:"portfolio_id"`
	UserID        int64  `json:"user_id"`
	PortfolioName string `json:"portfolio_name"`
}

// Holding is one position of a portfolio in a financial product.
// The pair (PortfolioID, FinancialProductID) is its primary key.
type Holding struct {
	PortfolioID        int64  `json:"portfolio_id"`
	FinancialProductID int64  `json:"financial_product_id,omitempty"`
	CurrencyCode       string `json:"currency_code"`
	// Price and Quantity are decimal column values carried as strings
	// to avoid float rounding on the wire.
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	// FinancialProduct is populated on reads.
	FinancialProduct *FinancialProduct `json:"financial_product,omitempty"`
}

// HoldingUpdate is a partial update of one holding, keyed by the
// (PortfolioID, FinancialProductID) pair. Nil fields are left unchanged.
type HoldingUpdate struct {
	PortfolioID        int64   `json:"portfolio_id"`
	FinancialProductID int64   `json:"financial_product_id"`
	CurrencyCode       *string `json:"currency_code"`
	Price              *string `json:"price"`
	Quantity           *string `json:"quantity"`
}

// Transaction is one row of a portfolio's trade history.
type Transaction struct {
	TransactionID      int64      `json:"transaction_id"`
	PortfolioID        int64      `json:"portfolio_id"`
	FinancialProductID int64      `json:"financial_product_id"`
	TransactionType    string     `json:"transaction_type"`
	Price              string     `json:"price"`
	ProfitRate         *string    `json:"profit_rate"`
	CurrencyCode       *string    `json:"currency_code"`
	Quantity           *string    `json:"quantity"`
	CreatedAt          *time.Time `json:"created_at"`
	// FinancialProduct is populated on reads, sector included.
	FinancialProduct *FinancialProduct `json:"financial_product,omitempty"`
}
