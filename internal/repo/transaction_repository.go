package repo

import (
	"time"

	"stocktrack/internal/models"
)

// TransactionFilter narrows transaction history queries.
type TransactionFilter struct {
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}

type TransactionRepository interface {
	// Record inserts a transaction row. QuantityChange is signed: negative
	// for sales, positive for restocks.
	Record(t models.Transaction) (models.Transaction, error)
	// GetByProductID returns a product's transactions, newest first, plus the
	// total count before pagination.
	GetByProductID(productID int, f TransactionFilter) ([]models.Transaction, int, error)
	// GetAll returns every transaction joined with its product name, newest first.
	GetAll() ([]models.Transaction, error)
	// DeleteByProductID removes a product's transactions. Called before the
	// product itself is deleted.
	DeleteByProductID(productID int) error
}
