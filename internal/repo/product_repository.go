package repo

import "stocktrack/internal/models"

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	GetByName(name string) (models.Product, error)
	// Update changes product details (name, min quantity, price, cost).
	// The stock quantity is only changed through AdjustQuantity.
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
	// Search returns products whose name contains term, case-insensitive.
	Search(term string) ([]models.Product, error)
	// LowStock returns products at or below their minimum quantity.
	LowStock() ([]models.Product, error)
	// AdjustQuantity applies a signed delta to the stock level. The quantity
	// can never go below zero; an overdraw returns ErrInsufficientStock.
	AdjustQuantity(id int, delta int) (models.Product, error)
}
