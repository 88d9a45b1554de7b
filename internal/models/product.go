package models

// Product represents a stocked item with quantity and pricing.
type Product struct {
	ID          int     `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Quantity    int     `db:"quantity" json:"quantity"`
	MinQuantity int     `db:"min_quantity" json:"min_quantity"`
	Price       float64 `db:"price" json:"price"`
	Cost        float64 `db:"cost" json:"cost"`
	CreatedAt   string  `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt   string  `db:"updated_at" json:"updated_at,omitempty"`
}

// LowStock reports whether the product is at or below its reorder level.
func (p Product) LowStock() bool {
	return p.Quantity <= p.MinQuantity
}

// StockValue is the value of the stock on hand at the current selling price.
func (p Product) StockValue() float64 {
	return float64(p.Quantity) * p.Price
}
