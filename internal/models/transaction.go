package models

// Transaction types. Sales carry a negative quantity change, restocks a
// positive one.
const (
	TransactionSale    = "SALE"
	TransactionRestock = "RESTOCK"
)

// Transaction records a sale or restock event against a product.
type Transaction struct {
	ID             int    `db:"id" json:"id"`
	ProductID      int    `db:"product_id" json:"product_id"`
	Type           string `db:"type" json:"type"`
	QuantityChange int    `db:"quantity_change" json:"quantity_change"`
	CreatedAt      string `db:"created_at" json:"created_at"`

	// ProductName is populated on joined queries only.
	ProductName string `db:"product_name" json:"product_name,omitempty"`
}
