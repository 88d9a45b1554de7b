package handlers

import "stocktrack/internal/repo"

type ProductRequest struct {
	Id          int     `json:"id,omitempty"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	MinQuantity int     `json:"min_quantity"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
}

type ProductResponse struct {
	Id          int     `json:"id"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	MinQuantity int     `json:"min_quantity"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	StockValue  float64 `json:"stock_value"`
	LowStock    bool    `json:"low_stock,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type TransactionRequest struct {
	Type     string `json:"type"`     // SALE or RESTOCK
	Quantity int    `json:"quantity"` // always positive; the sign comes from the type
}

type TransactionResponse struct {
	ID             int    `json:"id"`
	ProductID      int    `json:"product_id"`
	ProductName    string `json:"product_name,omitempty"`
	Type           string `json:"type"`
	QuantityChange int    `json:"quantity_change"`
	CreatedAt      string `json:"created_at"`
}

type RecordTransactionResult struct {
	Transaction TransactionResponse `json:"transaction"`
	Product     ProductResponse     `json:"product"`
}

type TransactionsSearchResult struct {
	Data []TransactionResponse `json:"data"`
	Meta Meta                  `json:"meta,omitempty"`
}

type InventoryReport struct {
	Stats        repo.InventoryStats    `json:"stats"`
	Distribution repo.StockDistribution `json:"distribution"`
	TopValue     []repo.ProductValue    `json:"top_value"`
}

type SalesReport struct {
	Summary    repo.SalesSummary   `json:"summary"`
	TopSellers []repo.ProductUnits `json:"top_sellers"`
	Trend      []repo.DailyUnits   `json:"trend"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
