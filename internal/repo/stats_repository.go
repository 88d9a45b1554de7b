package repo

// InventoryStats are the headline numbers on the dashboard.
type InventoryStats struct {
	TotalProducts int     `json:"total_products"`
	TotalValue    float64 `json:"total_value"`
	TotalItems    int     `json:"total_items"`
	LowStockCount int     `json:"low_stock_count"`
}

// SalesSummary aggregates the sale transactions. Revenue is estimated from
// current selling prices, as historical prices are not recorded.
type SalesSummary struct {
	TotalSales       int     `json:"total_sales"`
	ItemsSold        int     `json:"items_sold"`
	ProductsSold     int     `json:"products_sold"`
	AvgSaleSize      float64 `json:"avg_sale_size"`
	EstimatedRevenue float64 `json:"estimated_revenue"`
}

// ProductUnits pairs a product name with a unit count (top-seller chart).
type ProductUnits struct {
	Name  string `db:"name" json:"name"`
	Units int    `db:"units" json:"units"`
}

// ProductValue pairs a product name with its stock value (top-value chart).
type ProductValue struct {
	Name  string  `db:"name" json:"name"`
	Value float64 `db:"value" json:"value"`
}

// DailyUnits is one point of the daily sales trend.
type DailyUnits struct {
	Day   string `db:"day" json:"day"`
	Units int    `db:"units" json:"units"`
}

// DailyActivity is a per-day, per-type transaction count.
type DailyActivity struct {
	Day   string `db:"day" json:"day"`
	Type  string `db:"type" json:"type"`
	Count int    `db:"count" json:"count"`
}

// StockDistribution buckets products by stock level relative to their
// minimum quantity: zero, at/below min, within 2x min, above.
type StockDistribution struct {
	OutOfStock int `json:"out_of_stock"`
	Low        int `json:"low"`
	Normal     int `json:"normal"`
	High       int `json:"high"`
}

type StatsRepository interface {
	InventoryStats() (InventoryStats, error)
	SalesSummary() (SalesSummary, error)
	TopSellers(limit int) ([]ProductUnits, error)
	SalesTrend() ([]DailyUnits, error)
	// Activity returns per-day transaction counts for the last `days` days.
	Activity(days int) ([]DailyActivity, error)
	StockDistribution() (StockDistribution, error)
	TopValue(limit int) ([]ProductValue, error)
}
