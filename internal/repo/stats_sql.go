package repo

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"stocktrack/internal/models"
)

// SQLStatsRepository computes the dashboard aggregates in SQL. The day of a
// transaction is the first ten characters of its RFC 3339 UTC timestamp,
// which works identically on SQLite and Postgres.
type SQLStatsRepository struct {
	db *sqlx.DB
}

func NewSQLStatsRepository(db *sqlx.DB) *SQLStatsRepository {
	return &SQLStatsRepository{db: db}
}

func (r *SQLStatsRepository) InventoryStats() (InventoryStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var s InventoryStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity * price), 0),
		       COALESCE(SUM(quantity), 0),
		       COALESCE(SUM(CASE WHEN quantity <= min_quantity THEN 1 ELSE 0 END), 0)
		FROM products
	`).Scan(&s.TotalProducts, &s.TotalValue, &s.TotalItems, &s.LowStockCount)
	return s, err
}

func (r *SQLStatsRepository) SalesSummary() (SalesSummary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var s SalesSummary
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
		SELECT COUNT(*),
		       COALESCE(SUM(ABS(quantity_change)), 0),
		       COUNT(DISTINCT product_id),
		       COALESCE(AVG(ABS(quantity_change)), 0)
		FROM transactions WHERE type = ?
	`), models.TransactionSale).Scan(&s.TotalSales, &s.ItemsSold, &s.ProductsSold, &s.AvgSaleSize)
	if err != nil {
		return SalesSummary{}, err
	}

	// Estimated at current prices; the ledger does not record sale prices.
	err = r.db.QueryRowContext(ctx, r.db.Rebind(`
		SELECT COALESCE(SUM(ABS(t.quantity_change) * p.price), 0)
		FROM transactions t
		JOIN products p ON t.product_id = p.id
		WHERE t.type = ?
	`), models.TransactionSale).Scan(&s.EstimatedRevenue)
	return s, err
}

func (r *SQLStatsRepository) TopSellers(limit int) ([]ProductUnits, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var top []ProductUnits
	err := r.db.SelectContext(ctx, &top, r.db.Rebind(`
		SELECT p.name AS name, SUM(ABS(t.quantity_change)) AS units
		FROM transactions t
		JOIN products p ON t.product_id = p.id
		WHERE t.type = ?
		GROUP BY p.name
		ORDER BY units DESC
		LIMIT ?
	`), models.TransactionSale, limit)
	return top, err
}

func (r *SQLStatsRepository) SalesTrend() ([]DailyUnits, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var trend []DailyUnits
	err := r.db.SelectContext(ctx, &trend, r.db.Rebind(`
		SELECT substr(created_at, 1, 10) AS day, SUM(ABS(quantity_change)) AS units
		FROM transactions
		WHERE type = ?
		GROUP BY substr(created_at, 1, 10)
		ORDER BY day
	`), models.TransactionSale)
	return trend, err
}

func (r *SQLStatsRepository) Activity(days int) ([]DailyActivity, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
	var activity []DailyActivity
	err := r.db.SelectContext(ctx, &activity, r.db.Rebind(`
		SELECT substr(created_at, 1, 10) AS day, type, COUNT(*) AS count
		FROM transactions
		WHERE created_at >= ?
		GROUP BY substr(created_at, 1, 10), type
		ORDER BY day, type
	`), cutoff)
	return activity, err
}

func (r *SQLStatsRepository) StockDistribution() (StockDistribution, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var d StockDistribution
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN quantity = 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN quantity > 0 AND quantity <= min_quantity THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN quantity > min_quantity AND quantity <= min_quantity * 2 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN quantity > min_quantity * 2 THEN 1 ELSE 0 END), 0)
		FROM products
	`).Scan(&d.OutOfStock, &d.Low, &d.Normal, &d.High)
	return d, err
}

func (r *SQLStatsRepository) TopValue(limit int) ([]ProductValue, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var top []ProductValue
	err := r.db.SelectContext(ctx, &top, r.db.Rebind(`
		SELECT name, quantity * price AS value
		FROM products
		ORDER BY value DESC
		LIMIT ?
	`), limit)
	return top, err
}
