package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrack/internal/models"
)

func newStatsFixture(t *testing.T) (*InMemoryStatsRepository, *InMemoryProductRepository, *InMemoryTransactionRepository) {
	t.Helper()
	products := NewInMemoryProductRepository()
	transactions := NewInMemoryTransactionRepository()
	transactions.SetProductRepository(products)

	stats := NewInMemoryStatsRepository()
	stats.SetRepositories(products, transactions)
	return stats, products, transactions
}

func TestInMemoryStatsRepository_InventoryStats(t *testing.T) {
	stats, products, _ := newStatsFixture(t)

	products.Create(models.Product{Name: "Pencil", Quantity: 100, MinQuantity: 10, Price: 2})
	products.Create(models.Product{Name: "Printer", Quantity: 4, MinQuantity: 5, Price: 250})
	products.Create(models.Product{Name: "Empty", Quantity: 0, MinQuantity: 1, Price: 10})

	s, err := stats.InventoryStats()
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalProducts)
	assert.Equal(t, 104, s.TotalItems)
	assert.Equal(t, 1200.0, s.TotalValue)
	assert.Equal(t, 2, s.LowStockCount)
}

func TestInMemoryStatsRepository_SalesSummary(t *testing.T) {
	stats, products, transactions := newStatsFixture(t)

	pencil, _ := products.Create(models.Product{Name: "Pencil", Quantity: 100, Price: 2})
	printer, _ := products.Create(models.Product{Name: "Printer", Quantity: 4, Price: 250})

	transactions.AddTransaction(models.Transaction{ProductID: pencil.ID, Type: models.TransactionSale, QuantityChange: -10, CreatedAt: "2026-08-01T10:00:00Z"})
	transactions.AddTransaction(models.Transaction{ProductID: pencil.ID, Type: models.TransactionSale, QuantityChange: -5, CreatedAt: "2026-08-02T10:00:00Z"})
	transactions.AddTransaction(models.Transaction{ProductID: printer.ID, Type: models.TransactionSale, QuantityChange: -1, CreatedAt: "2026-08-02T11:00:00Z"})
	transactions.AddTransaction(models.Transaction{ProductID: pencil.ID, Type: models.TransactionRestock, QuantityChange: 50, CreatedAt: "2026-08-03T10:00:00Z"})

	s, err := stats.SalesSummary()
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalSales)
	assert.Equal(t, 16, s.ItemsSold)
	assert.Equal(t, 2, s.ProductsSold)
	assert.InDelta(t, 16.0/3.0, s.AvgSaleSize, 1e-9)
	// Revenue is estimated at current prices: 15*2 + 1*250.
	assert.Equal(t, 280.0, s.EstimatedRevenue)
}

func TestInMemoryStatsRepository_TopSellers(t *testing.T) {
	stats, products, transactions := newStatsFixture(t)

	pencil, _ := products.Create(models.Product{Name: "Pencil", Quantity: 100, Price: 2})
	printer, _ := products.Create(models.Product{Name: "Printer", Quantity: 4, Price: 250})

	transactions.AddTransaction(models.Transaction{ProductID: pencil.ID, Type: models.TransactionSale, QuantityChange: -10, CreatedAt: "2026-08-01T10:00:00Z"})
	transactions.AddTransaction(models.Transaction{ProductID: printer.ID, Type: models.TransactionSale, QuantityChange: -2, CreatedAt: "2026-08-01T11:00:00Z"})

	top, err := stats.TopSellers(10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, ProductUnits{Name: "Pencil", Units: 10}, top[0])
	assert.Equal(t, ProductUnits{Name: "Printer", Units: 2}, top[1])

	capped, err := stats.TopSellers(1)
	require.NoError(t, err)
	require.Len(t, capped, 1)
	assert.Equal(t, "Pencil", capped[0].Name)
}

func TestInMemoryStatsRepository_SalesTrendGroupsByDay(t *testing.T) {
	stats, products, transactions := newStatsFixture(t)

	pencil, _ := products.Create(models.Product{Name: "Pencil", Quantity: 100, Price: 2})

	transactions.AddTransaction(models.Transaction{ProductID: pencil.ID, Type: models.TransactionSale, QuantityChange: -3, CreatedAt: "2026-08-01T09:00:00Z"})
	transactions.AddTransaction(models.Transaction{ProductID: pencil.ID, Type: models.TransactionSale, QuantityChange: -4, CreatedAt: "2026-08-01T17:00:00Z"})
	transactions.AddTransaction(models.Transaction{ProductID: pencil.ID, Type: models.TransactionSale, QuantityChange: -2, CreatedAt: "2026-08-02T09:00:00Z"})

	trend, err := stats.SalesTrend()
	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.Equal(t, DailyUnits{Day: "2026-08-01", Units: 7}, trend[0])
	assert.Equal(t, DailyUnits{Day: "2026-08-02", Units: 2}, trend[1])
}

func TestInMemoryStatsRepository_StockDistribution(t *testing.T) {
	stats, products, _ := newStatsFixture(t)

	products.Create(models.Product{Name: "Empty", Quantity: 0, MinQuantity: 5, Price: 1})
	products.Create(models.Product{Name: "Low", Quantity: 4, MinQuantity: 5, Price: 1})
	products.Create(models.Product{Name: "AtTwiceMin", Quantity: 10, MinQuantity: 5, Price: 1})
	products.Create(models.Product{Name: "High", Quantity: 11, MinQuantity: 5, Price: 1})

	d, err := stats.StockDistribution()
	require.NoError(t, err)
	assert.Equal(t, StockDistribution{OutOfStock: 1, Low: 1, Normal: 1, High: 1}, d)
}

func TestInMemoryStatsRepository_TopValue(t *testing.T) {
	stats, products, _ := newStatsFixture(t)

	products.Create(models.Product{Name: "Pencil", Quantity: 100, Price: 2})   // 200
	products.Create(models.Product{Name: "Printer", Quantity: 4, Price: 250}) // 1000

	top, err := stats.TopValue(10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, ProductValue{Name: "Printer", Value: 1000}, top[0])
	assert.Equal(t, ProductValue{Name: "Pencil", Value: 200}, top[1])
}
