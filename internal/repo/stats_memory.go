package repo

import (
	"sort"
	"time"

	"stocktrack/internal/models"
)

// InMemoryStatsRepository derives the dashboard aggregates from the in-memory
// product and transaction repositories.
type InMemoryStatsRepository struct {
	products     *InMemoryProductRepository
	transactions *InMemoryTransactionRepository
}

func NewInMemoryStatsRepository() *InMemoryStatsRepository {
	return &InMemoryStatsRepository{}
}

func (r *InMemoryStatsRepository) SetRepositories(products *InMemoryProductRepository, transactions *InMemoryTransactionRepository) {
	r.products = products
	r.transactions = transactions
}

func (r *InMemoryStatsRepository) InventoryStats() (InventoryStats, error) {
	products, _ := r.products.GetAll()

	var s InventoryStats
	s.TotalProducts = len(products)
	for _, p := range products {
		s.TotalValue += p.StockValue()
		s.TotalItems += p.Quantity
		if p.LowStock() {
			s.LowStockCount++
		}
	}
	return s, nil
}

func (r *InMemoryStatsRepository) SalesSummary() (SalesSummary, error) {
	sales := r.sales()

	var s SalesSummary
	seen := map[int]bool{}
	for _, t := range sales {
		s.TotalSales++
		units := abs(t.QuantityChange)
		s.ItemsSold += units
		seen[t.ProductID] = true
		if p, err := r.products.GetByID(t.ProductID); err == nil {
			s.EstimatedRevenue += float64(units) * p.Price
		}
	}
	s.ProductsSold = len(seen)
	if s.TotalSales > 0 {
		s.AvgSaleSize = float64(s.ItemsSold) / float64(s.TotalSales)
	}
	return s, nil
}

func (r *InMemoryStatsRepository) TopSellers(limit int) ([]ProductUnits, error) {
	units := map[string]int{}
	for _, t := range r.sales() {
		if p, err := r.products.GetByID(t.ProductID); err == nil {
			units[p.Name] += abs(t.QuantityChange)
		}
	}

	top := make([]ProductUnits, 0, len(units))
	for name, u := range units {
		top = append(top, ProductUnits{Name: name, Units: u})
	}
	sort.Slice(top, func(i, j int) bool { return top[i].Units > top[j].Units })
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

func (r *InMemoryStatsRepository) SalesTrend() ([]DailyUnits, error) {
	units := map[string]int{}
	for _, t := range r.sales() {
		units[day(t)] += abs(t.QuantityChange)
	}

	trend := make([]DailyUnits, 0, len(units))
	for d, u := range units {
		trend = append(trend, DailyUnits{Day: d, Units: u})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Day < trend[j].Day })
	return trend, nil
}

func (r *InMemoryStatsRepository) Activity(days int) ([]DailyActivity, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)

	type key struct {
		day, typ string
	}
	counts := map[key]int{}
	all, _ := r.transactions.GetAll()
	for _, t := range all {
		if t.CreatedAt < cutoff {
			continue
		}
		counts[key{day(t), t.Type}]++
	}

	activity := make([]DailyActivity, 0, len(counts))
	for k, c := range counts {
		activity = append(activity, DailyActivity{Day: k.day, Type: k.typ, Count: c})
	}
	sort.Slice(activity, func(i, j int) bool {
		if activity[i].Day != activity[j].Day {
			return activity[i].Day < activity[j].Day
		}
		return activity[i].Type < activity[j].Type
	})
	return activity, nil
}

func (r *InMemoryStatsRepository) StockDistribution() (StockDistribution, error) {
	products, _ := r.products.GetAll()

	var d StockDistribution
	for _, p := range products {
		switch {
		case p.Quantity == 0:
			d.OutOfStock++
		case p.Quantity <= p.MinQuantity:
			d.Low++
		case p.Quantity <= p.MinQuantity*2:
			d.Normal++
		default:
			d.High++
		}
	}
	return d, nil
}

func (r *InMemoryStatsRepository) TopValue(limit int) ([]ProductValue, error) {
	products, _ := r.products.GetAll()

	top := make([]ProductValue, 0, len(products))
	for _, p := range products {
		top = append(top, ProductValue{Name: p.Name, Value: p.StockValue()})
	}
	sort.Slice(top, func(i, j int) bool { return top[i].Value > top[j].Value })
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

func (r *InMemoryStatsRepository) sales() []models.Transaction {
	all, _ := r.transactions.GetAll()
	var sales []models.Transaction
	for _, t := range all {
		if t.Type == models.TransactionSale {
			sales = append(sales, t)
		}
	}
	return sales
}

func day(t models.Transaction) string {
	if len(t.CreatedAt) >= 10 {
		return t.CreatedAt[:10]
	}
	return t.CreatedAt
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
