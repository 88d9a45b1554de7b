package repo

import (
	"sort"
	"time"

	"stocktrack/internal/models"
)

type InMemoryTransactionRepository struct {
	transactions []models.Transaction
	nextID       int
	products     ProductRepository
}

func NewInMemoryTransactionRepository() *InMemoryTransactionRepository {
	return &InMemoryTransactionRepository{
		transactions: []models.Transaction{},
		nextID:       1,
	}
}

// SetProductRepository lets GetAll resolve product names, matching the SQL
// implementation's join.
func (r *InMemoryTransactionRepository) SetProductRepository(products ProductRepository) {
	r.products = products
}

func (r *InMemoryTransactionRepository) Record(t models.Transaction) (models.Transaction, error) {
	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = nowUTC()
	r.transactions = append(r.transactions, t)
	return t, nil
}

// AddTransaction inserts a row as-is, timestamps included. Test seeding only.
func (r *InMemoryTransactionRepository) AddTransaction(t models.Transaction) {
	t.ID = r.nextID
	r.nextID++
	r.transactions = append(r.transactions, t)
}

func (r *InMemoryTransactionRepository) GetByProductID(productID int, f TransactionFilter) ([]models.Transaction, int, error) {
	var matches []models.Transaction
	for _, t := range r.transactions {
		if t.ProductID != productID {
			continue
		}
		if f.Since != nil && t.CreatedAt < f.Since.UTC().Format(time.RFC3339) {
			continue
		}
		if f.Until != nil && t.CreatedAt > f.Until.UTC().Format(time.RFC3339) {
			continue
		}
		matches = append(matches, t)
	}
	sortNewestFirst(matches)

	total := len(matches)

	offset := 0
	if f.Offset != nil && *f.Offset > 0 {
		offset = *f.Offset
	}
	if offset >= total {
		return []models.Transaction{}, total, nil
	}
	matches = matches[offset:]

	limit := defaultHistoryLimit
	if f.Limit != nil && *f.Limit > 0 {
		limit = min(*f.Limit, defaultHistoryLimit)
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, total, nil
}

func (r *InMemoryTransactionRepository) GetAll() ([]models.Transaction, error) {
	out := make([]models.Transaction, len(r.transactions))
	copy(out, r.transactions)
	sortNewestFirst(out)

	if r.products != nil {
		for i, t := range out {
			if p, err := r.products.GetByID(t.ProductID); err == nil {
				out[i].ProductName = p.Name
			}
		}
	}
	return out, nil
}

func (r *InMemoryTransactionRepository) DeleteByProductID(productID int) error {
	kept := r.transactions[:0]
	for _, t := range r.transactions {
		if t.ProductID != productID {
			kept = append(kept, t)
		}
	}
	r.transactions = kept
	return nil
}

// Clear resets the repository between tests.
func (r *InMemoryTransactionRepository) Clear() {
	r.transactions = []models.Transaction{}
	r.nextID = 1
}

func sortNewestFirst(transactions []models.Transaction) {
	sort.Slice(transactions, func(i, j int) bool {
		if transactions[i].CreatedAt != transactions[j].CreatedAt {
			return transactions[i].CreatedAt > transactions[j].CreatedAt
		}
		return transactions[i].ID > transactions[j].ID
	})
}
