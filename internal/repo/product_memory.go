package repo

import (
	"sort"
	"strings"

	"stocktrack/internal/models"
)

// InMemoryProductRepository backs the handler tests and mirrors the SQL
// implementation's ordering and invariants.
type InMemoryProductRepository struct {
	products []models.Product
	nextID   int
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	product.ID = r.nextID
	r.nextID++
	now := nowUTC()
	product.CreatedAt, product.UpdatedAt = now, now
	r.products = append(r.products, product)
	return product, nil
}

func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	return sortedByName(r.products), nil
}

func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) GetByName(name string) (models.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Update(product models.Product) (models.Product, error) {
	for i, p := range r.products {
		if p.ID == product.ID {
			p.Name = product.Name
			p.MinQuantity = product.MinQuantity
			p.Price = product.Price
			p.Cost = product.Cost
			p.UpdatedAt = nowUTC()
			r.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Delete(id int) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Search(term string) ([]models.Product, error) {
	term = strings.ToLower(term)
	var matches []models.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), term) {
			matches = append(matches, p)
		}
	}
	return sortedByName(matches), nil
}

func (r *InMemoryProductRepository) LowStock() ([]models.Product, error) {
	var low []models.Product
	for _, p := range r.products {
		if p.LowStock() {
			low = append(low, p)
		}
	}
	return sortedByName(low), nil
}

func (r *InMemoryProductRepository) AdjustQuantity(id int, delta int) (models.Product, error) {
	for i, p := range r.products {
		if p.ID == id {
			if p.Quantity+delta < 0 {
				return models.Product{}, ErrInsufficientStock
			}
			p.Quantity += delta
			p.UpdatedAt = nowUTC()
			r.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, ErrInsufficientStock
}

// Clear resets the repository between tests.
func (r *InMemoryProductRepository) Clear() {
	r.products = []models.Product{}
	r.nextID = 1
}

func sortedByName(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
