package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrack/internal/models"
)

func TestInMemoryProductRepository_CreateAssignsIDsAndTimestamps(t *testing.T) {
	r := NewInMemoryProductRepository()

	created, err := r.Create(models.Product{Name: "Widget", Quantity: 5, Price: 9.99})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.NotEmpty(t, created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	second, err := r.Create(models.Product{Name: "Gadget", Quantity: 2, Price: 4.50})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
}

func TestInMemoryProductRepository_GetAllSortedByName(t *testing.T) {
	r := NewInMemoryProductRepository()
	r.Create(models.Product{Name: "Zebra", Price: 1})
	r.Create(models.Product{Name: "Apple", Price: 1})
	r.Create(models.Product{Name: "Mango", Price: 1})

	all, err := r.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Apple", all[0].Name)
	assert.Equal(t, "Mango", all[1].Name)
	assert.Equal(t, "Zebra", all[2].Name)
}

func TestInMemoryProductRepository_UpdateKeepsQuantity(t *testing.T) {
	r := NewInMemoryProductRepository()
	created, _ := r.Create(models.Product{Name: "Widget", Quantity: 7, Price: 10})

	updated, err := r.Update(models.Product{ID: created.ID, Name: "Widget v2", Price: 12, MinQuantity: 3, Cost: 5})
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", updated.Name)
	assert.Equal(t, 12.0, updated.Price)
	assert.Equal(t, 7, updated.Quantity, "detail updates must not touch stock")
}

func TestInMemoryProductRepository_UpdateNotFound(t *testing.T) {
	r := NewInMemoryProductRepository()

	_, err := r.Update(models.Product{ID: 42, Name: "Ghost", Price: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestInMemoryProductRepository_AdjustQuantity(t *testing.T) {
	r := NewInMemoryProductRepository()
	created, _ := r.Create(models.Product{Name: "Widget", Quantity: 10, Price: 10})

	adjusted, err := r.AdjustQuantity(created.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, 6, adjusted.Quantity)

	adjusted, err = r.AdjustQuantity(created.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 10, adjusted.Quantity)
}

func TestInMemoryProductRepository_AdjustQuantityGuardsNegative(t *testing.T) {
	r := NewInMemoryProductRepository()
	created, _ := r.Create(models.Product{Name: "Widget", Quantity: 3, Price: 10})

	_, err := r.AdjustQuantity(created.ID, -4)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The failed adjustment leaves the quantity unchanged.
	current, err := r.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, current.Quantity)

	// Draining to exactly zero is allowed.
	drained, err := r.AdjustQuantity(created.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 0, drained.Quantity)
}

func TestInMemoryProductRepository_SearchCaseInsensitive(t *testing.T) {
	r := NewInMemoryProductRepository()
	r.Create(models.Product{Name: "USB Cable", Price: 1})
	r.Create(models.Product{Name: "HDMI cable", Price: 1})
	r.Create(models.Product{Name: "Monitor", Price: 1})

	matches, err := r.Search("CABLE")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestInMemoryProductRepository_LowStockIncludesBoundary(t *testing.T) {
	r := NewInMemoryProductRepository()
	r.Create(models.Product{Name: "AtMin", Quantity: 5, MinQuantity: 5, Price: 1})
	r.Create(models.Product{Name: "Below", Quantity: 1, MinQuantity: 5, Price: 1})
	r.Create(models.Product{Name: "Above", Quantity: 9, MinQuantity: 5, Price: 1})

	low, err := r.LowStock()
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "AtMin", low[0].Name)
	assert.Equal(t, "Below", low[1].Name)
}

func TestInMemoryProductRepository_Delete(t *testing.T) {
	r := NewInMemoryProductRepository()
	created, _ := r.Create(models.Product{Name: "Widget", Price: 1})

	require.NoError(t, r.Delete(created.ID))
	_, err := r.GetByID(created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.ErrorIs(t, r.Delete(created.ID), ErrProductNotFound)
}
