package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"stocktrack/internal/models"
)

const queryTimeout = 3 * time.Second

// SQLProductRepository runs against SQLite or Postgres; queries are written
// with ? placeholders and rebound for the active driver.
type SQLProductRepository struct {
	db *sqlx.DB
}

func NewSQLProductRepository(db *sqlx.DB) *SQLProductRepository {
	return &SQLProductRepository{db: db}
}

const productColumns = `id, name, quantity, min_quantity, price, cost, created_at, updated_at`

func (r *SQLProductRepository) Create(p models.Product) (models.Product, error) {
	query := r.db.Rebind(`INSERT INTO products (name, quantity, min_quantity, price, cost, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	now := nowUTC()
	p.CreatedAt, p.UpdatedAt = now, now
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Quantity, p.MinQuantity, p.Price, p.Cost, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	return p, err
}

func (r *SQLProductRepository) GetAll() ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var products []models.Product
	err := r.db.SelectContext(ctx, &products, query)
	return products, err
}

func (r *SQLProductRepository) GetByID(id int) (models.Product, error) {
	query := r.db.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id = ?`)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var p models.Product
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *SQLProductRepository) GetByName(name string) (models.Product, error) {
	query := r.db.Rebind(`SELECT ` + productColumns + ` FROM products WHERE name = ?`)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var p models.Product
	err := r.db.GetContext(ctx, &p, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *SQLProductRepository) Update(p models.Product) (models.Product, error) {
	query := r.db.Rebind(`UPDATE products SET name = ?, min_quantity = ?, price = ?, cost = ?, updated_at = ? WHERE id = ?`)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	p.UpdatedAt = nowUTC()
	res, err := r.db.ExecContext(ctx, query, p.Name, p.MinQuantity, p.Price, p.Cost, p.UpdatedAt, p.ID)
	if err != nil {
		return models.Product{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return r.GetByID(p.ID)
}

func (r *SQLProductRepository) Delete(id int) error {
	query := r.db.Rebind(`DELETE FROM products WHERE id = ?`)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *SQLProductRepository) Search(term string) ([]models.Product, error) {
	// LOWER(...) LIKE keeps the match case-insensitive on both dialects.
	query := r.db.Rebind(`SELECT ` + productColumns + ` FROM products WHERE LOWER(name) LIKE ? ORDER BY name`)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var products []models.Product
	err := r.db.SelectContext(ctx, &products, query, "%"+strings.ToLower(term)+"%")
	return products, err
}

func (r *SQLProductRepository) LowStock() ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE quantity <= min_quantity ORDER BY name`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var products []models.Product
	err := r.db.SelectContext(ctx, &products, query)
	return products, err
}

func (r *SQLProductRepository) AdjustQuantity(id int, delta int) (models.Product, error) {
	// The guard makes the non-negativity invariant hold inside the database,
	// not just at the input boundary.
	query := r.db.Rebind(`
		UPDATE products
		SET quantity = quantity + ?, updated_at = ?
		WHERE id = ? AND quantity + ? >= 0
		RETURNING ` + productColumns)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowxContext(ctx, query, delta, nowUTC(), id, delta).StructScan(&p)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrInsufficientStock
	}
	return p, err
}
