package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"stocktrack/internal/models"
)

const defaultHistoryLimit = 100

type SQLTransactionRepository struct {
	db *sqlx.DB
}

func NewSQLTransactionRepository(db *sqlx.DB) *SQLTransactionRepository {
	return &SQLTransactionRepository{db: db}
}

func (r *SQLTransactionRepository) Record(t models.Transaction) (models.Transaction, error) {
	query := r.db.Rebind(`INSERT INTO transactions (product_id, type, quantity_change, created_at)
		VALUES (?, ?, ?, ?) RETURNING id`)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	t.CreatedAt = nowUTC()
	err := r.db.QueryRowContext(ctx, query, t.ProductID, t.Type, t.QuantityChange, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return t, nil
}

func (r *SQLTransactionRepository) GetByProductID(productID int, f TransactionFilter) ([]models.Transaction, int, error) {
	whereClause, args := buildHistoryWhere(productID, f)

	total, err := r.getTotal(whereClause, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	if f.Offset != nil && *f.Offset >= total {
		return []models.Transaction{}, total, nil
	}

	query := `SELECT id, product_id, type, quantity_change, created_at FROM transactions ` +
		whereClause + ` ORDER BY created_at DESC, id DESC`

	limit := defaultHistoryLimit
	if f.Limit != nil && *f.Limit > 0 {
		limit = min(*f.Limit, defaultHistoryLimit)
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if f.Offset != nil && *f.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, *f.Offset)
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var transactions []models.Transaction
	if err := r.db.SelectContext(ctx, &transactions, r.db.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}
	return transactions, total, nil
}

func buildHistoryWhere(productID int, f TransactionFilter) (string, []any) {
	whereClause := `WHERE product_id = ?`
	args := []any{productID}

	if f.Since != nil {
		whereClause += ` AND created_at >= ?`
		args = append(args, f.Since.UTC().Format(time.RFC3339))
	}
	if f.Until != nil {
		whereClause += ` AND created_at <= ?`
		args = append(args, f.Until.UTC().Format(time.RFC3339))
	}
	return whereClause, args
}

func (r *SQLTransactionRepository) getTotal(whereClause string, args []any) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var total int
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT COUNT(*) FROM transactions `+whereClause), args...).Scan(&total)
	return total, err
}

func (r *SQLTransactionRepository) GetAll() ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.product_id, t.type, t.quantity_change, t.created_at, p.name AS product_name
		FROM transactions t
		JOIN products p ON t.product_id = p.id
		ORDER BY t.created_at DESC, t.id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var transactions []models.Transaction
	err := r.db.SelectContext(ctx, &transactions, query)
	return transactions, err
}

func (r *SQLTransactionRepository) DeleteByProductID(productID int) error {
	query := r.db.Rebind(`DELETE FROM transactions WHERE product_id = ?`)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, productID)
	return err
}
