package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"stocktrack/internal/models"
)

type SQLUserRepository struct {
	db *sqlx.DB
}

func NewSQLUserRepository(db *sqlx.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

func (r *SQLUserRepository) CreateUser(u models.User) (models.User, error) {
	query := r.db.Rebind(`INSERT INTO users (username, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?) RETURNING id`)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	now := nowUTC()
	u.CreatedAt, u.UpdatedAt = now, now
	err := r.db.QueryRowContext(ctx, query, u.Username, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		// Both drivers mention the violated unique constraint by name.
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, err
	}
	return u, nil
}

func (r *SQLUserRepository) GetByUsername(username string) (models.User, error) {
	query := r.db.Rebind(`SELECT id, username, password_hash, role, created_at, updated_at FROM users WHERE username = ?`)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var u models.User
	err := r.db.GetContext(ctx, &u, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return u, err
}
