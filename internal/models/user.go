package models

type User struct {
	ID           int    `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         string `db:"role" json:"role"`
	CreatedAt    string `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt    string `db:"updated_at" json:"updated_at,omitempty"`
}
