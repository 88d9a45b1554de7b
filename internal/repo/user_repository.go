package repo

import "stocktrack/internal/models"

type UserRepository interface {
	CreateUser(user models.User) (models.User, error)
	GetByUsername(username string) (models.User, error)
}
