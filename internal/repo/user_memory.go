package repo

import "stocktrack/internal/models"

type InMemoryUserRepository struct {
	users  []models.User
	nextID int
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{nextID: 1}
}

func (r *InMemoryUserRepository) CreateUser(u models.User) (models.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return models.User{}, ErrDuplicateUsername
		}
	}
	u.ID = r.nextID
	r.nextID++
	now := nowUTC()
	u.CreatedAt, u.UpdatedAt = now, now
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryUserRepository) GetByUsername(username string) (models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}
