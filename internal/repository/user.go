package repository

import (
	"context"

	"room-finder/internal/domain"
)

// UserUpdate carries a partial profile update. Username, Email and Bio are
// always written; PasswordHash is written only when non-empty.
type UserUpdate struct {
	ID           int64
	Username     string
	Email        string
	Bio          string
	PasswordHash string
}

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	Update(ctx context.Context, upd UserUpdate) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
