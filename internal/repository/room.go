package repository

import (
	"context"

	"room-finder/internal/domain"
)

// RoomRepository exposes persistence operations for Room listings. Rooms
// have no update or delete path.
type RoomRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, room *domain.Room) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
}
