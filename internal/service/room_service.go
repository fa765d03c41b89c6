package service

import (
	"context"

	"room-finder/internal/domain"
	"room-finder/internal/repository"
)

// NewRoom carries the fields of a listing to create; id and created_at are
// storage-assigned. Type, rating and price are deliberately not validated —
// unrecognized types are accepted and rendered with a generic label by
// clients.
type NewRoom struct {
	Title       string
	Description string
	Type        domain.RoomType
	Address     string
	Lat         float64
	Lng         float64
	Rating      int
	Price       float64
	UserID      int64
	Username    string
}

// RoomService coordinates listing operations. Rooms are immutable after
// creation; there is no update or delete.
type RoomService interface {
	CreateRoom(ctx context.Context, in NewRoom) (*domain.Room, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
}

type roomService struct {
	rooms repository.RoomRepository
}

func NewRoomService(rooms repository.RoomRepository) RoomService {
	return &roomService{rooms: rooms}
}

// CreateRoom inserts a listing verbatim. Field validation is intentionally
// absent: missing strings store as empty, out-of-range ratings and negative
// prices store as given.
func (s *roomService) CreateRoom(ctx context.Context, in NewRoom) (*domain.Room, error) {
	room := &domain.Room{
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Address:     in.Address,
		Lat:         in.Lat,
		Lng:         in.Lng,
		Rating:      in.Rating,
		Price:       in.Price,
		UserID:      in.UserID,
		Username:    in.Username,
	}

	id, err := s.rooms.Create(ctx, room)
	if err != nil {
		return nil, err
	}

	// insert then re-read so the caller gets the canonical stored row
	return s.rooms.Get(ctx, id)
}

func (s *roomService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.List(ctx)
}
