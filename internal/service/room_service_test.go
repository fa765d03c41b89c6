package service

import (
	"context"
	"testing"

	"room-finder/internal/domain"
	"room-finder/internal/repository/sqlite"
)

func newTestRoomService(t *testing.T) RoomService {
	t.Helper()
	repo := sqlite.NewRoomRepository(openTestDB(t))
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return NewRoomService(repo)
}

func TestCreateRoomReturnsStoredRow(t *testing.T) {
	svc := newTestRoomService(t)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, NewRoom{
		Title:       "Room A",
		Description: "d",
		Type:        domain.RoomTypeApartment,
		Address:     "A",
		Lat:         17.97,
		Lng:         102.63,
		Rating:      5,
		Price:       500000,
		UserID:      1,
		Username:    "dara",
	})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if room.ID == 0 {
		t.Error("CreateRoom returned id 0")
	}
	if room.CreatedAt.IsZero() {
		t.Error("CreateRoom returned zero CreatedAt")
	}
	if room.Title != "Room A" || room.Username != "dara" {
		t.Errorf("CreateRoom returned %+v", room)
	}
}

func TestCreateRoomNoValidation(t *testing.T) {
	svc := newTestRoomService(t)
	ctx := context.Background()

	// empty fields, out-of-range rating and a negative price all store as given
	room, err := svc.CreateRoom(ctx, NewRoom{Type: "castle", Rating: 11, Price: -5})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if room.Type != "castle" || room.Rating != 11 || room.Price != -5 {
		t.Errorf("CreateRoom altered fields: %+v", room)
	}
}

func TestListRoomsOrdering(t *testing.T) {
	svc := newTestRoomService(t)
	ctx := context.Background()

	for _, title := range []string{"old", "new"} {
		if _, err := svc.CreateRoom(ctx, NewRoom{Title: title}); err != nil {
			t.Fatalf("CreateRoom %s: %v", title, err)
		}
	}

	rooms, err := svc.ListRooms(ctx)
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("len(rooms) = %d, want 2", len(rooms))
	}
	if rooms[0].Title != "new" || rooms[1].Title != "old" {
		t.Errorf("order = [%q, %q], want newest first", rooms[0].Title, rooms[1].Title)
	}
}
