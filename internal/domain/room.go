package domain

import "time"

type RoomType string

// Known room types. Storage accepts any string; listings with an
// unrecognized type render with a generic label on the client side.
const (
	RoomTypeApartment RoomType = "apartment"
	RoomTypeCondo     RoomType = "condo"
	RoomTypeHouse     RoomType = "house"
	RoomTypeDormitory RoomType = "dormitory"
	RoomTypeOther     RoomType = "other"
)

// Room is a rentable-space listing pinned to a map coordinate. Rooms are
// immutable once created. Username is denormalized from the creating user
// at write time and is not kept in sync with later profile edits.
type Room struct {
	ID          int64
	Title       string
	Description string
	Type        RoomType
	Address     string
	Lat         float64
	Lng         float64
	Rating      int
	Price       float64
	UserID      int64
	Username    string
	CreatedAt   time.Time
}
