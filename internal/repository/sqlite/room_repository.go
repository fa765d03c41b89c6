package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"room-finder/internal/domain"
	"room-finder/internal/repository"
)

// No foreign key on user_id: listings survive independently of the users
// table, and username is denormalized at write time.
const createRoomsTable = `
CREATE TABLE IF NOT EXISTS rooms (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	type TEXT NOT NULL,
	address TEXT NOT NULL,
	lat REAL NOT NULL,
	lng REAL NOT NULL,
	rating INTEGER NOT NULL,
	price REAL NOT NULL,
	user_id INTEGER NOT NULL,
	username TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

type RoomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) repository.RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRoomsTable); err != nil {
		return fmt.Errorf("create rooms table: %w", err)
	}
	return nil
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) (int64, error) {
	room.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO rooms (title, description, type, address, lat, lng, rating, price, user_id, username, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		room.Title,
		room.Description,
		string(room.Type),
		room.Address,
		room.Lat,
		room.Lng,
		room.Rating,
		room.Price,
		room.UserID,
		room.Username,
		room.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert room: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("room last insert id: %w", err)
	}
	room.ID = id
	return id, nil
}

func (r *RoomRepository) Get(ctx context.Context, id int64) (*domain.Room, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, description, type, address, lat, lng, rating, price, user_id, username, created_at
FROM rooms
WHERE id = ?`,
		id,
	)

	var room domain.Room
	if err := scanRoom(row.Scan, &room); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan room: %w", err)
	}
	return &room, nil
}

// List returns all rooms newest first. The id tiebreak keeps the order
// stable for rows inserted within the same timestamp granularity.
func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, description, type, address, lat, lng, rating, price, user_id, username, created_at
FROM rooms
ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var result []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := scanRoom(rows.Scan, &room); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		result = append(result, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}
	return result, nil
}

func scanRoom(scan func(dest ...any) error, room *domain.Room) error {
	return scan(
		&room.ID,
		&room.Title,
		&room.Description,
		&room.Type,
		&room.Address,
		&room.Lat,
		&room.Lng,
		&room.Rating,
		&room.Price,
		&room.UserID,
		&room.Username,
		&room.CreatedAt,
	)
}
