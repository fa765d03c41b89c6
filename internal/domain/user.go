package domain

import "time"

// User represents a registered account. PasswordHash stays inside the
// service and repository layers; API responses carry a sanitized copy.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Bio          string
	CreatedAt    time.Time
}
