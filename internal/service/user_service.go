package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"room-finder/internal/domain"
	"room-finder/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are
	// incorrect. A mismatched password and an unknown email produce the
	// same error so callers cannot probe for registered addresses.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when registering with a username or email
	// that is already taken. The two collisions are not distinguished.
	ErrUserExists = errors.New("username or email already exists")
	// ErrUserNotFound is returned when a profile update targets an
	// unknown user id.
	ErrUserNotFound = errors.New("user not found")
)

// ProfileUpdate carries a profile edit. Username, Email and Bio always
// overwrite the stored values; Password replaces the stored credential only
// when non-empty.
type ProfileUpdate struct {
	Username string
	Email    string
	Bio      string
	Password string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, username, email, password, bio string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// Register creates an account. Uniqueness of username and email is enforced
// by the storage constraints, not by a pre-check, so concurrent
// registrations with identical credentials cannot both succeed.
func (s *userService) Register(ctx context.Context, username, email, password, bio string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, errors.New("username is required")
	}
	if email == "" {
		return nil, errors.New("email is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Bio:          bio,
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	// read back the canonical row so the caller sees storage-assigned fields
	created, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(created), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

// UpdateProfile overwrites username, email and bio, and replaces the
// password only when a new one is supplied. The updated row is read back by
// id. No uniqueness pre-check runs here; a collision surfaces as the
// storage constraint error.
func (s *userService) UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*domain.User, error) {
	update := repository.UserUpdate{
		ID:       id,
		Username: strings.TrimSpace(upd.Username),
		Email:    strings.TrimSpace(upd.Email),
		Bio:      upd.Bio,
	}
	if update.Username == "" {
		return nil, errors.New("username is required")
	}
	if update.Email == "" {
		return nil, errors.New("email is required")
	}

	if upd.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		update.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
	}
}
