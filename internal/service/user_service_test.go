package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"room-finder/internal/repository/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestUserService(t *testing.T) UserService {
	t.Helper()
	repo := sqlite.NewUserRepository(openTestDB(t))
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return NewUserService(repo)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "dara", "dara@x.io", "p1", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("Register returned id 0")
	}
	if user.PasswordHash != "" {
		t.Error("Register leaked the password hash")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Register returned zero CreatedAt")
	}

	authed, err := svc.Authenticate(ctx, "dara@x.io", "p1")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Errorf("Authenticate id = %d, want %d", authed.ID, user.ID)
	}
}

func TestRegisterConflict(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dara", "dara@x.io", "p1", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Register(ctx, "other", "dara@x.io", "p1", ""); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate email: err = %v, want ErrUserExists", err)
	}
	if _, err := svc.Register(ctx, "dara", "other@x.io", "p1", ""); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate username: err = %v, want ErrUserExists", err)
	}
}

func TestAuthenticateIndistinguishableFailures(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dara", "dara@x.io", "p1", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// wrong password and unknown email must produce the same error
	_, wrongPass := svc.Authenticate(ctx, "dara@x.io", "wrong")
	_, unknown := svc.Authenticate(ctx, "nobody@x.io", "p1")
	if !errors.Is(wrongPass, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", wrongPass)
	}
	if !errors.Is(unknown, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", unknown)
	}
}

func TestUpdateProfilePasswordHandling(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "dara", "dara@x.io", "p1", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// no password supplied: old credential stays valid
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Username: "dara", Email: "dara@x.io", Bio: "new bio"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Bio != "new bio" {
		t.Errorf("Bio = %q, want \"new bio\"", updated.Bio)
	}
	if _, err := svc.Authenticate(ctx, "dara@x.io", "p1"); err != nil {
		t.Errorf("old password rejected after profile edit: %v", err)
	}

	// new password supplied: new one works, old one fails
	if _, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Username: "dara", Email: "dara@x.io", Password: "p2"}); err != nil {
		t.Fatalf("UpdateProfile with password: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "dara@x.io", "p2"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "dara@x.io", "p1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password still accepted: err = %v", err)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := newTestUserService(t)

	_, err := svc.UpdateProfile(context.Background(), 99, ProfileUpdate{Username: "x", Email: "x@x.io"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UpdateProfile missing user: err = %v, want ErrUserNotFound", err)
	}
}
