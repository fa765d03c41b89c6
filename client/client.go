// Package client implements the application state store used by UI
// surfaces: the current user, the last known device location and the room
// list, backed by HTTP calls to the room-finder API. The store is an
// explicitly owned object; construct one and hand it to whatever renders
// from it. Only the current user survives a restart — it is persisted to a
// small JSON file and reloaded on construction.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrNotLoggedIn is returned by operations that require a current user.
var ErrNotLoggedIn = errors.New("not logged in")

// User mirrors the API's user representation. The password never appears
// in responses.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	CreatedAt string `json:"created_at"`
}

// Room mirrors the API's listing representation.
type Room struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Rating      int     `json:"rating"`
	Price       float64 `json:"price"`
	UserID      int64   `json:"user_id"`
	Username    string  `json:"username"`
	CreatedAt   string  `json:"created_at"`
}

// LatLng is a device location used for map centering.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RegisterParams carries signup fields.
type RegisterParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

// ProfileUpdate carries a profile edit. Password is applied only when
// non-empty.
type ProfileUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Password string `json:"password,omitempty"`
}

// NewRoom carries the caller-supplied fields of a listing; the creating
// user's id and username are filled in from the current user.
type NewRoom struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Rating      int     `json:"rating"`
	Price       float64 `json:"price"`
}

// Config configures a Store.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:8080/api".
	BaseURL string
	// HTTPClient is used for all requests; http.DefaultClient when nil.
	// Timeouts and cancellation are the caller's concern, via this client
	// or the ctx passed to each operation.
	HTTPClient *http.Client
	// StatePath is the file the current user is persisted to. Empty
	// disables persistence.
	StatePath string
	Logger    *logrus.Logger
}

// Store is the shared application state. All reads and mutations go
// through its methods; a mutex keeps them safe for concurrent callers.
type Store struct {
	baseURL    string
	httpClient *http.Client
	statePath  string
	logger     *logrus.Logger

	mu          sync.Mutex
	currentUser *User
	location    *LatLng
	rooms       []Room
}

func New(cfg Config) *Store {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	s := &Store{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		statePath:  cfg.StatePath,
		logger:     logger,
	}
	s.loadPersistedUser()
	return s
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *Store) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		return nil
	}
	user := *s.currentUser
	return &user
}

// Rooms returns a copy of the room list, newest first.
func (s *Store) Rooms() []Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	rooms := make([]Room, len(s.rooms))
	copy(rooms, s.rooms)
	return rooms
}

// Location returns a copy of the last known device location, or nil.
func (s *Store) Location() *LatLng {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.location == nil {
		return nil
	}
	loc := *s.location
	return &loc
}

// SetLocation records the device location. Pure local mutation, no network
// call, not persisted.
func (s *Store) SetLocation(loc *LatLng) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if loc == nil {
		s.location = nil
		return
	}
	cp := *loc
	s.location = &cp
}

// FetchRooms replaces the room list with the server's current full list.
// On failure the existing list is left untouched and the error is only
// logged; callers keep rendering stale data.
func (s *Store) FetchRooms(ctx context.Context) {
	var rooms []Room
	if err := s.doJSON(ctx, http.MethodGet, "/rooms", nil, &rooms); err != nil {
		s.logger.WithError(err).Warn("fetch rooms")
		return
	}

	s.mu.Lock()
	s.rooms = rooms
	s.mu.Unlock()
}

// Login authenticates and replaces the current user on success. On any
// failure the current user is unchanged; the caller owns user-facing
// messaging.
func (s *Store) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var user User
	if err := s.doJSON(ctx, http.MethodPost, "/login", body, &user); err != nil {
		return err
	}

	s.setCurrentUser(&user)
	return nil
}

// Logout clears the current user and its persisted copy. Room list and
// location are kept.
func (s *Store) Logout() {
	s.setCurrentUser(nil)
}

// Register creates an account and logs the new user in.
func (s *Store) Register(ctx context.Context, params RegisterParams) error {
	var user User
	if err := s.doJSON(ctx, http.MethodPost, "/register", params, &user); err != nil {
		return err
	}

	s.setCurrentUser(&user)
	return nil
}

// UpdateProfile edits the current user's profile and replaces the current
// user with the server's returned row.
func (s *Store) UpdateProfile(ctx context.Context, upd ProfileUpdate) error {
	current := s.CurrentUser()
	if current == nil {
		return ErrNotLoggedIn
	}

	var user User
	path := fmt.Sprintf("/users/%d", current.ID)
	if err := s.doJSON(ctx, http.MethodPut, path, upd, &user); err != nil {
		return err
	}

	s.setCurrentUser(&user)
	return nil
}

// AddRoom creates a listing owned by the current user and prepends it to
// the local room list, matching the server's newest-first ordering.
func (s *Store) AddRoom(ctx context.Context, in NewRoom) error {
	current := s.CurrentUser()
	if current == nil {
		return ErrNotLoggedIn
	}

	payload := struct {
		NewRoom
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
	}{
		NewRoom:  in,
		UserID:   current.ID,
		Username: current.Username,
	}

	var room Room
	if err := s.doJSON(ctx, http.MethodPost, "/rooms", payload, &room); err != nil {
		return err
	}

	s.mu.Lock()
	s.rooms = append([]Room{room}, s.rooms...)
	s.mu.Unlock()
	return nil
}

func (s *Store) setCurrentUser(user *User) {
	s.mu.Lock()
	s.currentUser = user
	s.mu.Unlock()
	s.persistUser(user)
}

// doJSON performs one request/response round trip. Non-2xx responses are
// surfaced as errors carrying the server's error message when one is
// present.
func (s *Store) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// persistedState is the on-disk shape of the durable client state.
type persistedState struct {
	CurrentUser *User `json:"current_user"`
}

func (s *Store) loadPersistedUser() {
	if s.statePath == "" {
		return
	}

	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).Warn("read client state")
		}
		return
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.WithError(err).Warn("decode client state")
		return
	}

	s.mu.Lock()
	s.currentUser = state.CurrentUser
	s.mu.Unlock()
}

func (s *Store) persistUser(user *User) {
	if s.statePath == "" {
		return
	}

	data, err := json.Marshal(persistedState{CurrentUser: user})
	if err != nil {
		s.logger.WithError(err).Warn("encode client state")
		return
	}

	if dir := filepath.Dir(s.statePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.logger.WithError(err).Warn("create client state dir")
			return
		}
	}
	if err := os.WriteFile(s.statePath, data, 0o600); err != nil {
		s.logger.WithError(err).Warn("write client state")
	}
}
