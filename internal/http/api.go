package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"room-finder/internal/domain"
	"room-finder/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	rooms  service.RoomService
	logger *logrus.Logger
}

func NewHandler(users service.UserService, rooms service.RoomService, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:  users,
		rooms:  rooms,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Room Finder API")
	})

	api := router.Group("/api")
	{
		api.GET("/rooms", h.listRooms)
		api.POST("/rooms", h.createRoom)
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.PUT("/users/:id", h.updateProfile)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Password string `json:"password"`
}

type createRoomRequest struct {
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
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	CreatedAt string `json:"created_at"`
}

type RoomResponse struct {
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

func (h *Handler) listRooms(c *gin.Context) {
	rooms, err := h.rooms.ListRooms(c.Request.Context())
	if err != nil {
		h.serverError(c, "list rooms", err)
		return
	}

	resp := make([]RoomResponse, len(rooms))
	for i := range rooms {
		resp[i] = roomToResponse(rooms[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.serverError(c, "decode create room", err)
		return
	}

	room, err := h.rooms.CreateRoom(c.Request.Context(), service.NewRoom{
		Title:       req.Title,
		Description: req.Description,
		Type:        domain.RoomType(req.Type),
		Address:     req.Address,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Rating:      req.Rating,
		Price:       req.Price,
		UserID:      req.UserID,
		Username:    req.Username,
	})
	if err != nil {
		h.serverError(c, "create room", err)
		return
	}

	c.JSON(http.StatusOK, roomToResponse(*room))
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.serverError(c, "decode register", err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Bio)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or Email already exists"})
			return
		}
		h.serverError(c, "register", err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.serverError(c, "decode login", err)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.serverError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) updateProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.serverError(c, "parse user id", err)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.serverError(c, "decode update profile", err)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), id, service.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Bio:      req.Bio,
		Password: req.Password,
	})
	if err != nil {
		h.serverError(c, "update profile", err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

// serverError logs the underlying cause and returns an opaque message; raw
// error text never reaches the client.
func (h *Handler) serverError(c *gin.Context, op string, err error) {
	h.logger.WithError(err).Error(op)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func roomToResponse(room domain.Room) RoomResponse {
	return RoomResponse{
		ID:          room.ID,
		Title:       room.Title,
		Description: room.Description,
		Type:        string(room.Type),
		Address:     room.Address,
		Lat:         room.Lat,
		Lng:         room.Lng,
		Rating:      room.Rating,
		Price:       room.Price,
		UserID:      room.UserID,
		Username:    room.Username,
		CreatedAt:   room.CreatedAt.Format(time.RFC3339),
	}
}
