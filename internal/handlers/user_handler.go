package handlers

import (
	"net/http"

	"github.com/fidelease/fidelease-backend/internal/middleware"
	"github.com/fidelease/fidelease-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler handles the admin console's customer lookups and the client
// app's balance endpoint
type UserHandler struct {
	userService   services.UserService
	pointsService services.PointsService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserService, pointsService services.PointsService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		pointsService: pointsService,
	}
}

// GetUserByID handles GET /users/:id
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, user)
}

// GetUserByUsername handles GET /users/username/:username
func (h *UserHandler) GetUserByUsername(c *gin.Context) {
	user, err := h.userService.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, user)
}

// GetAllUsers handles GET /users
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, users)
}

// GetUserCount handles GET /users/count
func (h *UserHandler) GetUserCount(c *gin.Context) {
	count, err := h.userService.GetUserCount(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"count": count})
}

// GetMyBalance handles GET /me/balance
func (h *UserHandler) GetMyBalance(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	balance, err := h.pointsService.Balance(c.Request.Context(), userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"points": balance})
}
