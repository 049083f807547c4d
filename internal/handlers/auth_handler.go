package handlers

import (
	"net/http"

	"github.com/fidelease/fidelease-backend/internal/middleware"
	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and the profile endpoint
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing fields")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "message": "User registered successfully", "data": user})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing fields")
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, resp)
}

// Me handles GET /me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, user)
}
