package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fidelease/fidelease-backend/internal/config"
	"github.com/fidelease/fidelease-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context keys set by JWTAuthMiddleware
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextIsStaff  = "isStaff"
)

// JWTAuthMiddleware authenticates requests with a Bearer token. The caller
// identity becomes explicit request state; no ambient session exists.
func JWTAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ValidateJWT(parts[1], cfg)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Token has expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid token"})
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := primitive.ObjectIDFromHex(sub)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid token subject"})
			return
		}

		c.Set(ContextUserID, userID)
		if username, ok := claims["username"].(string); ok {
			c.Set(ContextUsername, username)
		}
		if staff, ok := claims["staff"].(bool); ok {
			c.Set(ContextIsStaff, staff)
		}
		c.Next()
	}
}

// StaffOnlyMiddleware rejects requests whose token lacks the staff flag.
// Admin console routes sit behind it.
func StaffOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if staff, ok := c.Get(ContextIsStaff); !ok || staff != true {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "error", "message": "Staff access required"})
			return
		}
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user id set by the middleware
func UserIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	value, ok := c.Get(ContextUserID)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok
}
