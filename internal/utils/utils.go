package utils

import (
	"errors"
	"time"

	"github.com/fidelease/fidelease-backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signs a token carrying the user id, username and staff flag
func GenerateJWT(userID, username string, isStaff bool, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"staff":    isStaff,
		"exp":      time.Now().Add(time.Second * time.Duration(cfg.JWT.ExpiresIn)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateJWT parses a token and returns its claims when valid
func ValidateJWT(tokenString string, cfg *config.Config) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
