package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fidelease/fidelease-backend/internal/config"
	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/repositories"
	"github.com/fidelease/fidelease-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl handles registration and login. Identity is carried by a
// signed JWT; there is no server-side session state.
type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Register creates a new member account with a zero point balance
func (s *AuthServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if req.Username == "" {
		return nil, &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if req.Email == "" {
		return nil, &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if req.Password == "" {
		return nil, &ValidationError{Field: "password", Reason: "must not be empty"}
	}

	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Points:   0,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique indexes close the gap between check and insert
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	slog.Info("User registered", "userId", user.ID.Hex(), "username", user.Username)
	user.Password = ""
	return user, nil
}

// Login verifies credentials and returns a signed token with the user
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Username, user.IsStaff, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	user.Password = ""
	return &models.LoginResponse{Token: token, User: user}, nil
}

// GetUser returns a user's profile without the credential hash
func (s *AuthServiceImpl) GetUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	user.Password = ""
	return user, nil
}
