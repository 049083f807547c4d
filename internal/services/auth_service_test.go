package services_test

import (
	"context"
	"testing"

	"github.com/fidelease/fidelease-backend/internal/config"
	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/repositories/memory"
	"github.com/fidelease/fidelease-backend/internal/services"
	"github.com/fidelease/fidelease-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600},
	}
}

func TestRegister(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewAuthService(store.Users(), testConfig())

	user, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	assert.False(t, user.ID.IsZero())
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, 0, user.Points)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.Empty(t, user.Password)

	// The stored credential is a hash, never the plain password
	stored, err := store.Users().FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Password)
	assert.NotEqual(t, "s3cret", stored.Password)
}

func TestRegisterDuplicate(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewAuthService(store.Users(), testConfig())

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &models.RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "s3cret",
	})
	assert.ErrorIs(t, err, services.ErrUsernameTaken)

	_, err = svc.Register(context.Background(), &models.RegisterRequest{
		Username: "bob", Email: "alice@example.com", Password: "s3cret",
	})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc := services.NewAuthService(memory.NewStore().Users(), testConfig())

	for _, req := range []*models.RegisterRequest{
		{Email: "a@example.com", Password: "x"},
		{Username: "a", Password: "x"},
		{Username: "a", Email: "a@example.com"},
	} {
		_, err := svc.Register(context.Background(), req)
		assert.True(t, services.IsValidation(err))
	}
}

func TestLogin(t *testing.T) {
	store := memory.NewStore()
	cfg := testConfig()
	svc := services.NewAuthService(store.Users(), cfg)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Empty(t, resp.User.Password)

	claims, err := utils.ValidateJWT(resp.Token, cfg)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.Hex(), claims["sub"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, false, claims["staff"])
}

func TestLoginWrongPassword(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewAuthService(store.Users(), testConfig())

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Username: "nobody", Password: "s3cret"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewAuthService(store.Users(), testConfig())

	user, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	stored, err := store.Users().FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	stored.IsActive = false
	require.NoError(t, store.Users().Update(context.Background(), stored))

	_, err = svc.Login(context.Background(), &models.LoginRequest{Username: "alice", Password: "s3cret"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestGetUserScrubsPassword(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewAuthService(store.Users(), testConfig())

	user, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	got, err := svc.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Password)

	_, err = svc.GetUser(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
