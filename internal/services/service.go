package services

import (
	"context"

	"github.com/fidelease/fidelease-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PointsService owns the invariant that user point balances never go
// negative and only change through credit and debit.
type PointsService interface {
	// Credit adds a non-negative amount and returns the new balance
	Credit(ctx context.Context, userID primitive.ObjectID, amount int) (int, error)
	// Debit subtracts a positive amount; ErrInsufficientPoints when the
	// balance is short, with no mutation
	Debit(ctx context.Context, userID primitive.ObjectID, amount int) (int, error)
	// Balance returns the user's current balance
	Balance(ctx context.Context, userID primitive.ObjectID) (int, error)
	// PointsForTotal converts a sale total into earned points
	PointsForTotal(total float64) int
}

// SaleService turns staff-submitted baskets into factures and awards points
type SaleService interface {
	RingUp(ctx context.Context, userID primitive.ObjectID, items []models.SaleItem) (*models.RingUpResult, error)
	GetFacture(ctx context.Context, factureID primitive.ObjectID) (*models.FactureDetail, error)
	GetUserHistory(ctx context.Context, userID primitive.ObjectID) ([]*models.FactureDetail, error)
	ListFactures(ctx context.Context) ([]*models.FactureDetail, error)
}

// RedemptionService mints and resolves gift redemption codes
type RedemptionService interface {
	RedeemGift(ctx context.Context, giftID, userID primitive.ObjectID) (*models.Code, error)
	ScanCode(ctx context.Context, token string) (*models.Gift, error)
}

// CatalogService is the CRUD surface for products, categories and gifts
type CatalogService interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error

	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context) ([]*models.Category, error)
	// DeleteCategory removes the category and every product in it
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error

	CreateGift(ctx context.Context, gift *models.Gift) error
	GetGift(ctx context.Context, id primitive.ObjectID) (*models.Gift, error)
	ListGifts(ctx context.Context) ([]*models.Gift, error)
	ListGiftViews(ctx context.Context) ([]*models.GiftView, error)
	UpdateGift(ctx context.Context, gift *models.Gift) error
	DeleteGift(ctx context.Context, id primitive.ObjectID) error
}

// MessageService is the customer/staff messaging surface
type MessageService interface {
	Send(ctx context.Context, fromID, toID primitive.ObjectID, text string) (*models.Message, error)
	ListBetween(ctx context.Context, a, b primitive.ObjectID) ([]*models.Message, error)
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Message, error)
}

// AuthService handles registration, login and profile lookups
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
}

// UserService is the admin console's customer lookup surface
type UserService interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetUserCount(ctx context.Context) (int64, error)
}
