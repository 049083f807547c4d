package repositories

import (
	"context"

	"github.com/fidelease/fidelease-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the interface for user data operations.
// Point balances are mutated exclusively through IncrementPoints and
// DecrementPointsIfEnough; Update never touches the points field.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	FindAll(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	// IncrementPoints atomically adds points (non-negative) to a user and
	// returns the balance the update produced
	IncrementPoints(ctx context.Context, id primitive.ObjectID, points int) (int, error)
	// DecrementPointsIfEnough atomically subtracts points only when the
	// current balance covers them, returning the balance the update
	// produced. Returns ErrNotFound when the user does not exist and
	// ErrInsufficientPoints when the balance is short.
	DecrementPointsIfEnough(ctx context.Context, id primitive.ObjectID, points int) (int, error)
}

// ProductRepository defines the interface for product catalog operations
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindAll(ctx context.Context) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DeleteByCategory removes every product of a category and reports how
	// many were removed. Used by the explicit category-delete cascade.
	DeleteByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
}

// CategoryRepository defines the interface for category operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindAll(ctx context.Context) ([]*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// GiftRepository defines the interface for gift operations
type GiftRepository interface {
	Create(ctx context.Context, gift *models.Gift) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Gift, error)
	FindAll(ctx context.Context) ([]*models.Gift, error)
	Update(ctx context.Context, gift *models.Gift) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CodeRepository defines the interface for redemption code operations.
// The code id is the token itself; Create returns ErrDuplicateKey on a
// token collision so callers can retry with a fresh token.
type CodeRepository interface {
	Create(ctx context.Context, code *models.Code) error
	FindByCid(ctx context.Context, cid string) (*models.Code, error)
	Delete(ctx context.Context, cid string) error
}

// TransactionRepository defines the interface for sale line items
type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Transaction, error)
}

// FactureRepository defines the interface for receipts
type FactureRepository interface {
	Create(ctx context.Context, facture *models.Facture) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Facture, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Facture, error)
	FindAll(ctx context.Context) ([]*models.Facture, error)
}

// MessageRepository defines the interface for customer/staff messages
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	// FindBetween returns the conversation between two users, oldest first
	FindBetween(ctx context.Context, a, b primitive.ObjectID) ([]*models.Message, error)
	// FindForUser returns every message sent to or by a user, newest first
	FindForUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Message, error)
}
