package mongodb

import (
	"context"

	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure TransactionRepository implements the interface
var _ repositories.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository handles MongoDB operations for sale line items.
// Transactions are append-only; there is no update or delete.
type TransactionRepository struct {
	collection *mongo.Collection
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{
		collection: db.Collection("transactions"),
	}
}

// Create inserts a new transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	transaction.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, transaction)
	return err
}

// FindByIDs returns the transactions matching the given ids
func (r *TransactionRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Transaction, error) {
	if len(ids) == 0 {
		return []*models.Transaction{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var transactions []*models.Transaction
	if err = cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []*models.Transaction{}
	}
	return transactions, nil
}
