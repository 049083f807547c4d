package mongodb

import (
	"context"
	"time"

	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure CodeRepository implements the interface
var _ repositories.CodeRepository = (*CodeRepository)(nil)

// CodeRepository handles MongoDB operations for redemption codes.
// The token is the document _id, so the primary-key constraint enforces
// global uniqueness; Create surfaces a collision as ErrDuplicateKey.
type CodeRepository struct {
	collection *mongo.Collection
}

// NewCodeRepository creates a new CodeRepository
func NewCodeRepository(db *mongo.Database) *CodeRepository {
	return &CodeRepository{
		collection: db.Collection("codes"),
	}
}

// Create inserts a new code
func (r *CodeRepository) Create(ctx context.Context, code *models.Code) error {
	code.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, code)
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicateKey
	}
	return err
}

// FindByCid finds a code by its token
func (r *CodeRepository) FindByCid(ctx context.Context, cid string) (*models.Code, error) {
	var code models.Code
	err := r.collection.FindOne(ctx, bson.M{"_id": cid}).Decode(&code)
	if err == mongo.ErrNoDocuments {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}

// Delete removes a code by its token
func (r *CodeRepository) Delete(ctx context.Context, cid string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": cid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
