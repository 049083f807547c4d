package mongodb

import (
	"context"

	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure GiftRepository implements the interface
var _ repositories.GiftRepository = (*GiftRepository)(nil)

// GiftRepository handles MongoDB operations for Gift
type GiftRepository struct {
	collection *mongo.Collection
}

// NewGiftRepository creates a new GiftRepository
func NewGiftRepository(db *mongo.Database) *GiftRepository {
	return &GiftRepository{
		collection: db.Collection("gifts"),
	}
}

// Create inserts a new gift
func (r *GiftRepository) Create(ctx context.Context, gift *models.Gift) error {
	gift.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, gift)
	return err
}

// FindByID finds a gift by ID
func (r *GiftRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Gift, error) {
	var gift models.Gift
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&gift)
	if err == mongo.ErrNoDocuments {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &gift, nil
}

// FindAll returns all gifts
func (r *GiftRepository) FindAll(ctx context.Context) ([]*models.Gift, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var gifts []*models.Gift
	if err = cursor.All(ctx, &gifts); err != nil {
		return nil, err
	}
	if gifts == nil {
		gifts = []*models.Gift{}
	}
	return gifts, nil
}

// Update updates an existing gift
func (r *GiftRepository) Update(ctx context.Context, gift *models.Gift) error {
	update := bson.M{"$set": bson.M{
		"productId": gift.ProductID,
		"pointCost": gift.PointCost,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": gift.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a gift by ID
func (r *GiftRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
