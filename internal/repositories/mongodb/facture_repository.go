package mongodb

import (
	"context"
	"time"

	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure FactureRepository implements the interface
var _ repositories.FactureRepository = (*FactureRepository)(nil)

// FactureRepository handles MongoDB operations for receipts.
// Factures are immutable once created.
type FactureRepository struct {
	collection *mongo.Collection
}

// NewFactureRepository creates a new FactureRepository
func NewFactureRepository(db *mongo.Database) *FactureRepository {
	return &FactureRepository{
		collection: db.Collection("factures"),
	}
}

// Create inserts a new facture
func (r *FactureRepository) Create(ctx context.Context, facture *models.Facture) error {
	facture.ID = primitive.NewObjectID()
	if facture.Date.IsZero() {
		facture.Date = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, facture)
	return err
}

// FindByID finds a facture by ID
func (r *FactureRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Facture, error) {
	var facture models.Facture
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&facture)
	if err == mongo.ErrNoDocuments {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &facture, nil
}

// FindByUserID returns a user's factures, newest first
func (r *FactureRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Facture, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

// FindAll returns all factures, newest first
func (r *FactureRepository) FindAll(ctx context.Context) ([]*models.Facture, error) {
	return r.find(ctx, bson.M{})
}

func (r *FactureRepository) find(ctx context.Context, filter bson.M) ([]*models.Facture, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var factures []*models.Facture
	if err = cursor.All(ctx, &factures); err != nil {
		return nil, err
	}
	if factures == nil {
		factures = []*models.Facture{}
	}
	return factures, nil
}
