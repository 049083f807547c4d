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

// Compile-time check to ensure MessageRepository implements the interface
var _ repositories.MessageRepository = (*MessageRepository)(nil)

// MessageRepository handles MongoDB operations for messages
type MessageRepository struct {
	collection *mongo.Collection
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{
		collection: db.Collection("messages"),
	}
}

// Create inserts a new message
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	if message.Date.IsZero() {
		message.Date = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

// FindBetween returns the conversation between two users, oldest first
func (r *MessageRepository) FindBetween(ctx context.Context, a, b primitive.ObjectID) ([]*models.Message, error) {
	filter := bson.M{"$or": []bson.M{
		{"fromUserId": a, "toUserId": b},
		{"fromUserId": b, "toUserId": a},
	}}
	return r.find(ctx, filter, 1)
}

// FindForUser returns every message sent to or by a user, newest first
func (r *MessageRepository) FindForUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Message, error) {
	filter := bson.M{"$or": []bson.M{
		{"fromUserId": userID},
		{"toUserId": userID},
	}}
	return r.find(ctx, filter, -1)
}

func (r *MessageRepository) find(ctx context.Context, filter bson.M, sortDir int) ([]*models.Message, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: sortDir}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*models.Message{}
	}
	return messages, nil
}
