package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure MessageServiceImpl implements MessageService
var _ MessageService = (*MessageServiceImpl)(nil)

// MessageServiceImpl is the thin messaging pass-through between customers
// and staff. Messages are append-only.
type MessageServiceImpl struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
}

// NewMessageService creates a new MessageServiceImpl
func NewMessageService(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) *MessageServiceImpl {
	return &MessageServiceImpl{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// Send appends a message from one user to another
func (s *MessageServiceImpl) Send(ctx context.Context, fromID, toID primitive.ObjectID, text string) (*models.Message, error) {
	if text == "" {
		return nil, &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	for _, id := range []primitive.ObjectID{fromID, toID} {
		if _, err := s.userRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("resolve user: %w", err)
		}
	}

	message := &models.Message{
		FromUserID: fromID,
		ToUserID:   toID,
		Text:       text,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("persist message: %w", err)
	}
	return message, nil
}

// ListBetween returns the conversation between two users, oldest first
func (s *MessageServiceImpl) ListBetween(ctx context.Context, a, b primitive.ObjectID) ([]*models.Message, error) {
	return s.messageRepo.FindBetween(ctx, a, b)
}

// ListForUser returns a user's inbox, newest first
func (s *MessageServiceImpl) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Message, error) {
	return s.messageRepo.FindForUser(ctx, userID)
}
