package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/fidelease/fidelease-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure PointsServiceImpl implements PointsService
var _ PointsService = (*PointsServiceImpl)(nil)

// PointsServiceImpl is the points ledger. Every balance mutation in the
// system goes through Credit or Debit; both delegate the check-and-write to
// a single conditional update in the store, so the non-negative invariant
// holds across concurrent requests and across processes.
type PointsServiceImpl struct {
	userRepo repositories.UserRepository
	earnRate int
}

// NewPointsService creates a new PointsServiceImpl. earnRate is how many
// currency units earn one point.
func NewPointsService(userRepo repositories.UserRepository, earnRate int) *PointsServiceImpl {
	return &PointsServiceImpl{
		userRepo: userRepo,
		earnRate: earnRate,
	}
}

// Credit adds amount to the user's balance and returns the balance the
// credit produced
func (s *PointsServiceImpl) Credit(ctx context.Context, userID primitive.ObjectID, amount int) (int, error) {
	if amount < 0 {
		return 0, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	balance, err := s.userRepo.IncrementPoints(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("credit points: %w", err)
	}
	slog.Info("Points credited", "userId", userID.Hex(), "amount", amount, "balance", balance)
	return balance, nil
}

// Debit subtracts amount from the user's balance and returns the balance
// the debit produced. It fails with ErrInsufficientPoints when the balance
// is short, leaving it untouched.
func (s *PointsServiceImpl) Debit(ctx context.Context, userID primitive.ObjectID, amount int) (int, error) {
	if amount <= 0 {
		return 0, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	balance, err := s.userRepo.DecrementPointsIfEnough(ctx, userID, amount)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return 0, ErrUserNotFound
		case errors.Is(err, repositories.ErrInsufficientPoints):
			return 0, ErrInsufficientPoints
		default:
			return 0, fmt.Errorf("debit points: %w", err)
		}
	}
	slog.Info("Points debited", "userId", userID.Hex(), "amount", amount, "balance", balance)
	return balance, nil
}

// Balance returns the user's current point balance
func (s *PointsServiceImpl) Balance(ctx context.Context, userID primitive.ObjectID) (int, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("load balance: %w", err)
	}
	return user.Points, nil
}

// PointsForTotal converts a sale total into earned points: one point per
// earnRate currency units, floored. Totals below the rate earn nothing.
func (s *PointsServiceImpl) PointsForTotal(total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(total / float64(s.earnRate)))
}
