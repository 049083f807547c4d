package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/fidelease/fidelease-backend/internal/config"
	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// codeAlphabet matches the historical token format: ASCII letters only
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Compile-time check to ensure RedemptionServiceImpl implements RedemptionService
var _ RedemptionService = (*RedemptionServiceImpl)(nil)

// RedemptionServiceImpl mints single-purpose redemption codes. A redemption
// is a points debit plus a code insert; the debit is atomic in the store and
// the insert rides on the token being the primary key, retried on collision.
type RedemptionServiceImpl struct {
	giftRepo    repositories.GiftRepository
	codeRepo    repositories.CodeRepository
	points      PointsService
	codeLength  int
	maxAttempts int
	scanPolicy  string
}

// NewRedemptionService creates a new RedemptionServiceImpl
func NewRedemptionService(
	giftRepo repositories.GiftRepository,
	codeRepo repositories.CodeRepository,
	points PointsService,
	loyalty config.LoyaltyConfig,
) *RedemptionServiceImpl {
	return &RedemptionServiceImpl{
		giftRepo:    giftRepo,
		codeRepo:    codeRepo,
		points:      points,
		codeLength:  loyalty.CodeLength,
		maxAttempts: loyalty.CodeMaxAttempts,
		scanPolicy:  loyalty.ScanPolicy,
	}
}

// RedeemGift spends the gift's point cost from the user's balance and mints
// a unique code bound to (gift, user). On insufficient points nothing is
// mutated; if the code insert ultimately fails the debit is compensated.
func (s *RedemptionServiceImpl) RedeemGift(ctx context.Context, giftID, userID primitive.ObjectID) (*models.Code, error) {
	gift, err := s.giftRepo.FindByID(ctx, giftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGiftNotFound
		}
		return nil, fmt.Errorf("resolve gift: %w", err)
	}

	if _, err := s.points.Debit(ctx, userID, gift.PointCost); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		token, err := s.generateToken()
		if err != nil {
			s.refund(ctx, userID, gift.PointCost)
			return nil, fmt.Errorf("generate token: %w", err)
		}

		code := &models.Code{
			Cid:    token,
			GiftID: gift.ID,
			UserID: userID,
		}
		err = s.codeRepo.Create(ctx, code)
		if errors.Is(err, repositories.ErrDuplicateKey) {
			slog.Warn("Redemption token collision, retrying", "attempt", attempt+1)
			continue
		}
		if err != nil {
			s.refund(ctx, userID, gift.PointCost)
			return nil, fmt.Errorf("persist code: %w", err)
		}

		slog.Info("Gift redeemed", "giftId", gift.ID.Hex(), "userId", userID.Hex(), "pointCost", gift.PointCost)
		return code, nil
	}

	s.refund(ctx, userID, gift.PointCost)
	return nil, ErrCodeConflict
}

// ScanCode resolves a token to its gift. Under the singleUse policy the
// first successful scan burns the code; under reusable (the default) a scan
// is a pure read and can be repeated indefinitely.
func (s *RedemptionServiceImpl) ScanCode(ctx context.Context, token string) (*models.Gift, error) {
	code, err := s.codeRepo.FindByCid(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, fmt.Errorf("resolve code: %w", err)
	}

	gift, err := s.giftRepo.FindByID(ctx, code.GiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGiftNotFound
		}
		return nil, fmt.Errorf("resolve gift: %w", err)
	}

	if s.scanPolicy == config.ScanPolicySingleUse {
		// The delete decides the race: whoever removes the code owns the scan
		if err := s.codeRepo.Delete(ctx, token); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrCodeNotFound
			}
			return nil, fmt.Errorf("burn code: %w", err)
		}
		slog.Info("Code burned on scan", "giftId", gift.ID.Hex())
	}

	return gift, nil
}

// generateToken draws codeLength characters uniformly from codeAlphabet
// using a cryptographically secure source
func (s *RedemptionServiceImpl) generateToken() (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	token := make([]byte, s.codeLength)
	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		token[i] = codeAlphabet[n.Int64()]
	}
	return string(token), nil
}

// refund compensates a debit after a failed code insert
func (s *RedemptionServiceImpl) refund(ctx context.Context, userID primitive.ObjectID, amount int) {
	if _, err := s.points.Credit(ctx, userID, amount); err != nil {
		slog.Error("Failed to refund points after code insert failure", "userId", userID.Hex(), "amount", amount, "error", err)
	}
}
