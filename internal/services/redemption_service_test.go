package services_test

import (
	"context"
	"testing"

	"github.com/fidelease/fidelease-backend/internal/config"
	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/repositories"
	"github.com/fidelease/fidelease-backend/internal/repositories/memory"
	"github.com/fidelease/fidelease-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLoyalty(policy string) config.LoyaltyConfig {
	return config.LoyaltyConfig{
		EarnRate:        50,
		CodeLength:      12,
		CodeMaxAttempts: 10,
		ScanPolicy:      policy,
	}
}

func newRedemptionService(store *memory.Store, policy string) services.RedemptionService {
	points := services.NewPointsService(store.Users(), 50)
	return services.NewRedemptionService(store.Gifts(), store.Codes(), points, testLoyalty(policy))
}

func seedGift(t *testing.T, store *memory.Store, pointCost int) *models.Gift {
	t.Helper()
	product := seedProduct(t, store, "mug", 15)
	gift := &models.Gift{ProductID: product.ID, PointCost: pointCost}
	require.NoError(t, store.Gifts().Create(context.Background(), gift))
	return gift
}

func TestRedeemGift(t *testing.T) {
	store := memory.NewStore()
	svc := newRedemptionService(store, config.ScanPolicyReusable)
	user := seedUser(t, store, 100)
	gift := seedGift(t, store, 100)

	code, err := svc.RedeemGift(context.Background(), gift.ID, user.ID)
	require.NoError(t, err)

	assert.Len(t, code.Cid, 12)
	for _, c := range code.Cid {
		assert.True(t, (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'), "token %q contains %q", code.Cid, c)
	}
	assert.Equal(t, gift.ID, code.GiftID)
	assert.Equal(t, user.ID, code.UserID)

	// The redemption spends the exact point cost
	balance, err := services.NewPointsService(store.Users(), 50).Balance(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestRedeemGiftInsufficientPoints(t *testing.T) {
	store := memory.NewStore()
	svc := newRedemptionService(store, config.ScanPolicyReusable)
	user := seedUser(t, store, 99)
	gift := seedGift(t, store, 100)

	_, err := svc.RedeemGift(context.Background(), gift.ID, user.ID)
	assert.ErrorIs(t, err, services.ErrInsufficientPoints)

	// Nothing was spent and no code was minted
	balance, err := services.NewPointsService(store.Users(), 50).Balance(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 99, balance)
}

func TestRedeemGiftUnknownGift(t *testing.T) {
	store := memory.NewStore()
	svc := newRedemptionService(store, config.ScanPolicyReusable)
	user := seedUser(t, store, 100)

	_, err := svc.RedeemGift(context.Background(), primitive.NewObjectID(), user.ID)
	assert.ErrorIs(t, err, services.ErrGiftNotFound)
}

func TestRedeemGiftUnknownUser(t *testing.T) {
	store := memory.NewStore()
	svc := newRedemptionService(store, config.ScanPolicyReusable)
	gift := seedGift(t, store, 100)

	_, err := svc.RedeemGift(context.Background(), gift.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestRedeemGiftTokensAreUnique(t *testing.T) {
	store := memory.NewStore()
	svc := newRedemptionService(store, config.ScanPolicyReusable)
	user := seedUser(t, store, 1000)
	gift := seedGift(t, store, 10)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := svc.RedeemGift(context.Background(), gift.ID, user.ID)
		require.NoError(t, err)
		assert.False(t, seen[code.Cid], "duplicate token %q", code.Cid)
		seen[code.Cid] = true
	}
}

// collidingCodeRepo rejects every insert as a duplicate key, as if each
// generated token were already taken
type collidingCodeRepo struct {
	repositories.CodeRepository
	attempts int
}

func (r *collidingCodeRepo) Create(ctx context.Context, code *models.Code) error {
	r.attempts++
	return repositories.ErrDuplicateKey
}

// When token generation never finds a free slot, the retry loop must stop
// at its bound, surface a typed conflict and give the debited points back.
func TestRedeemGiftCollisionExhaustionRefunds(t *testing.T) {
	store := memory.NewStore()
	points := services.NewPointsService(store.Users(), 50)
	codes := &collidingCodeRepo{CodeRepository: store.Codes()}
	svc := services.NewRedemptionService(store.Gifts(), codes, points, testLoyalty(config.ScanPolicyReusable))
	user := seedUser(t, store, 100)
	gift := seedGift(t, store, 100)

	_, err := svc.RedeemGift(context.Background(), gift.ID, user.ID)
	assert.ErrorIs(t, err, services.ErrCodeConflict)
	assert.Equal(t, 10, codes.attempts)

	// The debit was compensated
	balance, err := points.Balance(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)
}

func TestScanCodeReusable(t *testing.T) {
	store := memory.NewStore()
	svc := newRedemptionService(store, config.ScanPolicyReusable)
	user := seedUser(t, store, 100)
	gift := seedGift(t, store, 100)

	code, err := svc.RedeemGift(context.Background(), gift.ID, user.ID)
	require.NoError(t, err)

	// Under the reusable policy a scan is a pure read and can repeat
	for i := 0; i < 3; i++ {
		scanned, err := svc.ScanCode(context.Background(), code.Cid)
		require.NoError(t, err)
		assert.Equal(t, gift.ID, scanned.ID)
	}
}

func TestScanCodeSingleUse(t *testing.T) {
	store := memory.NewStore()
	svc := newRedemptionService(store, config.ScanPolicySingleUse)
	user := seedUser(t, store, 100)
	gift := seedGift(t, store, 100)

	code, err := svc.RedeemGift(context.Background(), gift.ID, user.ID)
	require.NoError(t, err)

	scanned, err := svc.ScanCode(context.Background(), code.Cid)
	require.NoError(t, err)
	assert.Equal(t, gift.ID, scanned.ID)

	// The first scan burned the code
	_, err = svc.ScanCode(context.Background(), code.Cid)
	assert.ErrorIs(t, err, services.ErrCodeNotFound)
}

func TestScanCodeUnknownToken(t *testing.T) {
	store := memory.NewStore()
	svc := newRedemptionService(store, config.ScanPolicyReusable)

	_, err := svc.ScanCode(context.Background(), "AAAAAAAAAAAA")
	assert.ErrorIs(t, err, services.ErrCodeNotFound)
}

func TestScanCodeDeletedGift(t *testing.T) {
	store := memory.NewStore()
	svc := newRedemptionService(store, config.ScanPolicyReusable)
	user := seedUser(t, store, 100)
	gift := seedGift(t, store, 100)

	code, err := svc.RedeemGift(context.Background(), gift.ID, user.ID)
	require.NoError(t, err)

	require.NoError(t, store.Gifts().Delete(context.Background(), gift.ID))

	_, err = svc.ScanCode(context.Background(), code.Cid)
	assert.ErrorIs(t, err, services.ErrGiftNotFound)
}
