package services_test

import (
	"context"
	"testing"

	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/repositories"
	"github.com/fidelease/fidelease-backend/internal/repositories/memory"
	"github.com/fidelease/fidelease-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newSaleService(store *memory.Store, earnRate int) services.SaleService {
	points := services.NewPointsService(store.Users(), earnRate)
	return services.NewSaleService(store.Users(), store.Products(), store.Transactions(), store.Factures(), points)
}

func seedProduct(t *testing.T, store *memory.Store, name string, price float64) *models.Product {
	t.Helper()
	category := &models.Category{Name: "drinks"}
	require.NoError(t, store.Categories().Create(context.Background(), category))
	product := &models.Product{Name: name, Price: price, CategoryID: category.ID}
	require.NoError(t, store.Products().Create(context.Background(), product))
	return product
}

func TestRingUpAwardsPoints(t *testing.T) {
	store := memory.NewStore()
	svc := newSaleService(store, 50)
	user := seedUser(t, store, 0)
	coffee := seedProduct(t, store, "coffee", 20)
	cake := seedProduct(t, store, "cake", 35)

	result, err := svc.RingUp(context.Background(), user.ID, []models.SaleItem{
		{ProductID: coffee.ID, Quantity: 2},
		{ProductID: cake.ID, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 75.0, result.Total)
	assert.Equal(t, 1, result.PointsAwarded)
	assert.Equal(t, 1, result.NewBalance)
	assert.Len(t, result.Lines, 2)
	assert.False(t, result.FactureID.IsZero())
}

func TestRingUpBelowEarnRateAwardsNothing(t *testing.T) {
	store := memory.NewStore()
	svc := newSaleService(store, 50)
	user := seedUser(t, store, 7)
	candy := seedProduct(t, store, "candy", 49)

	result, err := svc.RingUp(context.Background(), user.ID, []models.SaleItem{
		{ProductID: candy.ID, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 49.0, result.Total)
	assert.Equal(t, 0, result.PointsAwarded)
	assert.Equal(t, 7, result.NewBalance)
}

func TestRingUpZeroQuantityMeansOne(t *testing.T) {
	store := memory.NewStore()
	svc := newSaleService(store, 50)
	user := seedUser(t, store, 0)
	coffee := seedProduct(t, store, "coffee", 60)

	result, err := svc.RingUp(context.Background(), user.ID, []models.SaleItem{
		{ProductID: coffee.ID},
	})
	require.NoError(t, err)

	require.Len(t, result.Lines, 1)
	assert.Equal(t, 1, result.Lines[0].Quantity)
	assert.Equal(t, 60.0, result.Total)
}

func TestRingUpNegativeQuantityRejected(t *testing.T) {
	store := memory.NewStore()
	svc := newSaleService(store, 50)
	user := seedUser(t, store, 0)
	coffee := seedProduct(t, store, "coffee", 60)

	_, err := svc.RingUp(context.Background(), user.ID, []models.SaleItem{
		{ProductID: coffee.ID, Quantity: -1},
	})
	assert.True(t, services.IsValidation(err))
}

// countingTransactionRepo records how many transactions were persisted
type countingTransactionRepo struct {
	repositories.TransactionRepository
	creates int
}

func (r *countingTransactionRepo) Create(ctx context.Context, transaction *models.Transaction) error {
	r.creates++
	return r.TransactionRepository.Create(ctx, transaction)
}

// A bad item anywhere in the basket must reject the whole sale with no
// partial writes, even when valid items precede it.
func TestRingUpBadItemPersistsNothing(t *testing.T) {
	store := memory.NewStore()
	points := services.NewPointsService(store.Users(), 50)
	transactions := &countingTransactionRepo{TransactionRepository: store.Transactions()}
	svc := services.NewSaleService(store.Users(), store.Products(), transactions, store.Factures(), points)
	user := seedUser(t, store, 0)
	coffee := seedProduct(t, store, "coffee", 60)

	_, err := svc.RingUp(context.Background(), user.ID, []models.SaleItem{
		{ProductID: coffee.ID, Quantity: 1},
		{ProductID: coffee.ID, Quantity: -1},
	})
	assert.True(t, services.IsValidation(err))
	assert.Equal(t, 0, transactions.creates)

	factures, err := store.Factures().FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, factures)

	balance, err := points.Balance(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestRingUpSkipsUnknownProducts(t *testing.T) {
	store := memory.NewStore()
	svc := newSaleService(store, 50)
	user := seedUser(t, store, 0)
	coffee := seedProduct(t, store, "coffee", 50)

	result, err := svc.RingUp(context.Background(), user.ID, []models.SaleItem{
		{ProductID: primitive.NewObjectID(), Quantity: 3},
		{ProductID: coffee.ID, Quantity: 1},
	})
	require.NoError(t, err)

	require.Len(t, result.Lines, 1)
	assert.Equal(t, "coffee", result.Lines[0].ProductName)
	assert.Equal(t, 50.0, result.Total)
}

func TestRingUpEmptyBasket(t *testing.T) {
	store := memory.NewStore()
	svc := newSaleService(store, 50)
	user := seedUser(t, store, 0)

	result, err := svc.RingUp(context.Background(), user.ID, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Lines)
	assert.Equal(t, 0.0, result.Total)
	assert.Equal(t, 0, result.PointsAwarded)
	assert.False(t, result.FactureID.IsZero())
}

func TestRingUpUnknownUser(t *testing.T) {
	store := memory.NewStore()
	svc := newSaleService(store, 50)

	_, err := svc.RingUp(context.Background(), primitive.NewObjectID(), nil)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestGetFacture(t *testing.T) {
	store := memory.NewStore()
	svc := newSaleService(store, 50)
	user := seedUser(t, store, 0)
	coffee := seedProduct(t, store, "coffee", 20)

	result, err := svc.RingUp(context.Background(), user.ID, []models.SaleItem{
		{ProductID: coffee.ID, Quantity: 2},
	})
	require.NoError(t, err)

	detail, err := svc.GetFacture(context.Background(), result.FactureID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, detail.UserID)
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, 2, detail.Lines[0].Quantity)
	assert.Equal(t, 40.0, detail.Total)
}

func TestGetFactureNotFound(t *testing.T) {
	store := memory.NewStore()
	svc := newSaleService(store, 50)

	_, err := svc.GetFacture(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, services.ErrFactureNotFound)
}

func TestGetFactureSkipsDeletedProducts(t *testing.T) {
	store := memory.NewStore()
	svc := newSaleService(store, 50)
	user := seedUser(t, store, 0)
	coffee := seedProduct(t, store, "coffee", 20)
	cake := seedProduct(t, store, "cake", 30)

	result, err := svc.RingUp(context.Background(), user.ID, []models.SaleItem{
		{ProductID: coffee.ID, Quantity: 1},
		{ProductID: cake.ID, Quantity: 1},
	})
	require.NoError(t, err)

	require.NoError(t, store.Products().Delete(context.Background(), cake.ID))

	detail, err := svc.GetFacture(context.Background(), result.FactureID)
	require.NoError(t, err)
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, "coffee", detail.Lines[0].ProductName)
	assert.Equal(t, 20.0, detail.Total)
}

func TestGetUserHistory(t *testing.T) {
	store := memory.NewStore()
	svc := newSaleService(store, 50)
	user := seedUser(t, store, 0)
	other := seedUser(t, store, 0)
	coffee := seedProduct(t, store, "coffee", 20)

	for i := 0; i < 3; i++ {
		_, err := svc.RingUp(context.Background(), user.ID, []models.SaleItem{{ProductID: coffee.ID, Quantity: 1}})
		require.NoError(t, err)
	}
	_, err := svc.RingUp(context.Background(), other.ID, []models.SaleItem{{ProductID: coffee.ID, Quantity: 1}})
	require.NoError(t, err)

	history, err := svc.GetUserHistory(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, history, 3)
	for _, detail := range history {
		assert.Equal(t, user.ID, detail.UserID)
	}

	all, err := svc.ListFactures(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
