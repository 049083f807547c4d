package services_test

import (
	"context"
	"testing"

	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/repositories/memory"
	"github.com/fidelease/fidelease-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCatalogService(store *memory.Store) services.CatalogService {
	return services.NewCatalogService(store.Products(), store.Categories(), store.Gifts())
}

func TestCreateProductValidation(t *testing.T) {
	store := memory.NewStore()
	svc := newCatalogService(store)
	category := &models.Category{Name: "drinks"}
	require.NoError(t, store.Categories().Create(context.Background(), category))

	tests := []struct {
		name    string
		product models.Product
	}{
		{"empty name", models.Product{Price: 10, CategoryID: category.ID}},
		{"negative price", models.Product{Name: "tea", Price: -1, CategoryID: category.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := tt.product
			err := svc.CreateProduct(context.Background(), &product)
			assert.True(t, services.IsValidation(err))
		})
	}

	// Unknown category is a referential failure, not a validation one
	err := svc.CreateProduct(context.Background(), &models.Product{Name: "tea", Price: 10, CategoryID: primitive.NewObjectID()})
	assert.ErrorIs(t, err, services.ErrCategoryNotFound)

	err = svc.CreateProduct(context.Background(), &models.Product{Name: "tea", Price: 10, CategoryID: category.ID})
	assert.NoError(t, err)
}

func TestDeleteCategoryCascades(t *testing.T) {
	store := memory.NewStore()
	svc := newCatalogService(store)

	drinks := &models.Category{Name: "drinks"}
	snacks := &models.Category{Name: "snacks"}
	require.NoError(t, store.Categories().Create(context.Background(), drinks))
	require.NoError(t, store.Categories().Create(context.Background(), snacks))

	require.NoError(t, svc.CreateProduct(context.Background(), &models.Product{Name: "tea", Price: 5, CategoryID: drinks.ID}))
	require.NoError(t, svc.CreateProduct(context.Background(), &models.Product{Name: "coffee", Price: 8, CategoryID: drinks.ID}))
	require.NoError(t, svc.CreateProduct(context.Background(), &models.Product{Name: "chips", Price: 3, CategoryID: snacks.ID}))

	require.NoError(t, svc.DeleteCategory(context.Background(), drinks.ID))

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "chips", products[0].Name)

	_, err = store.Categories().FindByID(context.Background(), drinks.ID)
	assert.Error(t, err)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	store := memory.NewStore()
	svc := newCatalogService(store)

	err := svc.DeleteCategory(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, services.ErrCategoryNotFound)
}

func TestCreateGiftValidation(t *testing.T) {
	store := memory.NewStore()
	svc := newCatalogService(store)
	product := seedProduct(t, store, "mug", 15)

	err := svc.CreateGift(context.Background(), &models.Gift{ProductID: product.ID, PointCost: 0})
	assert.True(t, services.IsValidation(err))

	err = svc.CreateGift(context.Background(), &models.Gift{ProductID: primitive.NewObjectID(), PointCost: 10})
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	err = svc.CreateGift(context.Background(), &models.Gift{ProductID: product.ID, PointCost: 10})
	assert.NoError(t, err)
}

func TestListGiftViewsJoinsProducts(t *testing.T) {
	store := memory.NewStore()
	svc := newCatalogService(store)
	mug := seedProduct(t, store, "mug", 15)

	require.NoError(t, svc.CreateGift(context.Background(), &models.Gift{ProductID: mug.ID, PointCost: 100}))

	views, err := svc.ListGiftViews(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 100, views[0].PointCost)
	assert.Equal(t, "mug", views[0].Product.Name)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	store := memory.NewStore()
	svc := newCatalogService(store)
	product := seedProduct(t, store, "mug", 15)

	product.Price = 18
	require.NoError(t, svc.UpdateProduct(context.Background(), product))

	got, err := svc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 18.0, got.Price)

	require.NoError(t, svc.DeleteProduct(context.Background(), product.ID))
	_, err = svc.GetProduct(context.Background(), product.ID)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}
