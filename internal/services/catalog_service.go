package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure CatalogServiceImpl implements CatalogService
var _ CatalogService = (*CatalogServiceImpl)(nil)

// CatalogServiceImpl is straight CRUD over products, categories and gifts.
// The only invariants are foreign-key existence and the category-delete
// cascade.
type CatalogServiceImpl struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	giftRepo     repositories.GiftRepository
}

// NewCatalogService creates a new CatalogServiceImpl
func NewCatalogService(
	productRepo repositories.ProductRepository,
	categoryRepo repositories.CategoryRepository,
	giftRepo repositories.GiftRepository,
) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		giftRepo:     giftRepo,
	}
}

// CreateProduct validates and persists a new product
func (s *CatalogServiceImpl) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.validateProduct(ctx, product); err != nil {
		return err
	}
	return s.productRepo.Create(ctx, product)
}

// GetProduct retrieves a product by ID
func (s *CatalogServiceImpl) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// ListProducts returns the whole catalog
func (s *CatalogServiceImpl) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.FindAll(ctx)
}

// UpdateProduct validates and updates an existing product
func (s *CatalogServiceImpl) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := s.validateProduct(ctx, product); err != nil {
		return err
	}
	err := s.productRepo.Update(ctx, product)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

// DeleteProduct removes a product from the catalog
func (s *CatalogServiceImpl) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	err := s.productRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

func (s *CatalogServiceImpl) validateProduct(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if product.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if _, err := s.categoryRepo.FindByID(ctx, product.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("resolve category: %w", err)
	}
	return nil
}

// CreateCategory persists a new category
func (s *CatalogServiceImpl) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return s.categoryRepo.Create(ctx, category)
}

// ListCategories returns all categories
func (s *CatalogServiceImpl) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

// DeleteCategory removes a category and cascades to its products. The
// cascade is deliberate: products of a removed category disappear from the
// catalog, and factures referencing them lose those lines.
func (s *CatalogServiceImpl) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	err := s.categoryRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrCategoryNotFound
	}
	if err != nil {
		return err
	}
	removed, err := s.productRepo.DeleteByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("cascade category delete: %w", err)
	}
	if removed > 0 {
		slog.Warn("Category delete cascaded to products", "categoryId", id.Hex(), "productsRemoved", removed)
	}
	return nil
}

// CreateGift validates and persists a new gift
func (s *CatalogServiceImpl) CreateGift(ctx context.Context, gift *models.Gift) error {
	if err := s.validateGift(ctx, gift); err != nil {
		return err
	}
	return s.giftRepo.Create(ctx, gift)
}

// GetGift retrieves a gift by ID
func (s *CatalogServiceImpl) GetGift(ctx context.Context, id primitive.ObjectID) (*models.Gift, error) {
	gift, err := s.giftRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGiftNotFound
		}
		return nil, err
	}
	return gift, nil
}

// ListGifts returns all gifts
func (s *CatalogServiceImpl) ListGifts(ctx context.Context) ([]*models.Gift, error) {
	return s.giftRepo.FindAll(ctx)
}

// ListGiftViews returns all gifts joined with their products, as the client
// app displays them. Gifts whose product has been deleted are dropped.
func (s *CatalogServiceImpl) ListGiftViews(ctx context.Context) ([]*models.GiftView, error) {
	gifts, err := s.giftRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*models.GiftView, 0, len(gifts))
	for _, gift := range gifts {
		product, err := s.productRepo.FindByID(ctx, gift.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				slog.Warn("Gift references missing product", "giftId", gift.ID.Hex(), "productId", gift.ProductID.Hex())
				continue
			}
			return nil, err
		}
		views = append(views, &models.GiftView{
			ID:        gift.ID,
			PointCost: gift.PointCost,
			Product:   product,
		})
	}
	return views, nil
}

// UpdateGift validates and updates an existing gift
func (s *CatalogServiceImpl) UpdateGift(ctx context.Context, gift *models.Gift) error {
	if err := s.validateGift(ctx, gift); err != nil {
		return err
	}
	err := s.giftRepo.Update(ctx, gift)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrGiftNotFound
	}
	return err
}

// DeleteGift removes a gift
func (s *CatalogServiceImpl) DeleteGift(ctx context.Context, id primitive.ObjectID) error {
	err := s.giftRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrGiftNotFound
	}
	return err
}

func (s *CatalogServiceImpl) validateGift(ctx context.Context, gift *models.Gift) error {
	if gift.PointCost <= 0 {
		return &ValidationError{Field: "pointCost", Reason: "must be positive"}
	}
	if _, err := s.productRepo.FindByID(ctx, gift.ProductID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("resolve product: %w", err)
	}
	return nil
}
