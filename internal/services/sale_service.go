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

// Compile-time check to ensure SaleServiceImpl implements SaleService
var _ SaleService = (*SaleServiceImpl)(nil)

// SaleServiceImpl rings up baskets at the register. It is the only path
// that increases a user's points.
type SaleServiceImpl struct {
	userRepo        repositories.UserRepository
	productRepo     repositories.ProductRepository
	transactionRepo repositories.TransactionRepository
	factureRepo     repositories.FactureRepository
	points          PointsService
}

// NewSaleService creates a new SaleServiceImpl
func NewSaleService(
	userRepo repositories.UserRepository,
	productRepo repositories.ProductRepository,
	transactionRepo repositories.TransactionRepository,
	factureRepo repositories.FactureRepository,
	points PointsService,
) *SaleServiceImpl {
	return &SaleServiceImpl{
		userRepo:        userRepo,
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		factureRepo:     factureRepo,
		points:          points,
	}
}

// RingUp turns a basket into a persisted facture and credits earned points.
// Unknown product ids are skipped rather than rejected; a zero quantity
// means 1. The facture is inserted after its transactions so a crash in the
// middle never leaves a visible half-receipt.
func (s *SaleServiceImpl) RingUp(ctx context.Context, userID primitive.ObjectID, items []models.SaleItem) (*models.RingUpResult, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	// Resolve the whole basket before writing anything, so a bad item never
	// leaves behind transactions from the items before it
	type resolvedItem struct {
		product  *models.Product
		quantity int
	}
	var (
		total    float64
		resolved []resolvedItem
	)
	for _, item := range items {
		if item.Quantity < 0 {
			return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
		}
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}

		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				// Permissive input policy: unknown products are dropped
				slog.Warn("Skipping unknown product in sale", "productId", item.ProductID.Hex(), "userId", userID.Hex())
				continue
			}
			return nil, fmt.Errorf("resolve product: %w", err)
		}

		total += product.Price * float64(quantity)
		resolved = append(resolved, resolvedItem{product: product, quantity: quantity})
	}

	var (
		transactionIDs []primitive.ObjectID
		lines          []models.FactureLine
	)
	for _, item := range resolved {
		transaction := &models.Transaction{
			ProductID: item.product.ID,
			Quantity:  item.quantity,
		}
		if err := s.transactionRepo.Create(ctx, transaction); err != nil {
			return nil, fmt.Errorf("persist transaction: %w", err)
		}

		transactionIDs = append(transactionIDs, transaction.ID)
		lines = append(lines, models.FactureLine{
			ProductID:    item.product.ID,
			ProductName:  item.product.Name,
			ProductPrice: item.product.Price,
			Quantity:     item.quantity,
			ProductImage: item.product.Image,
		})
	}

	facture := &models.Facture{
		UserID:         userID,
		TransactionIDs: transactionIDs,
	}
	if err := s.factureRepo.Create(ctx, facture); err != nil {
		return nil, fmt.Errorf("persist facture: %w", err)
	}

	awarded := s.points.PointsForTotal(total)
	balance, err := s.points.Credit(ctx, userID, awarded)
	if err != nil {
		return nil, fmt.Errorf("credit sale points: %w", err)
	}

	slog.Info("Sale rung up",
		"factureId", facture.ID.Hex(),
		"userId", userID.Hex(),
		"items", len(transactionIDs),
		"total", total,
		"pointsAwarded", awarded,
	)

	return &models.RingUpResult{
		FactureID:     facture.ID,
		Date:          facture.Date,
		Lines:         lines,
		Total:         total,
		PointsAwarded: awarded,
		NewBalance:    balance,
	}, nil
}

// GetFacture returns a facture with its line items resolved against the
// catalog. Totals are derived at read time from the current product prices.
func (s *SaleServiceImpl) GetFacture(ctx context.Context, factureID primitive.ObjectID) (*models.FactureDetail, error) {
	facture, err := s.factureRepo.FindByID(ctx, factureID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFactureNotFound
		}
		return nil, fmt.Errorf("resolve facture: %w", err)
	}
	return s.buildDetail(ctx, facture)
}

// GetUserHistory returns the user's factures, newest first, with resolved
// line items
func (s *SaleServiceImpl) GetUserHistory(ctx context.Context, userID primitive.ObjectID) ([]*models.FactureDetail, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	factures, err := s.factureRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return s.buildDetails(ctx, factures)
}

// ListFactures returns every facture, newest first (admin history view)
func (s *SaleServiceImpl) ListFactures(ctx context.Context) ([]*models.FactureDetail, error) {
	factures, err := s.factureRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list factures: %w", err)
	}
	return s.buildDetails(ctx, factures)
}

func (s *SaleServiceImpl) buildDetails(ctx context.Context, factures []*models.Facture) ([]*models.FactureDetail, error) {
	details := make([]*models.FactureDetail, 0, len(factures))
	for _, facture := range factures {
		detail, err := s.buildDetail(ctx, facture)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *SaleServiceImpl) buildDetail(ctx context.Context, facture *models.Facture) (*models.FactureDetail, error) {
	transactions, err := s.transactionRepo.FindByIDs(ctx, facture.TransactionIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve transactions: %w", err)
	}

	detail := &models.FactureDetail{
		FactureID: facture.ID,
		UserID:    facture.UserID,
		Date:      facture.Date,
		Lines:     []models.FactureLine{},
	}
	for _, transaction := range transactions {
		product, err := s.productRepo.FindByID(ctx, transaction.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				// The product was deleted after the sale; the line can no
				// longer be priced
				slog.Warn("Facture references missing product", "factureId", facture.ID.Hex(), "productId", transaction.ProductID.Hex())
				continue
			}
			return nil, fmt.Errorf("resolve product: %w", err)
		}
		detail.Lines = append(detail.Lines, models.FactureLine{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			Quantity:     transaction.Quantity,
			ProductImage: product.Image,
		})
		detail.Total += product.Price * float64(transaction.Quantity)
	}
	return detail, nil
}
