package handlers

import (
	"net/http"

	"github.com/fidelease/fidelease-backend/internal/middleware"
	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SaleHandler handles the cash-register and receipt-history endpoints
type SaleHandler struct {
	saleService services.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService services.SaleService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

type ringUpRequest struct {
	UserID string `json:"userId" binding:"required"`
	Items  []struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
}

// RingUp handles POST /caisse
func (h *SaleHandler) RingUp(c *gin.Context) {
	var req ringUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing fields")
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	items := make([]models.SaleItem, 0, len(req.Items))
	for _, item := range req.Items {
		// A malformed product id is treated like an unknown product: the
		// sale stays permissive and the item is dropped downstream
		productID, _ := primitive.ObjectIDFromHex(item.ProductID)
		items = append(items, models.SaleItem{ProductID: productID, Quantity: item.Quantity})
	}

	result, err := h.saleService.RingUp(c.Request.Context(), userID, items)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusCreated, result)
}

// GetFacture handles GET /factures/:id
func (h *SaleHandler) GetFacture(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	detail, err := h.saleService.GetFacture(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, detail)
}

// ListFactures handles GET /factures for the admin history view
func (h *SaleHandler) ListFactures(c *gin.Context) {
	details, err := h.saleService.ListFactures(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, details)
}

// GetMyHistory handles GET /me/history, the client purchase history
func (h *SaleHandler) GetMyHistory(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	details, err := h.saleService.GetUserHistory(c.Request.Context(), userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, details)
}
