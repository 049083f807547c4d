package handlers

import (
	"net/http"

	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GiftHandler handles gift catalog requests
type GiftHandler struct {
	catalogService services.CatalogService
}

// NewGiftHandler creates a new GiftHandler
func NewGiftHandler(catalogService services.CatalogService) *GiftHandler {
	return &GiftHandler{
		catalogService: catalogService,
	}
}

type giftRequest struct {
	ProductID string `json:"productId" binding:"required"`
	PointCost int    `json:"pointCost" binding:"required"`
}

// ListGifts handles GET /gifts, returning gifts joined with their products
func (h *GiftHandler) ListGifts(c *gin.Context) {
	gifts, err := h.catalogService.ListGiftViews(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, gifts)
}

// GetGift handles GET /gifts/:id
func (h *GiftHandler) GetGift(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	gift, err := h.catalogService.GetGift(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, gift)
}

// CreateGift handles POST /gifts
func (h *GiftHandler) CreateGift(c *gin.Context) {
	var req giftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing fields")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	gift := &models.Gift{ProductID: productID, PointCost: req.PointCost}
	if err := h.catalogService.CreateGift(c.Request.Context(), gift); err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gift)
}

// UpdateGift handles PUT /gifts/:id
func (h *GiftHandler) UpdateGift(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	var req giftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing fields")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	gift := &models.Gift{ID: id, ProductID: productID, PointCost: req.PointCost}
	if err := h.catalogService.UpdateGift(c.Request.Context(), gift); err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, gift)
}

// DeleteGift handles DELETE /gifts/:id
func (h *GiftHandler) DeleteGift(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	if err := h.catalogService.DeleteGift(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Gift deleted")
}
