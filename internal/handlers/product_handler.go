package handlers

import (
	"net/http"

	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductHandler handles product catalog requests
type ProductHandler struct {
	catalogService services.CatalogService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService services.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

type productRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	CategoryID  string  `json:"categoryId" binding:"required"`
	Image       string  `json:"image"`
}

func (r *productRequest) toModel() (*models.Product, error) {
	categoryID, err := primitive.ObjectIDFromHex(r.CategoryID)
	if err != nil {
		return nil, err
	}
	return &models.Product{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		CategoryID:  categoryID,
		Image:       r.Image,
	}, nil
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, products)
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, product)
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing fields")
		return
	}
	product, err := req.toModel()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	if err := h.catalogService.CreateProduct(c.Request.Context(), product); err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing fields")
		return
	}
	product, err := req.toModel()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}
	product.ID = id

	if err := h.catalogService.UpdateProduct(c.Request.Context(), product); err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Product deleted")
}
