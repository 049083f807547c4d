package handlers

import (
	"net/http"

	"github.com/fidelease/fidelease-backend/internal/models"
	"github.com/fidelease/fidelease-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryHandler handles category requests
type CategoryHandler struct {
	catalogService services.CatalogService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(catalogService services.CatalogService) *CategoryHandler {
	return &CategoryHandler{
		catalogService: catalogService,
	}
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, categories)
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing fields")
		return
	}

	category := &models.Category{Name: req.Name}
	if err := h.catalogService.CreateCategory(c.Request.Context(), category); err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusCreated, category)
}

// DeleteCategory handles DELETE /categories/:id. Products of the category
// are deleted with it.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Category deleted")
}
