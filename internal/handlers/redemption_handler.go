package handlers

import (
	"net/http"

	"github.com/fidelease/fidelease-backend/internal/middleware"
	"github.com/fidelease/fidelease-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RedemptionHandler handles gift redemption and code scanning
type RedemptionHandler struct {
	redemptionService services.RedemptionService
}

// NewRedemptionHandler creates a new RedemptionHandler
func NewRedemptionHandler(redemptionService services.RedemptionService) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionService: redemptionService,
	}
}

// RedeemGift handles POST /gifts/:id/redeem. The spender is the
// authenticated caller.
func (h *RedemptionHandler) RedeemGift(c *gin.Context) {
	giftID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	code, err := h.redemptionService.RedeemGift(c.Request.Context(), giftID, userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"codeToken": code.Cid})
}

// ScanCode handles POST /codes/scan for the admin console scanner
func (h *RedemptionHandler) ScanCode(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing fields")
		return
	}

	gift, err := h.redemptionService.ScanCode(c.Request.Context(), req.Token)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"gift": gift})
}
