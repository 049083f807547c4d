package handlers

import (
	"net/http"

	"github.com/fidelease/fidelease-backend/internal/middleware"
	"github.com/fidelease/fidelease-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageHandler handles the customer/staff messaging endpoints
type MessageHandler struct {
	messageService services.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// Send handles POST /messages. The sender is the authenticated caller.
func (h *MessageHandler) Send(c *gin.Context) {
	var req struct {
		ToUserID string `json:"toUserId" binding:"required"`
		Text     string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing fields")
		return
	}

	fromID, ok := middleware.UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	toID, err := primitive.ObjectIDFromHex(req.ToUserID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), fromID, toID, req.Text)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "message": "Message sent successfully", "data": message})
}

// GetMyMessages handles GET /me/messages, the client inbox
func (h *MessageHandler) GetMyMessages(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	messages, err := h.messageService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, messages)
}

// GetThread handles GET /messages/with/:id, the staff conversation view
func (h *MessageHandler) GetThread(c *gin.Context) {
	otherID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	messages, err := h.messageService.ListBetween(c.Request.Context(), userID, otherID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondData(c, http.StatusOK, messages)
}
