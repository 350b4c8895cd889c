package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wambui/florax/internal/domain/model"
	"github.com/wambui/florax/internal/server/http/dto"
)

// MessageHandler exposes order-scoped messaging endpoints.
type MessageHandler struct {
	facade MessageFacade
}

// NewMessageHandler constructs MessageHandler.
func NewMessageHandler(facade MessageFacade) *MessageHandler {
	return &MessageHandler{facade: facade}
}

// Send handles POST /api/messages.
func (h *MessageHandler) Send(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID <= 0 || req.ReceiverID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id, receiver_id and content are required"})
		return
	}

	message, err := h.facade.SendMessage(c.Request.Context(), CurrentUserID(c), req.OrderID, req.ReceiverID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMessageResponse(message))
}

// ListByOrder handles GET /api/messages/:orderID.
func (h *MessageHandler) ListByOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderID")
	if !ok {
		return
	}

	messages, err := h.facade.OrderMessages(c.Request.Context(), CurrentUserID(c), orderID)
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		response = append(response, toMessageResponse(&messages[i]))
	}
	c.JSON(http.StatusOK, response)
}

func toMessageResponse(message *model.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:         message.ID,
		OrderID:    message.OrderID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Content:    message.Content,
		CreatedAt:  message.CreatedAt,
	}
}
