package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wambui/florax/internal/domain/model"
	"github.com/wambui/florax/internal/server/http/dto"
)

// PaymentHandler drives the gateway checkout endpoints.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Initialize handles POST /api/payment/pesapal/initialize.
func (h *PaymentHandler) Initialize(c *gin.Context) {
	var req dto.InitializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id is required"})
		return
	}

	checkout, err := h.facade.InitializePayment(c.Request.Context(), CurrentUserID(c), req.OrderID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.InitializePaymentResponse{
		IframeURL: checkout.IframeURL,
		Reference: checkout.Reference,
		OrderID:   checkout.OrderID,
	})
}

// Verify handles POST /api/payment/pesapal/verify.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID <= 0 || req.ReferenceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id and reference_id are required"})
		return
	}

	status, err := h.facade.VerifyPayment(c.Request.Context(), CurrentUserID(c), req.OrderID, req.ReferenceID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyPaymentResponse{
		Success: status == model.OrderStatusPaid,
		Status:  string(status),
		OrderID: req.OrderID,
	})
}

// Callback handles POST /api/payment/pesapal/callback. The gateway posts
// either JSON or form data; there is no bearer token on this route.
func (h *PaymentHandler) Callback(c *gin.Context) {
	var req dto.CallbackRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed callback payload"})
		return
	}

	result, err := h.facade.PaymentCallback(c.Request.Context(), req.MerchantReference, req.TrackingID, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CallbackResponse{
		Success: true,
		OrderID: result.OrderID,
		Status:  string(result.Status),
	})
}

// CheckStatus handles GET /api/payment/pesapal/check-status/:id.
func (h *PaymentHandler) CheckStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.facade.PaymentStatus(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaymentStatusResponse{
		OrderID:          order.ID,
		Paid:             order.Paid,
		Status:           string(order.Status),
		PaymentMethod:    order.PaymentMethod,
		PaymentReference: order.PaymentReference,
		TotalPrice:       order.TotalPrice,
	})
}
