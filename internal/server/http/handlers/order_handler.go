package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wambui/florax/internal/domain/model"
	"github.com/wambui/florax/internal/server/http/dto"
	"github.com/wambui/florax/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders/create.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	lines := make([]model.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, model.OrderLine{FlowerID: item.FlowerID, Quantity: item.Quantity})
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentUserID(c), usecase.CreateOrderInput{
		BuyerName:       req.BuyerName,
		BuyerPhone:      req.BuyerPhone,
		DeliveryAddress: req.DeliveryAddress,
		Lines:           lines,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// ListBuyer handles GET /api/orders/buyer.
func (h *OrderHandler) ListBuyer(c *gin.Context) {
	orders, err := h.facade.BuyerOrders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// ListFlorist handles GET /api/orders/florist.
func (h *OrderHandler) ListFlorist(c *gin.Context) {
	orders, err := h.facade.FloristOrders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), CurrentUserRole(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// UpdateStatus handles PUT /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	if err := h.facade.UpdateOrderStatus(c.Request.Context(), CurrentUserID(c), id, req.Status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": id, "status": req.Status})
}

// Pay handles POST /api/orders/:id/pay.
func (h *OrderHandler) Pay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.PayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	order, err := h.facade.PayOrder(c.Request.Context(), CurrentUserID(c), id, req.PaymentMethod)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// SetTracking handles PUT /api/orders/:id/tracking.
func (h *OrderHandler) SetTracking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.TrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	if err := h.facade.SetOrderTracking(c.Request.Context(), CurrentUserID(c), id, req.Lat, req.Lng); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": id, "lat": req.Lat, "lng": req.Lng})
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ID:                item.ID,
			FlowerID:          item.FlowerID,
			FlowerName:        item.FlowerName,
			FloristID:         item.FloristID,
			FloristName:       item.FloristName,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			Subtotal:          item.LineTotal(),
			FulfillmentStatus: string(item.FulfillmentStatus),
		})
	}
	return dto.OrderResponse{
		ID:               order.ID,
		BuyerID:          order.BuyerID,
		BuyerName:        order.BuyerName,
		BuyerEmail:       order.BuyerEmail,
		BuyerPhone:       order.BuyerPhone,
		DeliveryAddress:  order.DeliveryAddress,
		DeliveryLat:      order.DeliveryLat,
		DeliveryLng:      order.DeliveryLng,
		TotalPrice:       order.TotalPrice,
		Status:           string(order.Status),
		Paid:             order.Paid,
		PaymentMethod:    order.PaymentMethod,
		PaymentReference: order.PaymentReference,
		Items:            items,
		CreatedAt:        order.CreatedAt,
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, toOrderResponse(&orders[i]))
	}
	return response
}
