package dto

import "time"

// OrderLineRequest is one requested {flower, quantity} pair at checkout.
type OrderLineRequest struct {
	FlowerID int64 `json:"flower_id"`
	Quantity int   `json:"quantity"`
}

// CreateOrderRequest describes a buyer's checkout payload.
type CreateOrderRequest struct {
	BuyerName       string             `json:"buyer_name"`
	BuyerPhone      string             `json:"buyer_phone"`
	DeliveryAddress string             `json:"delivery_address"`
	Items           []OrderLineRequest `json:"items"`
}

// OrderItemResponse is one line of an order with its purchase-time snapshots.
type OrderItemResponse struct {
	ID                int64   `json:"id"`
	FlowerID          int64   `json:"flower_id"`
	FlowerName        string  `json:"flower_name"`
	FloristID         int64   `json:"florist_id"`
	FloristName       string  `json:"florist_name"`
	Quantity          int     `json:"quantity"`
	UnitPrice         float64 `json:"unit_price"`
	Subtotal          float64 `json:"subtotal"`
	FulfillmentStatus string  `json:"fulfillment_status"`
}

// OrderResponse is the full order view.
type OrderResponse struct {
	ID               int64               `json:"id"`
	BuyerID          int64               `json:"buyer_id"`
	BuyerName        string              `json:"buyer_name"`
	BuyerEmail       string              `json:"buyer_email"`
	BuyerPhone       string              `json:"buyer_phone"`
	DeliveryAddress  string              `json:"delivery_address"`
	DeliveryLat      *float64            `json:"delivery_lat,omitempty"`
	DeliveryLng      *float64            `json:"delivery_lng,omitempty"`
	TotalPrice       float64             `json:"total_price"`
	Status           string              `json:"status"`
	Paid             bool                `json:"paid"`
	PaymentMethod    string              `json:"payment_method,omitempty"`
	PaymentReference string              `json:"payment_reference,omitempty"`
	Items            []OrderItemResponse `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
}

// UpdateStatusRequest carries a florist's status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// PayOrderRequest marks an order paid outside the gateway flow.
type PayOrderRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// TrackingRequest carries a delivery location update.
type TrackingRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
