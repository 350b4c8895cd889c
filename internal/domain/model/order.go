package model

import "time"

// OrderStatus describes the order lifecycle as seen by the buyer.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusFailed     OrderStatus = "failed"
)

// ValidTransitionStatus reports whether s is a status callers may request
// via the status-update endpoint. The failed state is reachable only
// through the payment path.
func ValidTransitionStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessing, OrderStatusDelivered:
		return true
	}
	return false
}

// FulfillmentStatus tracks one florist's progress on their share of an order.
type FulfillmentStatus string

const (
	FulfillmentPending    FulfillmentStatus = "pending"
	FulfillmentProcessing FulfillmentStatus = "processing"
	FulfillmentDelivered  FulfillmentStatus = "delivered"
)

// Order is a buyer's checkout spanning potentially many florists. Buyer
// contact fields are snapshots captured at creation time.
type Order struct {
	ID               int64
	BuyerID          int64
	BuyerName        string
	BuyerEmail       string
	BuyerPhone       string
	DeliveryAddress  string
	DeliveryLat      *float64
	DeliveryLng      *float64
	TotalPrice       float64
	Status           OrderStatus
	Paid             bool
	PaymentMethod    string
	PaymentReference string
	Items            []OrderItem
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderItem is one line of an order. Flower name, florist name and unit
// price are snapshots: later catalog edits must not change past orders.
type OrderItem struct {
	ID                int64
	OrderID           int64
	FlowerID          int64
	FloristID         int64
	FlowerName        string
	FloristName       string
	Quantity          int
	UnitPrice         float64
	FulfillmentStatus FulfillmentStatus
}

// LineTotal is the item's contribution to the order total.
func (i OrderItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// OrderLine is a requested {flower, quantity} pair at checkout.
type OrderLine struct {
	FlowerID int64
	Quantity int
}

// OrderDraft carries everything needed to create an order atomically.
type OrderDraft struct {
	BuyerID         int64
	BuyerName       string
	BuyerPhone      string
	DeliveryAddress string
	Lines           []OrderLine
}
