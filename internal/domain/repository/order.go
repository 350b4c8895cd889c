package repository

import (
	"context"

	"github.com/wambui/florax/internal/domain/model"
)

// OrderRepository describes persistence operations for orders and their items.
type OrderRepository interface {
	// Create persists the order and all its items in one transaction,
	// snapshotting flower and florist data at purchase time. Either the
	// order and every item exist afterwards, or nothing does.
	Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error)
	// ListByFlorist returns orders containing at least one of the florist's
	// items, with item lists narrowed to that florist only.
	ListByFlorist(ctx context.Context, floristID int64) ([]model.Order, error)
	// UpdateFulfillment moves the florist's items in the order to the given
	// status and recomputes the order-level status in the same transaction.
	UpdateFulfillment(ctx context.Context, orderID, floristID int64, status model.FulfillmentStatus) error
	// SetPaymentState transitions payment fields under a row lock so a
	// gateway callback and a buyer poll cannot clobber each other.
	SetPaymentState(ctx context.Context, orderID int64, status model.OrderStatus, paid bool, trackingRef string) error
	SetPaymentReference(ctx context.Context, orderID int64, reference, method string) error
	SetDeliveryLocation(ctx context.Context, orderID, floristID int64, lat, lng float64) error
	HasFloristItems(ctx context.Context, orderID, floristID int64) (bool, error)
	// SelectPendingPayments locks and returns orders with an initialized
	// payment that has not been confirmed yet.
	SelectPendingPayments(ctx context.Context, limit int) ([]model.Order, error)
}
