package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/wambui/florax/internal/domain/errors"
	"github.com/wambui/florax/internal/domain/model"
	"github.com/wambui/florax/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// CreateOrderInput is a buyer's checkout request.
type CreateOrderInput struct {
	BuyerName       string
	BuyerPhone      string
	DeliveryAddress string
	Lines           []model.OrderLine
}

// Create validates the checkout request and persists the order atomically.
func (u *OrderUseCase) Create(ctx context.Context, buyerID int64, input CreateOrderInput) (*model.Order, error) {
	input.BuyerName = strings.TrimSpace(input.BuyerName)
	input.BuyerPhone = strings.TrimSpace(input.BuyerPhone)
	input.DeliveryAddress = strings.TrimSpace(input.DeliveryAddress)

	switch {
	case input.BuyerName == "":
		return nil, fmt.Errorf("buyer name is required: %w", domainErrors.ErrValidation)
	case input.BuyerPhone == "":
		return nil, fmt.Errorf("buyer phone is required: %w", domainErrors.ErrValidation)
	case input.DeliveryAddress == "":
		return nil, fmt.Errorf("delivery address is required: %w", domainErrors.ErrValidation)
	case len(input.Lines) == 0:
		return nil, fmt.Errorf("order needs at least one item: %w", domainErrors.ErrValidation)
	}
	for _, line := range input.Lines {
		if line.FlowerID <= 0 || line.Quantity <= 0 {
			return nil, fmt.Errorf("order line needs a flower and a positive quantity: %w", domainErrors.ErrValidation)
		}
	}

	return u.orders.Create(ctx, model.OrderDraft{
		BuyerID:         buyerID,
		BuyerName:       input.BuyerName,
		BuyerPhone:      input.BuyerPhone,
		DeliveryAddress: input.DeliveryAddress,
		Lines:           input.Lines,
	})
}

// ListByBuyer returns the buyer's orders, newest first.
func (u *OrderUseCase) ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	return u.orders.ListByBuyer(ctx, buyerID)
}

// ListByFlorist returns orders containing the florist's items, with item
// lists already narrowed to that florist.
func (u *OrderUseCase) ListByFlorist(ctx context.Context, floristID int64) ([]model.Order, error) {
	return u.orders.ListByFlorist(ctx, floristID)
}

// Get returns one order if the caller participates in it: the buyer who
// placed it, or a florist with items on it. Florists see only their items.
func (u *OrderUseCase) Get(ctx context.Context, userID int64, role model.Role, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID == userID {
		return order, nil
	}
	if role == model.RoleFlorist {
		mine := order.Items[:0:0]
		for _, item := range order.Items {
			if item.FloristID == userID {
				mine = append(mine, item)
			}
		}
		if len(mine) > 0 {
			order.Items = mine
			return order, nil
		}
	}
	return nil, domainErrors.ErrForbidden
}

// UpdateStatus applies a florist's status change to their share of the
// order. The paid status is a payment transition; the rest move the
// florist's items and let storage recompute the order-level status.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, floristID, orderID int64, status string) error {
	if !model.ValidTransitionStatus(status) {
		return fmt.Errorf("unknown status %q: %w", status, domainErrors.ErrValidation)
	}

	if model.OrderStatus(status) == model.OrderStatusPaid {
		owns, err := u.orders.HasFloristItems(ctx, orderID, floristID)
		if err != nil {
			return err
		}
		if !owns {
			return domainErrors.ErrForbidden
		}
		return u.orders.SetPaymentState(ctx, orderID, model.OrderStatusPaid, true, "")
	}

	fulfillment := map[model.OrderStatus]model.FulfillmentStatus{
		model.OrderStatusPending:    model.FulfillmentPending,
		model.OrderStatusProcessing: model.FulfillmentProcessing,
		model.OrderStatusDelivered:  model.FulfillmentDelivered,
	}[model.OrderStatus(status)]

	return u.orders.UpdateFulfillment(ctx, orderID, floristID, fulfillment)
}

// Pay marks a buyer's own order as paid outside the gateway flow, e.g.
// cash on delivery.
func (u *OrderUseCase) Pay(ctx context.Context, buyerID, orderID int64, method string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, domainErrors.ErrForbidden
	}

	method = strings.TrimSpace(method)
	if method == "" {
		method = "direct"
	}
	if err := u.orders.SetPaymentReference(ctx, orderID, order.PaymentReference, method); err != nil {
		return nil, err
	}
	if err := u.orders.SetPaymentState(ctx, orderID, model.OrderStatusPaid, true, ""); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, orderID)
}

// SetTracking records the delivery location reported by a florist on the
// order.
func (u *OrderUseCase) SetTracking(ctx context.Context, floristID, orderID int64, lat, lng float64) error {
	return u.orders.SetDeliveryLocation(ctx, orderID, floristID, lat, lng)
}
