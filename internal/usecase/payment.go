package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/wambui/florax/internal/adapter/pesapal"
	domainErrors "github.com/wambui/florax/internal/domain/errors"
	"github.com/wambui/florax/internal/domain/model"
	"github.com/wambui/florax/internal/domain/repository"
)

// PaymentMethodPesapal marks orders paid through the hosted gateway flow.
const PaymentMethodPesapal = "pesapal"

// PaymentUseCase drives the gateway checkout flow and keeps order payment
// state in sync with the gateway's view.
type PaymentUseCase struct {
	orders  repository.OrderRepository
	gateway pesapal.Client
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(orders repository.OrderRepository, gateway pesapal.Client) *PaymentUseCase {
	return &PaymentUseCase{orders: orders, gateway: gateway}
}

// Checkout is the hosted payment page handed to the buyer.
type Checkout struct {
	IframeURL string
	Reference string
	OrderID   int64
}

// Initialize creates a hosted checkout page for the buyer's order and
// stores the merchant reference on the order.
func (u *PaymentUseCase) Initialize(ctx context.Context, buyerID, orderID int64) (*Checkout, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, domainErrors.ErrForbidden
	}

	firstName, lastName := splitName(order.BuyerName)
	page, err := u.gateway.CreatePaymentPage(ctx, pesapal.PaymentRequest{
		OrderID:   order.ID,
		Amount:    order.TotalPrice,
		Email:     order.BuyerEmail,
		Phone:     order.BuyerPhone,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrGateway, err)
	}

	if err := u.orders.SetPaymentReference(ctx, order.ID, page.Reference, PaymentMethodPesapal); err != nil {
		return nil, err
	}

	return &Checkout{IframeURL: page.IframeURL, Reference: page.Reference, OrderID: order.ID}, nil
}

// Verify asks the gateway for the transaction state and applies it to the
// buyer's order. It returns the normalized status.
func (u *PaymentUseCase) Verify(ctx context.Context, buyerID, orderID int64, reference string) (model.OrderStatus, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.BuyerID != buyerID {
		return "", domainErrors.ErrForbidden
	}
	if reference == "" {
		return "", fmt.Errorf("payment reference is required: %w", domainErrors.ErrValidation)
	}

	result, err := u.gateway.VerifyPayment(ctx, reference)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domainErrors.ErrGateway, err)
	}

	status, paid := mapGatewayStatus(result.Status)
	if err := u.applyGatewayState(ctx, order.ID, status, paid); err != nil {
		return "", err
	}
	return status, nil
}

// CallbackResult identifies the order a gateway callback settled.
type CallbackResult struct {
	OrderID int64
	Status  model.OrderStatus
}

// Callback handles the gateway's server-to-server notification. The
// merchant reference encodes the order id as its second underscore field.
func (u *PaymentUseCase) Callback(ctx context.Context, merchantReference, trackingID, gatewayStatus string) (*CallbackResult, error) {
	if merchantReference == "" {
		return nil, fmt.Errorf("merchant reference is required: %w", domainErrors.ErrValidation)
	}
	parts := strings.Split(merchantReference, "_")
	if len(parts) < 2 {
		return nil, fmt.Errorf("malformed merchant reference %q: %w", merchantReference, domainErrors.ErrValidation)
	}
	orderID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || orderID <= 0 {
		return nil, fmt.Errorf("malformed merchant reference %q: %w", merchantReference, domainErrors.ErrValidation)
	}

	// The callback always records the gateway's verdict, pending included,
	// so an order previously marked failed can move back to pending.
	status, paid := mapGatewayStatus(gatewayStatus)
	if err := u.orders.SetPaymentState(ctx, orderID, status, paid, trackingID); err != nil {
		return nil, err
	}
	return &CallbackResult{OrderID: orderID, Status: status}, nil
}

// Status returns the buyer's order for payment status polling.
func (u *PaymentUseCase) Status(ctx context.Context, buyerID, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// PendingPayments returns initialized-but-unconfirmed orders for the
// background reconciler.
func (u *PaymentUseCase) PendingPayments(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectPendingPayments(ctx, limit)
}

// Settle re-checks one pending payment against the gateway and applies the
// result.
func (u *PaymentUseCase) Settle(ctx context.Context, order model.Order) error {
	result, err := u.gateway.VerifyPayment(ctx, order.PaymentReference)
	if err != nil {
		return fmt.Errorf("%w: %v", domainErrors.ErrGateway, err)
	}

	status, paid := mapGatewayStatus(result.Status)
	return u.applyGatewayState(ctx, order.ID, status, paid)
}

// applyGatewayState persists a polled gateway verdict. Polling leaves
// undecided payments untouched.
func (u *PaymentUseCase) applyGatewayState(ctx context.Context, orderID int64, status model.OrderStatus, paid bool) error {
	if status == model.OrderStatusPending {
		return nil
	}
	return u.orders.SetPaymentState(ctx, orderID, status, paid, "")
}

// mapGatewayStatus translates the gateway's status vocabulary into the
// order lifecycle.
func mapGatewayStatus(gatewayStatus string) (model.OrderStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(gatewayStatus)) {
	case "completed", "payment received":
		return model.OrderStatusPaid, true
	case "pending":
		return model.OrderStatusPending, false
	default:
		return model.OrderStatusFailed, false
	}
}

func splitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if i := strings.IndexAny(full, " \t"); i >= 0 {
		return full[:i], strings.TrimSpace(full[i+1:])
	}
	return full, full
}
