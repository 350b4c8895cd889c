package test

import (
	"context"

	domainErrors "github.com/wambui/florax/internal/domain/errors"
	"github.com/wambui/florax/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := *user
	created.ID = s.Next
	s.Next++
	s.Users[created.Email] = &created
	s.ByID[created.ID] = &created
	return &created, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// FlowerRepositoryStub stores catalog items in-memory for tests.
type FlowerRepositoryStub struct {
	CreateFn func(context.Context, *model.Flower) (*model.Flower, error)
	UpdateFn func(context.Context, *model.Flower) error
	DeleteFn func(context.Context, int64) error
	Items    map[int64]*model.Flower
	Next     int64
	Err      error
}

// NewFlowerRepositoryStub constructs stub repository with initialized map.
func NewFlowerRepositoryStub() *FlowerRepositoryStub {
	return &FlowerRepositoryStub{Items: make(map[int64]*model.Flower), Next: 1}
}

// Create stores flower unless stub has explicit error.
func (s *FlowerRepositoryStub) Create(ctx context.Context, flower *model.Flower) (*model.Flower, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, flower)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Items == nil {
		s.Items = make(map[int64]*model.Flower)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := *flower
	created.ID = s.Next
	s.Next++
	s.Items[created.ID] = &created
	return &created, nil
}

// GetByID fetches flower or returns not found.
func (s *FlowerRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Flower, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if flower, ok := s.Items[id]; ok {
		copied := *flower
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns every stored flower.
func (s *FlowerRepositoryStub) List(ctx context.Context) ([]model.Flower, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Flower
	for _, flower := range s.Items {
		result = append(result, *flower)
	}
	return result, nil
}

// ListByFlorist returns flowers owned by the florist.
func (s *FlowerRepositoryStub) ListByFlorist(ctx context.Context, floristID int64) ([]model.Flower, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Flower
	for _, flower := range s.Items {
		if flower.FloristID == floristID {
			result = append(result, *flower)
		}
	}
	return result, nil
}

// Update replaces stored flower or returns not found.
func (s *FlowerRepositoryStub) Update(ctx context.Context, flower *model.Flower) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, flower)
	}
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[flower.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	copied := *flower
	s.Items[flower.ID] = &copied
	return nil
}

// Delete removes stored flower or returns not found.
func (s *FlowerRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Items, id)
	return nil
}

// PaymentStateCall records one payment transition applied to the stub.
type PaymentStateCall struct {
	OrderID     int64
	Status      model.OrderStatus
	Paid        bool
	TrackingRef string
}

// FulfillmentCall records one fulfillment update applied to the stub.
type FulfillmentCall struct {
	OrderID   int64
	FloristID int64
	Status    model.FulfillmentStatus
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn                func(context.Context, model.OrderDraft) (*model.Order, error)
	GetByIDFn               func(context.Context, int64) (*model.Order, error)
	ListByBuyerFn           func(context.Context, int64) ([]model.Order, error)
	ListByFloristFn         func(context.Context, int64) ([]model.Order, error)
	UpdateFulfillmentFn     func(context.Context, int64, int64, model.FulfillmentStatus) error
	SetPaymentStateFn       func(context.Context, int64, model.OrderStatus, bool, string) error
	SetPaymentReferenceFn   func(context.Context, int64, string, string) error
	SetDeliveryLocationFn   func(context.Context, int64, int64, float64, float64) error
	HasFloristItemsFn       func(context.Context, int64, int64) (bool, error)
	SelectPendingPaymentsFn func(context.Context, int) ([]model.Order, error)

	Orders           []model.Order
	Drafts           []model.OrderDraft
	PaymentCalls     []PaymentStateCall
	FulfillmentCalls []FulfillmentCall
	ReferenceCalls   []struct {
		OrderID   int64
		Reference string
		Method    string
	}
	Pending []model.Order
}

// Create tracks the draft and returns a configured or synthetic order.
func (s *OrderRepositoryStub) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	s.Drafts = append(s.Drafts, draft)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}
	order := &model.Order{
		ID:              1,
		BuyerID:         draft.BuyerID,
		BuyerName:       draft.BuyerName,
		BuyerPhone:      draft.BuyerPhone,
		DeliveryAddress: draft.DeliveryAddress,
		Status:          model.OrderStatusPending,
	}
	return order, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByBuyer returns orders from configured slice.
func (s *OrderRepositoryStub) ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	if s.ListByBuyerFn != nil {
		return s.ListByBuyerFn(ctx, buyerID)
	}
	return s.Orders, nil
}

// ListByFlorist returns orders from configured slice.
func (s *OrderRepositoryStub) ListByFlorist(ctx context.Context, floristID int64) ([]model.Order, error) {
	if s.ListByFloristFn != nil {
		return s.ListByFloristFn(ctx, floristID)
	}
	return s.Orders, nil
}

// UpdateFulfillment records update invocations.
func (s *OrderRepositoryStub) UpdateFulfillment(ctx context.Context, orderID, floristID int64, status model.FulfillmentStatus) error {
	if s.UpdateFulfillmentFn != nil {
		return s.UpdateFulfillmentFn(ctx, orderID, floristID, status)
	}
	s.FulfillmentCalls = append(s.FulfillmentCalls, FulfillmentCall{OrderID: orderID, FloristID: floristID, Status: status})
	return nil
}

// SetPaymentState records payment transitions.
func (s *OrderRepositoryStub) SetPaymentState(ctx context.Context, orderID int64, status model.OrderStatus, paid bool, trackingRef string) error {
	if s.SetPaymentStateFn != nil {
		return s.SetPaymentStateFn(ctx, orderID, status, paid, trackingRef)
	}
	s.PaymentCalls = append(s.PaymentCalls, PaymentStateCall{OrderID: orderID, Status: status, Paid: paid, TrackingRef: trackingRef})
	return nil
}

// SetPaymentReference records reference assignments.
func (s *OrderRepositoryStub) SetPaymentReference(ctx context.Context, orderID int64, reference, method string) error {
	if s.SetPaymentReferenceFn != nil {
		return s.SetPaymentReferenceFn(ctx, orderID, reference, method)
	}
	s.ReferenceCalls = append(s.ReferenceCalls, struct {
		OrderID   int64
		Reference string
		Method    string
	}{orderID, reference, method})
	return nil
}

// SetDeliveryLocation applies override when provided.
func (s *OrderRepositoryStub) SetDeliveryLocation(ctx context.Context, orderID, floristID int64, lat, lng float64) error {
	if s.SetDeliveryLocationFn != nil {
		return s.SetDeliveryLocationFn(ctx, orderID, floristID, lat, lng)
	}
	return nil
}

// HasFloristItems reports ownership from overrides or stored orders.
func (s *OrderRepositoryStub) HasFloristItems(ctx context.Context, orderID, floristID int64) (bool, error) {
	if s.HasFloristItemsFn != nil {
		return s.HasFloristItemsFn(ctx, orderID, floristID)
	}
	for _, o := range s.Orders {
		if o.ID != orderID {
			continue
		}
		for _, item := range o.Items {
			if item.FloristID == floristID {
				return true, nil
			}
		}
	}
	return false, nil
}

// SelectPendingPayments returns queued orders for reconciliation.
func (s *OrderRepositoryStub) SelectPendingPayments(ctx context.Context, limit int) ([]model.Order, error) {
	if s.SelectPendingPaymentsFn != nil {
		return s.SelectPendingPaymentsFn(ctx, limit)
	}
	return s.Pending, nil
}

// MessageRepositoryStub stores order messages in-memory for tests.
type MessageRepositoryStub struct {
	CreateFn func(context.Context, *model.Message) (*model.Message, error)
	Items    []model.Message
	Next     int64
	Err      error
}

// Create stores message unless stub has explicit error.
func (s *MessageRepositoryStub) Create(ctx context.Context, message *model.Message) (*model.Message, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, message)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := *message
	created.ID = s.Next
	s.Next++
	s.Items = append(s.Items, created)
	return &created, nil
}

// ListByOrder returns messages for the order.
func (s *MessageRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.Message, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Message
	for _, m := range s.Items {
		if m.OrderID == orderID {
			result = append(result, m)
		}
	}
	return result, nil
}
