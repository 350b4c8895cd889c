package app

import (
	"context"

	"github.com/wambui/florax/internal/domain/model"
	"github.com/wambui/florax/internal/usecase"
)

// MarketplaceFacade exposes application operations to the HTTP layer and
// the payment reconciliation worker behind one surface.
type MarketplaceFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
	messages *usecase.MessageUseCase
}

func NewMarketplaceFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
	messages *usecase.MessageUseCase,
) *MarketplaceFacade {
	return &MarketplaceFacade{
		auth:     auth,
		catalog:  catalog,
		orders:   orders,
		payments: payments,
		messages: messages,
	}
}

func (f *MarketplaceFacade) Register(ctx context.Context, input usecase.RegisterInput) (*model.User, string, error) {
	return f.auth.Register(ctx, input)
}

func (f *MarketplaceFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *MarketplaceFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketplaceFacade) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *MarketplaceFacade) CreateFlower(ctx context.Context, floristID int64, input usecase.FlowerInput) (*model.Flower, error) {
	return f.catalog.CreateFlower(ctx, floristID, input)
}

func (f *MarketplaceFacade) Flowers(ctx context.Context) ([]model.Flower, error) {
	return f.catalog.ListFlowers(ctx)
}

func (f *MarketplaceFacade) FloristFlowers(ctx context.Context, floristID int64) ([]model.Flower, error) {
	return f.catalog.ListFloristFlowers(ctx, floristID)
}

func (f *MarketplaceFacade) Flower(ctx context.Context, id int64) (*model.Flower, error) {
	return f.catalog.GetFlower(ctx, id)
}

func (f *MarketplaceFacade) UpdateFlower(ctx context.Context, floristID, flowerID int64, input usecase.FlowerInput) (*model.Flower, error) {
	return f.catalog.UpdateFlower(ctx, floristID, flowerID, input)
}

func (f *MarketplaceFacade) DeleteFlower(ctx context.Context, floristID, flowerID int64) (*model.Flower, error) {
	return f.catalog.DeleteFlower(ctx, floristID, flowerID)
}

func (f *MarketplaceFacade) CreateOrder(ctx context.Context, buyerID int64, input usecase.CreateOrderInput) (*model.Order, error) {
	return f.orders.Create(ctx, buyerID, input)
}

func (f *MarketplaceFacade) BuyerOrders(ctx context.Context, buyerID int64) ([]model.Order, error) {
	return f.orders.ListByBuyer(ctx, buyerID)
}

func (f *MarketplaceFacade) FloristOrders(ctx context.Context, floristID int64) ([]model.Order, error) {
	return f.orders.ListByFlorist(ctx, floristID)
}

func (f *MarketplaceFacade) Order(ctx context.Context, userID int64, role model.Role, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, userID, role, orderID)
}

func (f *MarketplaceFacade) UpdateOrderStatus(ctx context.Context, floristID, orderID int64, status string) error {
	return f.orders.UpdateStatus(ctx, floristID, orderID, status)
}

func (f *MarketplaceFacade) PayOrder(ctx context.Context, buyerID, orderID int64, method string) (*model.Order, error) {
	return f.orders.Pay(ctx, buyerID, orderID, method)
}

func (f *MarketplaceFacade) SetOrderTracking(ctx context.Context, floristID, orderID int64, lat, lng float64) error {
	return f.orders.SetTracking(ctx, floristID, orderID, lat, lng)
}

func (f *MarketplaceFacade) InitializePayment(ctx context.Context, buyerID, orderID int64) (*usecase.Checkout, error) {
	return f.payments.Initialize(ctx, buyerID, orderID)
}

func (f *MarketplaceFacade) VerifyPayment(ctx context.Context, buyerID, orderID int64, reference string) (model.OrderStatus, error) {
	return f.payments.Verify(ctx, buyerID, orderID, reference)
}

func (f *MarketplaceFacade) PaymentCallback(ctx context.Context, merchantReference, trackingID, status string) (*usecase.CallbackResult, error) {
	return f.payments.Callback(ctx, merchantReference, trackingID, status)
}

func (f *MarketplaceFacade) PaymentStatus(ctx context.Context, buyerID, orderID int64) (*model.Order, error) {
	return f.payments.Status(ctx, buyerID, orderID)
}

func (f *MarketplaceFacade) OrdersAwaitingPayment(ctx context.Context, limit int) ([]model.Order, error) {
	return f.payments.PendingPayments(ctx, limit)
}

func (f *MarketplaceFacade) SettlePayment(ctx context.Context, order model.Order) error {
	return f.payments.Settle(ctx, order)
}

func (f *MarketplaceFacade) SendMessage(ctx context.Context, senderID, orderID, receiverID int64, content string) (*model.Message, error) {
	return f.messages.Send(ctx, senderID, orderID, receiverID, content)
}

func (f *MarketplaceFacade) OrderMessages(ctx context.Context, userID, orderID int64) ([]model.Message, error) {
	return f.messages.ListByOrder(ctx, userID, orderID)
}
