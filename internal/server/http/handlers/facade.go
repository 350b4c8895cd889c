package handlers

import (
	"context"

	"github.com/wambui/florax/internal/domain/model"
	"github.com/wambui/florax/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
}

// CatalogFacade encapsulates catalog operations exposed via HTTP.
type CatalogFacade interface {
	CreateFlower(ctx context.Context, floristID int64, input usecase.FlowerInput) (*model.Flower, error)
	Flowers(ctx context.Context) ([]model.Flower, error)
	FloristFlowers(ctx context.Context, floristID int64) ([]model.Flower, error)
	Flower(ctx context.Context, id int64) (*model.Flower, error)
	UpdateFlower(ctx context.Context, floristID, flowerID int64, input usecase.FlowerInput) (*model.Flower, error)
	DeleteFlower(ctx context.Context, floristID, flowerID int64) (*model.Flower, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, buyerID int64, input usecase.CreateOrderInput) (*model.Order, error)
	BuyerOrders(ctx context.Context, buyerID int64) ([]model.Order, error)
	FloristOrders(ctx context.Context, floristID int64) ([]model.Order, error)
	Order(ctx context.Context, userID int64, role model.Role, orderID int64) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, floristID, orderID int64, status string) error
	PayOrder(ctx context.Context, buyerID, orderID int64, method string) (*model.Order, error)
	SetOrderTracking(ctx context.Context, floristID, orderID int64, lat, lng float64) error
}

// PaymentFacade drives the gateway checkout flow over HTTP.
type PaymentFacade interface {
	InitializePayment(ctx context.Context, buyerID, orderID int64) (*usecase.Checkout, error)
	VerifyPayment(ctx context.Context, buyerID, orderID int64, reference string) (model.OrderStatus, error)
	PaymentCallback(ctx context.Context, merchantReference, trackingID, status string) (*usecase.CallbackResult, error)
	PaymentStatus(ctx context.Context, buyerID, orderID int64) (*model.Order, error)
}

// MessageFacade exposes order-scoped messaging.
type MessageFacade interface {
	SendMessage(ctx context.Context, senderID, orderID, receiverID int64, content string) (*model.Message, error)
	OrderMessages(ctx context.Context, userID, orderID int64) ([]model.Message, error)
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	PaymentFacade
	MessageFacade
}
