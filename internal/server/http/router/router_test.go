package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wambui/florax/internal/app"
	"github.com/wambui/florax/internal/config"
	"github.com/wambui/florax/internal/domain/model"
	"github.com/wambui/florax/internal/pkg/upload"
	"github.com/wambui/florax/internal/server/http/dto"
	"github.com/wambui/florax/internal/server/http/handlers"
	"github.com/wambui/florax/internal/server/http/middleware"
	testhelpers "github.com/wambui/florax/internal/test"
	"github.com/wambui/florax/internal/usecase"
)

func newTestRouter(t *testing.T) (*gin.Engine, *testhelpers.OrderRepositoryStub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := testhelpers.NewUserRepositoryStub()
	if _, err := users.Create(context.Background(), &model.User{Name: "Jane", Email: "jane@example.com", Role: model.RoleBuyer}); err != nil {
		t.Fatalf("failed to seed buyer: %v", err)
	}
	strategy := testhelpers.StrategyStub{
		IssueFn: func(int64) (string, error) { return "buyer-token", nil },
		ParseFn: func(string) (int64, error) { return 1, nil },
	}
	authUC := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, strategy)

	flowers := testhelpers.NewFlowerRepositoryStub()
	flowers.Items[1] = &model.Flower{ID: 1, FloristID: 2, Name: "Rose", Price: 1200, StockStatus: model.StockInStock}
	catalogUC := usecase.NewCatalogUseCase(flowers)

	orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{{
		ID:      1,
		BuyerID: 1,
		Status:  model.OrderStatusPending,
		Items:   []model.OrderItem{{FloristID: 2, FulfillmentStatus: model.FulfillmentPending}},
	}}}
	orderUC := usecase.NewOrderUseCase(orders)
	paymentUC := usecase.NewPaymentUseCase(orders, &testhelpers.GatewayStub{})
	messageUC := usecase.NewMessageUseCase(&testhelpers.MessageRepositoryStub{}, orders)

	facade := app.NewMarketplaceFacade(authUC, catalogUC, orderUC, paymentUC, messageUC)

	uploads, err := upload.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create upload store: %v", err)
	}
	cfg := &config.Config{AllowedOrigins: []string{"https://shop.example"}}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return Setup(facade, uploads, cfg, logger), orders
}

func TestSetupRoutes(t *testing.T) {
	engine, _ := newTestRouter(t)

	body, _ := json.Marshal(dto.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret12", Role: "buyer"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for register, got %d: %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/flowers", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for public catalog, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders/buyer", nil)
	req.Header.Set("Authorization", "Bearer buyer-token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for buyer orders, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSetupAuthBoundaries(t *testing.T) {
	engine, _ := newTestRouter(t)

	// No token on a protected route.
	req := httptest.NewRequest(http.MethodGet, "/api/orders/buyer", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}

	// A buyer hitting a florist-only route.
	body := []byte(`{"name":"Rose","price":1200}`)
	req = httptest.NewRequest(http.MethodPost, "/api/flowers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer buyer-token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for buyer on florist route, got %d", resp.Code)
	}

	// The gateway callback carries no token.
	req = httptest.NewRequest(http.MethodPost, "/api/payment/pesapal/callback", bytes.NewReader([]byte(`{"pesapal_merchant_reference":"ORD_1_100","pesapal_status":"COMPLETED"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for callback, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSetupPaymentFlow(t *testing.T) {
	engine, orders := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/pesapal/initialize", bytes.NewReader([]byte(`{"order_id":1}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer buyer-token")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for initialize, got %d: %s", resp.Code, resp.Body.String())
	}
	if len(orders.ReferenceCalls) != 1 {
		t.Fatalf("expected payment reference stored, got %d calls", len(orders.ReferenceCalls))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/payment/pesapal/check-status/1", nil)
	req.Header.Set("Authorization", "Bearer buyer-token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for check-status, got %d", resp.Code)
	}
}

func TestCorsConfig(t *testing.T) {
	cfg := corsConfig(&config.Config{AllowedOrigins: []string{"https://shop.example"}})
	if cfg.AllowAllOrigins {
		t.Fatal("expected restricted origins")
	}
	if len(cfg.AllowOrigins) != 1 || cfg.AllowOrigins[0] != "https://shop.example" {
		t.Fatalf("unexpected origins: %v", cfg.AllowOrigins)
	}

	open := corsConfig(&config.Config{})
	if !open.AllowAllOrigins {
		t.Fatal("expected open origins when none configured")
	}
}

var _ handlers.MarketplaceFacade = (*app.MarketplaceFacade)(nil)
var _ middleware.IdentityResolver = (*app.MarketplaceFacade)(nil)
