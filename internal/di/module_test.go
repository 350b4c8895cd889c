package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/wambui/florax/internal/adapter/pesapal"
	"github.com/wambui/florax/internal/app"
	"github.com/wambui/florax/internal/config"
	"github.com/wambui/florax/internal/domain/repository"
	"github.com/wambui/florax/internal/storage/postgres"
	"github.com/wambui/florax/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:          ":0",
		DatabaseURI:         "postgres://stub",
		JWTSecret:           "secret",
		UploadDir:           t.TempDir(),
		PesapalBaseURL:      "https://pesapal.example/api",
		PaymentPollInterval: time.Millisecond,
		WorkerPoolSize:      1,
		ShutdownTimeout:     time.Millisecond,
		MaxOrdersBatch:      1,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	flowerRepo := test.NewFlowerRepositoryStub()
	orderRepo := &test.OrderRepositoryStub{}
	messageRepo := &test.MessageRepositoryStub{}
	gateway := &test.GatewayStub{}

	var facade *app.MarketplaceFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.FlowerRepository(flowerRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.MessageRepository(messageRepo)),
			fx.Replace(pesapal.Client(gateway)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected marketplace facade instance")
	}
}
