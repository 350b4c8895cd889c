package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wambui/florax/internal/config"
	"github.com/wambui/florax/internal/domain/model"
	testhelpers "github.com/wambui/florax/internal/test"
	"github.com/wambui/florax/internal/worker"
)

func newTestReconciler(facade *testhelpers.ReconcilerFacadeStub) *worker.PaymentReconciler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return worker.NewPaymentReconciler(facade, 10*time.Millisecond, 1, 1, logger)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewPaymentReconcilerUsesConfig(t *testing.T) {
	rec := newPaymentReconciler(workerParams{
		Facade: &MarketplaceFacade{},
		Config: &config.Config{PaymentPollInterval: 15 * time.Second, MaxOrdersBatch: 3, WorkerPoolSize: 4},
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if rec == nil {
		t.Fatal("expected payment reconciler instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	facade := &testhelpers.ReconcilerFacadeStub{
		Batches: [][]model.Order{{{ID: 1, PaymentReference: "ORD_1_100"}}},
	}
	reconciler := newTestReconciler(facade)
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     reconciler,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())

	if err := hook.OnStart(ctx); err != nil {
		cancel()
		t.Fatalf("on start failed: %v", err)
	}

	// fx cancels the start context as soon as startup returns. The
	// reconciler must keep polling regardless.
	cancel()

	deadline := time.After(time.Second)
	for {
		facade.Lock()
		settled := len(facade.Settled)
		facade.Unlock()
		if settled > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("expected reconciler to settle orders after start context cancellation")
		case <-time.After(5 * time.Millisecond):
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	server := &http.Server{Addr: "bad addr"}
	reconciler := newTestReconciler(&testhelpers.ReconcilerFacadeStub{})

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     reconciler,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}
