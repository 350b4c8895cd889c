package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/wambui/florax/internal/adapter/pesapal"
	"github.com/wambui/florax/internal/domain/model"
)

// MarketplaceFacade exposes the subset of application functionality required by the reconciler.
type MarketplaceFacade interface {
	OrdersAwaitingPayment(ctx context.Context, limit int) ([]model.Order, error)
	SettlePayment(ctx context.Context, order model.Order) error
}

// PaymentReconciler polls the payment gateway for orders whose checkout was
// started but never confirmed, and applies the gateway's verdict. It covers
// buyers who paid on the hosted page and closed the tab before the callback
// or the verify step completed.
type PaymentReconciler struct {
	facade       MarketplaceFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentReconciler constructs the reconciliation worker pool.
func NewPaymentReconciler(facade MarketplaceFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PaymentReconciler) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentReconciler) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentReconciler) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentReconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.OrdersAwaitingPayment(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch orders awaiting payment failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *PaymentReconciler) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
		}
	}
}

func (p *PaymentReconciler) handleOrder(ctx context.Context, order model.Order) {
	if err := p.facade.SettlePayment(ctx, order); err != nil {
		if errors.Is(err, pesapal.ErrNoToken) {
			// Gateway credentials problem affects the whole batch.
			p.logger.Warn("gateway token refused, backing off", slog.Int64("order_id", order.ID))
			return
		}
		p.logger.Error("payment reconciliation failed",
			slog.Int64("order_id", order.ID),
			slog.String("reference", order.PaymentReference),
			slog.String("error", err.Error()),
		)
	}
}
