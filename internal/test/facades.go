package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wambui/florax/internal/domain/model"
)

// ReconcilerFacadeStub mimics worker interactions with the marketplace facade.
type ReconcilerFacadeStub struct {
	Batches         [][]model.Order
	OrdersFn        func(context.Context, int) ([]model.Order, error)
	SettleFn        func(context.Context, model.Order) error
	Settled         []model.Order
	mu              sync.Mutex
	ordersCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *ReconcilerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ReconcilerFacadeStub) Unlock() { s.mu.Unlock() }

// OrdersAwaitingPayment returns batches from the configured queue.
func (s *ReconcilerFacadeStub) OrdersAwaitingPayment(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.ordersCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// SettlePayment records settled orders.
func (s *ReconcilerFacadeStub) SettlePayment(ctx context.Context, order model.Order) error {
	if s.SettleFn != nil {
		return s.SettleFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Settled = append(s.Settled, order)
	return nil
}
