package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/wambui/florax/internal/domain/errors"
	"github.com/wambui/florax/internal/domain/model"
	testhelpers "github.com/wambui/florax/internal/test"
)

func messageOrder() model.Order {
	return model.Order{
		ID:      10,
		BuyerID: 1,
		Items:   []model.OrderItem{{OrderID: 10, FloristID: 7}},
	}
}

func TestMessageUseCaseSend(t *testing.T) {
	ctx := context.Background()

	t.Run("buyer to florist", func(t *testing.T) {
		messages := &testhelpers.MessageRepositoryStub{}
		orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{messageOrder()}}
		uc := NewMessageUseCase(messages, orders)

		msg, err := uc.Send(ctx, 1, 10, 7, " deliver after 2pm ")
		if err != nil {
			t.Fatalf("send returned error: %v", err)
		}
		if msg.Content != "deliver after 2pm" || msg.SenderID != 1 || msg.ReceiverID != 7 {
			t.Fatalf("unexpected message: %+v", msg)
		}
	})

	t.Run("florist to buyer", func(t *testing.T) {
		messages := &testhelpers.MessageRepositoryStub{}
		orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{messageOrder()}}
		uc := NewMessageUseCase(messages, orders)

		if _, err := uc.Send(ctx, 7, 10, 1, "on the way"); err != nil {
			t.Fatalf("send returned error: %v", err)
		}
	})

	t.Run("outsider cannot write", func(t *testing.T) {
		orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{messageOrder()}}
		uc := NewMessageUseCase(&testhelpers.MessageRepositoryStub{}, orders)

		if _, err := uc.Send(ctx, 99, 10, 1, "hi"); !errors.Is(err, domainErrors.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("receiver must participate", func(t *testing.T) {
		orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{messageOrder()}}
		uc := NewMessageUseCase(&testhelpers.MessageRepositoryStub{}, orders)

		if _, err := uc.Send(ctx, 1, 10, 99, "hi"); !errors.Is(err, domainErrors.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("empty content rejected", func(t *testing.T) {
		orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{messageOrder()}}
		uc := NewMessageUseCase(&testhelpers.MessageRepositoryStub{}, orders)

		if _, err := uc.Send(ctx, 1, 10, 7, "   "); !errors.Is(err, domainErrors.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("missing order", func(t *testing.T) {
		uc := NewMessageUseCase(&testhelpers.MessageRepositoryStub{}, &testhelpers.OrderRepositoryStub{})
		if _, err := uc.Send(ctx, 1, 404, 7, "hi"); !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestMessageUseCaseListByOrder(t *testing.T) {
	messages := &testhelpers.MessageRepositoryStub{Items: []model.Message{
		{ID: 1, OrderID: 10, SenderID: 1, ReceiverID: 7, Content: "hello"},
		{ID: 2, OrderID: 11, SenderID: 2, ReceiverID: 8, Content: "other order"},
	}}
	orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{messageOrder()}}
	uc := NewMessageUseCase(messages, orders)

	ctx := context.Background()
	list, err := uc.ListByOrder(ctx, 7, 10)
	if err != nil || len(list) != 1 || list[0].Content != "hello" {
		t.Fatalf("unexpected result: %v err=%v", list, err)
	}

	if _, err := uc.ListByOrder(ctx, 99, 10); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := uc.ListByOrder(ctx, 1, 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
