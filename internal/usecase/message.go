package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/wambui/florax/internal/domain/errors"
	"github.com/wambui/florax/internal/domain/model"
	"github.com/wambui/florax/internal/domain/repository"
)

// MessageUseCase handles order-scoped notes between buyers and florists.
type MessageUseCase struct {
	messages repository.MessageRepository
	orders   repository.OrderRepository
}

// NewMessageUseCase constructs MessageUseCase.
func NewMessageUseCase(messages repository.MessageRepository, orders repository.OrderRepository) *MessageUseCase {
	return &MessageUseCase{messages: messages, orders: orders}
}

// Send attaches a note to an order. Only order participants may write,
// and the receiver must be the buyer or a florist on the order.
func (u *MessageUseCase) Send(ctx context.Context, senderID, orderID, receiverID int64, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("message content is required: %w", domainErrors.ErrValidation)
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !participates(order, senderID) || !participates(order, receiverID) {
		return nil, domainErrors.ErrForbidden
	}

	return u.messages.Create(ctx, &model.Message{
		OrderID:    orderID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	})
}

// ListByOrder returns the order's conversation for a participant.
func (u *MessageUseCase) ListByOrder(ctx context.Context, userID, orderID int64) ([]model.Message, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !participates(order, userID) {
		return nil, domainErrors.ErrForbidden
	}
	return u.messages.ListByOrder(ctx, orderID)
}

func participates(order *model.Order, userID int64) bool {
	if order.BuyerID == userID {
		return true
	}
	for _, item := range order.Items {
		if item.FloristID == userID {
			return true
		}
	}
	return false
}
