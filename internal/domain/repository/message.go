package repository

import (
	"context"

	"github.com/wambui/florax/internal/domain/model"
)

// MessageRepository describes persistence operations for order messages.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) (*model.Message, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.Message, error)
}
