package repository

import (
	"context"

	"github.com/wambui/florax/internal/domain/model"
)

// FlowerRepository describes persistence operations for catalog items.
type FlowerRepository interface {
	Create(ctx context.Context, flower *model.Flower) (*model.Flower, error)
	GetByID(ctx context.Context, id int64) (*model.Flower, error)
	List(ctx context.Context) ([]model.Flower, error)
	ListByFlorist(ctx context.Context, floristID int64) ([]model.Flower, error)
	Update(ctx context.Context, flower *model.Flower) error
	Delete(ctx context.Context, id int64) error
}
