package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/wambui/florax/internal/domain/errors"
	"github.com/wambui/florax/internal/domain/model"
	"github.com/wambui/florax/internal/domain/repository"
)

// CatalogUseCase manages florist-owned catalog items.
type CatalogUseCase struct {
	flowers repository.FlowerRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(flowers repository.FlowerRepository) *CatalogUseCase {
	return &CatalogUseCase{flowers: flowers}
}

// FlowerInput carries catalog item data supplied by a florist.
type FlowerInput struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
	StockStatus string
}

func (in *FlowerInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("flower name is required: %w", domainErrors.ErrValidation)
	}
	if in.Price <= 0 {
		return fmt.Errorf("price must be positive: %w", domainErrors.ErrValidation)
	}
	if in.StockStatus == "" {
		in.StockStatus = string(model.StockInStock)
	}
	if !model.ValidStockStatus(in.StockStatus) {
		return fmt.Errorf("unknown stock status %q: %w", in.StockStatus, domainErrors.ErrValidation)
	}
	return nil
}

// CreateFlower adds a catalog item owned by the florist.
func (u *CatalogUseCase) CreateFlower(ctx context.Context, floristID int64, input FlowerInput) (*model.Flower, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	return u.flowers.Create(ctx, &model.Flower{
		FloristID:   floristID,
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		StockStatus: model.StockStatus(input.StockStatus),
	})
}

// ListFlowers returns the whole catalog, newest first.
func (u *CatalogUseCase) ListFlowers(ctx context.Context) ([]model.Flower, error) {
	return u.flowers.List(ctx)
}

// ListFloristFlowers returns one florist's catalog.
func (u *CatalogUseCase) ListFloristFlowers(ctx context.Context, floristID int64) ([]model.Flower, error) {
	return u.flowers.ListByFlorist(ctx, floristID)
}

// GetFlower fetches a single catalog item.
func (u *CatalogUseCase) GetFlower(ctx context.Context, id int64) (*model.Flower, error) {
	return u.flowers.GetByID(ctx, id)
}

// UpdateFlower modifies a catalog item after checking the caller owns it.
// An empty ImageURL keeps the existing image.
func (u *CatalogUseCase) UpdateFlower(ctx context.Context, floristID, flowerID int64, input FlowerInput) (*model.Flower, error) {
	existing, err := u.flowers.GetByID(ctx, flowerID)
	if err != nil {
		return nil, err
	}
	if existing.FloristID != floristID {
		return nil, domainErrors.ErrForbidden
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Description = strings.TrimSpace(input.Description)
	existing.Price = input.Price
	existing.StockStatus = model.StockStatus(input.StockStatus)
	if input.ImageURL != "" {
		existing.ImageURL = input.ImageURL
	}

	if err := u.flowers.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteFlower removes the florist's catalog item and returns the removed
// record so callers can clean up the stored image.
func (u *CatalogUseCase) DeleteFlower(ctx context.Context, floristID, flowerID int64) (*model.Flower, error) {
	existing, err := u.flowers.GetByID(ctx, flowerID)
	if err != nil {
		return nil, err
	}
	if existing.FloristID != floristID {
		return nil, domainErrors.ErrForbidden
	}
	if err := u.flowers.Delete(ctx, flowerID); err != nil {
		return nil, err
	}
	return existing, nil
}
