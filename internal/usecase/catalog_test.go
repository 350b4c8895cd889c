package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/wambui/florax/internal/domain/errors"
	"github.com/wambui/florax/internal/domain/model"
	testhelpers "github.com/wambui/florax/internal/test"
)

func TestCatalogUseCaseCreateFlower(t *testing.T) {
	repo := testhelpers.NewFlowerRepositoryStub()
	uc := NewCatalogUseCase(repo)

	flower, err := uc.CreateFlower(context.Background(), 7, FlowerInput{
		Name: " Rose Bouquet ", Description: " dozen red roses ", Price: 2500, ImageURL: "/uploads/r.jpg",
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if flower.Name != "Rose Bouquet" || flower.FloristID != 7 {
		t.Fatalf("unexpected flower: %+v", flower)
	}
	if flower.StockStatus != model.StockInStock {
		t.Fatalf("expected default stock status, got %s", flower.StockStatus)
	}
}

func TestCatalogUseCaseCreateFlowerValidation(t *testing.T) {
	uc := NewCatalogUseCase(testhelpers.NewFlowerRepositoryStub())

	cases := []struct {
		name  string
		input FlowerInput
	}{
		{"missing name", FlowerInput{Price: 100}},
		{"zero price", FlowerInput{Name: "Tulip", Price: 0}},
		{"negative price", FlowerInput{Name: "Tulip", Price: -5}},
		{"unknown stock status", FlowerInput{Name: "Tulip", Price: 100, StockStatus: "sold_out"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.CreateFlower(context.Background(), 7, tc.input); !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCatalogUseCaseUpdateFlower(t *testing.T) {
	repo := testhelpers.NewFlowerRepositoryStub()
	uc := NewCatalogUseCase(repo)

	flower, err := uc.CreateFlower(context.Background(), 7, FlowerInput{Name: "Tulip", Price: 800, ImageURL: "/uploads/t.jpg"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := uc.UpdateFlower(context.Background(), 7, flower.ID, FlowerInput{
		Name: "Tulip Mix", Price: 900, StockStatus: "out_of_stock",
	})
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if updated.Name != "Tulip Mix" || updated.StockStatus != model.StockOutOfStock {
		t.Fatalf("unexpected flower: %+v", updated)
	}
	if updated.ImageURL != "/uploads/t.jpg" {
		t.Fatalf("empty input image should keep existing, got %q", updated.ImageURL)
	}

	if _, err := uc.UpdateFlower(context.Background(), 99, flower.ID, FlowerInput{Name: "X", Price: 1}); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for foreign florist, got %v", err)
	}
	if _, err := uc.UpdateFlower(context.Background(), 7, 404, FlowerInput{Name: "X", Price: 1}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCatalogUseCaseDeleteFlower(t *testing.T) {
	repo := testhelpers.NewFlowerRepositoryStub()
	uc := NewCatalogUseCase(repo)

	flower, err := uc.CreateFlower(context.Background(), 7, FlowerInput{Name: "Lily", Price: 1200, ImageURL: "/uploads/l.jpg"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := uc.DeleteFlower(context.Background(), 99, flower.ID); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for foreign florist, got %v", err)
	}

	removed, err := uc.DeleteFlower(context.Background(), 7, flower.ID)
	if err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if removed.ImageURL != "/uploads/l.jpg" {
		t.Fatalf("expected removed record with image, got %+v", removed)
	}
	if _, err := uc.GetFlower(context.Background(), flower.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected flower gone, got %v", err)
	}
}

func TestCatalogUseCaseListing(t *testing.T) {
	repo := testhelpers.NewFlowerRepositoryStub()
	uc := NewCatalogUseCase(repo)

	ctx := context.Background()
	if _, err := uc.CreateFlower(ctx, 7, FlowerInput{Name: "Rose", Price: 100}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := uc.CreateFlower(ctx, 8, FlowerInput{Name: "Lily", Price: 200}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	all, err := uc.ListFlowers(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("unexpected catalog: %v err=%v", all, err)
	}
	mine, err := uc.ListFloristFlowers(ctx, 7)
	if err != nil || len(mine) != 1 || mine[0].Name != "Rose" {
		t.Fatalf("unexpected florist catalog: %v err=%v", mine, err)
	}
}
