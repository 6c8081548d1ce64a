package product

import (
	"context"

	"github.com/fekuna/omnipos-inventory/internal/model"
	"github.com/fekuna/omnipos-inventory/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindByName(ctx context.Context, name string) ([]model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	// Update reports how many rows changed; 0 means the product is gone.
	Update(ctx context.Context, product *model.Product) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	DeleteByCategory(ctx context.Context, categoryID int64) (int64, error)
}

// CategoryResolver looks categories up once so products are always written by id.
type CategoryResolver interface {
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	ResolveCategory(ctx context.Context, name string) (*model.Category, error)
}
