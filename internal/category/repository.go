package category

import (
	"context"

	"github.com/fekuna/omnipos-inventory/internal/category/dto"
	"github.com/fekuna/omnipos-inventory/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	FindByName(ctx context.Context, name string) ([]model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
	// Update reports how many rows changed; 0 means the category is gone.
	Update(ctx context.Context, category *model.Category) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// ProductRemover is the slice of the product store the cascade needs.
type ProductRemover interface {
	DeleteByCategory(ctx context.Context, categoryID int64) (int64, error)
}
