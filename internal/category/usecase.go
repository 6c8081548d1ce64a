package category

import (
	"context"

	"github.com/fekuna/omnipos-inventory/internal/category/dto"
	"github.com/fekuna/omnipos-inventory/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) (*dto.DeleteCategoryResult, error)
	ResolveCategory(ctx context.Context, name string) (*model.Category, error)
}
