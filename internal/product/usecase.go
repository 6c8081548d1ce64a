package product

import (
	"context"

	"github.com/fekuna/omnipos-inventory/internal/model"
	"github.com/fekuna/omnipos-inventory/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ResolveProduct(ctx context.Context, name string) (*model.Product, error)
}
