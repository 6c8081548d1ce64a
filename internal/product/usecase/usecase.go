package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-inventory/internal/apperror"
	"github.com/fekuna/omnipos-inventory/internal/model"
	"github.com/fekuna/omnipos-inventory/internal/product"
	"github.com/fekuna/omnipos-inventory/internal/product/dto"
	"github.com/fekuna/omnipos-inventory/pkg/logger"
)

const maxNameLength = 255

type productUseCase struct {
	repo       product.Repository
	categories product.CategoryResolver
	logger     logger.ZapLogger
	now        func() time.Time
}

func NewProductUseCase(repo product.Repository, categories product.CategoryResolver, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:       repo,
		categories: categories,
		logger:     log,
		now:        time.Now,
	}
}

type fields struct {
	name     string
	price    decimal.Decimal
	quantity int
}

func validate(name string, price decimal.Decimal, quantity int) (*fields, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return nil, apperror.Validation("product name must not be empty")
	case utf8.RuneCountInString(name) > maxNameLength:
		return nil, apperror.Validation("product name must be at most %d characters", maxNameLength)
	case price.IsNegative():
		return nil, apperror.Validation("price must not be negative")
	case !price.Equal(price.Round(2)):
		return nil, apperror.Validation("price must have at most two decimal places")
	case price.GreaterThan(model.MaxPrice):
		return nil, apperror.Validation("price must be at most %s", model.MaxPrice.StringFixed(2))
	case quantity < 0:
		return nil, apperror.Validation("quantity must not be negative")
	case quantity > model.MaxQuantity:
		return nil, apperror.Validation("quantity must be at most %d", model.MaxQuantity)
	}
	return &fields{name: name, price: price, quantity: quantity}, nil
}

// resolveCategory returns the category a write should reference. An id wins
// over a name when both are given.
func (uc *productUseCase) resolveCategory(ctx context.Context, id int64, name string) (*model.Category, error) {
	if id != 0 {
		return uc.categories.GetCategory(ctx, id)
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperror.Validation("a category id or name is required")
	}
	return uc.categories.ResolveCategory(ctx, name)
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	f, err := validate(input.Name, input.Price, input.Quantity)
	if err != nil {
		return nil, err
	}
	cat, err := uc.resolveCategory(ctx, input.CategoryID, input.CategoryName)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	p := &model.Product{
		BaseModel:    model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Name:         f.name,
		Price:        f.price,
		Quantity:     f.quantity,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		uc.logger.Error("failed to create product", zap.String("name", f.name), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("product created",
		zap.Int64("product_id", p.ID),
		zap.Int64("category_id", p.CategoryID),
		zap.Int("quantity", p.Quantity),
	)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("product", id)
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	f, err := validate(input.Name, input.Price, input.Quantity)
	if err != nil {
		return nil, err
	}

	p, err := uc.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	categoryID, categoryName := p.CategoryID, p.CategoryName
	if input.CategoryID != 0 || strings.TrimSpace(input.CategoryName) != "" {
		cat, err := uc.resolveCategory(ctx, input.CategoryID, input.CategoryName)
		if err != nil {
			return nil, err
		}
		categoryID, categoryName = cat.ID, cat.Name
	}

	p.Name = f.name
	p.Price = f.price
	p.Quantity = f.quantity
	p.CategoryID = categoryID
	p.CategoryName = categoryName
	p.UpdatedAt = uc.now().UTC()

	n, err := uc.repo.Update(ctx, p)
	if err != nil {
		uc.logger.Error("failed to update product", zap.Int64("product_id", p.ID), zap.Error(err))
		return nil, err
	}
	if n == 0 {
		return nil, apperror.NotFound("product", p.ID)
	}
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) error {
	n, err := uc.repo.Delete(ctx, id)
	if err != nil {
		uc.logger.Error("failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return err
	}
	if n == 0 {
		return apperror.NotFound("product", id)
	}
	uc.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

func (uc *productUseCase) ResolveProduct(ctx context.Context, name string) (*model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("product name must not be empty")
	}

	matches, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, apperror.NotFound("product", name)
	case 1:
		return &matches[0], nil
	default:
		return nil, apperror.Ambiguous("product", name, len(matches))
	}
}
