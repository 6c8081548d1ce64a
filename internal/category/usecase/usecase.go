package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-inventory/internal/apperror"
	"github.com/fekuna/omnipos-inventory/internal/category"
	"github.com/fekuna/omnipos-inventory/internal/category/dto"
	"github.com/fekuna/omnipos-inventory/internal/model"
	"github.com/fekuna/omnipos-inventory/pkg/logger"
)

const maxNameLength = 255

type categoryUseCase struct {
	repo      category.Repository
	products  category.ProductRemover
	trManager trm.Manager
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewCategoryUseCase(repo category.Repository, products category.ProductRemover, trManager trm.Manager, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:      repo,
		products:  products,
		trManager: trManager,
		logger:    log,
		now:       time.Now,
	}
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.Validation("category name must not be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", apperror.Validation("category name must be at most %d characters", maxNameLength)
	}
	return name, nil
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	cat := &model.Category{
		BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Name:      name,
	}
	if err := uc.repo.Create(ctx, cat); err != nil {
		uc.logger.Error("failed to create category", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("category created", zap.Int64("category_id", cat.ID), zap.String("name", name))
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFound("category", id)
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error) {
	if filters == nil {
		filters = &dto.CategoryFilters{}
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}

	cat, err := uc.GetCategory(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	cat.Name = name
	cat.UpdatedAt = uc.now().UTC()
	n, err := uc.repo.Update(ctx, cat)
	if err != nil {
		uc.logger.Error("failed to update category", zap.Int64("category_id", cat.ID), zap.Error(err))
		return nil, err
	}
	if n == 0 {
		return nil, apperror.NotFound("category", cat.ID)
	}
	return cat, nil
}

// DeleteCategory removes the category and every product filed under it.
// Either both deletes commit or neither does.
func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64) (*dto.DeleteCategoryResult, error) {
	result := &dto.DeleteCategoryResult{CategoryID: id}

	err := uc.trManager.Do(ctx, func(ctx context.Context) error {
		cat, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if cat == nil {
			return apperror.NotFound("category", id)
		}

		removed, err := uc.products.DeleteByCategory(ctx, id)
		if err != nil {
			return err
		}

		n, err := uc.repo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			// removed concurrently between the lookup and the delete
			return apperror.NotFound("category", id)
		}

		result.ProductsRemoved = removed
		return nil
	})
	if err != nil {
		uc.logger.Warn("category delete rolled back", zap.Int64("category_id", id), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("category deleted",
		zap.Int64("category_id", id),
		zap.Int64("products_removed", result.ProductsRemoved),
	)
	return result, nil
}

// ResolveCategory turns a display name into exactly one category.
func (uc *categoryUseCase) ResolveCategory(ctx context.Context, name string) (*model.Category, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	matches, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, apperror.NotFound("category", name)
	case 1:
		return &matches[0], nil
	default:
		return nil, apperror.Ambiguous("category", name, len(matches))
	}
}
