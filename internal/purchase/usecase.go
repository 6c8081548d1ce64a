package purchase

import (
	"context"

	"github.com/fekuna/omnipos-inventory/internal/model"
	"github.com/fekuna/omnipos-inventory/internal/purchase/dto"
)

type UseCase interface {
	Purchase(ctx context.Context, input *dto.PurchaseInput) (*dto.PurchaseResult, error)
	ListPurchases(ctx context.Context, filters *dto.PurchaseFilters) ([]model.PurchaseRecord, error)
	ListPurchasableProducts(ctx context.Context) ([]model.Product, error)
}
