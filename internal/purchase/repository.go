package purchase

import (
	"context"

	"github.com/fekuna/omnipos-inventory/internal/model"
	"github.com/fekuna/omnipos-inventory/internal/product/dto"
	purchasedto "github.com/fekuna/omnipos-inventory/internal/purchase/dto"
)

type Repository interface {
	// LockStock reads the product row for the purchase, taking a row lock where the backend supports it.
	LockStock(ctx context.Context, productID int64) (*model.Product, error)
	// DecrementStock subtracts quantity only if enough stock remains; false means nothing changed.
	DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error)
	InsertRecord(ctx context.Context, record *model.PurchaseRecord) error
	FindByReference(ctx context.Context, reference string) (*model.PurchaseRecord, error)
	FindAll(ctx context.Context, filters *purchasedto.PurchaseFilters) ([]model.PurchaseRecord, error)
}

// ProductFinder resolves the product a purchase is made against.
type ProductFinder interface {
	ResolveProduct(ctx context.Context, name string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
}

// Publisher announces committed purchases. Optional.
type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
}
