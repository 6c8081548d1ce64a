package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-inventory/internal/apperror"
	"github.com/fekuna/omnipos-inventory/internal/model"
	productdto "github.com/fekuna/omnipos-inventory/internal/product/dto"
	"github.com/fekuna/omnipos-inventory/internal/purchase"
	"github.com/fekuna/omnipos-inventory/internal/purchase/dto"
	"github.com/fekuna/omnipos-inventory/internal/purchase/event"
	"github.com/fekuna/omnipos-inventory/pkg/lock"
	"github.com/fekuna/omnipos-inventory/pkg/logger"
)

const maxReferenceLength = 64

type purchaseUseCase struct {
	repo      purchase.Repository
	products  purchase.ProductFinder
	trManager trm.Manager
	locker    lock.Locker
	publisher purchase.Publisher
	logger    logger.ZapLogger
	now       func() time.Time
}

type Option func(*purchaseUseCase)

// WithPublisher announces every committed purchase.
func WithPublisher(p purchase.Publisher) Option {
	return func(uc *purchaseUseCase) { uc.publisher = p }
}

// WithClock replaces time.Now for the purchase timestamp.
func WithClock(now func() time.Time) Option {
	return func(uc *purchaseUseCase) { uc.now = now }
}

func NewPurchaseUseCase(
	repo purchase.Repository,
	products purchase.ProductFinder,
	trManager trm.Manager,
	locker lock.Locker,
	log logger.ZapLogger,
	opts ...Option,
) purchase.UseCase {
	uc := &purchaseUseCase{
		repo:      repo,
		products:  products,
		trManager: trManager,
		locker:    locker,
		logger:    log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func lockKey(productID int64) string {
	return fmt.Sprintf("lock:purchase:product:%d", productID)
}

func (uc *purchaseUseCase) Purchase(ctx context.Context, input *dto.PurchaseInput) (*dto.PurchaseResult, error) {
	if input.Quantity <= 0 {
		return nil, apperror.Validation("quantity must be greater than zero")
	}
	if input.Quantity > model.MaxQuantity {
		return nil, apperror.Validation("quantity must be at most %d", model.MaxQuantity)
	}
	reference := strings.TrimSpace(input.Reference)
	if reference == "" {
		reference = uuid.NewString()
	}
	if len(reference) > maxReferenceLength {
		return nil, apperror.Validation("reference must be at most %d characters", maxReferenceLength)
	}

	productID, err := uc.resolveProductID(ctx, input)
	if err != nil {
		return nil, err
	}

	// 0. Serialize purchases of the same product
	release, err := uc.locker.Acquire(ctx, lockKey(productID))
	if err != nil {
		uc.logger.Error("failed to acquire product lock", zap.Int64("product_id", productID), zap.Error(err))
		return nil, apperror.Storage("acquire product lock", err)
	}
	defer release()

	var result *dto.PurchaseResult
	err = uc.trManager.Do(ctx, func(ctx context.Context) error {
		// 1. Replayed reference: report the recorded purchase, change nothing
		existing, err := uc.repo.FindByReference(ctx, reference)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.ProductID != productID || existing.Quantity != input.Quantity {
				return apperror.Validation("reference %q was already used for a different purchase", reference)
			}
			result = &dto.PurchaseResult{Record: existing, Duplicate: true}
			return nil
		}

		// 2. Read price and stock
		p, err := uc.repo.LockStock(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperror.NotFound("product", productID)
		}
		if input.Quantity > p.Quantity {
			return &apperror.InsufficientStockError{ProductID: p.ID, Requested: input.Quantity, Available: p.Quantity}
		}
		total := p.Price.Mul(decimal.NewFromInt(int64(input.Quantity))).Round(2)
		if total.GreaterThan(model.MaxTotalPrice) {
			return apperror.Validation("total price %s exceeds %s", total.StringFixed(2), model.MaxTotalPrice.StringFixed(2))
		}

		// 3. Decrement, guarded against stock that moved since the read
		ok, err := uc.repo.DecrementStock(ctx, productID, input.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return &apperror.InsufficientStockError{ProductID: p.ID, Requested: input.Quantity, Available: p.Quantity}
		}

		// 4. Ledger append, priced from the row read in step 2
		rec := &model.PurchaseRecord{
			ProductID:    p.ID,
			ProductName:  p.Name,
			Quantity:     input.Quantity,
			UnitPrice:    p.Price,
			TotalPrice:   total,
			Reference:    reference,
			PurchaseDate: uc.now().UTC().Truncate(time.Microsecond),
		}
		if err := uc.repo.InsertRecord(ctx, rec); err != nil {
			return err
		}

		result = &dto.PurchaseResult{Record: rec, RemainingStock: p.Quantity - input.Quantity}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperror.ErrStorage) {
			uc.logger.Error("purchase rolled back", zap.Int64("product_id", productID), zap.Error(err))
		} else {
			uc.logger.Warn("purchase rejected", zap.Int64("product_id", productID), zap.Int("quantity", input.Quantity), zap.Error(err))
		}
		return nil, apperror.Storage("purchase", err)
	}

	if result.Duplicate {
		uc.logger.Info("purchase already recorded", zap.String("reference", reference))
		return result, nil
	}

	uc.logger.Info("purchase recorded",
		zap.Int64("purchase_id", result.Record.ID),
		zap.Int64("product_id", productID),
		zap.Int("quantity", input.Quantity),
		zap.String("total_price", result.Record.TotalPrice.StringFixed(2)),
		zap.Int("remaining_stock", result.RemainingStock),
	)
	uc.publish(ctx, result)
	return result, nil
}

func (uc *purchaseUseCase) resolveProductID(ctx context.Context, input *dto.PurchaseInput) (int64, error) {
	if input.ProductID > 0 {
		return input.ProductID, nil
	}
	if input.ProductID < 0 {
		return 0, apperror.Validation("invalid product id %d", input.ProductID)
	}
	if strings.TrimSpace(input.ProductName) == "" {
		return 0, apperror.Validation("a product id or name is required")
	}
	p, err := uc.products.ResolveProduct(ctx, input.ProductName)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

// publish runs after commit; a failed announcement never undoes the purchase.
func (uc *purchaseUseCase) publish(ctx context.Context, result *dto.PurchaseResult) {
	if uc.publisher == nil {
		return
	}
	rec := result.Record
	evt := event.PurchaseRecorded{
		EventID:   uuid.NewString(),
		EventType: event.TypePurchaseRecorded,
		Payload: event.PurchaseRecordedPayload{
			PurchaseID:     rec.ID,
			Reference:      rec.Reference,
			ProductID:      rec.ProductID,
			ProductName:    rec.ProductName,
			Quantity:       rec.Quantity,
			TotalPrice:     rec.TotalPrice,
			RemainingStock: result.RemainingStock,
		},
		Timestamp: rec.PurchaseDate,
	}
	value, err := json.Marshal(evt)
	if err != nil {
		uc.logger.Error("failed to marshal purchase event", zap.Error(err))
		return
	}
	if err := uc.publisher.Publish(ctx, []byte(strconv.FormatInt(rec.ProductID, 10)), value); err != nil {
		uc.logger.Error("failed to publish purchase event", zap.String("reference", rec.Reference), zap.Error(err))
	}
}

func (uc *purchaseUseCase) ListPurchases(ctx context.Context, filters *dto.PurchaseFilters) ([]model.PurchaseRecord, error) {
	if filters == nil {
		filters = &dto.PurchaseFilters{}
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *purchaseUseCase) ListPurchasableProducts(ctx context.Context) ([]model.Product, error) {
	return uc.products.ListProducts(ctx, &productdto.ProductFilters{InStockOnly: true})
}
