package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-inventory/internal/apperror"
	"github.com/fekuna/omnipos-inventory/internal/category"
	catdto "github.com/fekuna/omnipos-inventory/internal/category/dto"
	catrepo "github.com/fekuna/omnipos-inventory/internal/category/repository"
	catuc "github.com/fekuna/omnipos-inventory/internal/category/usecase"
	"github.com/fekuna/omnipos-inventory/internal/dbtest"
	"github.com/fekuna/omnipos-inventory/internal/model"
	"github.com/fekuna/omnipos-inventory/internal/product"
	proddto "github.com/fekuna/omnipos-inventory/internal/product/dto"
	prodrepo "github.com/fekuna/omnipos-inventory/internal/product/repository"
	produc "github.com/fekuna/omnipos-inventory/internal/product/usecase"
	"github.com/fekuna/omnipos-inventory/internal/purchase"
	"github.com/fekuna/omnipos-inventory/internal/purchase/dto"
	"github.com/fekuna/omnipos-inventory/internal/purchase/event"
	"github.com/fekuna/omnipos-inventory/internal/purchase/repository"
	"github.com/fekuna/omnipos-inventory/pkg/lock"
	"github.com/fekuna/omnipos-inventory/pkg/logger"
)

type fixture struct {
	db         *sqlx.DB
	repo       *repository.SQLRepository
	categories category.UseCase
	products   product.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.NewSQLite(t)
	trManager := manager.Must(trmsqlx.NewDefaultFactory(db))
	log := logger.NewNop()

	productRepo := prodrepo.NewSQLRepository(db)
	categories := catuc.NewCategoryUseCase(catrepo.NewSQLRepository(db), productRepo, trManager, log)
	return &fixture{
		db:         db,
		repo:       repository.NewSQLRepository(db),
		categories: categories,
		products:   produc.NewProductUseCase(productRepo, categories, log),
	}
}

func (f *fixture) useCase(repo purchase.Repository, opts ...Option) purchase.UseCase {
	trManager := manager.Must(trmsqlx.NewDefaultFactory(f.db))
	return NewPurchaseUseCase(repo, f.products, trManager, lock.NewMemoryLocker(), logger.NewNop(), opts...)
}

func (f *fixture) seedProduct(t *testing.T, name, price string, qty int) *model.Product {
	t.Helper()
	ctx := context.Background()
	cats, err := f.categories.ListCategories(ctx, &catdto.CategoryFilters{Name: "Electronics"})
	require.NoError(t, err)
	var catID int64
	if len(cats) == 0 {
		cat, err := f.categories.CreateCategory(ctx, &catdto.CreateCategoryInput{Name: "Electronics"})
		require.NoError(t, err)
		catID = cat.ID
	} else {
		catID = cats[0].ID
	}

	p, err := f.products.CreateProduct(ctx, &proddto.CreateProductInput{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Quantity:   qty,
		CategoryID: catID,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	p, err := f.products.GetProduct(context.Background(), id)
	require.NoError(t, err)
	return p.Quantity
}

func (f *fixture) ledgerSize(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.Get(&n, `SELECT count(*) FROM purchase_history`))
	return n
}

func TestPurchaseDecrementsStockAndAppendsRecord(t *testing.T) {
	f := newFixture(t)
	mouse := f.seedProduct(t, "Mouse", "20.00", 50)
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	uc := f.useCase(f.repo, WithClock(func() time.Time { return at }))

	res, err := uc.Purchase(context.Background(), &dto.PurchaseInput{ProductName: "Mouse", Quantity: 3})
	require.NoError(t, err)

	assert.False(t, res.Duplicate)
	assert.Equal(t, 47, res.RemainingStock)
	assert.Equal(t, mouse.ID, res.Record.ProductID)
	assert.Equal(t, "Mouse", res.Record.ProductName)
	assert.Equal(t, 3, res.Record.Quantity)
	assert.Equal(t, "60.00", res.Record.TotalPrice.StringFixed(2))
	assert.NotEmpty(t, res.Record.Reference)
	assert.True(t, at.Equal(res.Record.PurchaseDate))

	assert.Equal(t, 47, f.stock(t, mouse.ID))
	assert.Equal(t, 1, f.ledgerSize(t))

	history, err := uc.ListPurchases(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, decimal.RequireFromString("60").Equal(history[0].TotalPrice))
	assert.True(t, at.Equal(history[0].PurchaseDate))
}

func TestPurchaseRejectsInsufficientStock(t *testing.T) {
	f := newFixture(t)
	mouse := f.seedProduct(t, "Mouse", "20.00", 47)
	uc := f.useCase(f.repo)

	_, err := uc.Purchase(context.Background(), &dto.PurchaseInput{ProductID: mouse.ID, Quantity: 100})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Equal(t, "Not enough stock. Available: 47", err.Error())

	var ise *apperror.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, 100, ise.Requested)

	assert.Equal(t, 47, f.stock(t, mouse.ID))
	assert.Zero(t, f.ledgerSize(t))

	// rejected operations have no cumulative effect
	_, err = uc.Purchase(context.Background(), &dto.PurchaseInput{ProductID: mouse.ID, Quantity: 100})
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Equal(t, 47, f.stock(t, mouse.ID))
	assert.Zero(t, f.ledgerSize(t))
}

func TestPurchaseExactStockEmptiesProduct(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Cable", "2.50", 4)
	uc := f.useCase(f.repo)

	res, err := uc.Purchase(context.Background(), &dto.PurchaseInput{ProductID: p.ID, Quantity: 4})
	require.NoError(t, err)
	assert.Zero(t, res.RemainingStock)
	assert.Equal(t, "10.00", res.Record.TotalPrice.StringFixed(2))

	available, err := uc.ListPurchasableProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestPurchaseValidation(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "Mouse", "20.00", 50)
	f.seedProduct(t, "Dup", "1.00", 5)
	f.seedProduct(t, "Dup", "2.00", 5)
	uc := f.useCase(f.repo)

	tests := []struct {
		name  string
		input dto.PurchaseInput
		want  error
	}{
		{"zero quantity", dto.PurchaseInput{ProductName: "Mouse", Quantity: 0}, apperror.ErrValidation},
		{"negative quantity", dto.PurchaseInput{ProductName: "Mouse", Quantity: -2}, apperror.ErrValidation},
		{"quantity above column limit", dto.PurchaseInput{ProductName: "Mouse", Quantity: model.MaxQuantity + 1}, apperror.ErrValidation},
		{"no product", dto.PurchaseInput{Quantity: 1}, apperror.ErrValidation},
		{"blank product name", dto.PurchaseInput{ProductName: "   ", Quantity: 1}, apperror.ErrValidation},
		{"unknown name", dto.PurchaseInput{ProductName: "Keyboard", Quantity: 1}, apperror.ErrNotFound},
		{"unknown id", dto.PurchaseInput{ProductID: 9999, Quantity: 1}, apperror.ErrNotFound},
		{"ambiguous name", dto.PurchaseInput{ProductName: "Dup", Quantity: 1}, apperror.ErrAmbiguous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Purchase(context.Background(), &tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, f.ledgerSize(t))
}

func TestPurchaseTotalMustFitLedger(t *testing.T) {
	f := newFixture(t)
	yacht := f.seedProduct(t, "Yacht", "1000000000.00", 2000)
	uc := f.useCase(f.repo)

	_, err := uc.Purchase(context.Background(), &dto.PurchaseInput{ProductID: yacht.ID, Quantity: 1000})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, 2000, f.stock(t, yacht.ID))
	assert.Zero(t, f.ledgerSize(t))

	// 999 × 1e9 still fits
	res, err := uc.Purchase(context.Background(), &dto.PurchaseInput{ProductID: yacht.ID, Quantity: 999})
	require.NoError(t, err)
	assert.Equal(t, "999000000000.00", res.Record.TotalPrice.StringFixed(2))
	assert.Equal(t, 1001, f.stock(t, yacht.ID))
}

func TestPurchaseReferenceIsIdempotent(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Mouse", "20.00", 50)
	uc := f.useCase(f.repo)
	ctx := context.Background()

	first, err := uc.Purchase(ctx, &dto.PurchaseInput{ProductID: p.ID, Quantity: 2, Reference: "order-42"})
	require.NoError(t, err)

	again, err := uc.Purchase(ctx, &dto.PurchaseInput{ProductID: p.ID, Quantity: 2, Reference: "order-42"})
	require.NoError(t, err)
	assert.True(t, again.Duplicate)
	assert.Equal(t, first.Record.ID, again.Record.ID)

	assert.Equal(t, 48, f.stock(t, p.ID))
	assert.Equal(t, 1, f.ledgerSize(t))

	_, err = uc.Purchase(ctx, &dto.PurchaseInput{ProductID: p.ID, Quantity: 5, Reference: "order-42"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, 48, f.stock(t, p.ID))
}

type failingLedger struct {
	purchase.Repository
}

func (failingLedger) InsertRecord(context.Context, *model.PurchaseRecord) error {
	return apperror.Storage("append purchase record", errors.New("disk I/O error"))
}

func TestPurchaseRollsBackWhenLedgerAppendFails(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Mouse", "20.00", 50)
	uc := f.useCase(failingLedger{Repository: f.repo})

	_, err := uc.Purchase(context.Background(), &dto.PurchaseInput{ProductID: p.ID, Quantity: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrStorage)
	assert.NotErrorIs(t, err, apperror.ErrValidation)

	assert.Equal(t, 50, f.stock(t, p.ID))
	assert.Zero(t, f.ledgerSize(t))

	// the failure leaves the system ready for the next request
	res, err := f.useCase(f.repo).Purchase(context.Background(), &dto.PurchaseInput{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 47, res.RemainingStock)
}

func TestConcurrentPurchasesNeverOverdraw(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Mouse", "20.00", 10)
	uc := f.useCase(f.repo)

	const buyers = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, shop int
		other    []error
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Purchase(context.Background(), &dto.PurchaseInput{ProductID: p.ID, Quantity: 1})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, apperror.ErrInsufficientStock):
				shop++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 10, ok)
	assert.Equal(t, 10, shop)
	assert.Zero(t, f.stock(t, p.ID))
	assert.Equal(t, 10, f.ledgerSize(t))
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	msgs [][]byte
	err  error
}

func (r *recordingPublisher) Publish(_ context.Context, key, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, string(key))
	r.msgs = append(r.msgs, value)
	return r.err
}

func TestPurchasePublishesAfterCommit(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Mouse", "20.00", 50)
	pub := &recordingPublisher{}
	uc := f.useCase(f.repo, WithPublisher(pub))

	res, err := uc.Purchase(context.Background(), &dto.PurchaseInput{ProductID: p.ID, Quantity: 3, Reference: "r-1"})
	require.NoError(t, err)

	require.Len(t, pub.msgs, 1)
	var evt event.PurchaseRecorded
	require.NoError(t, json.Unmarshal(pub.msgs[0], &evt))
	assert.Equal(t, event.TypePurchaseRecorded, evt.EventType)
	assert.Equal(t, res.Record.ID, evt.Payload.PurchaseID)
	assert.Equal(t, "r-1", evt.Payload.Reference)
	assert.Equal(t, 47, evt.Payload.RemainingStock)
	assert.Equal(t, "60.00", evt.Payload.TotalPrice.StringFixed(2))

	// replays and rejections are not announced
	_, err = uc.Purchase(context.Background(), &dto.PurchaseInput{ProductID: p.ID, Quantity: 3, Reference: "r-1"})
	require.NoError(t, err)
	_, err = uc.Purchase(context.Background(), &dto.PurchaseInput{ProductID: p.ID, Quantity: 500})
	require.Error(t, err)
	assert.Len(t, pub.msgs, 1)
}

func TestPublishFailureDoesNotUndoPurchase(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Mouse", "20.00", 50)
	uc := f.useCase(f.repo, WithPublisher(&recordingPublisher{err: errors.New("broker down")}))

	_, err := uc.Purchase(context.Background(), &dto.PurchaseInput{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 49, f.stock(t, p.ID))
	assert.Equal(t, 1, f.ledgerSize(t))
}

func TestListPurchasesNewestFirst(t *testing.T) {
	f := newFixture(t)
	mouse := f.seedProduct(t, "Mouse", "20.00", 50)
	laptop := f.seedProduct(t, "Laptop", "1000.00", 5)

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	uc := f.useCase(f.repo, WithClock(func() time.Time {
		clock = clock.Add(time.Hour)
		return clock
	}))
	ctx := context.Background()

	for _, in := range []dto.PurchaseInput{
		{ProductID: mouse.ID, Quantity: 1},
		{ProductID: laptop.ID, Quantity: 1},
		{ProductID: mouse.ID, Quantity: 2},
	} {
		_, err := uc.Purchase(ctx, &in)
		require.NoError(t, err)
	}

	all, err := uc.ListPurchases(ctx, &dto.PurchaseFilters{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 2, all[0].Quantity)
	assert.Equal(t, "Laptop", all[1].ProductName)
	assert.Equal(t, 1, all[2].Quantity)

	mouseOnly, err := uc.ListPurchases(ctx, &dto.PurchaseFilters{ProductID: mouse.ID, Limit: 1})
	require.NoError(t, err)
	require.Len(t, mouseOnly, 1)
	assert.Equal(t, 2, mouseOnly[0].Quantity)
}
