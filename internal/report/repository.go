package report

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-inventory/internal/model"
)

type Repository interface {
	InventoryLines(ctx context.Context) ([]model.InventoryLine, error)
	SalesLines(ctx context.Context, since time.Time) ([]model.SalesLine, error)
	LowStockLines(ctx context.Context, threshold int) ([]model.LowStockLine, error)
}
