package report

import (
	"context"

	"github.com/fekuna/omnipos-inventory/internal/model"
)

type UseCase interface {
	GenerateReport(ctx context.Context) (*model.Report, error)
	InventorySummary(ctx context.Context) (*model.InventorySummary, error)
	SalesSummary(ctx context.Context) (*model.SalesSummary, error)
	LowStock(ctx context.Context) (*model.LowStockReport, error)
}
