package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-inventory/internal/model"
	"github.com/fekuna/omnipos-inventory/internal/report"
	"github.com/fekuna/omnipos-inventory/internal/report/dto"
	"github.com/fekuna/omnipos-inventory/pkg/logger"
)

type reportUseCase struct {
	repo     report.Repository
	settings dto.Settings
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewReportUseCase(repo report.Repository, settings dto.Settings, log logger.ZapLogger) report.UseCase {
	return NewReportUseCaseWithClock(repo, settings, log, time.Now)
}

func NewReportUseCaseWithClock(repo report.Repository, settings dto.Settings, log logger.ZapLogger, now func() time.Time) report.UseCase {
	def := dto.DefaultSettings()
	if settings.LowStockThreshold < 0 {
		settings.LowStockThreshold = def.LowStockThreshold
	}
	if settings.SalesWindowDays <= 0 {
		settings.SalesWindowDays = def.SalesWindowDays
	}
	return &reportUseCase{
		repo:     repo,
		settings: settings,
		logger:   log,
		now:      now,
	}
}

// GenerateReport runs the three sections independently; a failure in any of
// them fails the whole report.
func (uc *reportUseCase) GenerateReport(ctx context.Context) (*model.Report, error) {
	inv, err := uc.InventorySummary(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := uc.SalesSummary(ctx)
	if err != nil {
		return nil, err
	}
	low, err := uc.LowStock(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Report{
		GeneratedAt: uc.now(),
		Inventory:   *inv,
		Sales:       *sales,
		LowStock:    *low,
	}, nil
}

func (uc *reportUseCase) InventorySummary(ctx context.Context) (*model.InventorySummary, error) {
	lines, err := uc.repo.InventoryLines(ctx)
	if err != nil {
		uc.logger.Error("inventory summary failed", zap.Error(err))
		return nil, err
	}

	total := decimal.Zero
	for i := range lines {
		lines[i].Value = model.StockValue(lines[i].Price, lines[i].Quantity).Round(2)
		total = total.Add(lines[i].Value)
	}
	// the backend orders by a float product; settle ties and rounding exactly
	slices.SortStableFunc(lines, func(a, b model.InventoryLine) int {
		if c := b.Value.Cmp(a.Value); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	return &model.InventorySummary{Lines: lines, Total: total}, nil
}

// salesCutoff is midnight at the start of today minus the window, in the clock's location.
func (uc *reportUseCase) salesCutoff() time.Time {
	now := uc.now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -uc.settings.SalesWindowDays)
}

func (uc *reportUseCase) SalesSummary(ctx context.Context) (*model.SalesSummary, error) {
	since := uc.salesCutoff()
	lines, err := uc.repo.SalesLines(ctx, since)
	if err != nil {
		uc.logger.Error("sales summary failed", zap.Error(err))
		return nil, err
	}

	total := decimal.Zero
	for i := range lines {
		lines[i].Total = lines[i].Total.Round(2)
		total = total.Add(lines[i].Total)
	}
	slices.SortStableFunc(lines, func(a, b model.SalesLine) int {
		return b.Total.Cmp(a.Total)
	})

	return &model.SalesSummary{
		WindowDays: uc.settings.SalesWindowDays,
		Since:      since,
		Lines:      lines,
		Total:      total,
	}, nil
}

func (uc *reportUseCase) LowStock(ctx context.Context) (*model.LowStockReport, error) {
	lines, err := uc.repo.LowStockLines(ctx, uc.settings.LowStockThreshold)
	if err != nil {
		uc.logger.Error("low stock report failed", zap.Error(err))
		return nil, err
	}
	return &model.LowStockReport{Threshold: uc.settings.LowStockThreshold, Lines: lines}, nil
}
