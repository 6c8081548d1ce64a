package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type InventoryLine struct {
	ProductID int64           `db:"id" json:"product_id"`
	Name      string          `db:"name" json:"name"`
	Quantity  int             `db:"quantity" json:"quantity"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Value     decimal.Decimal `db:"-" json:"value"`
}

type InventorySummary struct {
	Lines []InventoryLine `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

type SalesLine struct {
	ProductID int64           `db:"product_id" json:"product_id"`
	Name      string          `db:"name" json:"name"`
	Quantity  int             `db:"quantity" json:"quantity"`
	Total     decimal.Decimal `db:"total" json:"total"`
}

type SalesSummary struct {
	WindowDays int             `json:"window_days"`
	Since      time.Time       `json:"since"`
	Lines      []SalesLine     `json:"lines"`
	Total      decimal.Decimal `json:"total"`
}

type LowStockLine struct {
	ProductID int64  `db:"id" json:"product_id"`
	Name      string `db:"name" json:"name"`
	Quantity  int    `db:"quantity" json:"quantity"`
}

type LowStockReport struct {
	Threshold int            `json:"threshold"`
	Lines     []LowStockLine `json:"lines"`
}

type Report struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Inventory   InventorySummary `json:"inventory"`
	Sales       SalesSummary     `json:"sales"`
	LowStock    LowStockReport   `json:"low_stock"`
}
