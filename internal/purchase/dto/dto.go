package dto

import (
	"time"

	"github.com/fekuna/omnipos-inventory/internal/model"
)

type PurchaseFilters struct {
	ProductID int64
	Since     time.Time
	Limit     int
	Offset    int
}

type PurchaseResult struct {
	Record *model.PurchaseRecord `json:"record"`
	// Duplicate is set when the reference was already recorded; nothing was changed.
	Duplicate bool `json:"duplicate"`
	// RemainingStock is only meaningful when Duplicate is false.
	RemainingStock int `json:"remaining_stock"`
}
