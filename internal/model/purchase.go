package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRecord is an immutable ledger entry. ProductName is a snapshot taken
// at purchase time so the record stays readable after the product is deleted.
type PurchaseRecord struct {
	ID           int64           `db:"id" json:"id"`
	ProductID    int64           `db:"product_id" json:"product_id"`
	ProductName  string          `db:"product_name" json:"product_name"`
	Quantity     int             `db:"quantity" json:"quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price" json:"unit_price"`
	TotalPrice   decimal.Decimal `db:"total_price" json:"total_price"`
	Reference    string          `db:"reference" json:"reference"`
	PurchaseDate time.Time       `db:"purchase_date" json:"purchase_date"`
}
