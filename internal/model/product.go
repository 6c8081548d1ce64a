package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// Upper bounds of the stored columns: price NUMERIC(12,2), quantity INTEGER
// and total_price NUMERIC(14,2).
const MaxQuantity = math.MaxInt32

var (
	MaxPrice      = decimal.RequireFromString("9999999999.99")
	MaxTotalPrice = decimal.RequireFromString("999999999999.99")
)

type Product struct {
	BaseModel
	Name         string          `db:"name" json:"name"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Quantity     int             `db:"quantity" json:"quantity"`
	CategoryID   int64           `db:"category_id" json:"category_id"`
	CategoryName string          `db:"category_name" json:"category_name,omitempty"` // joined
}

// StockValue is quantity × price.
func StockValue(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
