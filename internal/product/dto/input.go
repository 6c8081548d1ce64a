package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fekuna/omnipos-inventory/internal/apperror"
)

// CreateProductInput names the category either by id or by name. The name is
// resolved to an id exactly once, before anything is written.
type CreateProductInput struct {
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	CategoryID   int64           `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
}

type UpdateProductInput struct {
	ID           int64           `json:"-"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	CategoryID   int64           `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
}

// ParsePrice reads a user supplied amount such as "19.99".
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero, apperror.Validation("price must not be empty")
	}
	p, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperror.Validation("price %q is not a number", s)
	}
	return p, nil
}
