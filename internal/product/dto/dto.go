package dto

type ProductFilters struct {
	Name        string // exact match
	CategoryID  int64
	InStockOnly bool
	Limit       int
	Offset      int
}
