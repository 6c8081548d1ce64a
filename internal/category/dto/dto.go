package dto

type CategoryFilters struct {
	Name   string // exact match
	Limit  int
	Offset int
}

type DeleteCategoryResult struct {
	CategoryID      int64 `json:"category_id"`
	ProductsRemoved int64 `json:"products_removed"`
}
