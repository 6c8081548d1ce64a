package dto

// PurchaseInput identifies the product by id or, failing that, by name.
// Reference is an idempotency key; one is generated when empty.
type PurchaseInput struct {
	ProductID   int64  `json:"product_id,omitempty"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
	Reference   string `json:"reference,omitempty"`
}
