// Package event defines the purchase messages exchanged over Kafka.
package event

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypePurchaseRequested = "PurchaseRequested"
	TypePurchaseRecorded  = "PurchaseRecorded"
)

type PurchaseRequested struct {
	EventID   string                   `json:"event_id"`
	EventType string                   `json:"event_type"`
	Payload   PurchaseRequestedPayload `json:"payload"`
	Timestamp time.Time                `json:"timestamp"`
}

type PurchaseRequestedPayload struct {
	ProductID   int64  `json:"product_id,omitempty"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
}

type PurchaseRecorded struct {
	EventID   string                  `json:"event_id"`
	EventType string                  `json:"event_type"`
	Payload   PurchaseRecordedPayload `json:"payload"`
	Timestamp time.Time               `json:"timestamp"`
}

type PurchaseRecordedPayload struct {
	PurchaseID     int64           `json:"purchase_id"`
	Reference      string          `json:"reference"`
	ProductID      int64           `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       int             `json:"quantity"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	RemainingStock int             `json:"remaining_stock"`
}
