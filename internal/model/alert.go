package model

import "time"

// AlertType tags what kind of event an alert describes.
type AlertType string

const (
	// AlertPriceDrop is emitted by the reconcile pass when a promo match
	// beats the price paid.
	AlertPriceDrop AlertType = "price_drop"
	// AlertExpiringSoon is reserved; no component produces it yet.
	AlertExpiringSoon AlertType = "expiring_soon"
	// AlertReadyToClaim is reserved; no component produces it yet.
	AlertReadyToClaim AlertType = "ready_to_claim"
)

// Alert is a notification record tied to a tracked item. Alerts are
// append-only until explicitly cleared and display newest-first.
type Alert struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	Type      AlertType `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}
