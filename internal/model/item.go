// Package model defines the core domain models used throughout the application.
package model

// ItemStatus is the display state of a tracked item, derived at read time
// from its prices, purchase date, and the adjustment window.
type ItemStatus string

// Item status constants.
const (
	StatusTracking ItemStatus = "tracking"
	StatusPossible ItemStatus = "possible"
	StatusReady    ItemStatus = "ready"
	StatusExpired  ItemStatus = "expired"
)

// DetectionSource indicates which mechanism produced the currently stored
// lower price.
type DetectionSource string

const (
	// DetectionPromoMatch indicates the price came from a promo catalog match.
	DetectionPromoMatch DetectionSource = "promo_match"
	// DetectionVerifiedShelf indicates a shelf price the user entered by hand.
	DetectionVerifiedShelf DetectionSource = "verified_shelf"
)

// TrackedItem is one purchased line item being monitored for a price drop.
// Status, days left, and potential refund are never stored; they are
// recomputed against the clock and current settings on every read.
type TrackedItem struct {
	ID              string          `json:"id"`
	ItemNumber      string          `json:"itemNumber"`
	Description     string          `json:"description"`
	UnitPrice       Money           `json:"unitPrice"`
	Quantity        int             `json:"quantity"`
	PurchaseDate    Date            `json:"purchaseDate"`
	Warehouse       string          `json:"warehouse,omitempty"`
	ReceiptImage    string          `json:"receiptImage,omitempty"`
	PromoPrice      *Money          `json:"promoPrice,omitempty"`
	VerifiedPrice   *Money          `json:"verifiedPrice,omitempty"`
	DetectionSource DetectionSource `json:"detectionSource,omitempty"`
	Claimed         bool            `json:"claimed,omitempty"`
}

// CurrentPrice returns the lower price evidence for the item. A promo price
// takes precedence over a verified shelf price when both are present, even
// if the verified price is lower.
func (i *TrackedItem) CurrentPrice() (Money, bool) {
	if i.PromoPrice != nil {
		return *i.PromoPrice, true
	}
	if i.VerifiedPrice != nil {
		return *i.VerifiedPrice, true
	}
	return 0, false
}

// ItemPatch is a partial update to a tracked item. Only non-nil fields are
// applied; the item's identity is never patchable.
type ItemPatch struct {
	Description     *string
	UnitPrice       *Money
	Quantity        *int
	PurchaseDate    *Date
	Warehouse       *string
	ReceiptImage    *string
	PromoPrice      *Money
	VerifiedPrice   *Money
	DetectionSource *DetectionSource
	Claimed         *bool
}

// IsZero reports whether the patch sets no fields.
func (p ItemPatch) IsZero() bool {
	return p == ItemPatch{}
}

// Apply merges the patch into a copy of the item and returns the new
// version. The receiver item is left untouched.
func (p ItemPatch) Apply(item TrackedItem) TrackedItem {
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.UnitPrice != nil {
		item.UnitPrice = *p.UnitPrice
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.PurchaseDate != nil {
		item.PurchaseDate = *p.PurchaseDate
	}
	if p.Warehouse != nil {
		item.Warehouse = *p.Warehouse
	}
	if p.ReceiptImage != nil {
		item.ReceiptImage = *p.ReceiptImage
	}
	if p.PromoPrice != nil {
		price := *p.PromoPrice
		item.PromoPrice = &price
	}
	if p.VerifiedPrice != nil {
		price := *p.VerifiedPrice
		item.VerifiedPrice = &price
	}
	if p.DetectionSource != nil {
		item.DetectionSource = *p.DetectionSource
	}
	if p.Claimed != nil {
		item.Claimed = *p.Claimed
	}
	return item
}
