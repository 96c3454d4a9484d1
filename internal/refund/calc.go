// Package refund derives display status, claim countdown, and potential
// refund amounts for tracked items. These functions are the single source of
// truth for status; every surface that shows an item calls them instead of
// re-deriving state.
package refund

import (
	"math"
	"time"

	"github.com/adjustly/adjustly/internal/model"
)

// DaysLeft returns the whole days remaining before the price-adjustment
// deadline, computed as ceil(deadline - now). The deadline is windowDays
// calendar days after the purchase date, so the result is stable across DST
// transitions. Zero or negative once the deadline has arrived or passed.
func DaysLeft(purchaseDate model.Date, windowDays int, now time.Time) int {
	deadline := purchaseDate.AddDays(windowDays).StartOfDay()
	remaining := deadline.Sub(now)
	return int(math.Ceil(remaining.Hours() / 24))
}

// Status derives the display status of an item at the given instant. Expiry
// always wins: a claimed item or one past its window is expired even when a
// price drop exists. An item with price evidence is ready only if that
// evidence strictly beats the price paid; otherwise it is merely possible.
func Status(item model.TrackedItem, windowDays int, now time.Time) model.ItemStatus {
	if item.Claimed {
		return model.StatusExpired
	}
	if DaysLeft(item.PurchaseDate, windowDays, now) <= 0 {
		return model.StatusExpired
	}

	current, ok := item.CurrentPrice()
	if !ok {
		return model.StatusTracking
	}
	if current < item.UnitPrice {
		return model.StatusReady
	}
	return model.StatusPossible
}

// PotentialRefund returns the claimable amount for an item: the per-unit
// drop times quantity, never negative, and exactly zero when the current
// price evidence does not beat the price paid.
func PotentialRefund(item model.TrackedItem) model.Money {
	current, ok := item.CurrentPrice()
	if !ok || current >= item.UnitPrice {
		return 0
	}
	return (item.UnitPrice - current).MulQty(item.Quantity)
}

// Summary bundles the three computed-at-read values for one item, evaluated
// against a single consistent now.
type Summary struct {
	Status          model.ItemStatus
	DaysLeft        int
	PotentialRefund model.Money
}

// Summarize evaluates status, days left, and refund for an item in one call
// so the clock is sampled exactly once per item.
func Summarize(item model.TrackedItem, windowDays int, now time.Time) Summary {
	return Summary{
		Status:          Status(item, windowDays, now),
		DaysLeft:        DaysLeft(item.PurchaseDate, windowDays, now),
		PotentialRefund: PotentialRefund(item),
	}
}
