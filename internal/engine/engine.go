// Package engine implements the promo-matching engine and the batch
// reconciliation pass that runs it over every tracked item.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/adjustly/adjustly/internal/catalog"
	"github.com/adjustly/adjustly/internal/model"
	"github.com/adjustly/adjustly/internal/service"
)

// MatchEngine checks tracked items against the promo catalog and writes
// discovered price drops back through the item store.
type MatchEngine struct {
	catalog  *catalog.Catalog
	storage  service.Storage
	progress func(done, total int)
}

// New creates a match engine over the given catalog and store.
func New(cat *catalog.Catalog, storage service.Storage) *MatchEngine {
	return &MatchEngine{
		catalog: cat,
		storage: storage,
	}
}

// SetProgress installs a callback invoked after each item during a
// reconcile pass. Used by the CLI to drive a progress bar.
func (e *MatchEngine) SetProgress(fn func(done, total int)) {
	e.progress = fn
}

// CheckItemForPromo decides whether an active promo gives the item a lower
// price than was paid. It returns a partial patch to merge, or nil when
// nothing applies:
//   - an item already marked promo_match is never re-evaluated; the first
//     recorded match sticks, even if a cheaper promo appears later
//   - a promo at or above the price paid is not a refund opportunity
func (e *MatchEngine) CheckItemForPromo(item model.TrackedItem, now time.Time) *model.ItemPatch {
	if item.DetectionSource == model.DetectionPromoMatch {
		return nil
	}

	match := e.catalog.FindPromoMatch(item.ItemNumber, now)
	if match == nil {
		return nil
	}

	if match.PromoPrice >= item.UnitPrice {
		return nil
	}

	price := match.PromoPrice
	source := model.DetectionPromoMatch
	return &model.ItemPatch{
		PromoPrice:      &price,
		DetectionSource: &source,
	}
}

// ReconcileAll runs the matcher over the full item collection once and
// returns how many matches were found. For each match it merges the patch
// into the item and emits exactly one unread price_drop alert. The clock is
// sampled once for the whole pass so no item straddles a promo or window
// boundary mid-run.
//
// Running the pass twice on unchanged data finds nothing the second time,
// because recorded matches short-circuit. A promo that became active since
// the previous run will still match and alert for items not yet matched;
// that rescan behavior is intended.
func (e *MatchEngine) ReconcileAll(ctx context.Context, now time.Time) (int, error) {
	items, err := e.storage.ListItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list items: %w", err)
	}

	slog.Info("Starting promo reconciliation",
		"items", len(items),
		"promos", e.catalog.Len())

	matchCount := 0
	for i, item := range items {
		if ctx.Err() != nil {
			return matchCount, ctx.Err()
		}

		patch := e.CheckItemForPromo(item, now)
		if patch != nil {
			if err := e.storage.UpdateItem(ctx, item.ID, *patch); err != nil {
				return matchCount, fmt.Errorf("failed to update item %s: %w", item.ID, err)
			}

			alert := model.Alert{
				ItemID:  item.ID,
				Type:    model.AlertPriceDrop,
				Message: fmt.Sprintf("Price drop detected for %s! Now %s", item.Description, *patch.PromoPrice),
				Read:    false,
			}
			if _, err := e.storage.AddAlert(ctx, alert); err != nil {
				return matchCount, fmt.Errorf("failed to add alert for item %s: %w", item.ID, err)
			}

			slog.Debug("Promo match recorded",
				"item", item.ItemNumber,
				"promo_price", patch.PromoPrice.String())
			matchCount++
		}

		if e.progress != nil {
			e.progress(i+1, len(items))
		}
	}

	slog.Info("Promo reconciliation complete", "matches", matchCount)
	return matchCount, nil
}
