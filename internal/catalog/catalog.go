// Package catalog loads the promo price catalog and answers promo-match
// queries against it. The catalog is an ordered sequence of promos loaded
// once at startup; order is authoritative for tie-breaks and the data is
// read-only for the rest of the session.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/adjustly/adjustly/internal/common"
	"github.com/adjustly/adjustly/internal/model"
)

// Catalog holds the ordered promo list.
type Catalog struct {
	promos []model.Promo
}

// PromoMatch describes the promo that covers an item number.
type PromoMatch struct {
	PromoID    string
	PromoName  string
	PromoPrice model.Money
}

// Load reads and validates a promo catalog from a JSON file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from user config
	if err != nil {
		return nil, fmt.Errorf("failed to read promo catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("promo catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a promo catalog from JSON. Malformed entries fail the whole
// load; a bad catalog is a data error to surface once, not to swallow
// per-item during reconciliation.
func Parse(data []byte) (*Catalog, error) {
	var promos []model.Promo
	if err := json.Unmarshal(data, &promos); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidCatalog, err)
	}
	if err := validatePromos(promos); err != nil {
		return nil, err
	}
	return &Catalog{promos: promos}, nil
}

// New builds a catalog from already-decoded promos, validating them the same
// way Parse does.
func New(promos []model.Promo) (*Catalog, error) {
	if err := validatePromos(promos); err != nil {
		return nil, err
	}
	return &Catalog{promos: promos}, nil
}

func validatePromos(promos []model.Promo) error {
	for i, promo := range promos {
		if promo.ID == "" {
			return fmt.Errorf("%w: promo at index %d: missing id", common.ErrInvalidCatalog, i)
		}
		if promo.Name == "" {
			return fmt.Errorf("%w: promo %s: missing name", common.ErrInvalidCatalog, promo.ID)
		}
		if promo.Start.IsZero() || promo.End.IsZero() {
			return fmt.Errorf("%w: promo %s: missing start or end date", common.ErrInvalidCatalog, promo.ID)
		}
		if promo.End.Before(promo.Start.Time) {
			return fmt.Errorf("%w: promo %s: end %s before start %s", common.ErrInvalidCatalog, promo.ID, promo.End, promo.Start)
		}
		seen := make(map[string]bool, len(promo.Items))
		for _, item := range promo.Items {
			if item.ItemNumber == "" {
				return fmt.Errorf("%w: promo %s: item with empty item number", common.ErrInvalidCatalog, promo.ID)
			}
			if seen[item.ItemNumber] {
				return fmt.Errorf("%w: promo %s: duplicate item number %s", common.ErrInvalidCatalog, promo.ID, item.ItemNumber)
			}
			seen[item.ItemNumber] = true
			if item.PromoUnitPrice <= 0 {
				return fmt.Errorf("%w: promo %s: item %s has non-positive price", common.ErrInvalidCatalog, promo.ID, item.ItemNumber)
			}
		}
	}
	return nil
}

// Promos returns the catalog entries in catalog order.
func (c *Catalog) Promos() []model.Promo {
	return c.promos
}

// Len returns the number of promos in the catalog.
func (c *Catalog) Len() int {
	return len(c.promos)
}

// FindPromoMatch returns the promo covering itemNumber at the given instant,
// or nil when no active promo lists it. Promos are scanned in catalog order
// and the first active promo that lists the item wins; when overlapping
// promos cover the same item at different prices, the earliest-listed entry
// is the match. That tie-break is deliberate policy, which is why catalog
// order must stay stable across versions.
func (c *Catalog) FindPromoMatch(itemNumber string, now time.Time) *PromoMatch {
	for i := range c.promos {
		promo := &c.promos[i]
		if !promo.ActiveAt(now) {
			continue
		}
		if price, ok := promo.PriceFor(itemNumber); ok {
			return &PromoMatch{
				PromoID:    promo.ID,
				PromoName:  promo.Name,
				PromoPrice: price,
			}
		}
	}
	return nil
}
