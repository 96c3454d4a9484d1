package model

import "time"

// Promo is one catalog entry: a time-bounded set of discounted item prices.
// Catalog entries are static reference data, versioned with the catalog file
// and read-only at runtime.
type Promo struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Start Date        `json:"start"`
	End   Date        `json:"end"`
	Items []PromoItem `json:"items"`
}

// PromoItem maps a retailer item number to its promo unit price.
type PromoItem struct {
	ItemNumber     string `json:"item_number"`
	PromoUnitPrice Money  `json:"promo_unit_price"`
}

// ActiveAt reports whether the promo window covers the given instant. The
// end date is inclusive through end of day.
func (p *Promo) ActiveAt(now time.Time) bool {
	return !now.Before(p.Start.StartOfDay()) && !now.After(p.End.EndOfDay())
}

// PriceFor looks up the promo price for an item number within this promo.
func (p *Promo) PriceFor(itemNumber string) (Money, bool) {
	for _, item := range p.Items {
		if item.ItemNumber == itemNumber {
			return item.PromoUnitPrice, true
		}
	}
	return 0, false
}
