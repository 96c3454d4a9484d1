package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adjustly/adjustly/internal/common"
	"github.com/adjustly/adjustly/internal/model"
)

func testPromos() []model.Promo {
	return []model.Promo{
		{
			ID:    "promo-aug",
			Name:  "August Member Savings",
			Start: model.NewDate(2026, time.August, 1),
			End:   model.NewDate(2026, time.August, 28),
			Items: []model.PromoItem{
				{ItemNumber: "1234567", PromoUnitPrice: 1499},
				{ItemNumber: "2222222", PromoUnitPrice: 899},
			},
		},
		{
			ID:    "promo-overlap",
			Name:  "Flash Sale",
			Start: model.NewDate(2026, time.August, 10),
			End:   model.NewDate(2026, time.August, 20),
			Items: []model.PromoItem{
				{ItemNumber: "1234567", PromoUnitPrice: 999},
			},
		},
		{
			ID:    "promo-sep",
			Name:  "September Savings",
			Start: model.NewDate(2026, time.September, 1),
			End:   model.NewDate(2026, time.September, 28),
			Items: []model.PromoItem{
				{ItemNumber: "9876543", PromoUnitPrice: 2799},
			},
		},
	}
}

func TestFindPromoMatch(t *testing.T) {
	cat, err := New(testPromos())
	require.NoError(t, err)

	now := model.NewDate(2026, time.August, 15).StartOfDay().Add(12 * time.Hour)

	t.Run("active promo matches", func(t *testing.T) {
		match := cat.FindPromoMatch("2222222", now)
		require.NotNil(t, match)
		assert.Equal(t, "promo-aug", match.PromoID)
		assert.Equal(t, "August Member Savings", match.PromoName)
		assert.Equal(t, model.Money(899), match.PromoPrice)
	})

	t.Run("no active promo covers item", func(t *testing.T) {
		assert.Nil(t, cat.FindPromoMatch("9876543", now))
	})

	t.Run("unknown item number", func(t *testing.T) {
		assert.Nil(t, cat.FindPromoMatch("0000000", now))
	})

	t.Run("catalog order breaks ties", func(t *testing.T) {
		// Both August promos are active and list 1234567; the
		// earliest-listed promo wins even though the flash sale is cheaper.
		match := cat.FindPromoMatch("1234567", now)
		require.NotNil(t, match)
		assert.Equal(t, "promo-aug", match.PromoID)
		assert.Equal(t, model.Money(1499), match.PromoPrice)
	})
}

func TestFindPromoMatchWindowBoundaries(t *testing.T) {
	cat, err := New(testPromos())
	require.NoError(t, err)

	t.Run("end date inclusive through end of day", func(t *testing.T) {
		lateOnEndDay := model.NewDate(2026, time.August, 28).StartOfDay().Add(23*time.Hour + 59*time.Minute)
		assert.NotNil(t, cat.FindPromoMatch("2222222", lateOnEndDay))
	})

	t.Run("expired the next morning", func(t *testing.T) {
		nextMorning := model.NewDate(2026, time.August, 29).StartOfDay().Add(1 * time.Minute)
		assert.Nil(t, cat.FindPromoMatch("2222222", nextMorning))
	})

	t.Run("active from start of first day", func(t *testing.T) {
		firstMoment := model.NewDate(2026, time.September, 1).StartOfDay()
		assert.NotNil(t, cat.FindPromoMatch("9876543", firstMoment))
	})

	t.Run("not yet active the day before", func(t *testing.T) {
		dayBefore := model.NewDate(2026, time.August, 31).StartOfDay().Add(12 * time.Hour)
		assert.Nil(t, cat.FindPromoMatch("9876543", dayBefore))
	})
}

func TestParse(t *testing.T) {
	data := []byte(`[
		{
			"id": "promo-1",
			"name": "Member Savings",
			"start": "2026-08-01",
			"end": "2026-08-28",
			"items": [
				{"item_number": "1234567", "promo_unit_price": 14.99}
			]
		}
	]`)

	cat, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, 1, cat.Len())

	promo := cat.Promos()[0]
	assert.Equal(t, "promo-1", promo.ID)
	assert.Equal(t, model.Money(1499), promo.Items[0].PromoUnitPrice)
}

func TestParseRejectsMalformedCatalog(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{{{`},
		{name: "object instead of array", data: `{"id": "promo-1"}`},
		{
			name: "missing id",
			data: `[{"name": "X", "start": "2026-08-01", "end": "2026-08-28", "items": []}]`,
		},
		{
			name: "missing dates",
			data: `[{"id": "p", "name": "X", "items": []}]`,
		},
		{
			name: "end before start",
			data: `[{"id": "p", "name": "X", "start": "2026-08-28", "end": "2026-08-01", "items": []}]`,
		},
		{
			name: "duplicate item numbers",
			data: `[{"id": "p", "name": "X", "start": "2026-08-01", "end": "2026-08-28", "items": [
				{"item_number": "1", "promo_unit_price": 9.99},
				{"item_number": "1", "promo_unit_price": 8.99}
			]}]`,
		},
		{
			name: "non-positive price",
			data: `[{"id": "p", "name": "X", "start": "2026-08-01", "end": "2026-08-28", "items": [
				{"item_number": "1", "promo_unit_price": 0}
			]}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, common.ErrInvalidCatalog)
		})
	}
}

func TestPromosOverlapAllowed(t *testing.T) {
	// Overlapping windows and overlapping item coverage are valid; only
	// duplicates within a single promo are rejected.
	_, err := New(testPromos())
	assert.NoError(t, err)
}
