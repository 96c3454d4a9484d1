package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adjustly/adjustly/internal/catalog"
	"github.com/adjustly/adjustly/internal/model"
	"github.com/adjustly/adjustly/internal/storage"
)

func createTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return store
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]model.Promo{
		{
			ID:    "promo-aug",
			Name:  "August Member Savings",
			Start: model.NewDate(2026, time.August, 1),
			End:   model.NewDate(2026, time.August, 28),
			Items: []model.PromoItem{
				{ItemNumber: "1234567", PromoUnitPrice: 1499},
				{ItemNumber: "7777777", PromoUnitPrice: 2500},
			},
		},
	})
	require.NoError(t, err)
	return cat
}

func testNow() time.Time {
	return model.NewDate(2026, time.August, 15).StartOfDay().Add(12 * time.Hour)
}

func TestCheckItemForPromo(t *testing.T) {
	engine := New(testCatalog(t), createTestStorage(t))
	now := testNow()

	t.Run("active promo below paid price", func(t *testing.T) {
		item := model.TrackedItem{ItemNumber: "1234567", UnitPrice: 1999}
		patch := engine.CheckItemForPromo(item, now)
		require.NotNil(t, patch)
		assert.Equal(t, model.Money(1499), *patch.PromoPrice)
		assert.Equal(t, model.DetectionPromoMatch, *patch.DetectionSource)
	})

	t.Run("no promo covers item", func(t *testing.T) {
		item := model.TrackedItem{ItemNumber: "0000000", UnitPrice: 1999}
		assert.Nil(t, engine.CheckItemForPromo(item, now))
	})

	t.Run("promo price equal to paid price", func(t *testing.T) {
		item := model.TrackedItem{ItemNumber: "7777777", UnitPrice: 2500}
		assert.Nil(t, engine.CheckItemForPromo(item, now))
	})

	t.Run("promo price above paid price", func(t *testing.T) {
		item := model.TrackedItem{ItemNumber: "7777777", UnitPrice: 1999}
		assert.Nil(t, engine.CheckItemForPromo(item, now))
	})

	t.Run("existing promo match sticks", func(t *testing.T) {
		recorded := model.Money(1799)
		item := model.TrackedItem{
			ItemNumber:      "1234567",
			UnitPrice:       1999,
			PromoPrice:      &recorded,
			DetectionSource: model.DetectionPromoMatch,
		}
		assert.Nil(t, engine.CheckItemForPromo(item, now))
	})

	t.Run("verified price does not block a match", func(t *testing.T) {
		verified := model.Money(1899)
		item := model.TrackedItem{
			ItemNumber:      "1234567",
			UnitPrice:       1999,
			VerifiedPrice:   &verified,
			DetectionSource: model.DetectionVerifiedShelf,
		}
		patch := engine.CheckItemForPromo(item, now)
		require.NotNil(t, patch)
		assert.Equal(t, model.Money(1499), *patch.PromoPrice)
	})

	t.Run("outside promo window", func(t *testing.T) {
		item := model.TrackedItem{ItemNumber: "1234567", UnitPrice: 1999}
		september := model.NewDate(2026, time.September, 5).StartOfDay().Add(12 * time.Hour)
		assert.Nil(t, engine.CheckItemForPromo(item, september))
	})
}

func TestReconcileAll(t *testing.T) {
	store := createTestStorage(t)
	engine := New(testCatalog(t), store)
	ctx := context.Background()
	now := testNow()

	matchedID, err := store.AddItem(ctx, model.TrackedItem{
		ItemNumber:   "1234567",
		Description:  "Kirkland Signature Organic Extra Virgin Olive Oil, 2L",
		UnitPrice:    1999,
		Quantity:     2,
		PurchaseDate: model.NewDate(2026, time.August, 10),
	})
	require.NoError(t, err)

	unmatchedID, err := store.AddItem(ctx, model.TrackedItem{
		ItemNumber:   "9876543",
		Description:  "Charmin Ultra Soft Toilet Paper, 30 Mega Rolls",
		UnitPrice:    3299,
		Quantity:     1,
		PurchaseDate: model.NewDate(2026, time.August, 10),
	})
	require.NoError(t, err)

	matches, err := engine.ReconcileAll(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, matches)

	matched, err := store.GetItem(ctx, matchedID)
	require.NoError(t, err)
	require.NotNil(t, matched.PromoPrice)
	assert.Equal(t, model.Money(1499), *matched.PromoPrice)
	assert.Equal(t, model.DetectionPromoMatch, matched.DetectionSource)

	unmatched, err := store.GetItem(ctx, unmatchedID)
	require.NoError(t, err)
	assert.Nil(t, unmatched.PromoPrice)
	assert.Empty(t, unmatched.DetectionSource)

	alerts, err := store.ListAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, matchedID, alerts[0].ItemID)
	assert.Equal(t, model.AlertPriceDrop, alerts[0].Type)
	assert.False(t, alerts[0].Read)
	assert.Equal(t,
		"Price drop detected for Kirkland Signature Organic Extra Virgin Olive Oil, 2L! Now $14.99",
		alerts[0].Message)
}

func TestReconcileAllSecondPassFindsNothing(t *testing.T) {
	store := createTestStorage(t)
	engine := New(testCatalog(t), store)
	ctx := context.Background()
	now := testNow()

	_, err := store.AddItem(ctx, model.TrackedItem{
		ItemNumber:   "1234567",
		Description:  "Olive Oil",
		UnitPrice:    1999,
		Quantity:     1,
		PurchaseDate: model.NewDate(2026, time.August, 10),
	})
	require.NoError(t, err)

	matches, err := engine.ReconcileAll(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, matches)

	matches, err = engine.ReconcileAll(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 0, matches)

	// No duplicate alert either.
	alerts, err := store.ListAlerts(ctx)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}

func TestReconcileAllEmptyStore(t *testing.T) {
	engine := New(testCatalog(t), createTestStorage(t))

	matches, err := engine.ReconcileAll(context.Background(), testNow())
	require.NoError(t, err)
	assert.Equal(t, 0, matches)
}

func TestReconcileAllProgressCallback(t *testing.T) {
	store := createTestStorage(t)
	engine := New(testCatalog(t), store)
	ctx := context.Background()

	for _, num := range []string{"1234567", "9876543", "5555555"} {
		_, err := store.AddItem(ctx, model.TrackedItem{
			ItemNumber:   num,
			Description:  "Item " + num,
			UnitPrice:    1999,
			Quantity:     1,
			PurchaseDate: model.NewDate(2026, time.August, 10),
		})
		require.NoError(t, err)
	}

	var calls []int
	engine.SetProgress(func(done, total int) {
		assert.Equal(t, 3, total)
		calls = append(calls, done)
	})

	_, err := engine.ReconcileAll(ctx, testNow())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestReconcileAllHonorsCancellation(t *testing.T) {
	store := createTestStorage(t)
	engine := New(testCatalog(t), store)

	_, err := store.AddItem(context.Background(), model.TrackedItem{
		ItemNumber:   "1234567",
		Description:  "Olive Oil",
		UnitPrice:    1999,
		Quantity:     1,
		PurchaseDate: model.NewDate(2026, time.August, 10),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = engine.ReconcileAll(ctx, testNow())
	assert.ErrorIs(t, err, context.Canceled)
}
