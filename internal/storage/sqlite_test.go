package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adjustly/adjustly/internal/common"
	"github.com/adjustly/adjustly/internal/model"
)

func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func testItem() model.TrackedItem {
	return model.TrackedItem{
		ItemNumber:   "1234567",
		Description:  "Kirkland Signature Organic Extra Virgin Olive Oil, 2L",
		UnitPrice:    1999,
		Quantity:     2,
		PurchaseDate: model.NewDate(2026, time.August, 15),
		Warehouse:    "San Francisco #123",
	}
}

func TestAddAndGetItem(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id, err := store.AddItem(ctx, testItem())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := store.GetItem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "1234567", got.ItemNumber)
	assert.Equal(t, model.Money(1999), got.UnitPrice)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, "2026-08-15", got.PurchaseDate.String())
	assert.Nil(t, got.PromoPrice)
	assert.Nil(t, got.VerifiedPrice)
	assert.Empty(t, got.DetectionSource)
	assert.False(t, got.Claimed)
}

func TestAddItemAssignsUniqueIDs(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id1, err := store.AddItem(ctx, testItem())
	require.NoError(t, err)
	id2, err := store.AddItem(ctx, testItem())
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
}

func TestAddItemValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*model.TrackedItem)
	}{
		{name: "missing item number", mutate: func(i *model.TrackedItem) { i.ItemNumber = "" }},
		{name: "missing description", mutate: func(i *model.TrackedItem) { i.Description = "" }},
		{name: "zero price", mutate: func(i *model.TrackedItem) { i.UnitPrice = 0 }},
		{name: "negative price", mutate: func(i *model.TrackedItem) { i.UnitPrice = -100 }},
		{name: "zero quantity", mutate: func(i *model.TrackedItem) { i.Quantity = 0 }},
		{name: "missing purchase date", mutate: func(i *model.TrackedItem) { i.PurchaseDate = model.Date{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := testItem()
			tt.mutate(&item)
			_, err := store.AddItem(ctx, item)
			assert.Error(t, err)
		})
	}
}

func TestGetItemNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.GetItem(ctx, "no-such-id")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListItemsInsertionOrder(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	first := testItem()
	second := testItem()
	second.ItemNumber = "9876543"
	second.Description = "Charmin Ultra Soft Toilet Paper, 30 Mega Rolls"

	id1, err := store.AddItem(ctx, first)
	require.NoError(t, err)
	id2, err := store.AddItem(ctx, second)
	require.NoError(t, err)

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, id1, items[0].ID)
	assert.Equal(t, id2, items[1].ID)
}

func TestUpdateItemMergesOnlySetFields(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id, err := store.AddItem(ctx, testItem())
	require.NoError(t, err)

	promo := model.Money(1499)
	source := model.DetectionPromoMatch
	err = store.UpdateItem(ctx, id, model.ItemPatch{
		PromoPrice:      &promo,
		DetectionSource: &source,
	})
	require.NoError(t, err)

	got, err := store.GetItem(ctx, id)
	require.NoError(t, err)

	require.NotNil(t, got.PromoPrice)
	assert.Equal(t, model.Money(1499), *got.PromoPrice)
	assert.Equal(t, model.DetectionPromoMatch, got.DetectionSource)

	// Everything else is untouched.
	assert.Equal(t, "1234567", got.ItemNumber)
	assert.Equal(t, model.Money(1999), got.UnitPrice)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, "San Francisco #123", got.Warehouse)
	assert.Nil(t, got.VerifiedPrice)
}

func TestUpdateItemSequentialPatches(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id, err := store.AddItem(ctx, testItem())
	require.NoError(t, err)

	verified := model.Money(1899)
	source := model.DetectionVerifiedShelf
	require.NoError(t, store.UpdateItem(ctx, id, model.ItemPatch{
		VerifiedPrice:   &verified,
		DetectionSource: &source,
	}))

	claimed := true
	require.NoError(t, store.UpdateItem(ctx, id, model.ItemPatch{Claimed: &claimed}))

	// The second patch merged into the result of the first.
	got, err := store.GetItem(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.VerifiedPrice)
	assert.Equal(t, model.Money(1899), *got.VerifiedPrice)
	assert.Equal(t, model.DetectionVerifiedShelf, got.DetectionSource)
	assert.True(t, got.Claimed)
}

func TestUpdateItemUnknownIDIsNoOp(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id, err := store.AddItem(ctx, testItem())
	require.NoError(t, err)

	claimed := true
	require.NoError(t, store.UpdateItem(ctx, "no-such-id", model.ItemPatch{Claimed: &claimed}))

	got, err := store.GetItem(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.Claimed)
}

func TestDeleteItem(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id, err := store.AddItem(ctx, testItem())
	require.NoError(t, err)

	require.NoError(t, store.DeleteItem(ctx, id))

	_, err = store.GetItem(ctx, id)
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.DeleteItem(ctx, id))
}

func TestAlertsNewestFirst(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	itemID, err := store.AddItem(ctx, testItem())
	require.NoError(t, err)

	base := time.Date(2026, time.August, 20, 10, 0, 0, 0, time.UTC)
	for i, msg := range []string{"first", "second", "third"} {
		_, err := store.AddAlert(ctx, model.Alert{
			ItemID:    itemID,
			Type:      model.AlertPriceDrop,
			Message:   msg,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	alerts, err := store.ListAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, "third", alerts[0].Message)
	assert.Equal(t, "second", alerts[1].Message)
	assert.Equal(t, "first", alerts[2].Message)
}

func TestAlertReadFlow(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	itemID, err := store.AddItem(ctx, testItem())
	require.NoError(t, err)

	alertID, err := store.AddAlert(ctx, model.Alert{
		ItemID:  itemID,
		Type:    model.AlertPriceDrop,
		Message: "Price drop detected for Olive Oil! Now $14.99",
	})
	require.NoError(t, err)

	count, err := store.UnreadAlertCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, store.MarkAlertRead(ctx, alertID))

	count, err = store.UnreadAlertCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Unknown id is a no-op, not an error.
	assert.NoError(t, store.MarkAlertRead(ctx, "no-such-id"))

	require.NoError(t, store.ClearAlerts(ctx))
	alerts, err := store.ListAlerts(ctx)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestSettingsDefaultsAndMerge(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	settings, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)

	days := 14
	require.NoError(t, store.UpdateSettings(ctx, model.SettingsPatch{AdjustmentWindowDays: &days}))

	settings, err = store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 14, settings.AdjustmentWindowDays)
	assert.Equal(t, model.DarkModeSystem, settings.DarkMode)
	assert.False(t, settings.CostcoSyncEnabled)

	mode := model.DarkModeDark
	require.NoError(t, store.UpdateSettings(ctx, model.SettingsPatch{DarkMode: &mode}))

	settings, err = store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 14, settings.AdjustmentWindowDays)
	assert.Equal(t, model.DarkModeDark, settings.DarkMode)
}

func TestSettingsValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	badDays := 0
	assert.Error(t, store.UpdateSettings(ctx, model.SettingsPatch{AdjustmentWindowDays: &badDays}))

	badMode := model.DarkMode("sepia")
	assert.Error(t, store.UpdateSettings(ctx, model.SettingsPatch{DarkMode: &badMode}))
}

func TestMigrateIdempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Running migrations again on a current database is a no-op.
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx))
}
