package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/adjustly/adjustly/internal/common"
	"github.com/adjustly/adjustly/internal/model"
)

// Snapshot is the serialized form of the whole store: one blob holding
// items, alerts, and settings.
type Snapshot struct {
	Items    []model.TrackedItem `json:"items"`
	Alerts   []model.Alert       `json:"alerts"`
	Settings model.AppSettings   `json:"settings"`
}

// ExportData serializes the full store state as indented JSON.
func (s *SQLiteStorage) ExportData(ctx context.Context) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	items, err := s.listItemsTx(ctx, s.db)
	if err != nil {
		return nil, err
	}
	alerts, err := s.listAlertsTx(ctx, s.db)
	if err != nil {
		return nil, err
	}
	settings, err := s.getSettingsTx(ctx, s.db)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(Snapshot{
		Items:    items,
		Alerts:   alerts,
		Settings: settings,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return data, nil
}

// ImportData replaces the whole store with the snapshot's contents. The
// snapshot is rejected, with existing state untouched, unless it parses and
// its item collection is a JSON array of well-formed items. Settings fields
// missing from the snapshot take their defaults.
func (s *SQLiteStorage) ImportData(ctx context.Context, data []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var raw struct {
		Items    json.RawMessage `json:"items"`
		Alerts   []model.Alert   `json:"alerts"`
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidSnapshot, err)
	}
	// The items collection must be structurally an array. A missing key or a
	// null token would otherwise decode to a nil slice and silently wipe the
	// store.
	if !isJSONArray(raw.Items) {
		return fmt.Errorf("%w: items is not a sequence", common.ErrInvalidSnapshot)
	}

	var items []model.TrackedItem
	if err := json.Unmarshal(raw.Items, &items); err != nil {
		return fmt.Errorf("%w: items is not a sequence: %v", common.ErrInvalidSnapshot, err)
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
		if err := validateItem(&items[i]); err != nil {
			return fmt.Errorf("%w: item at index %d: %v", common.ErrInvalidSnapshot, i, err)
		}
	}

	// Older snapshots may omit settings fields entirely; unmarshal over the
	// defaults so missing keys keep their default values.
	settings := model.DefaultSettings()
	if len(raw.Settings) > 0 {
		if err := json.Unmarshal(raw.Settings, &settings); err != nil {
			return fmt.Errorf("%w: settings: %v", common.ErrInvalidSnapshot, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"alerts", "items", "settings"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i := range items {
		if err := s.insertItemTx(ctx, tx, &items[i]); err != nil {
			return err
		}
	}
	for i := range raw.Alerts {
		alert := raw.Alerts[i]
		if alert.ID == "" {
			alert.ID = uuid.New().String()
		}
		if err := s.insertAlertTx(ctx, tx, &alert); err != nil {
			return err
		}
	}
	if err := s.saveSettingsTx(ctx, tx, settings); err != nil {
		return err
	}

	return tx.Commit()
}

// isJSONArray reports whether the raw token's first non-space byte opens an
// array.
func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

// WipeAllData clears items and alerts and resets settings to defaults.
func (s *SQLiteStorage) WipeAllData(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"alerts", "items", "settings"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return tx.Commit()
}
