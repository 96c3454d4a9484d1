package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adjustly/adjustly/internal/model"
)

// GetSettings returns the single settings record, or the defaults when none
// has been saved yet.
func (s *SQLiteStorage) GetSettings(ctx context.Context) (model.AppSettings, error) {
	if err := validateContext(ctx); err != nil {
		return model.AppSettings{}, err
	}
	return s.getSettingsTx(ctx, s.db)
}

func (s *SQLiteStorage) getSettingsTx(ctx context.Context, q queryable) (model.AppSettings, error) {
	var (
		settings model.AppSettings
		darkMode string
	)

	err := q.QueryRowContext(ctx, `
		SELECT adjustment_window_days, dark_mode, costco_sync_enabled
		FROM settings
		WHERE id = 1
	`).Scan(&settings.AdjustmentWindowDays, &darkMode, &settings.CostcoSyncEnabled)

	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return model.AppSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	settings.DarkMode = model.DarkMode(darkMode)
	return settings, nil
}

// UpdateSettings merges the patch into the settings record inside one
// transaction, creating the record from defaults on first write.
func (s *SQLiteStorage) UpdateSettings(ctx context.Context, patch model.SettingsPatch) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := s.getSettingsTx(ctx, tx)
	if err != nil {
		return err
	}

	updated := patch.Apply(current)
	if updated.AdjustmentWindowDays <= 0 {
		return fmt.Errorf("adjustment window must be positive, got %d", updated.AdjustmentWindowDays)
	}
	switch updated.DarkMode {
	case model.DarkModeSystem, model.DarkModeLight, model.DarkModeDark:
	default:
		return fmt.Errorf("unknown dark mode %q", updated.DarkMode)
	}

	if err := s.saveSettingsTx(ctx, tx, updated); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStorage) saveSettingsTx(ctx context.Context, q queryable, settings model.AppSettings) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO settings (id, adjustment_window_days, dark_mode, costco_sync_enabled)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			adjustment_window_days = excluded.adjustment_window_days,
			dark_mode = excluded.dark_mode,
			costco_sync_enabled = excluded.costco_sync_enabled
	`, settings.AdjustmentWindowDays, string(settings.DarkMode), settings.CostcoSyncEnabled)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
