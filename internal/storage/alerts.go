package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adjustly/adjustly/internal/model"
)

// AddAlert assigns an id and creation timestamp, inserts the alert, and
// returns the id. Alerts are append-only until explicitly cleared.
func (s *SQLiteStorage) AddAlert(ctx context.Context, alert model.Alert) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateAlert(&alert); err != nil {
		return "", err
	}

	alert.ID = uuid.New().String()
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}

	if err := s.insertAlertTx(ctx, s.db, &alert); err != nil {
		return "", err
	}
	return alert.ID, nil
}

func (s *SQLiteStorage) insertAlertTx(ctx context.Context, q queryable, alert *model.Alert) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO alerts (id, item_id, type, message, created_at, read)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		alert.ID,
		alert.ItemID,
		string(alert.Type),
		alert.Message,
		alert.CreatedAt,
		alert.Read,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert %s: %w", alert.ID, err)
	}
	return nil
}

// ListAlerts returns all alerts newest-first.
func (s *SQLiteStorage) ListAlerts(ctx context.Context) ([]model.Alert, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listAlertsTx(ctx, s.db)
}

func (s *SQLiteStorage) listAlertsTx(ctx context.Context, q queryable) ([]model.Alert, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, item_id, type, message, created_at, read
		FROM alerts
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	alerts := make([]model.Alert, 0)
	for rows.Next() {
		var (
			alert     model.Alert
			alertType string
		)
		if scanErr := rows.Scan(
			&alert.ID,
			&alert.ItemID,
			&alertType,
			&alert.Message,
			&alert.CreatedAt,
			&alert.Read,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", scanErr)
		}
		alert.Type = model.AlertType(alertType)
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}
	return alerts, nil
}

// UnreadAlertCount returns how many alerts are unread.
func (s *SQLiteStorage) UnreadAlertCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alerts WHERE read = 0`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread alerts: %w", err)
	}
	return count, nil
}

// MarkAlertRead flags an alert as read. An unknown id is a silent no-op.
func (s *SQLiteStorage) MarkAlertRead(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `UPDATE alerts SET read = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to mark alert %s read: %w", id, err)
	}
	return nil
}

// ClearAlerts deletes all alerts.
func (s *SQLiteStorage) ClearAlerts(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM alerts`); err != nil {
		return fmt.Errorf("failed to clear alerts: %w", err)
	}
	return nil
}
