// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/adjustly/adjustly/internal/model"
)

// Storage defines the contract for the item store. The store exclusively
// owns all tracked items, alerts, and settings; other components receive
// values for a single computation and write results back through these
// operations.
type Storage interface {
	// Item operations
	AddItem(ctx context.Context, item model.TrackedItem) (string, error)
	GetItem(ctx context.Context, id string) (*model.TrackedItem, error)
	ListItems(ctx context.Context) ([]model.TrackedItem, error)
	UpdateItem(ctx context.Context, id string, patch model.ItemPatch) error
	DeleteItem(ctx context.Context, id string) error

	// Alert operations
	AddAlert(ctx context.Context, alert model.Alert) (string, error)
	ListAlerts(ctx context.Context) ([]model.Alert, error)
	UnreadAlertCount(ctx context.Context) (int, error)
	MarkAlertRead(ctx context.Context, id string) error
	ClearAlerts(ctx context.Context) error

	// Settings operations
	GetSettings(ctx context.Context) (model.AppSettings, error)
	UpdateSettings(ctx context.Context, patch model.SettingsPatch) error

	// Snapshot operations
	ExportData(ctx context.Context) ([]byte, error)
	ImportData(ctx context.Context, data []byte) error
	WipeAllData(ctx context.Context) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
