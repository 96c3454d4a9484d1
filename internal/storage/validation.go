// Package storage provides the data persistence layer for the adjustly application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adjustly/adjustly/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrInvalidItem  = errors.New("invalid tracked item")
	ErrInvalidAlert = errors.New("invalid alert")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateItem validates a tracked item before insert.
func validateItem(item *model.TrackedItem) error {
	if strings.TrimSpace(item.ItemNumber) == "" {
		return fmt.Errorf("%w: missing item number", ErrInvalidItem)
	}
	if strings.TrimSpace(item.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidItem)
	}
	if item.UnitPrice <= 0 {
		return fmt.Errorf("%w: unit price must be positive", ErrInvalidItem)
	}
	if item.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidItem)
	}
	if item.PurchaseDate.IsZero() {
		return fmt.Errorf("%w: missing purchase date", ErrInvalidItem)
	}
	switch item.DetectionSource {
	case "", model.DetectionPromoMatch, model.DetectionVerifiedShelf:
	default:
		return fmt.Errorf("%w: unknown detection source %q", ErrInvalidItem, item.DetectionSource)
	}
	return nil
}

// validateAlert validates an alert before insert.
func validateAlert(alert *model.Alert) error {
	if strings.TrimSpace(alert.ItemID) == "" {
		return fmt.Errorf("%w: missing item id", ErrInvalidAlert)
	}
	if strings.TrimSpace(alert.Message) == "" {
		return fmt.Errorf("%w: missing message", ErrInvalidAlert)
	}
	switch alert.Type {
	case model.AlertPriceDrop, model.AlertExpiringSoon, model.AlertReadyToClaim:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidAlert, alert.Type)
	}
	return nil
}
