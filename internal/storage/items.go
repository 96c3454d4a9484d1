package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/adjustly/adjustly/internal/common"
	"github.com/adjustly/adjustly/internal/model"
)

const itemColumns = `id, item_number, description, unit_price_cents, quantity,
	purchase_date, warehouse, receipt_image, promo_price_cents,
	verified_price_cents, detection_source, claimed`

// AddItem assigns a new id to the item, inserts it, and returns the id.
// Existing rows are never touched by an insert.
func (s *SQLiteStorage) AddItem(ctx context.Context, item model.TrackedItem) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateItem(&item); err != nil {
		return "", err
	}

	item.ID = uuid.New().String()
	if err := s.insertItemTx(ctx, s.db, &item); err != nil {
		return "", err
	}
	return item.ID, nil
}

func (s *SQLiteStorage) insertItemTx(ctx context.Context, q queryable, item *model.TrackedItem) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID,
		item.ItemNumber,
		item.Description,
		item.UnitPrice,
		item.Quantity,
		item.PurchaseDate,
		item.Warehouse,
		item.ReceiptImage,
		moneyPtrArg(item.PromoPrice),
		moneyPtrArg(item.VerifiedPrice),
		string(item.DetectionSource),
		item.Claimed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item %s: %w", item.ID, err)
	}
	return nil
}

// GetItem retrieves an item by id. A miss is reported as common.ErrNotFound.
func (s *SQLiteStorage) GetItem(ctx context.Context, id string) (*model.TrackedItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getItemTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getItemTx(ctx context.Context, q queryable, id string) (*model.TrackedItem, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE id = ?
	`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// ListItems returns all tracked items in insertion order.
func (s *SQLiteStorage) ListItems(ctx context.Context) ([]model.TrackedItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listItemsTx(ctx, s.db)
}

func (s *SQLiteStorage) listItemsTx(ctx context.Context, q queryable) ([]model.TrackedItem, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM items
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]model.TrackedItem, 0)
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan item: %w", scanErr)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// UpdateItem merges the patch into the item with the given id. The read and
// write happen inside one transaction, so the merge always applies to the
// latest version of the row. An unknown id is a silent no-op.
func (s *SQLiteStorage) UpdateItem(ctx context.Context, id string, patch model.ItemPatch) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if patch.IsZero() {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := s.getItemTx(ctx, tx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	updated := patch.Apply(*current)
	if err := validateItem(&updated); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE items
		SET item_number = ?, description = ?, unit_price_cents = ?,
			quantity = ?, purchase_date = ?, warehouse = ?, receipt_image = ?,
			promo_price_cents = ?, verified_price_cents = ?,
			detection_source = ?, claimed = ?
		WHERE id = ?
	`,
		updated.ItemNumber,
		updated.Description,
		updated.UnitPrice,
		updated.Quantity,
		updated.PurchaseDate,
		updated.Warehouse,
		updated.ReceiptImage,
		moneyPtrArg(updated.PromoPrice),
		moneyPtrArg(updated.VerifiedPrice),
		string(updated.DetectionSource),
		updated.Claimed,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update item %s: %w", id, err)
	}

	return tx.Commit()
}

// DeleteItem removes an item. An unknown id is a silent no-op.
func (s *SQLiteStorage) DeleteItem(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*model.TrackedItem, error) {
	var (
		item          model.TrackedItem
		promoPrice    sql.NullInt64
		verifiedPrice sql.NullInt64
		source        string
	)

	err := row.Scan(
		&item.ID,
		&item.ItemNumber,
		&item.Description,
		&item.UnitPrice,
		&item.Quantity,
		&item.PurchaseDate,
		&item.Warehouse,
		&item.ReceiptImage,
		&promoPrice,
		&verifiedPrice,
		&source,
		&item.Claimed,
	)
	if err != nil {
		return nil, err
	}

	if promoPrice.Valid {
		price := model.Money(promoPrice.Int64)
		item.PromoPrice = &price
	}
	if verifiedPrice.Valid {
		price := model.Money(verifiedPrice.Int64)
		item.VerifiedPrice = &price
	}
	item.DetectionSource = model.DetectionSource(source)

	return &item, nil
}

// moneyPtrArg converts an optional money value to a nullable SQL argument.
func moneyPtrArg(m *model.Money) any {
	if m == nil {
		return nil
	}
	return int64(*m)
}
