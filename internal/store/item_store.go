// Package store persists per-user item documents. It implements the
// document-store capability the sync service depends on; IDs are assigned
// here on insert, never by callers.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/GrandCart/PantryPlus2/internal/domain"
)

// ErrNotFound is returned by Update and Delete when no document with the
// given id exists for the user.
var ErrNotFound = errors.New("item not found")

// ErrDecode is returned when a stored document cannot be mapped back to a
// domain item (e.g. an unknown location tag written by a newer client).
var ErrDecode = errors.New("malformed item document")

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

const itemColumns = `id, name, brand, category, quantity, unit, expiration_date,
	location, purchase_date, notes, usage_frequency, image_url, price, barcode, on_shopping_list`

// GetAll returns every item document for the user, oldest first.
func (s *ItemStore) GetAll(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+itemColumns+` FROM items WHERE user_id = ? ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var items []domain.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// Insert writes a new document and returns the assigned identifier. The
// item's own ID field is ignored.
func (s *ItemStore) Insert(ctx context.Context, userID string, item domain.InventoryItem) (string, error) {
	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (id, user_id, name, brand, category, quantity, unit, expiration_date,
			location, purchase_date, notes, usage_frequency, image_url, price, barcode, on_shopping_list)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, userID, item.Name, nullString(item.Brand), item.Category, item.Quantity, item.Unit,
		nullTime(item.ExpirationDate), string(item.Location), item.PurchaseDate,
		nullString(item.Notes), item.UsageFrequency, nullString(item.ImageURL),
		nullFloat(item.Price), nullString(item.Barcode), item.OnShoppingList)
	if err != nil {
		return "", fmt.Errorf("failed to insert item: %w", err)
	}

	return id, nil
}

// Update replaces the fields of an existing document.
func (s *ItemStore) Update(ctx context.Context, userID string, item domain.InventoryItem) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE items SET name = ?, brand = ?, category = ?, quantity = ?, unit = ?,
			expiration_date = ?, location = ?, purchase_date = ?, notes = ?,
			usage_frequency = ?, image_url = ?, price = ?, barcode = ?, on_shopping_list = ?
		WHERE user_id = ? AND id = ?
	`, item.Name, nullString(item.Brand), item.Category, item.Quantity, item.Unit,
		nullTime(item.ExpirationDate), string(item.Location), item.PurchaseDate,
		nullString(item.Notes), item.UsageFrequency, nullString(item.ImageURL),
		nullFloat(item.Price), nullString(item.Barcode), item.OnShoppingList,
		userID, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes the document with the given id.
func (s *ItemStore) Delete(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM items WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanItem(rows *sql.Rows) (domain.InventoryItem, error) {
	var (
		item     domain.InventoryItem
		brand    sql.NullString
		expires  sql.NullTime
		location string
		notes    sql.NullString
		imageURL sql.NullString
		price    sql.NullFloat64
		barcode  sql.NullString
	)
	if err := rows.Scan(&item.ID, &item.Name, &brand, &item.Category, &item.Quantity, &item.Unit,
		&expires, &location, &item.PurchaseDate, &notes, &item.UsageFrequency,
		&imageURL, &price, &barcode, &item.OnShoppingList); err != nil {
		return domain.InventoryItem{}, fmt.Errorf("failed to scan item: %w", err)
	}

	item.Location = domain.StorageLocation(location)
	if !item.Location.Valid() {
		return domain.InventoryItem{}, fmt.Errorf("%w: unknown location %q for item %s", ErrDecode, location, item.ID)
	}

	item.Brand = brand.String
	item.Notes = notes.String
	item.ImageURL = imageURL.String
	item.Barcode = barcode.String
	if expires.Valid {
		t := expires.Time
		item.ExpirationDate = &t
	}
	if price.Valid {
		p := price.Float64
		item.Price = &p
	}

	return item, nil
}

// Optional fields are stored as NULL when absent, never as empty-string or
// zero placeholders.

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
