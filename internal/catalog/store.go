package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// StaleAfter is how old the stored catalog may be before a reload is due.
const StaleAfter = 7 * 24 * time.Hour

const dateLayout = "2006-01-02"

// Store is a database-backed repository for catalog items.
type Store struct {
	db *sql.DB
}

// NewStore creates a new Store on an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load retrieves all stored catalog items.
func (s *Store) Load(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, proteins, fats, carbs, calories, weight, price FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Proteins, &it.Fats, &it.Carbs, &it.Calories, &it.Weight, &it.Price); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product rows: %w", err)
	}
	return items, nil
}

// Replace swaps the entire stored catalog for the given items and stamps
// them with the current date.
func (s *Store) Replace(ctx context.Context, items []Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	stamp := time.Now().Format(dateLayout)
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (name, proteins, fats, carbs, calories, weight, price, last_updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, it := range items {
		if _, err := stmt.ExecContext(ctx, it.Name, it.Proteins, it.Fats, it.Carbs, it.Calories, it.Weight, it.Price, stamp); err != nil {
			return fmt.Errorf("failed to insert product %q: %w", it.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog replace: %w", err)
	}
	return nil
}

// NeedsRefresh reports whether the stored catalog is empty or older than
// StaleAfter.
func (s *Store) NeedsRefresh(ctx context.Context) (bool, error) {
	var last sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT MAX(last_updated) FROM products`).Scan(&last)
	if err != nil {
		return false, fmt.Errorf("failed to read catalog freshness: %w", err)
	}
	if !last.Valid || last.String == "" {
		return true, nil
	}

	updated, err := time.Parse(dateLayout, last.String)
	if err != nil {
		return false, fmt.Errorf("failed to parse last_updated %q: %w", last.String, err)
	}
	return time.Since(updated) > StaleAfter, nil
}

// Count returns the number of stored catalog items.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// LastUpdated returns the stamp of the most recent catalog save, or the zero
// time when the catalog is empty.
func (s *Store) LastUpdated(ctx context.Context) (time.Time, error) {
	var last sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT MAX(last_updated) FROM products`).Scan(&last)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read catalog freshness: %w", err)
	}
	if !last.Valid || last.String == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, last.String)
}
