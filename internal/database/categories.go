package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Category is a row of the Categories table
type Category struct {
	ID   int64
	Name string
}

// ListCategories returns all categories ordered by id
func (db *DB) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := db.query(ctx, "SELECT CategoryID, CategoryName FROM Categories ORDER BY CategoryID")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]Category, 0, 8)
	for rows.Next() {
		var c Category
		var name sql.NullString
		if err := rows.Scan(&c.ID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Name = nullText(name)
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// GetCategory retrieves a category by id
func (db *DB) GetCategory(ctx context.Context, id int64) (*Category, error) {
	c := &Category{}
	var name sql.NullString
	err := db.queryRow(ctx, "SELECT CategoryID, CategoryName FROM Categories WHERE CategoryID = ?", id).
		Scan(&c.ID, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	c.Name = nullText(name)
	return c, nil
}

// CreateCategory inserts a category and returns the stored row
func (db *DB) CreateCategory(ctx context.Context, name string) (*Category, error) {
	var id int64
	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "INSERT INTO Categories (CategoryName) VALUES (?)", name)
		if err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get category id: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return db.GetCategory(ctx, id)
}

// UpdateCategory renames a category and returns the stored row
func (db *DB) UpdateCategory(ctx context.Context, id int64, name string) (*Category, error) {
	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "UPDATE Categories SET CategoryName = ? WHERE CategoryID = ?", name, id)
		if err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		return requireAffected(result, "category", id)
	})
	if err != nil {
		return nil, err
	}

	return db.GetCategory(ctx, id)
}

// DeleteCategory removes a category and returns the number of deleted rows
func (db *DB) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	var deleted int64
	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM Categories WHERE CategoryID = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		if err := requireAffected(result, "category", id); err != nil {
			return err
		}
		deleted, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// requireAffected maps a statement that touched no rows to ErrNotFound
func requireAffected(result sql.Result, entity string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return nil
}
