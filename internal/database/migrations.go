package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Migrate creates the tables the service reads when they are missing.
// An existing Northwind database is left as is; only the migrations table is added.
func (db *DB) Migrate(ctx context.Context) error {
	log.Info().Msg("Running database migrations")

	_, err := db.exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var currentVersion int
	err = db.queryRow(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	log.Debug().Int("current_version", currentVersion).Msg("Current schema version")

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}
		log.Info().Int("version", migration.Version).Str("name", migration.Name).Msg("Applying migration")

		if err := db.Transaction(ctx, func(tx *sql.Tx) error {
			if err := execStatements(ctx, tx, migration.SQL); err != nil {
				return fmt.Errorf("migration %d: %w", migration.Version, err)
			}

			if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", migration.Version); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
			}

			return nil
		}); err != nil {
			return err
		}
	}

	log.Info().Msg("Database migrations complete")
	return nil
}

// SchemaVersion returns the highest applied migration version
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := db.queryRow(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

type migration struct {
	Version int
	Name    string
	SQL     string
}

func execStatements(ctx context.Context, tx *sql.Tx, script string) error {
	for i, stmt := range splitSQLStatements(script) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d failed: %w", i+1, err)
		}
	}
	return nil
}

// splitSQLStatements splits a SQL string into individual statements.
// It handles comments and only returns non-empty statements.
func splitSQLStatements(sql string) []string {
	var statements []string
	var current strings.Builder

	for line := range strings.SplitSeq(sql, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSpace(current.String())
			if stmt != "" && stmt != ";" {
				statements = append(statements, stmt)
			}
			current.Reset()
		}
	}

	if remaining := strings.TrimSpace(current.String()); remaining != "" {
		statements = append(statements, remaining)
	}

	return statements
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "northwind_schema",
		SQL: `
			CREATE TABLE IF NOT EXISTS Categories (
				CategoryID INTEGER PRIMARY KEY AUTOINCREMENT,
				CategoryName TEXT,
				Description TEXT
			);

			CREATE TABLE IF NOT EXISTS Customers (
				CustomerID TEXT PRIMARY KEY,
				CompanyName TEXT,
				ContactName TEXT,
				Address TEXT,
				City TEXT,
				Region TEXT,
				PostalCode TEXT,
				Country TEXT
			);

			CREATE TABLE IF NOT EXISTS Suppliers (
				SupplierID INTEGER PRIMARY KEY AUTOINCREMENT,
				CompanyName TEXT,
				City TEXT,
				Country TEXT
			);

			CREATE TABLE IF NOT EXISTS Products (
				ProductID INTEGER PRIMARY KEY AUTOINCREMENT,
				ProductName TEXT,
				SupplierID INTEGER REFERENCES Suppliers (SupplierID),
				CategoryID INTEGER REFERENCES Categories (CategoryID),
				UnitPrice NUMERIC DEFAULT 0,
				Discontinued TEXT DEFAULT '0'
			);

			CREATE TABLE IF NOT EXISTS Employees (
				EmployeeID INTEGER PRIMARY KEY AUTOINCREMENT,
				LastName TEXT,
				FirstName TEXT,
				Title TEXT,
				City TEXT,
				Country TEXT
			);

			CREATE TABLE IF NOT EXISTS Orders (
				OrderID INTEGER PRIMARY KEY AUTOINCREMENT,
				CustomerID TEXT REFERENCES Customers (CustomerID),
				EmployeeID INTEGER REFERENCES Employees (EmployeeID),
				OrderDate DATETIME,
				ShipCity TEXT,
				ShipCountry TEXT
			);

			CREATE TABLE IF NOT EXISTS "Order Details" (
				OrderID INTEGER NOT NULL REFERENCES Orders (OrderID),
				ProductID INTEGER NOT NULL REFERENCES Products (ProductID),
				UnitPrice NUMERIC NOT NULL DEFAULT 0,
				Quantity INTEGER NOT NULL DEFAULT 1,
				Discount REAL NOT NULL DEFAULT 0,
				PRIMARY KEY (OrderID, ProductID)
			);

			CREATE INDEX IF NOT EXISTS idx_order_details_product ON "Order Details" (ProductID);
		`,
	},
}
