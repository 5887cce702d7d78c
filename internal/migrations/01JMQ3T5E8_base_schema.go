package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"tidytodo/server/internal/migrate"
	"tidytodo/server/pkg/dbq"
)

// MigrationBaseSchemaID is the ULID for the base schema migration.
const MigrationBaseSchemaID = "01JMQ3T5E8Z9K2P7R4W6X8Y0BV"

// MigrationBaseSchemaChecksum is a stable hash of this migration.
const MigrationBaseSchemaChecksum = "sha256:base-schema-v1"

func init() {
	if err := migrate.Register(migrate.Migration{
		ID:          MigrationBaseSchemaID,
		Checksum:    MigrationBaseSchemaChecksum,
		Description: "Create todo_lists and todo_items tables",
		Apply:       applyBaseSchema,
		Validate:    validateBaseSchema,
	}); err != nil {
		panic("failed to register base schema migration: " + err.Error())
	}
}

func applyBaseSchema(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, dbq.Schema()); err != nil {
		return fmt.Errorf("create base tables: %w", err)
	}
	return nil
}

func validateBaseSchema(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{"todo_lists", "todo_items"} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			return fmt.Errorf("table %s missing: %w", table, err)
		}
	}
	return nil
}
