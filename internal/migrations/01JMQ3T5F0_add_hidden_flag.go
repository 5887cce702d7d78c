package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"tidytodo/server/internal/migrate"
)

// MigrationAddHiddenFlagID is the ULID for the hidden flag migration.
const MigrationAddHiddenFlagID = "01JMQ3T5F0A1B2C3D4E5F6G7H8"

// MigrationAddHiddenFlagChecksum is a stable hash of this migration.
const MigrationAddHiddenFlagChecksum = "sha256:add-hidden-flag-v1"

func init() {
	if err := migrate.Register(migrate.Migration{
		ID:          MigrationAddHiddenFlagID,
		Checksum:    MigrationAddHiddenFlagChecksum,
		Description: "Add hidden column to todo_items for hide-completed",
		Apply:       applyAddHiddenFlag,
	}); err != nil {
		panic("failed to register hidden flag migration: " + err.Error())
	}
}

// Databases created from the current schema.sql already carry the
// column, so the add is guarded.
func applyAddHiddenFlag(ctx context.Context, tx *sql.Tx) error {
	var count int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pragma_table_info('todo_items')
		WHERE name = 'hidden'
	`).Scan(&count); err != nil {
		return fmt.Errorf("check hidden column: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := tx.ExecContext(ctx,
		`ALTER TABLE todo_items ADD COLUMN hidden INTEGER NOT NULL DEFAULT 0`); err != nil {
		return fmt.Errorf("add hidden column: %w", err)
	}
	return nil
}
