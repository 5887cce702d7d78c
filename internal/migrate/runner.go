package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

const metadataSchema = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    id TEXT NOT NULL PRIMARY KEY,
    checksum TEXT NOT NULL,
    applied_at INTEGER NOT NULL
);
`

// Runner applies registered migrations in order, each inside its own
// transaction, recording completion in schema_migrations.
type Runner struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRunner(db *sql.DB, logger *slog.Logger) (*Runner, error) {
	if db == nil {
		return nil, errors.New("migrate: nil database handle")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{db: db, logger: logger}, nil
}

// ApplyAll runs every registered migration that has not been applied
// yet. A checksum mismatch against a recorded migration aborts: the
// migration's code changed after it ran somewhere.
func (r *Runner) ApplyAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, metadataSchema); err != nil {
		return fmt.Errorf("migrate: creating schema_migrations table: %w", err)
	}

	for _, mig := range List() {
		applied, err := r.appliedChecksum(ctx, mig.ID)
		if err != nil {
			return err
		}
		if applied != "" {
			if applied != mig.Checksum {
				return fmt.Errorf("migrate: checksum mismatch for %s: recorded %s, registered %s",
					mig.ID, applied, mig.Checksum)
			}
			continue
		}

		r.logger.Info("applying migration", "id", mig.ID, "description", mig.Description)
		if err := r.runMigration(ctx, mig); err != nil {
			return err
		}
		if mig.Validate != nil {
			if err := mig.Validate(ctx, r.db); err != nil {
				return fmt.Errorf("migrate: validation failed for %s: %w", mig.ID, err)
			}
		}
	}
	return nil
}

func (r *Runner) runMigration(ctx context.Context, mig Migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: begin tx for %s: %w", mig.ID, err)
	}
	defer rollbackIgnore(tx)

	if err := mig.Apply(ctx, tx); err != nil {
		return fmt.Errorf("migrate: applying %s: %w", mig.ID, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (id, checksum, applied_at) VALUES (?, ?, unixepoch() * 1000)`,
		mig.ID, mig.Checksum)
	if err != nil {
		return fmt.Errorf("migrate: recording %s: %w", mig.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: committing %s: %w", mig.ID, err)
	}
	return nil
}

func (r *Runner) appliedChecksum(ctx context.Context, id string) (string, error) {
	var checksum string
	err := r.db.QueryRowContext(ctx,
		`SELECT checksum FROM schema_migrations WHERE id = ?`, id).Scan(&checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("migrate: reading record for %s: %w", id, err)
	}
	return checksum, nil
}

func rollbackIgnore(tx *sql.Tx) {
	_ = tx.Rollback()
}
