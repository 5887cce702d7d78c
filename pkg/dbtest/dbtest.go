package dbtest

import (
	"context"
	"database/sql"
	"fmt"

	"tidytodo/server/pkg/dbq"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// GetTestDB opens a uniquely named shared in-memory database so parallel
// tests never see each other's rows.
func GetTestDB(ctx context.Context) (*sql.DB, error) {
	db, err := GetEmptyTestDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := dbq.CreateLocalTables(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

// GetEmptyTestDB opens an in-memory database without any tables, for
// tests that exercise schema creation themselves. The foreign key pragma
// rides on the DSN so every pooled connection enforces it.
func GetEmptyTestDB(ctx context.Context) (*sql.DB, error) {
	uniqueName := ulid.Make().String()
	connStr := fmt.Sprintf("file:testdb_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uniqueName)

	return sql.Open("sqlite", connStr)
}
