package testutil

import (
	"context"
	"database/sql"
	"testing"

	"tidytodo/server/pkg/dbq"
	"tidytodo/server/pkg/dbtest"
	"tidytodo/server/pkg/service/sitem"
	"tidytodo/server/pkg/service/slist"
)

type BaseDBQueries struct {
	Queries *dbq.Queries
	DB      *sql.DB
	t       *testing.T
	ctx     context.Context
}

type BaseTestServices struct {
	DB *sql.DB
	Ls slist.ListService
	Is sitem.ItemService
}

func CreateBaseDB(ctx context.Context, t *testing.T) *BaseDBQueries {
	db, err := dbtest.GetTestDB(ctx)
	if err != nil {
		t.Fatal(err)
	}
	queries := dbq.New(db)

	return &BaseDBQueries{Queries: queries, t: t, ctx: ctx, DB: db}
}

func (c BaseDBQueries) GetBaseServices() BaseTestServices {
	ls := slist.New(c.Queries)
	is := sitem.New(c.DB)
	return BaseTestServices{
		DB: c.DB,
		Ls: ls,
		Is: is,
	}
}

func (b BaseDBQueries) Close() {
	if err := b.DB.Close(); err != nil {
		b.t.Error(err)
	}
}

func AssertFatal[c comparable](t *testing.T, expected, got c) {
	t.Helper()
	if got != expected {
		t.Fatalf("got %v, expected %v", got, expected)
	}
}

func Assert[c comparable](t *testing.T, expected, got c) {
	t.Helper()
	if got != expected {
		t.Errorf("got %v, expected %v", got, expected)
	}
}

func AssertNot[c comparable](t *testing.T, not, got c) {
	t.Helper()
	if got == not {
		t.Errorf("got %v, expected not %v", got, not)
	}
}

func AssertNotFatal[c comparable](t *testing.T, not, got c) {
	t.Helper()
	if got == not {
		t.Fatalf("got %v, expected not %v", got, not)
	}
}
