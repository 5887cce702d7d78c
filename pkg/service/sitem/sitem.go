package sitem

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tidytodo/server/pkg/dbq"
	"tidytodo/server/pkg/dbtime"
	"tidytodo/server/pkg/idwrap"
	"tidytodo/server/pkg/model/mitem"
)

var (
	ErrNoItemFound = errors.New("item not found")
	ErrNoListFound = errors.New("list not found")
	ErrInvalidText = errors.New("invalid item text")

	// ErrConflict signals a concurrent writer lost the race against the
	// (list_id, position) unique index. Retrying the whole operation
	// against fresh state is reasonable; the input was not at fault.
	ErrConflict = errors.New("position conflict")
)

type ItemService struct {
	db      *sql.DB
	queries *dbq.Queries
}

func New(db *sql.DB) ItemService {
	return ItemService{db: db, queries: dbq.New(db)}
}

// TX returns a service bound to an existing transaction. Operations that
// normally open their own transaction run directly on it instead.
func (s ItemService) TX(tx *sql.Tx) ItemService {
	return ItemService{queries: s.queries.WithTx(tx)}
}

// withTx runs fn inside a transaction when the service owns a database
// handle, or directly against the bound queries when it does not.
func (s ItemService) withTx(ctx context.Context, fn func(q *dbq.Queries) error) error {
	if s.db == nil {
		return fn(s.queries)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer rollback(tx)
	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

// rollback is meant for defer; after a successful commit it is a no-op.
func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Error("transaction rollback failed", "error", err)
	}
}

func ConvertToDBItem(item mitem.Item) dbq.TodoItem {
	return dbq.TodoItem{
		ID:        item.ID,
		ListID:    item.ListID,
		Text:      item.Text,
		Completed: item.Completed,
		Important: item.Important,
		Hidden:    item.Hidden,
		Position:  int64(item.Position),
		CreatedAt: item.CreatedAt.UnixMilli(),
	}
}

func ConvertToModelItem(item dbq.TodoItem) *mitem.Item {
	return &mitem.Item{
		ID:        item.ID,
		ListID:    item.ListID,
		Text:      item.Text,
		Completed: item.Completed,
		Important: item.Important,
		Hidden:    item.Hidden,
		Position:  int(item.Position),
		CreatedAt: dbtime.DBTime(time.UnixMilli(item.CreatedAt)),
	}
}

func convertItems(items []dbq.TodoItem) []mitem.Item {
	out := make([]mitem.Item, 0, len(items))
	for _, it := range items {
		out = append(out, *ConvertToModelItem(it))
	}
	return out
}

// Create appends a new item to a list. The position is re-read from the
// store on every call (max+1, or 0 for an empty list) so interleaved
// appends to other lists never interfere; a losing concurrent append to
// the same list fails on the unique index and surfaces ErrConflict.
func (s ItemService) Create(ctx context.Context, listID idwrap.IDWrap, text string) (*mitem.Item, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	var created *mitem.Item
	err := s.withTx(ctx, func(q *dbq.Queries) error {
		if err := listExists(ctx, q, listID); err != nil {
			return err
		}

		max, ok, err := q.GetMaxItemPosition(ctx, listID)
		if err != nil {
			return err
		}
		position := int64(0)
		if ok {
			position = max + 1
		}

		item := mitem.Item{
			ID:        idwrap.NewNow(),
			ListID:    listID,
			Text:      text,
			Position:  int(position),
			CreatedAt: dbtime.DBNow(),
		}
		dbItem := ConvertToDBItem(item)
		err = q.CreateItem(ctx, dbq.CreateItemParams{
			ID:        dbItem.ID,
			ListID:    dbItem.ListID,
			Text:      dbItem.Text,
			Completed: dbItem.Completed,
			Important: dbItem.Important,
			Hidden:    dbItem.Hidden,
			Position:  dbItem.Position,
			CreatedAt: dbItem.CreatedAt,
		})
		if err != nil {
			if dbq.IsUniqueViolation(err) {
				return fmt.Errorf("%w: concurrent append to list %s", ErrConflict, listID.String())
			}
			return err
		}
		created = &item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s ItemService) Get(ctx context.Context, id idwrap.IDWrap) (*mitem.Item, error) {
	item, err := s.queries.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %s: %w", id.String(), ErrNoItemFound)
		}
		return nil, err
	}
	return ConvertToModelItem(item), nil
}

// ListOrdered returns a list's items in canonical order: important items
// first, then ascending position, then id.
func (s ItemService) ListOrdered(ctx context.Context, listID idwrap.IDWrap) ([]mitem.Item, error) {
	items, err := s.queries.GetItemsByListOrdered(ctx, listID)
	if err != nil {
		return nil, err
	}
	return convertItems(items), nil
}

// ListByCompleted filters by completion status using the legacy
// newest-first ordering of the original list screens.
func (s ItemService) ListByCompleted(ctx context.Context, listID idwrap.IDWrap, completed bool) ([]mitem.Item, error) {
	items, err := s.queries.GetItemsByListAndCompleted(ctx, dbq.GetItemsByListAndCompletedParams{
		ListID:    listID,
		Completed: completed,
	})
	if err != nil {
		return nil, err
	}
	return convertItems(items), nil
}

func (s ItemService) UpdateText(ctx context.Context, id idwrap.IDWrap, text string) (*mitem.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateText(text); err != nil {
		return nil, err
	}
	if err := s.queries.UpdateItemText(ctx, dbq.UpdateItemTextParams{Text: text, ID: id}); err != nil {
		return nil, err
	}
	item.Text = text
	return item, nil
}

func (s ItemService) Update(ctx context.Context, id idwrap.IDWrap, text string, completed bool) (*mitem.Item, error) {
	item, err := s.UpdateText(ctx, id, text)
	if err != nil {
		return nil, err
	}
	if err := s.queries.UpdateItemCompleted(ctx, dbq.UpdateItemCompletedParams{Completed: completed, ID: id}); err != nil {
		return nil, err
	}
	item.Completed = completed
	return item, nil
}

func (s ItemService) SetCompleted(ctx context.Context, id idwrap.IDWrap, completed bool) (*mitem.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.queries.UpdateItemCompleted(ctx, dbq.UpdateItemCompletedParams{Completed: completed, ID: id}); err != nil {
		return nil, err
	}
	item.Completed = completed
	return item, nil
}

func (s ItemService) ToggleCompleted(ctx context.Context, id idwrap.IDWrap) (*mitem.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.SetCompleted(ctx, id, !item.Completed)
}

// ToggleImportant flips the importance tier. Reorder never touches this
// flag; toggling is the only way an item changes tiers.
func (s ItemService) ToggleImportant(ctx context.Context, id idwrap.IDWrap) (*mitem.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	important := !item.Important
	if err := s.queries.UpdateItemImportant(ctx, dbq.UpdateItemImportantParams{Important: important, ID: id}); err != nil {
		return nil, err
	}
	item.Important = important
	return item, nil
}

func (s ItemService) Delete(ctx context.Context, id idwrap.IDWrap) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.queries.DeleteItem(ctx, id)
}

// DeleteAllInList removes every item in a list and reports how many rows
// went away.
func (s ItemService) DeleteAllInList(ctx context.Context, listID idwrap.IDWrap) (int64, error) {
	return s.queries.DeleteItemsByList(ctx, listID)
}

func (s ItemService) CountByList(ctx context.Context, listID idwrap.IDWrap) (int64, error) {
	return s.queries.CountItemsByList(ctx, listID)
}

func (s ItemService) CountCompletedByList(ctx context.Context, listID idwrap.IDWrap) (int64, error) {
	return s.queries.CountCompletedItemsByList(ctx, listID)
}

// HideCompleted marks all completed, not-yet-hidden items in a list as
// hidden in one bulk statement.
func (s ItemService) HideCompleted(ctx context.Context, listID idwrap.IDWrap) (int64, error) {
	return s.queries.HideCompletedItemsByList(ctx, listID)
}

func listExists(ctx context.Context, q *dbq.Queries, listID idwrap.IDWrap) error {
	if _, err := q.GetList(ctx, listID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("list %s: %w", listID.String(), ErrNoListFound)
		}
		return err
	}
	return nil
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text cannot be empty or whitespace", ErrInvalidText)
	}
	if len([]rune(text)) > mitem.TextMaxLen {
		return fmt.Errorf("%w: text is too long (maximum %d characters)", ErrInvalidText, mitem.TextMaxLen)
	}
	return nil
}
