package dbq

import (
	"context"

	"tidytodo/server/pkg/idwrap"
)

const itemColumns = `id, list_id, text, completed, important, hidden, position, created_at`

func scanItem(s interface{ Scan(...any) error }) (TodoItem, error) {
	var it TodoItem
	err := s.Scan(&it.ID, &it.ListID, &it.Text, &it.Completed, &it.Important,
		&it.Hidden, &it.Position, &it.CreatedAt)
	return it, err
}

func (q *Queries) queryItems(ctx context.Context, query string, args ...any) ([]TodoItem, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TodoItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

const createItem = `
INSERT INTO todo_items (id, list_id, text, completed, important, hidden, position, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateItemParams struct {
	ID        idwrap.IDWrap
	ListID    idwrap.IDWrap
	Text      string
	Completed bool
	Important bool
	Hidden    bool
	Position  int64
	CreatedAt int64
}

func (q *Queries) CreateItem(ctx context.Context, arg CreateItemParams) error {
	_, err := q.db.ExecContext(ctx, createItem, arg.ID, arg.ListID, arg.Text,
		arg.Completed, arg.Important, arg.Hidden, arg.Position, arg.CreatedAt)
	return err
}

const getItem = `
SELECT ` + itemColumns + ` FROM todo_items WHERE id = ?
`

func (q *Queries) GetItem(ctx context.Context, id idwrap.IDWrap) (TodoItem, error) {
	return scanItem(q.db.QueryRowContext(ctx, getItem, id))
}

// GetItemsByListOrdered is the canonical read order: important items
// first, then position, with id as a deterministic final tie-break.
const getItemsByListOrdered = `
SELECT ` + itemColumns + ` FROM todo_items
WHERE list_id = ?
ORDER BY important DESC, position ASC, id ASC
`

func (q *Queries) GetItemsByListOrdered(ctx context.Context, listID idwrap.IDWrap) ([]TodoItem, error) {
	return q.queryItems(ctx, getItemsByListOrdered, listID)
}

const getItemsByList = `
SELECT ` + itemColumns + ` FROM todo_items WHERE list_id = ?
`

func (q *Queries) GetItemsByList(ctx context.Context, listID idwrap.IDWrap) ([]TodoItem, error) {
	return q.queryItems(ctx, getItemsByList, listID)
}

// Legacy completion-filtered view keeps the newest-first ordering of the
// original list screens; it is not part of the position ordering contract.
const getItemsByListAndCompleted = `
SELECT ` + itemColumns + ` FROM todo_items
WHERE list_id = ? AND completed = ?
ORDER BY created_at DESC, id DESC
`

type GetItemsByListAndCompletedParams struct {
	ListID    idwrap.IDWrap
	Completed bool
}

func (q *Queries) GetItemsByListAndCompleted(ctx context.Context, arg GetItemsByListAndCompletedParams) ([]TodoItem, error) {
	return q.queryItems(ctx, getItemsByListAndCompleted, arg.ListID, arg.Completed)
}

// GetMaxItemPosition returns the max position in a list, or sql.ErrNoRows
// via the nullable scan when the list has no items; callers treat NULL as
// "list empty" and allocate position 0.
const getMaxItemPosition = `
SELECT MAX(position) FROM todo_items WHERE list_id = ?
`

func (q *Queries) GetMaxItemPosition(ctx context.Context, listID idwrap.IDWrap) (int64, bool, error) {
	var max *int64
	if err := q.db.QueryRowContext(ctx, getMaxItemPosition, listID).Scan(&max); err != nil {
		return 0, false, err
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}

const updateItemText = `
UPDATE todo_items SET text = ? WHERE id = ?
`

type UpdateItemTextParams struct {
	Text string
	ID   idwrap.IDWrap
}

func (q *Queries) UpdateItemText(ctx context.Context, arg UpdateItemTextParams) error {
	_, err := q.db.ExecContext(ctx, updateItemText, arg.Text, arg.ID)
	return err
}

const updateItemCompleted = `
UPDATE todo_items SET completed = ? WHERE id = ?
`

type UpdateItemCompletedParams struct {
	Completed bool
	ID        idwrap.IDWrap
}

func (q *Queries) UpdateItemCompleted(ctx context.Context, arg UpdateItemCompletedParams) error {
	_, err := q.db.ExecContext(ctx, updateItemCompleted, arg.Completed, arg.ID)
	return err
}

const updateItemImportant = `
UPDATE todo_items SET important = ? WHERE id = ?
`

type UpdateItemImportantParams struct {
	Important bool
	ID        idwrap.IDWrap
}

func (q *Queries) UpdateItemImportant(ctx context.Context, arg UpdateItemImportantParams) error {
	_, err := q.db.ExecContext(ctx, updateItemImportant, arg.Important, arg.ID)
	return err
}

const updateItemPosition = `
UPDATE todo_items SET position = ? WHERE id = ?
`

type UpdateItemPositionParams struct {
	Position int64
	ID       idwrap.IDWrap
}

// UpdateItemPosition writes a single row's position. The unique index on
// (list_id, position) is checked per write, which is why reorder runs in
// two phases.
func (q *Queries) UpdateItemPosition(ctx context.Context, arg UpdateItemPositionParams) error {
	_, err := q.db.ExecContext(ctx, updateItemPosition, arg.Position, arg.ID)
	return err
}

const deleteItem = `
DELETE FROM todo_items WHERE id = ?
`

func (q *Queries) DeleteItem(ctx context.Context, id idwrap.IDWrap) error {
	_, err := q.db.ExecContext(ctx, deleteItem, id)
	return err
}

const deleteItemsByList = `
DELETE FROM todo_items WHERE list_id = ?
`

func (q *Queries) DeleteItemsByList(ctx context.Context, listID idwrap.IDWrap) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteItemsByList, listID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countItemsByList = `
SELECT COUNT(*) FROM todo_items WHERE list_id = ?
`

func (q *Queries) CountItemsByList(ctx context.Context, listID idwrap.IDWrap) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countItemsByList, listID).Scan(&n)
	return n, err
}

const countCompletedItemsByList = `
SELECT COUNT(*) FROM todo_items WHERE list_id = ? AND completed = 1
`

func (q *Queries) CountCompletedItemsByList(ctx context.Context, listID idwrap.IDWrap) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countCompletedItemsByList, listID).Scan(&n)
	return n, err
}

const hideCompletedItemsByList = `
UPDATE todo_items SET hidden = 1 WHERE list_id = ? AND completed = 1 AND hidden = 0
`

func (q *Queries) HideCompletedItemsByList(ctx context.Context, listID idwrap.IDWrap) (int64, error) {
	res, err := q.db.ExecContext(ctx, hideCompletedItemsByList, listID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
