package dbq

import (
	"context"

	"tidytodo/server/pkg/idwrap"
)

const createList = `
INSERT INTO todo_lists (id, name, created_at) VALUES (?, ?, ?)
`

type CreateListParams struct {
	ID        idwrap.IDWrap
	Name      string
	CreatedAt int64
}

func (q *Queries) CreateList(ctx context.Context, arg CreateListParams) error {
	_, err := q.db.ExecContext(ctx, createList, arg.ID, arg.Name, arg.CreatedAt)
	return err
}

const getList = `
SELECT id, name, created_at FROM todo_lists WHERE id = ?
`

func (q *Queries) GetList(ctx context.Context, id idwrap.IDWrap) (TodoList, error) {
	row := q.db.QueryRowContext(ctx, getList, id)
	var l TodoList
	err := row.Scan(&l.ID, &l.Name, &l.CreatedAt)
	return l, err
}

const getLists = `
SELECT id, name, created_at FROM todo_lists ORDER BY created_at DESC, id DESC
`

func (q *Queries) GetLists(ctx context.Context) ([]TodoList, error) {
	rows, err := q.db.QueryContext(ctx, getLists)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lists []TodoList
	for rows.Next() {
		var l TodoList
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

const updateListName = `
UPDATE todo_lists SET name = ? WHERE id = ?
`

type UpdateListNameParams struct {
	Name string
	ID   idwrap.IDWrap
}

func (q *Queries) UpdateListName(ctx context.Context, arg UpdateListNameParams) error {
	_, err := q.db.ExecContext(ctx, updateListName, arg.Name, arg.ID)
	return err
}

const deleteList = `
DELETE FROM todo_lists WHERE id = ?
`

func (q *Queries) DeleteList(ctx context.Context, id idwrap.IDWrap) error {
	_, err := q.db.ExecContext(ctx, deleteList, id)
	return err
}

const countLists = `
SELECT COUNT(*) FROM todo_lists
`

func (q *Queries) CountLists(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countLists).Scan(&n)
	return n, err
}

const listExistsByName = `
SELECT EXISTS (SELECT 1 FROM todo_lists WHERE name = ?)
`

func (q *Queries) ListExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, listExistsByName, name).Scan(&exists)
	return exists, err
}

const listExistsByNameExcluding = `
SELECT EXISTS (SELECT 1 FROM todo_lists WHERE name = ? AND id != ?)
`

type ListExistsByNameExcludingParams struct {
	Name string
	ID   idwrap.IDWrap
}

func (q *Queries) ListExistsByNameExcluding(ctx context.Context, arg ListExistsByNameExcludingParams) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, listExistsByNameExcluding, arg.Name, arg.ID).Scan(&exists)
	return exists, err
}
