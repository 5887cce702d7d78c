package dbq

import "tidytodo/server/pkg/idwrap"

// Row types mirror table layout. Timestamps are unix milliseconds;
// services convert to time.Time at the model boundary.

type TodoList struct {
	ID        idwrap.IDWrap
	Name      string
	CreatedAt int64
}

type TodoItem struct {
	ID        idwrap.IDWrap
	ListID    idwrap.IDWrap
	Text      string
	Completed bool
	Important bool
	Hidden    bool
	Position  int64
	CreatedAt int64
}
