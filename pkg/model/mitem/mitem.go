package mitem

import (
	"time"

	"tidytodo/server/pkg/idwrap"
)

const TextMaxLen = 50

// Item is a single todo entry. Position is its rank within the owning
// list; (ListID, Position) is unique at the store layer. Important items
// always sort ahead of non-important ones regardless of position.
type Item struct {
	ID        idwrap.IDWrap `json:"id"`
	ListID    idwrap.IDWrap `json:"listId"`
	Text      string        `json:"text"`
	Completed bool          `json:"completed"`
	Important bool          `json:"important"`
	Hidden    bool          `json:"hidden"`
	Position  int           `json:"position"`
	CreatedAt time.Time     `json:"createdAt"`
}
