package mlist

import (
	"time"

	"tidytodo/server/pkg/idwrap"
)

// NameMaxLen bounds list names; the same bound applies to item text.
const NameMaxLen = 50

type List struct {
	ID      idwrap.IDWrap `json:"id"`
	Name    string        `json:"name"`
	Created time.Time     `json:"createdAt"`
}
