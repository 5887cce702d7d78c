package sitem

import (
	"context"
	"errors"
	"fmt"

	"tidytodo/server/pkg/dbq"
	"tidytodo/server/pkg/idwrap"
)

// ErrInvalidOrder rejects a reorder payload whose id set does not exactly
// match the list's current items (wrong count, duplicates, or foreign
// ids). The operation has no effect when this is returned.
var ErrInvalidOrder = errors.New("invalid item order")

// displaceOffset is the staging base for phase 1 of a reorder. Any value
// above the largest position a list can legitimately hold works; final
// positions are 0..n-1, so staged rows at offset+i can never collide with
// rows still awaiting phase 2.
const displaceOffset = 1000

// Reorder atomically rewrites every item position in a list to match the
// supplied total order. The payload must be an exact permutation of the
// list's current item ids; all validation happens before the first write.
//
// Positions are unique per list and checked per row, so a one-pass
// rewrite could assign a position another not-yet-updated row still
// holds. The rewrite therefore runs in two phases inside one
// transaction: every item is first displaced into a disjoint staging
// range (displaceOffset+index), then settled onto its final contiguous
// position (0..n-1). A unique-index failure in either phase means a
// concurrent writer interleaved; the transaction rolls back and the
// caller gets ErrConflict.
func (s ItemService) Reorder(ctx context.Context, listID idwrap.IDWrap, orderedItemIDs []idwrap.IDWrap) error {
	return s.withTx(ctx, func(q *dbq.Queries) error {
		if err := listExists(ctx, q, listID); err != nil {
			return err
		}

		seen := make(map[idwrap.IDWrap]struct{}, len(orderedItemIDs))
		for _, id := range orderedItemIDs {
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: duplicate item id %s", ErrInvalidOrder, id.String())
			}
			seen[id] = struct{}{}
		}

		current, err := q.GetItemsByListOrdered(ctx, listID)
		if err != nil {
			return err
		}
		if len(current) != len(orderedItemIDs) {
			return fmt.Errorf("%w: provided item count (%d) does not match existing item count (%d)",
				ErrInvalidOrder, len(orderedItemIDs), len(current))
		}

		members := make(map[idwrap.IDWrap]struct{}, len(current))
		for _, it := range current {
			members[it.ID] = struct{}{}
		}
		for _, id := range orderedItemIDs {
			if _, ok := members[id]; !ok {
				return fmt.Errorf("%w: item %s does not belong to list %s",
					ErrInvalidOrder, id.String(), listID.String())
			}
		}

		// Phase 1: displace into the staging range.
		for i, id := range orderedItemIDs {
			err := q.UpdateItemPosition(ctx, dbq.UpdateItemPositionParams{
				Position: displaceOffset + int64(i),
				ID:       id,
			})
			if err != nil {
				return mapPositionErr(err, listID)
			}
		}

		// Phase 2: settle onto final contiguous positions.
		for i, id := range orderedItemIDs {
			err := q.UpdateItemPosition(ctx, dbq.UpdateItemPositionParams{
				Position: int64(i),
				ID:       id,
			})
			if err != nil {
				return mapPositionErr(err, listID)
			}
		}
		return nil
	})
}

func mapPositionErr(err error, listID idwrap.IDWrap) error {
	if dbq.IsUniqueViolation(err) {
		return fmt.Errorf("%w: concurrent reorder on list %s", ErrConflict, listID.String())
	}
	return err
}
