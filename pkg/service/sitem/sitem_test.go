package sitem_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidytodo/server/pkg/idwrap"
	"tidytodo/server/pkg/model/mitem"
	"tidytodo/server/pkg/model/mlist"
	"tidytodo/server/pkg/service/sitem"
	"tidytodo/server/pkg/testutil"
)

func seedList(ctx context.Context, t *testing.T, base testutil.BaseTestServices, name string) *mlist.List {
	t.Helper()
	list, err := base.Ls.Create(ctx, name)
	require.NoError(t, err)
	return list
}

func TestItemCreate(t *testing.T) {
	ctx := context.Background()
	db := testutil.CreateBaseDB(ctx, t)
	defer db.Close()
	base := db.GetBaseServices()

	list := seedList(ctx, t, base, "groceries")

	t.Run("first item lands at position zero", func(t *testing.T) {
		item, err := base.Is.Create(ctx, list.ID, "milk")
		require.NoError(t, err)
		assert.Equal(t, 0, item.Position)
		assert.Equal(t, "milk", item.Text)
		assert.False(t, item.Completed)
		assert.False(t, item.Important)
		assert.False(t, item.Hidden)
	})

	t.Run("appends continue from the maximum", func(t *testing.T) {
		second, err := base.Is.Create(ctx, list.ID, "bread")
		require.NoError(t, err)
		assert.Equal(t, 1, second.Position)

		third, err := base.Is.Create(ctx, list.ID, "eggs")
		require.NoError(t, err)
		assert.Equal(t, 2, third.Position)
	})

	t.Run("lists allocate positions independently", func(t *testing.T) {
		other := seedList(ctx, t, base, "chores")
		item, err := base.Is.Create(ctx, other.ID, "laundry")
		require.NoError(t, err)
		assert.Equal(t, 0, item.Position)
	})

	t.Run("unknown list is rejected", func(t *testing.T) {
		_, err := base.Is.Create(ctx, idwrap.NewNow(), "orphan")
		assert.ErrorIs(t, err, sitem.ErrNoListFound)
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		_, err := base.Is.Create(ctx, list.ID, "   ")
		assert.ErrorIs(t, err, sitem.ErrInvalidText)
	})

	t.Run("overlong text is rejected", func(t *testing.T) {
		_, err := base.Is.Create(ctx, list.ID, strings.Repeat("x", mitem.TextMaxLen+1))
		assert.ErrorIs(t, err, sitem.ErrInvalidText)
	})

	t.Run("text at the limit is accepted", func(t *testing.T) {
		item, err := base.Is.Create(ctx, list.ID, strings.Repeat("y", mitem.TextMaxLen))
		require.NoError(t, err)
		assert.Len(t, item.Text, mitem.TextMaxLen)
	})
}

func TestItemCreateAfterDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.CreateBaseDB(ctx, t)
	defer db.Close()
	base := db.GetBaseServices()

	list := seedList(ctx, t, base, "gaps")
	first, err := base.Is.Create(ctx, list.ID, "a")
	require.NoError(t, err)
	_, err = base.Is.Create(ctx, list.ID, "b")
	require.NoError(t, err)
	third, err := base.Is.Create(ctx, list.ID, "c")
	require.NoError(t, err)

	// Removing the first item leaves a gap at position 0; the next append
	// still goes past the current maximum rather than filling the gap.
	require.NoError(t, base.Is.Delete(ctx, first.ID))
	fourth, err := base.Is.Create(ctx, list.ID, "d")
	require.NoError(t, err)
	assert.Equal(t, third.Position+1, fourth.Position)
}

func TestItemGetAndUpdate(t *testing.T) {
	ctx := context.Background()
	db := testutil.CreateBaseDB(ctx, t)
	defer db.Close()
	base := db.GetBaseServices()

	list := seedList(ctx, t, base, "updates")
	item, err := base.Is.Create(ctx, list.ID, "draft")
	require.NoError(t, err)

	t.Run("get round trip", func(t *testing.T) {
		got, err := base.Is.Get(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, got.ID)
		assert.Equal(t, list.ID, got.ListID)
		assert.Equal(t, "draft", got.Text)
	})

	t.Run("get unknown item", func(t *testing.T) {
		_, err := base.Is.Get(ctx, idwrap.NewNow())
		assert.ErrorIs(t, err, sitem.ErrNoItemFound)
	})

	t.Run("update text", func(t *testing.T) {
		got, err := base.Is.UpdateText(ctx, item.ID, "final")
		require.NoError(t, err)
		assert.Equal(t, "final", got.Text)

		reread, err := base.Is.Get(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "final", reread.Text)
	})

	t.Run("update text validation", func(t *testing.T) {
		_, err := base.Is.UpdateText(ctx, item.ID, " ")
		assert.ErrorIs(t, err, sitem.ErrInvalidText)
	})

	t.Run("update text and completion together", func(t *testing.T) {
		got, err := base.Is.Update(ctx, item.ID, "done thing", true)
		require.NoError(t, err)
		assert.Equal(t, "done thing", got.Text)
		assert.True(t, got.Completed)
	})

	t.Run("set completed", func(t *testing.T) {
		got, err := base.Is.SetCompleted(ctx, item.ID, false)
		require.NoError(t, err)
		assert.False(t, got.Completed)
	})

	t.Run("toggle completed flips", func(t *testing.T) {
		got, err := base.Is.ToggleCompleted(ctx, item.ID)
		require.NoError(t, err)
		assert.True(t, got.Completed)

		got, err = base.Is.ToggleCompleted(ctx, item.ID)
		require.NoError(t, err)
		assert.False(t, got.Completed)
	})

	t.Run("toggle important flips and keeps position", func(t *testing.T) {
		before, err := base.Is.Get(ctx, item.ID)
		require.NoError(t, err)

		got, err := base.Is.ToggleImportant(ctx, item.ID)
		require.NoError(t, err)
		assert.True(t, got.Important)
		assert.Equal(t, before.Position, got.Position)

		got, err = base.Is.ToggleImportant(ctx, item.ID)
		require.NoError(t, err)
		assert.False(t, got.Important)
	})
}

func TestItemListOrdered(t *testing.T) {
	ctx := context.Background()
	db := testutil.CreateBaseDB(ctx, t)
	defer db.Close()
	base := db.GetBaseServices()

	list := seedList(ctx, t, base, "ordering")
	a, err := base.Is.Create(ctx, list.ID, "a")
	require.NoError(t, err)
	b, err := base.Is.Create(ctx, list.ID, "b")
	require.NoError(t, err)
	c, err := base.Is.Create(ctx, list.ID, "c")
	require.NoError(t, err)

	t.Run("ascending position by default", func(t *testing.T) {
		items, err := base.Is.ListOrdered(ctx, list.ID)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, []string{"a", "b", "c"}, texts(items))
	})

	t.Run("important items rank before everything", func(t *testing.T) {
		_, err := base.Is.ToggleImportant(ctx, c.ID)
		require.NoError(t, err)

		items, err := base.Is.ListOrdered(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, texts(items))
	})

	t.Run("within a tier position still decides", func(t *testing.T) {
		_, err := base.Is.ToggleImportant(ctx, a.ID)
		require.NoError(t, err)

		items, err := base.Is.ListOrdered(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c", "b"}, texts(items))
	})

	t.Run("empty list yields empty slice", func(t *testing.T) {
		other := seedList(ctx, t, base, "empty")
		items, err := base.Is.ListOrdered(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	_ = b
}

func TestItemListByCompleted(t *testing.T) {
	ctx := context.Background()
	db := testutil.CreateBaseDB(ctx, t)
	defer db.Close()
	base := db.GetBaseServices()

	list := seedList(ctx, t, base, "filters")
	open, err := base.Is.Create(ctx, list.ID, "open")
	require.NoError(t, err)
	done, err := base.Is.Create(ctx, list.ID, "done")
	require.NoError(t, err)
	_, err = base.Is.SetCompleted(ctx, done.ID, true)
	require.NoError(t, err)

	completed, err := base.Is.ListByCompleted(ctx, list.ID, true)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, done.ID, completed[0].ID)

	pending, err := base.Is.ListByCompleted(ctx, list.ID, false)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, open.ID, pending[0].ID)
}

func TestItemCountsAndDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.CreateBaseDB(ctx, t)
	defer db.Close()
	base := db.GetBaseServices()

	list := seedList(ctx, t, base, "counts")
	for _, text := range []string{"one", "two", "three"} {
		_, err := base.Is.Create(ctx, list.ID, text)
		require.NoError(t, err)
	}
	items, err := base.Is.ListOrdered(ctx, list.ID)
	require.NoError(t, err)
	_, err = base.Is.SetCompleted(ctx, items[0].ID, true)
	require.NoError(t, err)

	t.Run("count by list", func(t *testing.T) {
		n, err := base.Is.CountByList(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("count completed", func(t *testing.T) {
		n, err := base.Is.CountCompletedByList(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("delete unknown item", func(t *testing.T) {
		err := base.Is.Delete(ctx, idwrap.NewNow())
		assert.ErrorIs(t, err, sitem.ErrNoItemFound)
	})

	t.Run("delete one item", func(t *testing.T) {
		require.NoError(t, base.Is.Delete(ctx, items[1].ID))
		n, err := base.Is.CountByList(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("delete all reports removed rows", func(t *testing.T) {
		removed, err := base.Is.DeleteAllInList(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		n, err := base.Is.CountByList(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})
}

func TestItemHideCompleted(t *testing.T) {
	ctx := context.Background()
	db := testutil.CreateBaseDB(ctx, t)
	defer db.Close()
	base := db.GetBaseServices()

	list := seedList(ctx, t, base, "hide")
	open, err := base.Is.Create(ctx, list.ID, "open")
	require.NoError(t, err)
	doneA, err := base.Is.Create(ctx, list.ID, "done a")
	require.NoError(t, err)
	doneB, err := base.Is.Create(ctx, list.ID, "done b")
	require.NoError(t, err)
	for _, id := range []idwrap.IDWrap{doneA.ID, doneB.ID} {
		_, err := base.Is.SetCompleted(ctx, id, true)
		require.NoError(t, err)
	}

	hidden, err := base.Is.HideCompleted(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hidden)

	got, err := base.Is.Get(ctx, open.ID)
	require.NoError(t, err)
	assert.False(t, got.Hidden)

	got, err = base.Is.Get(ctx, doneA.ID)
	require.NoError(t, err)
	assert.True(t, got.Hidden)

	// Already hidden rows are not touched again.
	hidden, err = base.Is.HideCompleted(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), hidden)
}

func texts(items []mitem.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Text)
	}
	return out
}
