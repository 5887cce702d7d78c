package slist_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidytodo/server/pkg/idwrap"
	"tidytodo/server/pkg/model/mlist"
	"tidytodo/server/pkg/service/slist"
	"tidytodo/server/pkg/testutil"
)

func TestListCreate(t *testing.T) {
	ctx := context.Background()
	db := testutil.CreateBaseDB(ctx, t)
	defer db.Close()
	base := db.GetBaseServices()

	t.Run("create and read back", func(t *testing.T) {
		list, err := base.Ls.Create(ctx, "groceries")
		require.NoError(t, err)
		assert.False(t, list.ID.IsZero())
		assert.Equal(t, "groceries", list.Name)
		assert.False(t, list.Created.IsZero())

		got, err := base.Ls.Get(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, list.ID, got.ID)
		assert.Equal(t, "groceries", got.Name)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		_, err := base.Ls.Create(ctx, "groceries")
		assert.ErrorIs(t, err, slist.ErrNameExists)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		_, err := base.Ls.Create(ctx, "  \t ")
		assert.ErrorIs(t, err, slist.ErrInvalidName)
	})

	t.Run("overlong name is rejected", func(t *testing.T) {
		_, err := base.Ls.Create(ctx, strings.Repeat("n", mlist.NameMaxLen+1))
		assert.ErrorIs(t, err, slist.ErrInvalidName)
	})

	t.Run("name at the limit is accepted", func(t *testing.T) {
		_, err := base.Ls.Create(ctx, strings.Repeat("m", mlist.NameMaxLen))
		assert.NoError(t, err)
	})
}

func TestListGetAll(t *testing.T) {
	ctx := context.Background()
	db := testutil.CreateBaseDB(ctx, t)
	defer db.Close()
	base := db.GetBaseServices()

	first, err := base.Ls.Create(ctx, "first")
	require.NoError(t, err)
	second, err := base.Ls.Create(ctx, "second")
	require.NoError(t, err)

	lists, err := base.Ls.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	// Newest first.
	assert.Equal(t, second.ID, lists[0].ID)
	assert.Equal(t, first.ID, lists[1].ID)
}

func TestListRename(t *testing.T) {
	ctx := context.Background()
	db := testutil.CreateBaseDB(ctx, t)
	defer db.Close()
	base := db.GetBaseServices()

	list, err := base.Ls.Create(ctx, "before")
	require.NoError(t, err)
	_, err = base.Ls.Create(ctx, "taken")
	require.NoError(t, err)

	t.Run("rename succeeds", func(t *testing.T) {
		got, err := base.Ls.Rename(ctx, list.ID, "after")
		require.NoError(t, err)
		assert.Equal(t, "after", got.Name)

		reread, err := base.Ls.Get(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", reread.Name)
	})

	t.Run("rename to own name is allowed", func(t *testing.T) {
		_, err := base.Ls.Rename(ctx, list.ID, "after")
		assert.NoError(t, err)
	})

	t.Run("rename onto another list is rejected", func(t *testing.T) {
		_, err := base.Ls.Rename(ctx, list.ID, "taken")
		assert.ErrorIs(t, err, slist.ErrNameExists)
	})

	t.Run("rename validates the new name", func(t *testing.T) {
		_, err := base.Ls.Rename(ctx, list.ID, " ")
		assert.ErrorIs(t, err, slist.ErrInvalidName)
	})

	t.Run("rename of a missing list", func(t *testing.T) {
		_, err := base.Ls.Rename(ctx, idwrap.NewNow(), "whatever")
		assert.ErrorIs(t, err, slist.ErrNoListFound)
	})
}

func TestListDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.CreateBaseDB(ctx, t)
	defer db.Close()
	base := db.GetBaseServices()

	list, err := base.Ls.Create(ctx, "doomed")
	require.NoError(t, err)

	t.Run("delete cascades to items", func(t *testing.T) {
		item, err := base.Is.Create(ctx, list.ID, "carried along")
		require.NoError(t, err)

		require.NoError(t, base.Ls.Delete(ctx, list.ID))

		_, err = base.Ls.Get(ctx, list.ID)
		assert.ErrorIs(t, err, slist.ErrNoListFound)
		_, err = base.Is.Get(ctx, item.ID)
		assert.Error(t, err)
	})

	t.Run("delete of a missing list", func(t *testing.T) {
		err := base.Ls.Delete(ctx, idwrap.NewNow())
		assert.ErrorIs(t, err, slist.ErrNoListFound)
	})
}

func TestListCountAndExists(t *testing.T) {
	ctx := context.Background()
	db := testutil.CreateBaseDB(ctx, t)
	defer db.Close()
	base := db.GetBaseServices()

	n, err := base.Ls.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = base.Ls.Create(ctx, "only one")
	require.NoError(t, err)

	n, err = base.Ls.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	exists, err := base.Ls.ExistsByName(ctx, "only one")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = base.Ls.ExistsByName(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)
}
