package store_test

import (
	"context"
	"encoding/json"
	"testing"

	"assetdb/internal/models"
	"assetdb/internal/store"
	"assetdb/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) (*store.Store[models.Site], *store.Store[models.Location]) {
	d := testutil.OpenDB(t)
	return store.New[models.Site](d, "sites", "name"),
		store.New[models.Location](d, "locations", "site_id", "room", "rack")
}

func TestCreateFiltersToWhitelist(t *testing.T) {
	sites, _ := newStores(t)
	ctx := context.Background()

	s, err := sites.Create(ctx, store.Fields{"name": "DC1", "bogus": "ignored", "id": 99})
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.NotEqual(t, uint(99), s.ID)
	assert.Equal(t, "DC1", s.Name)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestCreateRejectsBadInput(t *testing.T) {
	sites, _ := newStores(t)
	ctx := context.Background()

	_, err := sites.Create(ctx, store.Fields{})
	assert.ErrorIs(t, err, store.ErrNoFields)

	_, err = sites.Create(ctx, store.Fields{"bogus": 1})
	assert.ErrorIs(t, err, store.ErrNoValidFields)

	for _, k := range []string{"name;drop", "na--me", "x'y", "xp_cmd", "a/*b"} {
		_, err = sites.Create(ctx, store.Fields{k: "v"})
		assert.ErrorIs(t, err, store.ErrInvalidColumn, k)
		assert.ErrorIs(t, err, store.ErrInvalidInput, k)
	}
}

func TestCreateCoercesNumericStrings(t *testing.T) {
	sites, locs := newStores(t)
	ctx := context.Background()

	s, err := sites.Create(ctx, store.Fields{"name": "DC1"})
	require.NoError(t, err)

	l, err := locs.Create(ctx, store.Fields{"site_id": json.Number("1"), "room": 101, "rack": "R1"})
	require.NoError(t, err)
	assert.Equal(t, s.ID, l.SiteID)
	assert.Equal(t, "101", l.Room)

	_, err = locs.Create(ctx, store.Fields{"site_id": "abc", "room": "A", "rack": "R2"})
	assert.ErrorIs(t, err, store.ErrInvalidValue)
}

func TestFindAllWhereOrderPaging(t *testing.T) {
	sites, locs := newStores(t)
	ctx := context.Background()

	s, err := sites.Create(ctx, store.Fields{"name": "DC1"})
	require.NoError(t, err)
	for _, rack := range []string{"R3", "R1", "R2"} {
		_, err := locs.Create(ctx, store.Fields{"site_id": s.ID, "room": "A", "rack": rack})
		require.NoError(t, err)
	}

	all, err := locs.FindAll(ctx, store.FindOptions{OrderBy: "rack", OrderDirection: "desc"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "R3", all[0].Rack)
	assert.Equal(t, "R1", all[2].Rack)

	page, err := locs.FindAll(ctx, store.FindOptions{OrderBy: "rack", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "R2", page[0].Rack)

	filtered, err := locs.FindAll(ctx, store.FindOptions{Where: map[string]any{"rack": "R1"}})
	require.NoError(t, err)
	require.Len(t, filtered, 1)

	_, err = locs.FindAll(ctx, store.FindOptions{OrderBy: "rack; DROP TABLE x"})
	assert.ErrorIs(t, err, store.ErrInvalidColumn)

	empty, err := sites.FindAll(ctx, store.FindOptions{Where: map[string]any{"name": "none"}})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestFindByIDMissing(t *testing.T) {
	sites, _ := newStores(t)
	got, err := sites.FindByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdate(t *testing.T) {
	sites, _ := newStores(t)
	ctx := context.Background()

	s, err := sites.Create(ctx, store.Fields{"name": "DC1"})
	require.NoError(t, err)

	u, err := sites.Update(ctx, s.ID, store.Fields{"name": "DC2"})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "DC2", u.Name)

	// same value again still reports the row
	u, err = sites.Update(ctx, s.ID, store.Fields{"name": "DC2"})
	require.NoError(t, err)
	require.NotNil(t, u)

	// nothing writable: current row comes back
	u, err = sites.Update(ctx, s.ID, store.Fields{"bogus": 1})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "DC2", u.Name)

	u, err = sites.Update(ctx, s.ID, store.Fields{})
	require.NoError(t, err)
	require.NotNil(t, u)

	missing, err := sites.Update(ctx, 999, store.Fields{"name": "x"})
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = sites.Update(ctx, s.ID, store.Fields{"name--": "x"})
	assert.ErrorIs(t, err, store.ErrInvalidColumn)
}

func TestDeleteAndExists(t *testing.T) {
	sites, _ := newStores(t)
	ctx := context.Background()

	s, err := sites.Create(ctx, store.Fields{"name": "DC1"})
	require.NoError(t, err)

	ok, err := sites.Exists(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	deleted, err := sites.Delete(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = sites.Delete(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	ok, err = sites.Exists(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	sites, _ := newStores(t)
	ctx := context.Background()
	for _, n := range []string{"Alpha DC", "Beta DC", "Gamma"} {
		_, err := sites.Create(ctx, store.Fields{"name": n})
		require.NoError(t, err)
	}

	got, err := sites.Search(ctx, "DC", []string{"id", "name"}, store.SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = sites.Search(ctx, "Gamma", []string{"name"}, store.SearchOptions{Exact: true})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = sites.Search(ctx, "DC", []string{"name"}, store.SearchOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = sites.Search(ctx, "  ", []string{"name"}, store.SearchOptions{})
	assert.ErrorIs(t, err, store.ErrSearchTerm)
	_, err = sites.Search(ctx, "x", nil, store.SearchOptions{})
	assert.ErrorIs(t, err, store.ErrNoColumns)
	_, err = sites.Search(ctx, "x", []string{"name)"}, store.SearchOptions{})
	assert.ErrorIs(t, err, store.ErrInvalidColumn)
}

func TestSearchConditionPostgresCasts(t *testing.T) {
	cond, args, err := store.SearchCondition("postgres", "7", []string{"id", "name"}, false)
	require.NoError(t, err)
	assert.Equal(t, "(CAST(id AS TEXT) LIKE ? OR CAST(name AS TEXT) LIKE ?)", cond)
	assert.Equal(t, []any{"%7%", "%7%"}, args)

	cond, args, err = store.SearchCondition("mysql", "7", []string{"id"}, true)
	require.NoError(t, err)
	assert.Equal(t, "(id = ?)", cond)
	assert.Equal(t, []any{"7"}, args)
}

func TestFindByColumnAndCount(t *testing.T) {
	sites, _ := newStores(t)
	ctx := context.Background()
	_, err := sites.Create(ctx, store.Fields{"name": "DC1"})
	require.NoError(t, err)

	s, err := sites.FindByColumn(ctx, "name", "DC1")
	require.NoError(t, err)
	require.NotNil(t, s)

	s, err = sites.FindByColumn(ctx, "name", "nope")
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = sites.FindByColumn(ctx, "name", "")
	assert.ErrorIs(t, err, store.ErrEmptyValue)
	_, err = sites.FindByColumn(ctx, "1name", "x")
	assert.ErrorIs(t, err, store.ErrInvalidColumn)

	n, err := sites.Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestCreateManyIsAtomic(t *testing.T) {
	sites, locs := newStores(t)
	ctx := context.Background()
	s, err := sites.Create(ctx, store.Fields{"name": "DC1"})
	require.NoError(t, err)

	_, err = locs.CreateMany(ctx, []store.Fields{
		{"site_id": s.ID, "room": "A", "rack": "R1"},
		{"site_id": s.ID, "room": "A", "rack": "R1"},
	})
	require.Error(t, err)
	n, err := locs.Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	rows, err := locs.CreateMany(ctx, []store.Fields{
		{"site_id": s.ID, "room": "A", "rack": "R1"},
		{"site_id": s.ID, "room": "A", "rack": "R2"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	deleted, err := locs.DeleteMany(ctx, []uint{rows[0].ID, rows[1].ID, 999})
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
}
