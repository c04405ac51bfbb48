package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRepository_Entries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "Ana", "ana@example.com", models.RoleUser)
	listID := user.List.ID
	dark := createSeries(t, store, "Dark", 2017)
	fargo := createSeries(t, store, "Fargo", 2014)
	lost := createSeries(t, store, "Lost", 2004)

	addEntry(t, store, listID, dark.ID, models.ListWatched, intPtr(9))
	addEntry(t, store, listID, fargo.ID, models.ListWatching, nil)
	addEntry(t, store, listID, lost.ID, models.ListWatched, intPtr(6))

	entries, total, err := store.Lists().Entries(ctx, listID, "", 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, entries, 2)
	assert.Equal(t, lost.ID, entries[0].SeriesID, "newest entry first")
	require.NotNil(t, entries[0].Series)
	assert.Equal(t, "Lost", entries[0].Series.Title)

	entries, total, err = store.Lists().Entries(ctx, listID, models.ListWatched, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, entries, 2)

	all, err := store.Lists().AllEntries(ctx, listID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, dark.ID, all[0].SeriesID)

	rated, err := store.Lists().RatedSeriesIDs(ctx, listID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{dark.ID, lost.ID}, rated)
}

func TestListRepository_EntryLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "Ana", "ana@example.com", models.RoleUser)
	series := createSeries(t, store, "Dark", 2017)
	entry := addEntry(t, store, user.List.ID, series.ID, models.ListWatched, intPtr(9))

	err := store.Lists().CreateEntry(ctx, &models.ListSeries{ListID: user.List.ID, SeriesID: series.ID, Status: models.ListToWatch})
	assert.ErrorIs(t, err, ErrDuplicate)

	entry.Status = models.ListWatching
	entry.Rating = nil
	require.NoError(t, store.Lists().UpdateEntry(ctx, entry))

	found, err := store.Lists().FindEntry(ctx, user.List.ID, series.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListWatching, found.Status)
	assert.Nil(t, found.Rating)

	removed, err := store.Lists().DeleteEntry(ctx, user.List.ID, series.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	removed, err = store.Lists().DeleteEntry(ctx, user.List.ID, series.ID)
	require.NoError(t, err)
	assert.Zero(t, removed)

	_, err = store.Lists().FindEntry(ctx, user.List.ID, series.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRepository_RatingsAcrossLists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	series := createSeries(t, store, "Dark", 2017)
	for i, rating := range []*int{intPtr(7), intPtr(8), nil} {
		user := createUser(t, store, "User", string(rune('a'+i))+"@example.com", models.RoleUser)
		status := models.ListWatched
		if rating == nil {
			status = models.ListToWatch
		}
		addEntry(t, store, user.List.ID, series.ID, status, rating)
	}

	ratings, err := store.Lists().Ratings(ctx, series.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{7, 8}, ratings)
}

func TestStore_TransactionRollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "Ana", "ana@example.com", models.RoleUser)
	series := createSeries(t, store, "Dark", 2017)
	errAbort := errors.New("abort")

	err := store.Transaction(ctx, func(tx Store) error {
		addEntry(t, tx, user.List.ID, series.ID, models.ListWatched, intPtr(9))
		score := 9.0
		require.NoError(t, tx.Series().SetAverageScore(ctx, series.ID, &score))
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	_, err = store.Lists().FindEntry(ctx, user.List.ID, series.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	reloaded, err := store.Series().FindByID(ctx, series.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.AverageScore)
}
