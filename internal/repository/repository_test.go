package repository

import (
	"context"
	"testing"

	"github.com/Biriato/ProyectoWeb/internal/database/dbtest"
	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	return NewStore(dbtest.Open(t))
}

func createUser(t *testing.T, store Store, name, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "hash", Role: role}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func createSeries(t *testing.T, store Store, title string, year int, genres ...string) *models.Series {
	t.Helper()
	series := &models.Series{
		Title:  title,
		Status: models.SeriesAiring,
		Year:   &year,
		Genres: datatypes.JSONSlice[string](append([]string{}, genres...)),
	}
	require.NoError(t, store.Series().Create(context.Background(), series))
	return series
}

func addEntry(t *testing.T, store Store, listID, seriesID int64, status models.ListStatus, rating *int) *models.ListSeries {
	t.Helper()
	entry := &models.ListSeries{ListID: listID, SeriesID: seriesID, Status: status, Rating: rating}
	require.NoError(t, store.Lists().CreateEntry(context.Background(), entry))
	return entry
}

func listOf(t *testing.T, store Store, userID int64) *models.List {
	t.Helper()
	list, err := store.Lists().FindByUserID(context.Background(), userID)
	require.NoError(t, err)
	return list
}

func intPtr(v int) *int { return &v }
