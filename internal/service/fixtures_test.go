package service

import (
	"context"
	"testing"

	"github.com/Biriato/ProyectoWeb/internal/database/dbtest"
	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/Biriato/ProyectoWeb/internal/repository"
)

type countingObserver struct {
	count int
}

func (o *countingObserver) ScoreRecomputed() { o.count++ }

func newTestStore(t *testing.T) repository.Store {
	t.Helper()
	return repository.NewStore(dbtest.Open(t))
}

func seedUser(t *testing.T, store repository.Store, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "User", Email: email, Password: "hash", Role: models.RoleUser}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedSeries(t *testing.T, store repository.Store, title string, episodes *int) *models.Series {
	t.Helper()
	series := &models.Series{Title: title, Status: models.SeriesAiring, Episodes: episodes, Genres: cleanGenres(nil)}
	if err := store.Series().Create(context.Background(), series); err != nil {
		t.Fatalf("failed to seed series: %v", err)
	}
	return series
}

func reloadSeries(t *testing.T, store repository.Store, id int64) *models.Series {
	t.Helper()
	series, err := store.Series().FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to reload series %d: %v", id, err)
	}
	return series
}

func entryFields(status models.ListStatus, rating *int) ListEntryFields {
	return ListEntryFields{Status: status, Rating: rating}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
