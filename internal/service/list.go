package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/Biriato/ProyectoWeb/internal/repository"
	"github.com/Biriato/ProyectoWeb/internal/validation"
)

// Default page size of the my-list endpoint.
const DefaultListPageSize = 5

// ListPage is one page of a user's list.
type ListPage struct {
	Series     []models.ListEntryView `json:"series"`
	Pagination models.Pagination      `json:"pagination"`
}

// ListService manages a user's watch-list and keeps series scores current.
type ListService interface {
	Add(ctx context.Context, userID int64, req AddListEntryRequest) (*models.ListSeries, error)
	Update(ctx context.Context, userID, seriesID int64, req UpdateListEntryRequest) (*models.ListSeries, error)
	Remove(ctx context.Context, userID, seriesID int64) error
	Page(ctx context.Context, userID int64, status models.ListStatus, page, limit int) (*ListPage, error)
	All(ctx context.Context, userID int64) ([]models.ListEntryView, error)
}

type listService struct {
	store  repository.Store
	scores ScoreRecomputer
}

// NewListService creates a new ListService instance.
func NewListService(store repository.Store, scores ScoreRecomputer) ListService {
	return &listService{store: store, scores: scores}
}

func (s *listService) Add(ctx context.Context, userID int64, req AddListEntryRequest) (*models.ListSeries, error) {
	entry := &models.ListSeries{SeriesID: req.SeriesID}
	if err := applyEntryFields(entry, req.ListEntryFields, true); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		list, err := findList(ctx, tx, userID)
		if err != nil {
			return err
		}
		entry.ListID = list.ID

		series, err := findSeries(ctx, tx, req.SeriesID)
		if err != nil {
			return err
		}
		if err := checkEpisodeBound(entry, series); err != nil {
			return err
		}

		if _, err := tx.Lists().FindEntry(ctx, list.ID, req.SeriesID); err == nil {
			return ErrSeriesAlreadyInList
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if err := tx.Lists().CreateEntry(ctx, entry); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrSeriesAlreadyInList
			}
			return err
		}

		if entry.Status.Rated() {
			return publish(ctx, tx, s.scores, RatingChanged{SeriesID: req.SeriesID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *listService) Update(ctx context.Context, userID, seriesID int64, req UpdateListEntryRequest) (*models.ListSeries, error) {
	probe := &models.ListSeries{}
	if err := applyEntryFields(probe, req.ListEntryFields, false); err != nil {
		return nil, err
	}

	var entry *models.ListSeries
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		list, err := findList(ctx, tx, userID)
		if err != nil {
			return err
		}

		entry, err = tx.Lists().FindEntry(ctx, list.ID, seriesID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEntryNotFound
			}
			return err
		}

		wasRated := entry.Status.Rated()
		if err := applyEntryFields(entry, req.ListEntryFields, false); err != nil {
			return err
		}

		series, err := findSeries(ctx, tx, seriesID)
		if err != nil {
			return err
		}
		if err := checkEpisodeBound(entry, series); err != nil {
			return err
		}

		if err := tx.Lists().UpdateEntry(ctx, entry); err != nil {
			return err
		}

		if wasRated || entry.Status.Rated() {
			return publish(ctx, tx, s.scores, RatingChanged{SeriesID: seriesID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Remove deletes the entry if present and always recomputes the series score.
func (s *listService) Remove(ctx context.Context, userID, seriesID int64) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		list, err := findList(ctx, tx, userID)
		if err != nil {
			return err
		}
		if _, err := tx.Lists().DeleteEntry(ctx, list.ID, seriesID); err != nil {
			return err
		}
		return publish(ctx, tx, s.scores, RatingChanged{SeriesID: seriesID})
	})
}

func (s *listService) Page(ctx context.Context, userID int64, status models.ListStatus, page, limit int) (*ListPage, error) {
	if status != "" && !status.Valid() {
		return nil, validation.New("status", "invalid list status")
	}
	page, limit = normalizePage(page, limit, DefaultListPageSize)

	list, err := findList(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	entries, total, err := s.store.Lists().Entries(ctx, list.ID, status, models.Offset(page, limit), limit)
	if err != nil {
		return nil, err
	}

	return &ListPage{
		Series:     toViews(entries),
		Pagination: models.NewPagination(total, page, limit),
	}, nil
}

func (s *listService) All(ctx context.Context, userID int64) ([]models.ListEntryView, error) {
	list, err := findList(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.Lists().AllEntries(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	return toViews(entries), nil
}

// applyEntryFields validates fields and copies them onto entry. The rating is
// cleared unless the new status is VISTA. Dates and episode are only replaced
// when supplied, except on create where absent values stay nil.
func applyEntryFields(entry *models.ListSeries, fields ListEntryFields, create bool) error {
	var errs validation.Errors

	if !fields.Status.Valid() {
		errs.Add("status", "invalid list status")
	}

	var rating *int
	if fields.Status.Rated() {
		if fields.Rating == nil || *fields.Rating < models.MinRating || *fields.Rating > models.MaxRating {
			errs.Add("rating", fmt.Sprintf("rating must be between %d and %d when status is %s",
				models.MinRating, models.MaxRating, models.ListWatched))
		} else {
			r := *fields.Rating
			rating = &r
		}
	}

	startedAt, err := validation.ParseOptionalDate(fields.StartedAt)
	if err != nil {
		errs.Add("startedAt", "invalid start date")
	}
	endedAt, err := validation.ParseOptionalDate(fields.EndedAt)
	if err != nil {
		errs.Add("endedAt", "invalid end date")
	}

	if fields.CurrentEpisode != nil && *fields.CurrentEpisode < 0 {
		errs.Add("currentEpisode", "current episode cannot be negative")
	}

	if len(errs) > 0 {
		return errs
	}

	entry.Status = fields.Status
	entry.Rating = rating
	if startedAt != nil || create {
		entry.StartedAt = startedAt
	}
	if endedAt != nil || create {
		entry.EndedAt = endedAt
	}
	if fields.CurrentEpisode != nil || create {
		entry.CurrentEpisode = fields.CurrentEpisode
	}

	if entry.StartedAt != nil && entry.EndedAt != nil && entry.EndedAt.Before(*entry.StartedAt) {
		return validation.New("endedAt", "end date cannot be before the start date")
	}
	return nil
}

func checkEpisodeBound(entry *models.ListSeries, series *models.Series) error {
	if entry.CurrentEpisode == nil || series.Episodes == nil {
		return nil
	}
	if *entry.CurrentEpisode > *series.Episodes {
		return validation.New("currentEpisode",
			fmt.Sprintf("current episode cannot exceed the %d episodes of the series", *series.Episodes))
	}
	return nil
}

func findList(ctx context.Context, store repository.Store, userID int64) (*models.List, error) {
	list, err := store.Lists().FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return list, nil
}

func findSeries(ctx context.Context, store repository.Store, id int64) (*models.Series, error) {
	series, err := store.Series().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSeriesNotFound
		}
		return nil, err
	}
	return series, nil
}

func toViews(entries []models.ListSeries) []models.ListEntryView {
	views := make([]models.ListEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, models.NewListEntryView(entry))
	}
	return views
}

func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}
