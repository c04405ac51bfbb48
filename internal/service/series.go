package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/Biriato/ProyectoWeb/internal/repository"
	"github.com/Biriato/ProyectoWeb/internal/validation"
	"gorm.io/datatypes"
)

// TopSeriesPageSize is the fixed page size of the ranking.
const TopSeriesPageSize = 15

// SeriesPage is one page of the filtered catalog.
type SeriesPage struct {
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"totalPages"`
	Series     []models.Series `json:"series"`
}

// TopSeriesPage is one page of the ranking.
type TopSeriesPage struct {
	Data []models.Series `json:"data"`
	Meta TopSeriesMeta   `json:"meta"`
}

// TopSeriesMeta describes the ranking page.
type TopSeriesMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}

// SeriesService covers catalog reads and admin catalog management.
type SeriesService interface {
	All(ctx context.Context) ([]models.Series, error)
	Top(ctx context.Context, page int) (*TopSeriesPage, error)
	Get(ctx context.Context, id int64) (*models.Series, error)
	Page(ctx context.Context, filter models.SeriesFilter, page, limit int) (*SeriesPage, error)
	Genres(ctx context.Context) ([]string, error)
	Create(ctx context.Context, req CreateSeriesRequest) (*models.Series, error)
	Update(ctx context.Context, id int64, req UpdateSeriesRequest) (*models.Series, error)
	Delete(ctx context.Context, id int64) error
}

type seriesService struct {
	series repository.SeriesRepository
}

// NewSeriesService creates a new SeriesService instance.
func NewSeriesService(series repository.SeriesRepository) SeriesService {
	return &seriesService{series: series}
}

func (s *seriesService) All(ctx context.Context) ([]models.Series, error) {
	return s.series.FindAll(ctx)
}

func (s *seriesService) Top(ctx context.Context, page int) (*TopSeriesPage, error) {
	page, _ = normalizePage(page, TopSeriesPageSize, TopSeriesPageSize)

	series, total, err := s.series.Top(ctx, models.Offset(page, TopSeriesPageSize), TopSeriesPageSize)
	if err != nil {
		return nil, err
	}

	return &TopSeriesPage{
		Data: series,
		Meta: TopSeriesMeta{
			Total:    total,
			Page:     page,
			LastPage: models.NewPagination(total, page, TopSeriesPageSize).TotalPages,
		},
	}, nil
}

func (s *seriesService) Get(ctx context.Context, id int64) (*models.Series, error) {
	series, err := s.series.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSeriesNotFound
		}
		return nil, err
	}
	return series, nil
}

// Page rejects non-positive page or limit; filters combine with AND.
func (s *seriesService) Page(ctx context.Context, filter models.SeriesFilter, page, limit int) (*SeriesPage, error) {
	var errs validation.Errors
	if page < 1 {
		errs.Add("page", "page must be a positive integer")
	}
	if limit < 1 {
		errs.Add("limit", "limit must be a positive integer")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		errs.Add("status", "invalid series status")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	filter.Name = strings.TrimSpace(filter.Name)
	filter.Genre = strings.TrimSpace(filter.Genre)

	series, total, err := s.series.Page(ctx, filter, models.Offset(page, limit), limit)
	if err != nil {
		return nil, err
	}

	return &SeriesPage{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: models.NewPagination(total, page, limit).TotalPages,
		Series:     series,
	}, nil
}

func (s *seriesService) Genres(ctx context.Context) ([]string, error) {
	return s.series.Genres(ctx)
}

func (s *seriesService) Create(ctx context.Context, req CreateSeriesRequest) (*models.Series, error) {
	var errs validation.Errors
	series := &models.Series{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Genre:       req.Genre,
		Genres:      cleanGenres(req.Genres),
		Year:        req.Year,
		ImageURL:    req.ImageURL,
		Episodes:    req.Episodes,
		Status:      req.Status,
		Studio:      req.Studio,
		Source:      req.Source,
	}
	series.StartedAt = parseDateField(&errs, "startedAt", req.StartedAt)
	series.EndedAt = parseDateField(&errs, "endedAt", req.EndedAt)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if err := checkSeries(series); err != nil {
		return nil, err
	}

	if err := s.series.Create(ctx, series); err != nil {
		return nil, err
	}
	return series, nil
}

// Update applies the supplied fields and re-checks the merged record.
func (s *seriesService) Update(ctx context.Context, id int64, req UpdateSeriesRequest) (*models.Series, error) {
	series, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var errs validation.Errors
	if req.Title != nil {
		series.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		series.Description = req.Description
	}
	if req.Genre != nil {
		series.Genre = req.Genre
	}
	if req.Genres != nil {
		series.Genres = cleanGenres(req.Genres)
	}
	if req.Year != nil {
		series.Year = req.Year
	}
	if req.ImageURL != nil {
		series.ImageURL = req.ImageURL
	}
	if req.Episodes != nil {
		series.Episodes = req.Episodes
	}
	if req.Status != nil {
		series.Status = *req.Status
	}
	if req.StartedAt != nil {
		series.StartedAt = parseDateField(&errs, "startedAt", req.StartedAt)
	}
	if req.EndedAt != nil {
		series.EndedAt = parseDateField(&errs, "endedAt", req.EndedAt)
	}
	if req.Studio != nil {
		series.Studio = req.Studio
	}
	if req.Source != nil {
		series.Source = req.Source
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if err := checkSeries(series); err != nil {
		return nil, err
	}

	if err := s.series.Update(ctx, series); err != nil {
		return nil, err
	}
	return series, nil
}

func (s *seriesService) Delete(ctx context.Context, id int64) error {
	if err := s.series.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSeriesNotFound
		}
		return err
	}
	return nil
}

// checkSeries enforces the rules that span several fields.
func checkSeries(series *models.Series) error {
	var errs validation.Errors
	if series.Title == "" {
		errs.Add("title", "title is required")
	}
	if !series.Status.Valid() {
		errs.Add("status", "invalid series status")
	}
	if len(series.Genres) > models.MaxGenres {
		errs.Add("genres", "a series can have at most 3 genres")
	}
	if series.Status == models.SeriesFinished && series.EndedAt == nil {
		errs.Add("endedAt", "end date is required when the series has finished")
	}
	if series.StartedAt != nil && series.EndedAt != nil && series.EndedAt.Before(*series.StartedAt) {
		errs.Add("endedAt", "end date cannot be before the start date")
	}
	return errs.Err()
}

func parseDateField(errs *validation.Errors, field string, value *string) *time.Time {
	t, err := validation.ParseOptionalDate(value)
	if err != nil {
		errs.Add(field, "must be a valid date")
		return nil
	}
	return t
}

func cleanGenres(genres []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(genres))
	for _, genre := range genres {
		if genre = strings.TrimSpace(genre); genre != "" {
			out = append(out, genre)
		}
	}
	return out
}
