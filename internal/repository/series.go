package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Biriato/ProyectoWeb/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeriesRepository defines the interface for catalog data operations.
type SeriesRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Series, error)
	FindAll(ctx context.Context) ([]models.Series, error)
	Create(ctx context.Context, series *models.Series) error
	Update(ctx context.Context, series *models.Series) error
	Delete(ctx context.Context, id int64) error
	Page(ctx context.Context, filter models.SeriesFilter, offset, limit int) ([]models.Series, int64, error)
	Top(ctx context.Context, offset, limit int) ([]models.Series, int64, error)
	Genres(ctx context.Context) ([]string, error)
	SetAverageScore(ctx context.Context, id int64, score *float64) error
}

type seriesRepository struct {
	db *gorm.DB
}

// NewSeriesRepository creates a new SeriesRepository instance.
func NewSeriesRepository(db *gorm.DB) SeriesRepository {
	return &seriesRepository{db: db}
}

func (r *seriesRepository) FindByID(ctx context.Context, id int64) (*models.Series, error) {
	var series models.Series
	if err := r.db.WithContext(ctx).First(&series, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find series by id %d: %w", id, translate(err))
	}
	return &series, nil
}

func (r *seriesRepository) FindAll(ctx context.Context) ([]models.Series, error) {
	var series []models.Series
	if err := r.db.WithContext(ctx).Order("id").Find(&series).Error; err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	return series, nil
}

func (r *seriesRepository) Create(ctx context.Context, series *models.Series) error {
	if err := r.db.WithContext(ctx).Create(series).Error; err != nil {
		return fmt.Errorf("failed to create series: %w", translate(err))
	}
	return nil
}

func (r *seriesRepository) Update(ctx context.Context, series *models.Series) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(series).Error; err != nil {
		return fmt.Errorf("failed to update series id %d: %w", series.ID, translate(err))
	}
	return nil
}

// Delete removes the series; list entries referencing it are cascaded.
func (r *seriesRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Series{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete series id %d: %w", id, translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete series id %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *seriesRepository) Page(ctx context.Context, filter models.SeriesFilter, offset, limit int) ([]models.Series, int64, error) {
	filtered := func(tx *gorm.DB) *gorm.DB {
		if filter.Name != "" {
			tx = tx.Where("LOWER(title) LIKE ? ESCAPE '\\'", containsPattern(filter.Name))
		}
		if filter.Genre != "" {
			tx = hasGenre(tx, filter.Genre)
		}
		if filter.Year != nil {
			tx = tx.Where("year = ?", *filter.Year)
		}
		if filter.Status != "" {
			tx = tx.Where("status = ?", filter.Status)
		}
		return tx
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Series{}).Scopes(filtered).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count series: %w", err)
	}

	var series []models.Series
	err := r.db.WithContext(ctx).Scopes(filtered).Order("id").Offset(offset).Limit(limit).Find(&series).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to page series: %w", err)
	}
	return series, total, nil
}

// Top pages through rated series, best first.
func (r *seriesRepository) Top(ctx context.Context, offset, limit int) ([]models.Series, int64, error) {
	rated := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("average_score IS NOT NULL")
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Series{}).Scopes(rated).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count rated series: %w", err)
	}

	var series []models.Series
	err := r.db.WithContext(ctx).Scopes(rated).
		Order("average_score DESC").Order("id").
		Offset(offset).Limit(limit).
		Find(&series).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list top series: %w", err)
	}
	return series, total, nil
}

// Genres returns every distinct genre tag in the catalog, sorted.
func (r *seriesRepository) Genres(ctx context.Context) ([]string, error) {
	var tagSets []datatypes.JSONSlice[string]
	if err := r.db.WithContext(ctx).Model(&models.Series{}).Pluck("genres", &tagSets).Error; err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}

	seen := make(map[string]struct{})
	genres := make([]string, 0)
	for _, tags := range tagSets {
		for _, tag := range tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			genres = append(genres, tag)
		}
	}
	sort.Strings(genres)
	return genres, nil
}

func (r *seriesRepository) SetAverageScore(ctx context.Context, id int64, score *float64) error {
	var value interface{}
	if score != nil {
		value = *score
	}
	result := r.db.WithContext(ctx).Model(&models.Series{}).Where("id = ?", id).Update("average_score", value)
	if result.Error != nil {
		return fmt.Errorf("failed to set average score for series %d: %w", id, result.Error)
	}
	return nil
}

// hasGenre keeps series whose genres array holds genre as a whole element.
func hasGenre(tx *gorm.DB, genre string) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		encoded, _ := json.Marshal([]string{genre})
		return tx.Where("genres @> ?::jsonb", string(encoded))
	}
	return tx.Where("EXISTS (SELECT 1 FROM json_each(genres) WHERE json_each.value = ?)", genre)
}
