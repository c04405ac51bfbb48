package repository

import (
	"context"
	"fmt"

	"github.com/Biriato/ProyectoWeb/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListRepository defines the interface for watch-list data operations.
type ListRepository interface {
	FindByUserID(ctx context.Context, userID int64) (*models.List, error)
	FindEntry(ctx context.Context, listID, seriesID int64) (*models.ListSeries, error)
	CreateEntry(ctx context.Context, entry *models.ListSeries) error
	UpdateEntry(ctx context.Context, entry *models.ListSeries) error
	DeleteEntry(ctx context.Context, listID, seriesID int64) (int64, error)
	Entries(ctx context.Context, listID int64, status models.ListStatus, offset, limit int) ([]models.ListSeries, int64, error)
	AllEntries(ctx context.Context, listID int64) ([]models.ListSeries, error)
	Ratings(ctx context.Context, seriesID int64) ([]int, error)
	RatedSeriesIDs(ctx context.Context, listID int64) ([]int64, error)
}

type listRepository struct {
	db *gorm.DB
}

// NewListRepository creates a new ListRepository instance.
func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) FindByUserID(ctx context.Context, userID int64) (*models.List, error) {
	var list models.List
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to find list for user %d: %w", userID, translate(err))
	}
	return &list, nil
}

func (r *listRepository) FindEntry(ctx context.Context, listID, seriesID int64) (*models.ListSeries, error) {
	var entry models.ListSeries
	err := r.db.WithContext(ctx).
		Where("list_id = ? AND series_id = ?", listID, seriesID).
		First(&entry).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find series %d in list %d: %w", seriesID, listID, translate(err))
	}
	return &entry, nil
}

func (r *listRepository) CreateEntry(ctx context.Context, entry *models.ListSeries) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to add series %d to list %d: %w", entry.SeriesID, entry.ListID, translate(err))
	}
	return nil
}

// UpdateEntry writes every column, so nil fields are stored as NULL.
func (r *listRepository) UpdateEntry(ctx context.Context, entry *models.ListSeries) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(entry).Error; err != nil {
		return fmt.Errorf("failed to update series %d in list %d: %w", entry.SeriesID, entry.ListID, translate(err))
	}
	return nil
}

func (r *listRepository) DeleteEntry(ctx context.Context, listID, seriesID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("list_id = ? AND series_id = ?", listID, seriesID).
		Delete(&models.ListSeries{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to remove series %d from list %d: %w", seriesID, listID, result.Error)
	}
	return result.RowsAffected, nil
}

// Entries pages through a list, newest entry first, with the series preloaded.
func (r *listRepository) Entries(ctx context.Context, listID int64, status models.ListStatus, offset, limit int) ([]models.ListSeries, int64, error) {
	filtered := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("list_id = ?", listID)
		if status != "" {
			tx = tx.Where("status = ?", status)
		}
		return tx
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ListSeries{}).Scopes(filtered).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count entries of list %d: %w", listID, err)
	}

	var entries []models.ListSeries
	err := r.db.WithContext(ctx).Scopes(filtered).
		Preload("Series").
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load entries of list %d: %w", listID, err)
	}
	return entries, total, nil
}

func (r *listRepository) AllEntries(ctx context.Context, listID int64) ([]models.ListSeries, error) {
	var entries []models.ListSeries
	err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Preload("Series").
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load entries of list %d: %w", listID, err)
	}
	return entries, nil
}

// Ratings returns every non-null rating given to the series across all lists.
func (r *listRepository) Ratings(ctx context.Context, seriesID int64) ([]int, error) {
	var ratings []int
	err := r.db.WithContext(ctx).Model(&models.ListSeries{}).
		Where("series_id = ? AND rating IS NOT NULL", seriesID).
		Pluck("rating", &ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings for series %d: %w", seriesID, err)
	}
	return ratings, nil
}

// RatedSeriesIDs returns the series that carry a rating in the given list.
func (r *listRepository) RatedSeriesIDs(ctx context.Context, listID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.ListSeries{}).
		Where("list_id = ? AND rating IS NOT NULL", listID).
		Pluck("series_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load rated series of list %d: %w", listID, err)
	}
	return ids, nil
}
