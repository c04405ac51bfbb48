package models

import (
	"time"

	"gorm.io/datatypes"
)

// SeriesStatus is the broadcast state of a series.
type SeriesStatus string

// Broadcast states.
const (
	SeriesAiring   SeriesStatus = "En emisión"
	SeriesFinished SeriesStatus = "Finalizada"
)

// Valid reports whether s is a known broadcast state.
func (s SeriesStatus) Valid() bool {
	return s == SeriesAiring || s == SeriesFinished
}

// MaxGenres is the number of genre tags a series may carry.
const MaxGenres = 3

// Series is a catalog entry. AverageScore is derived from list ratings and
// is nil while nobody has rated the series.
type Series struct {
	ID           int64                       `json:"id" gorm:"primaryKey"`
	Title        string                      `json:"title" gorm:"not null"`
	Description  *string                     `json:"description"`
	Genre        *string                     `json:"genre"`
	Genres       datatypes.JSONSlice[string] `json:"genres"`
	Year         *int                        `json:"year"`
	ImageURL     *string                     `json:"imageUrl" gorm:"column:image_url"`
	Episodes     *int                        `json:"episodes"`
	Status       SeriesStatus                `json:"status" gorm:"type:varchar(32);not null"`
	StartedAt    *time.Time                  `json:"startedAt"`
	EndedAt      *time.Time                  `json:"endedAt"`
	Studio       *string                     `json:"studio"`
	Source       *string                     `json:"source"`
	AverageScore *float64                    `json:"averageScore"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

// TableName returns the database table name for the Series model.
func (Series) TableName() string {
	return "series"
}

// SeriesFilter holds the optional catalog filters, combined with AND.
type SeriesFilter struct {
	Name   string
	Genre  string
	Year   *int
	Status SeriesStatus
}
