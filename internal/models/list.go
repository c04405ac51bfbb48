package models

import (
	"math"
	"time"
)

// ListStatus is a user's progress on a series.
type ListStatus string

// Watch states of a list entry.
const (
	ListToWatch  ListStatus = "POR_VER"
	ListWatching ListStatus = "MIRANDO"
	ListWatched  ListStatus = "VISTA"
)

// Valid reports whether s is a known watch state.
func (s ListStatus) Valid() bool {
	return s == ListToWatch || s == ListWatching || s == ListWatched
}

// Rated reports whether entries in this state carry a rating.
func (s ListStatus) Rated() bool {
	return s == ListWatched
}

// Rating bounds for watched entries.
const (
	MinRating = 1
	MaxRating = 10
)

// List is the watch-list container owned by a single user.
type List struct {
	ID        int64        `json:"id" gorm:"primaryKey"`
	UserID    int64        `json:"userId" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time    `json:"createdAt"`
	Entries   []ListSeries `json:"-" gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}

// TableName returns the database table name for the List model.
func (List) TableName() string {
	return "lists"
}

// ListSeries records one user's relationship to one series. A series appears
// at most once per list.
type ListSeries struct {
	ID             int64      `json:"id" gorm:"primaryKey"`
	ListID         int64      `json:"listId" gorm:"not null;uniqueIndex:idx_list_series_pair"`
	SeriesID       int64      `json:"seriesId" gorm:"not null;uniqueIndex:idx_list_series_pair;index"`
	Status         ListStatus `json:"status" gorm:"type:varchar(16);not null"`
	Rating         *int       `json:"rating"`
	StartedAt      *time.Time `json:"startedAt"`
	EndedAt        *time.Time `json:"endedAt"`
	CurrentEpisode *int       `json:"currentEpisode"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	Series         *Series    `json:"series,omitempty" gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE"`
}

// TableName returns the database table name for the ListSeries model.
func (ListSeries) TableName() string {
	return "list_series"
}

// ListEntryView is the flattened shape returned by the my-list endpoints.
type ListEntryView struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Genre          *string    `json:"genre"`
	MaxEp          *int       `json:"maxEp"`
	Year           *int       `json:"year"`
	ReleaseDate    *time.Time `json:"releaseDate"`
	ImageURL       *string    `json:"imageUrl"`
	Status         ListStatus `json:"status"`
	Rating         *int       `json:"rating"`
	StartedAt      *time.Time `json:"startedAt"`
	EndedAt        *time.Time `json:"endedAt"`
	CurrentEpisode *int       `json:"currentEpisode"`
}

// NewListEntryView flattens an entry and its preloaded series.
func NewListEntryView(entry ListSeries) ListEntryView {
	view := ListEntryView{
		ID:             entry.SeriesID,
		Status:         entry.Status,
		Rating:         entry.Rating,
		StartedAt:      entry.StartedAt,
		EndedAt:        entry.EndedAt,
		CurrentEpisode: entry.CurrentEpisode,
	}
	if s := entry.Series; s != nil {
		view.Title = s.Title
		view.Genre = s.Genre
		view.MaxEp = s.Episodes
		view.Year = s.Year
		view.ReleaseDate = s.StartedAt
		view.ImageURL = s.ImageURL
	}
	return view
}

// Pagination describes one page of a listing.
type Pagination struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

// NewPagination computes the page count for total items split by pageSize.
func NewPagination(total int64, page, pageSize int) Pagination {
	pages := 0
	if pageSize > 0 {
		pages = int(math.Ceil(float64(total) / float64(pageSize)))
	}
	return Pagination{
		TotalItems:  total,
		TotalPages:  pages,
		CurrentPage: page,
		PageSize:    pageSize,
	}
}

// Offset returns the number of rows to skip for a 1-based page. Pages too far
// out to compute saturate at math.MaxInt, past any stored row.
func Offset(page, pageSize int) int {
	if page < 1 || pageSize < 1 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}
