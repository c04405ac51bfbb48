package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle. A Store
// obtained inside Transaction runs every call on the same transaction.
type Store interface {
	Users() UserRepository
	Series() SeriesRepository
	Lists() ListRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type store struct {
	db     *gorm.DB
	users  UserRepository
	series SeriesRepository
	lists  ListRepository
}

// NewStore creates a Store backed by db.
func NewStore(db *gorm.DB) Store {
	return &store{
		db:     db,
		users:  NewUserRepository(db),
		series: NewSeriesRepository(db),
		lists:  NewListRepository(db),
	}
}

func (s *store) Users() UserRepository    { return s.users }
func (s *store) Series() SeriesRepository { return s.series }
func (s *store) Lists() ListRepository    { return s.lists }

func (s *store) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
