package service

import (
	"context"
	"fmt"
	"math"

	"github.com/Biriato/ProyectoWeb/internal/repository"
)

// RatingChanged is emitted by any write that may alter the set of ratings
// attached to a series.
type RatingChanged struct {
	SeriesID int64
}

// ScoreRecomputer keeps Series.AverageScore in step with list ratings.
type ScoreRecomputer interface {
	// Handle recomputes the average for the event's series using store, which
	// should be the transaction that produced the event.
	Handle(ctx context.Context, store repository.Store, event RatingChanged) (*float64, error)
}

// RecomputeObserver is notified after every successful recompute.
type RecomputeObserver interface {
	ScoreRecomputed()
}

type scoreRecomputer struct {
	observer RecomputeObserver
}

// NewScoreRecomputer creates a ScoreRecomputer. observer may be nil.
func NewScoreRecomputer(observer RecomputeObserver) ScoreRecomputer {
	return &scoreRecomputer{observer: observer}
}

func (r *scoreRecomputer) Handle(ctx context.Context, store repository.Store, event RatingChanged) (*float64, error) {
	ratings, err := store.Lists().Ratings(ctx, event.SeriesID)
	if err != nil {
		return nil, err
	}

	score := AverageScore(ratings)
	if err := store.Series().SetAverageScore(ctx, event.SeriesID, score); err != nil {
		return nil, fmt.Errorf("failed to recompute score of series %d: %w", event.SeriesID, err)
	}

	if r.observer != nil {
		r.observer.ScoreRecomputed()
	}
	return score, nil
}

// AverageScore is the mean of ratings rounded to two decimals, or nil when
// there are no ratings.
func AverageScore(ratings []int) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	total := 0
	for _, rating := range ratings {
		total += rating
	}
	avg := math.Round(float64(total)/float64(len(ratings))*100) / 100
	return &avg
}

// publish delivers events to the recomputer once per series, in order.
func publish(ctx context.Context, store repository.Store, scores ScoreRecomputer, events ...RatingChanged) error {
	seen := make(map[int64]bool, len(events))
	for _, event := range events {
		if seen[event.SeriesID] {
			continue
		}
		seen[event.SeriesID] = true
		if _, err := scores.Handle(ctx, store, event); err != nil {
			return err
		}
	}
	return nil
}
