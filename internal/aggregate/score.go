// Package aggregate recomputes derived listing figures from their
// source rows.  The listing score is the arithmetic mean of all
// review ratings, rounded to one decimal, and is refreshed every
// time a review is recorded.
package aggregate

import (
	"context"
	"math"

	"github.com/iliyamo/student-housing-marketplace/internal/model"
	"github.com/iliyamo/student-housing-marketplace/internal/repository"
)

// MeanScore returns the average of the given ratings rounded to one
// decimal place.  An empty slice yields 0.
func MeanScore(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}

// ScoreAggregator recomputes and persists listing scores.
type ScoreAggregator struct {
	reviews  *repository.ReviewRepo
	listings *repository.ListingRepo
}

// NewScoreAggregator constructs a ScoreAggregator over the given repositories.
func NewScoreAggregator(reviews *repository.ReviewRepo, listings *repository.ListingRepo) *ScoreAggregator {
	return &ScoreAggregator{reviews: reviews, listings: listings}
}

// RecomputeListing reloads all ratings for the listing, averages
// them and stores the result.  Returns the new score.
func (a *ScoreAggregator) RecomputeListing(ctx context.Context, listingID uint64) (float64, error) {
	ratings, err := a.reviews.RatingsByListing(ctx, listingID)
	if err != nil {
		return 0, err
	}
	score := MeanScore(ValidRatings(ratings))
	if err := a.listings.UpdateScore(ctx, listingID, score); err != nil {
		return 0, err
	}
	return score, nil
}

// ratingOK reports whether a rating is inside the accepted 1..5 band.
func ratingOK(r int) bool { return r >= model.RatingMin && r <= model.RatingMax }

// ValidRatings filters out-of-band values before averaging; the
// database constraint should make this a no-op.
func ValidRatings(ratings []int) []int {
	out := ratings[:0]
	for _, r := range ratings {
		if ratingOK(r) {
			out = append(out, r)
		}
	}
	return out
}
