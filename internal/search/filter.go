package search

import "github.com/iliyamo/student-housing-marketplace/internal/model"

// GeoCriterion restricts matches to the bounding box around a point.
type GeoCriterion struct {
    Lat      float64
    Lng      float64
    RadiusKm float64
}

// Filters is the structured criteria set evaluated against each
// candidate listing.  A nil field imposes no constraint; every
// non-nil field is a hard AND constraint.  Values must be validated
// before the Filters is built; the matcher itself never rejects
// input, it only answers yes or no.
type Filters struct {
    HousingType *string       // exact match on listing type
    PriceMin    *int          // inclusive lower bound on price
    PriceMax    *int          // inclusive upper bound on price
    Status      *string       // exact match on listing status
    ScoreMin    *float64      // inclusive lower bound on review score
    Geo         *GeoCriterion // bounding-box inclusion
}

// Matches reports whether the listing satisfies every present
// criterion.  Checks are pure and short-circuit on the first failing
// predicate.
func (f Filters) Matches(l *model.Listing) bool {
    if f.HousingType != nil && l.HousingType != *f.HousingType {
        return false
    }
    if f.PriceMin != nil && l.Price < *f.PriceMin {
        return false
    }
    if f.PriceMax != nil && l.Price > *f.PriceMax {
        return false
    }
    if f.Status != nil && l.Status != *f.Status {
        return false
    }
    if f.ScoreMin != nil && l.Score < *f.ScoreMin {
        return false
    }
    if f.Geo != nil {
        box := BoundingBox(f.Geo.Lat, f.Geo.Lng, f.Geo.RadiusKm)
        if !box.Contains(l.Latitude, l.Longitude) {
            return false
        }
    }
    return true
}
