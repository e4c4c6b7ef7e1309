package search

import (
    "math"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
)

// Point weights of the compatibility criteria.  The weights sum to
// 70, not 100: a third criterion for geographic distance was planned
// but never given a weight, and the denominator must stay at 70 so
// that historical scores keep their exact values.
const (
    typeMatchPoints   = 30
    budgetMatchPoints = 40
    totalPoints       = typeMatchPoints + budgetMatchPoints
)

// CompatibilityScore computes how well a listing fits a tenant's
// stored preferences, as an integer from 0 to 100.  Type match earns
// 30 of 70 points when any preference row names the listing's
// housing type; budget match earns 40 of 70 when the listing price
// falls inside any preference's budget window.  The earned points
// are scaled to 100 and rounded.  With no preferences, or no
// listing, the score is 0; scoring is an enrichment and never
// fails.
func CompatibilityScore(prefs []model.TenantPreference, l *model.Listing) int {
    if len(prefs) == 0 || l == nil {
        return 0
    }

    earned := 0
    for _, p := range prefs {
        if p.HousingType == l.HousingType {
            earned += typeMatchPoints
            break
        }
    }
    for _, p := range prefs {
        if l.Price >= p.BudgetMin && l.Price <= p.BudgetMax {
            earned += budgetMatchPoints
            break
        }
    }
    return int(math.Round(float64(earned) / float64(totalPoints) * 100))
}
