package search

import (
    "testing"

    "github.com/stretchr/testify/assert"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
)

func strp(s string) *string    { return &s }
func intp(n int) *int          { return &n }
func floatp(f float64) *float64 { return &f }

func sampleListing() model.Listing {
    return model.Listing{
        ID:          1,
        LandlordID:  7,
        Title:       "Studio lumineux proche campus",
        Price:       520,
        HousingType: model.HousingStudio,
        Status:      model.StatusAvailable,
        Score:       4.2,
        Latitude:    45.7640,
        Longitude:   4.8357,
    }
}

func TestEmptyFiltersMatchEverything(t *testing.T) {
    l := sampleListing()
    assert.True(t, Filters{}.Matches(&l))
}

func TestPriceBoundsAreInclusive(t *testing.T) {
    l := sampleListing()

    assert.True(t, Filters{PriceMin: intp(l.Price)}.Matches(&l))
    assert.False(t, Filters{PriceMin: intp(l.Price + 1)}.Matches(&l))
    assert.True(t, Filters{PriceMax: intp(l.Price)}.Matches(&l))
    assert.False(t, Filters{PriceMax: intp(l.Price - 1)}.Matches(&l))
}

func TestHousingTypeAndStatusAreExactMatches(t *testing.T) {
    l := sampleListing()

    assert.True(t, Filters{HousingType: strp(model.HousingStudio)}.Matches(&l))
    assert.False(t, Filters{HousingType: strp(model.HousingHouse)}.Matches(&l))
    assert.True(t, Filters{Status: strp(model.StatusAvailable)}.Matches(&l))
    assert.False(t, Filters{Status: strp(model.StatusReserved)}.Matches(&l))
}

func TestScoreMinIsInclusiveLowerBound(t *testing.T) {
    l := sampleListing()

    assert.True(t, Filters{ScoreMin: floatp(4.2)}.Matches(&l))
    assert.False(t, Filters{ScoreMin: floatp(4.3)}.Matches(&l))
}

func TestGeoCriterionDelegatesToBoundingBox(t *testing.T) {
    l := sampleListing()

    near := Filters{Geo: &GeoCriterion{Lat: 45.76, Lng: 4.84, RadiusKm: 5}}
    assert.True(t, near.Matches(&l))

    far := Filters{Geo: &GeoCriterion{Lat: 48.85, Lng: 2.35, RadiusKm: 5}}
    assert.False(t, far.Matches(&l))
}

func TestAllPresentFieldsAreAndConstraints(t *testing.T) {
    l := sampleListing()

    f := Filters{
        HousingType: strp(model.HousingStudio),
        PriceMin:    intp(400),
        PriceMax:    intp(600),
        Status:      strp(model.StatusAvailable),
        ScoreMin:    floatp(4.0),
    }
    assert.True(t, f.Matches(&l))

    // One failing criterion is enough to reject.
    f.PriceMax = intp(500)
    assert.False(t, f.Matches(&l))
}

func TestFilteringIsIdempotent(t *testing.T) {
    listings := []model.Listing{
        sampleListing(),
        {ID: 2, Price: 900, HousingType: model.HousingHouse, Status: model.StatusAvailable},
        {ID: 3, Price: 450, HousingType: model.HousingStudio, Status: model.StatusReserved},
    }
    f := Filters{Status: strp(model.StatusAvailable)}

    first := make([]model.Listing, 0)
    for i := range listings {
        if f.Matches(&listings[i]) {
            first = append(first, listings[i])
        }
    }
    second := make([]model.Listing, 0)
    for i := range first {
        if f.Matches(&first[i]) {
            second = append(second, first[i])
        }
    }
    assert.Equal(t, first, second)
}
