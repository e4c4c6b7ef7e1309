package search

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
)

func TestParseSortKey(t *testing.T) {
    key, ok := ParseSortKey("")
    require.True(t, ok)
    assert.Equal(t, SortNewest, key)

    for _, s := range []string{"date_ajout", "score", "prix", "prix_desc", "compatibility"} {
        _, ok := ParseSortKey(s)
        assert.True(t, ok, s)
    }

    _, ok = ParseSortKey("surface")
    assert.False(t, ok)
}

func TestSearchSortsByPrice(t *testing.T) {
    candidates := []model.Listing{
        {ID: 1, Price: 500, Status: model.StatusAvailable},
        {ID: 2, Price: 300, Status: model.StatusAvailable},
        {ID: 3, Price: 900, Status: model.StatusAvailable},
    }

    asc := Search(candidates, Filters{}, SortPriceAsc, nil, 1, 10)
    require.Len(t, asc.Results, 3)
    assert.Equal(t, []int{300, 500, 900}, prices(asc.Results))

    desc := Search(candidates, Filters{}, SortPriceDesc, nil, 1, 10)
    assert.Equal(t, []int{900, 500, 300}, prices(desc.Results))
}

func TestSearchDefaultsToNewestFirst(t *testing.T) {
    base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
    candidates := []model.Listing{
        {ID: 1, CreatedAt: base},
        {ID: 2, CreatedAt: base.Add(48 * time.Hour)},
        {ID: 3, CreatedAt: base.Add(24 * time.Hour)},
    }

    page := Search(candidates, Filters{}, SortNewest, nil, 1, 10)
    assert.Equal(t, []uint64{2, 3, 1}, ids(page.Results))
}

func TestSearchPagination(t *testing.T) {
    candidates := make([]model.Listing, 25)
    for i := range candidates {
        candidates[i] = model.Listing{ID: uint64(i + 1), Price: 300 + i}
    }

    page3 := Search(candidates, Filters{}, SortPriceAsc, nil, 3, 10)
    assert.Len(t, page3.Results, 5)
    assert.Equal(t, 25, page3.Total)

    // Beyond the last page: empty slice, total untouched.
    page4 := Search(candidates, Filters{}, SortPriceAsc, nil, 4, 10)
    assert.Empty(t, page4.Results)
    assert.Equal(t, 25, page4.Total)
}

func TestSearchTotalCountsSurvivorsBeforePagination(t *testing.T) {
    candidates := []model.Listing{
        {ID: 1, Price: 400, Status: model.StatusAvailable},
        {ID: 2, Price: 800, Status: model.StatusAvailable},
        {ID: 3, Price: 450, Status: model.StatusReserved},
    }
    f := Filters{Status: strp(model.StatusAvailable)}

    page := Search(candidates, f, SortPriceAsc, nil, 1, 1)
    assert.Len(t, page.Results, 1)
    assert.Equal(t, 2, page.Total)
}

func TestSearchCompatibilityOrdering(t *testing.T) {
    prefs := []model.TenantPreference{
        {HousingType: model.HousingStudio, BudgetMin: 400, BudgetMax: 600},
    }
    candidates := []model.Listing{
        {ID: 1, HousingType: model.HousingStudio, Price: 500},
        {ID: 2, HousingType: model.HousingApartment, Price: 500},
        {ID: 3, HousingType: model.HousingStudio, Price: 1000},
    }

    // Studio/500 matches both criteria (100), Appartement/500 matches
    // budget only (57), Studio/1000 matches type only (43).
    page := Search(candidates, Filters{}, SortCompatibility, prefs, 1, 10)
    require.Len(t, page.Results, 3)
    assert.Equal(t, []uint64{1, 2, 3}, ids(page.Results))
    assert.Equal(t, 100, *page.Results[0].Compatibility)
    assert.Equal(t, 57, *page.Results[1].Compatibility)
    assert.Equal(t, 43, *page.Results[2].Compatibility)
}

func TestSearchWithoutTenantContextAttachesNoScores(t *testing.T) {
    candidates := []model.Listing{{ID: 1}, {ID: 2}}

    page := Search(candidates, Filters{}, SortNewest, nil, 1, 10)
    for _, r := range page.Results {
        assert.Nil(t, r.Compatibility)
    }

    // Compatibility sort without a tenant context keeps prior order.
    same := Search(candidates, Filters{}, SortCompatibility, nil, 1, 10)
    assert.Equal(t, ids(page.Results), ids(same.Results))
}

func TestSearchEmptyPreferencesScoreZero(t *testing.T) {
    candidates := []model.Listing{{ID: 1, HousingType: model.HousingStudio, Price: 500}}

    page := Search(candidates, Filters{}, SortNewest, []model.TenantPreference{}, 1, 10)
    require.Len(t, page.Results, 1)
    require.NotNil(t, page.Results[0].Compatibility)
    assert.Equal(t, 0, *page.Results[0].Compatibility)
}

func prices(rs []Result) []int {
    out := make([]int, len(rs))
    for i, r := range rs {
        out[i] = r.Listing.Price
    }
    return out
}

func ids(rs []Result) []uint64 {
    out := make([]uint64, len(rs))
    for i, r := range rs {
        out[i] = r.Listing.ID
    }
    return out
}
