package search

import (
    "testing"

    "github.com/stretchr/testify/assert"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
)

func TestCompatibilityScoreTable(t *testing.T) {
    listing := model.Listing{HousingType: model.HousingStudio, Price: 500}

    typeOnly := []model.TenantPreference{
        {HousingType: model.HousingStudio, BudgetMin: 100, BudgetMax: 200},
    }
    budgetOnly := []model.TenantPreference{
        {HousingType: model.HousingHouse, BudgetMin: 400, BudgetMax: 600},
    }
    both := []model.TenantPreference{
        {HousingType: model.HousingStudio, BudgetMin: 400, BudgetMax: 600},
    }
    neither := []model.TenantPreference{
        {HousingType: model.HousingHouse, BudgetMin: 100, BudgetMax: 200},
    }

    tests := []struct {
        name  string
        prefs []model.TenantPreference
        want  int
    }{
        {"no preferences", nil, 0},
        {"empty preferences", []model.TenantPreference{}, 0},
        {"type only: 30/70", typeOnly, 43},
        {"budget only: 40/70", budgetOnly, 57},
        {"type and budget: 70/70", both, 100},
        {"neither", neither, 0},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            assert.Equal(t, tt.want, CompatibilityScore(tt.prefs, &listing))
        })
    }
}

func TestCompatibilityScoreNilListing(t *testing.T) {
    prefs := []model.TenantPreference{{HousingType: model.HousingStudio}}
    assert.Equal(t, 0, CompatibilityScore(prefs, nil))
}

func TestCompatibilityScoreBudgetBoundsInclusive(t *testing.T) {
    prefs := []model.TenantPreference{
        {HousingType: model.HousingHouse, BudgetMin: 500, BudgetMax: 700},
    }

    atMin := model.Listing{HousingType: model.HousingStudio, Price: 500}
    atMax := model.Listing{HousingType: model.HousingStudio, Price: 700}
    below := model.Listing{HousingType: model.HousingStudio, Price: 499}

    assert.Equal(t, 57, CompatibilityScore(prefs, &atMin))
    assert.Equal(t, 57, CompatibilityScore(prefs, &atMax))
    assert.Equal(t, 0, CompatibilityScore(prefs, &below))
}

func TestCompatibilityScoreAnyPreferenceRowMayMatch(t *testing.T) {
    // Criteria are satisfied independently across rows: one row can
    // match the type while another matches the budget.
    prefs := []model.TenantPreference{
        {HousingType: model.HousingStudio, BudgetMin: 1000, BudgetMax: 2000},
        {HousingType: model.HousingHouse, BudgetMin: 400, BudgetMax: 600},
    }
    listing := model.Listing{HousingType: model.HousingStudio, Price: 500}
    assert.Equal(t, 100, CompatibilityScore(prefs, &listing))
}
