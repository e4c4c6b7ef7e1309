package handler

import (
    "net/http"
    "net/http/httptest"
    "net/url"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/student-housing-marketplace/internal/search"
)

func searchContext(t *testing.T, query url.Values) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/recherche?"+query.Encode(), nil)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestParseSearchParamsDefaults(t *testing.T) {
    c, _ := searchContext(t, url.Values{})
    p, key, msg := parseSearchParams(c)
    require.Empty(t, msg)
    assert.Equal(t, search.SortNewest, key)
    assert.Equal(t, 1, p.Page)
    assert.Equal(t, 10, p.Limit)
    assert.Equal(t, 10.0, p.RadiusKm)
    assert.Nil(t, p.HousingType)
    assert.Nil(t, p.PriceMin)
}

func TestParseSearchParamsRejectsBadNumbers(t *testing.T) {
    cases := []url.Values{
        {"prix_min": {"abc"}},
        {"prix_min": {"-5"}},
        {"prix_max": {"12.5"}},
        {"lat": {"91"}, "lng": {"0"}},
        {"lat": {"0"}, "lng": {"181"}},
        {"radius": {"0"}, "lat": {"0"}, "lng": {"0"}},
        {"score_min": {"6"}},
        {"locataire_id": {"0"}},
        {"page": {"0"}},
        {"limit": {"zero"}},
    }
    for _, q := range cases {
        c, _ := searchContext(t, q)
        _, _, msg := parseSearchParams(c)
        assert.NotEmpty(t, msg, "query %v should be rejected", q)
    }
}

func TestParseSearchParamsRejectsInvertedPriceRange(t *testing.T) {
    c, _ := searchContext(t, url.Values{"prix_min": {"900"}, "prix_max": {"500"}})
    _, _, msg := parseSearchParams(c)
    assert.Equal(t, "prix_min superieur a prix_max", msg)
}

func TestParseSearchParamsRejectsLoneCoordinate(t *testing.T) {
    c, _ := searchContext(t, url.Values{"lat": {"48.85"}})
    _, _, msg := parseSearchParams(c)
    assert.NotEmpty(t, msg)
}

func TestParseSearchParamsRejectsUnknownEnum(t *testing.T) {
    c, _ := searchContext(t, url.Values{"type_logement": {"Chateau"}})
    _, _, msg := parseSearchParams(c)
    assert.Equal(t, "type_logement invalide", msg)

    c, _ = searchContext(t, url.Values{"sort_by": {"surface"}})
    _, _, msg = parseSearchParams(c)
    assert.Equal(t, "sort_by invalide", msg)
}

func TestParseSearchParamsClampsLimit(t *testing.T) {
    c, _ := searchContext(t, url.Values{"limit": {"500"}})
    p, _, msg := parseSearchParams(c)
    require.Empty(t, msg)
    assert.Equal(t, 100, p.Limit)
}

func TestSearchRejectsCompatibilityWithoutTenant(t *testing.T) {
    h := &PublicHandler{}
    c, rec := searchContext(t, url.Values{"sort_by": {"compatibility"}})
    require.NoError(t, h.Search(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Contains(t, rec.Body.String(), "locataire_id")
}

func TestNewPaginationTotalPages(t *testing.T) {
    p := newPagination(3, 10, 25)
    assert.Equal(t, 3, p.Page)
    assert.Equal(t, 10, p.Limit)
    assert.Equal(t, int64(25), p.Total)
    assert.Equal(t, 3, p.TotalPages)

    assert.Equal(t, 0, newPagination(1, 10, 0).TotalPages)
    assert.Equal(t, 1, newPagination(1, 10, 10).TotalPages)
}
