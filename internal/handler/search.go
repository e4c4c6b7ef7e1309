package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
    "github.com/iliyamo/student-housing-marketplace/internal/repository"
    "github.com/iliyamo/student-housing-marketplace/internal/search"
)

// PublicHandler serves the unauthenticated browse and search
// endpoints.  Candidates are loaded from the listings table and run
// through the in-memory search pipeline; preference rows are only
// fetched when a tenant context is requested.
type PublicHandler struct {
    Listings    *repository.ListingRepo
    Preferences *repository.PreferenceRepo
    Reviews     *repository.ReviewRepo
}

// NewPublicHandler constructs a PublicHandler; all dependencies must be non-nil.
func NewPublicHandler(listings *repository.ListingRepo, prefs *repository.PreferenceRepo, reviews *repository.ReviewRepo) *PublicHandler {
    if listings == nil || prefs == nil || reviews == nil {
        panic("nil repository passed to NewPublicHandler")
    }
    return &PublicHandler{Listings: listings, Preferences: prefs, Reviews: reviews}
}

// searchParams carries the parsed /v1/recherche query string; it is
// echoed back to the client under "search_params".
type searchParams struct {
    HousingType *string  `json:"type_logement,omitempty"`
    PriceMin    *int     `json:"prix_min,omitempty"`
    PriceMax    *int     `json:"prix_max,omitempty"`
    Lat         *float64 `json:"lat,omitempty"`
    Lng         *float64 `json:"lng,omitempty"`
    RadiusKm    float64  `json:"radius"`
    SortBy      string   `json:"sort_by"`
    TenantID    *uint64  `json:"locataire_id,omitempty"`
    ScoreMin    *float64 `json:"score_min,omitempty"`
    Page        int      `json:"page"`
    Limit       int      `json:"limit"`
}

// Search handles GET /v1/recherche.  All validation happens before
// any row is matched; zero results is a success with empty data.
func (h *PublicHandler) Search(c echo.Context) error {
    params, sortKey, badParam := parseSearchParams(c)
    if badParam != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": badParam})
    }
    if sortKey == search.SortCompatibility && params.TenantID == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{
            "success": false,
            "error":   "sort_by=compatibility requiert locataire_id",
        })
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    // Only available listings are searchable.
    available := model.StatusAvailable
    candidates, err := h.Listings.ListCandidates(ctx, &available)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }

    var prefs []model.TenantPreference
    if params.TenantID != nil {
        prefs, err = h.Preferences.ListByTenant(ctx, *params.TenantID)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
        }
        if prefs == nil {
            prefs = []model.TenantPreference{}
        }
    }

    filters := buildFilters(params)
    page := search.Search(candidates, filters, sortKey, prefs, params.Page, params.Limit)

    data := make([]listingResponse, 0, len(page.Results))
    for i := range page.Results {
        data = append(data, toListingResponse(&page.Results[i].Listing, page.Results[i].Compatibility))
    }

    return c.JSON(http.StatusOK, echo.Map{
        "success": true,
        "data":    data,
        "stats": echo.Map{
            "total_results":   page.Total,
            "filters_applied": appliedFilters(params),
        },
        "pagination":    newPagination(params.Page, params.Limit, int64(page.Total)),
        "search_params": params,
    })
}

// Browse handles GET /v1/logements.  Same pipeline as Search but
// with an explicit statut / disponible filter instead of the
// available-only restriction.
func (h *PublicHandler) Browse(c echo.Context) error {
    params, sortKey, badParam := parseSearchParams(c)
    if badParam != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": badParam})
    }
    if sortKey == search.SortCompatibility && params.TenantID == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{
            "success": false,
            "error":   "sort_by=compatibility requiert locataire_id",
        })
    }

    var status *string
    if raw := strings.TrimSpace(c.QueryParam("statut")); raw != "" {
        if !model.ValidListingStatus(raw) {
            return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "statut invalide"})
        }
        status = &raw
    } else if raw := strings.TrimSpace(c.QueryParam("disponible")); raw != "" {
        // Legacy flag; true maps onto statut=disponible.
        switch raw {
        case "true", "1":
            s := model.StatusAvailable
            status = &s
        case "false", "0":
            s := model.StatusUnavailable
            status = &s
        default:
            return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "disponible invalide"})
        }
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    candidates, err := h.Listings.ListCandidates(ctx, status)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }

    var prefs []model.TenantPreference
    if params.TenantID != nil {
        prefs, err = h.Preferences.ListByTenant(ctx, *params.TenantID)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
        }
        if prefs == nil {
            prefs = []model.TenantPreference{}
        }
    }

    filters := buildFilters(params)
    page := search.Search(candidates, filters, sortKey, prefs, params.Page, params.Limit)

    data := make([]listingResponse, 0, len(page.Results))
    for i := range page.Results {
        data = append(data, toListingResponse(&page.Results[i].Listing, page.Results[i].Compatibility))
    }

    return c.JSON(http.StatusOK, echo.Map{
        "success": true,
        "data":    data,
        "stats": echo.Map{
            "total_results":   page.Total,
            "filters_applied": appliedFilters(params),
        },
        "pagination":    newPagination(params.Page, params.Limit, int64(page.Total)),
        "search_params": params,
    })
}

// parseSearchParams validates the shared search query string.  It
// returns a non-empty message naming the first offending parameter.
func parseSearchParams(c echo.Context) (searchParams, search.SortKey, string) {
    p := searchParams{RadiusKm: 10}

    if raw := strings.TrimSpace(c.QueryParam("type_logement")); raw != "" {
        if !model.ValidHousingType(raw) {
            return p, "", "type_logement invalide"
        }
        p.HousingType = &raw
    }
    if raw := c.QueryParam("prix_min"); raw != "" {
        n, err := strconv.Atoi(raw)
        if err != nil || n < 0 {
            return p, "", "prix_min invalide"
        }
        p.PriceMin = &n
    }
    if raw := c.QueryParam("prix_max"); raw != "" {
        n, err := strconv.Atoi(raw)
        if err != nil || n < 0 {
            return p, "", "prix_max invalide"
        }
        p.PriceMax = &n
    }
    if p.PriceMin != nil && p.PriceMax != nil && *p.PriceMin > *p.PriceMax {
        return p, "", "prix_min superieur a prix_max"
    }

    latRaw, lngRaw := c.QueryParam("lat"), c.QueryParam("lng")
    if (latRaw == "") != (lngRaw == "") {
        return p, "", "lat et lng doivent etre fournis ensemble"
    }
    if latRaw != "" {
        lat, err := strconv.ParseFloat(latRaw, 64)
        if err != nil || lat < -90 || lat > 90 {
            return p, "", "lat invalide"
        }
        lng, err := strconv.ParseFloat(lngRaw, 64)
        if err != nil || lng < -180 || lng > 180 {
            return p, "", "lng invalide"
        }
        p.Lat, p.Lng = &lat, &lng
    }
    if raw := c.QueryParam("radius"); raw != "" {
        r, err := strconv.ParseFloat(raw, 64)
        if err != nil || r <= 0 {
            return p, "", "radius invalide"
        }
        p.RadiusKm = r
    }
    if raw := c.QueryParam("score_min"); raw != "" {
        s, err := strconv.ParseFloat(raw, 64)
        if err != nil || s < 0 || s > 5 {
            return p, "", "score_min invalide"
        }
        p.ScoreMin = &s
    }
    if raw := c.QueryParam("locataire_id"); raw != "" {
        id, err := strconv.ParseUint(raw, 10, 64)
        if err != nil || id == 0 {
            return p, "", "locataire_id invalide"
        }
        p.TenantID = &id
    }

    key, ok := search.ParseSortKey(c.QueryParam("sort_by"))
    if !ok {
        return p, "", "sort_by invalide"
    }
    p.SortBy = string(key)

    page, limit, err := pageParams(c)
    if err != nil {
        return p, "", err.Error()
    }
    p.Page, p.Limit = page, limit

    return p, key, ""
}

func buildFilters(p searchParams) search.Filters {
    f := search.Filters{
        HousingType: p.HousingType,
        PriceMin:    p.PriceMin,
        PriceMax:    p.PriceMax,
        ScoreMin:    p.ScoreMin,
    }
    if p.Lat != nil && p.Lng != nil {
        f.Geo = &search.GeoCriterion{Lat: *p.Lat, Lng: *p.Lng, RadiusKm: p.RadiusKm}
    }
    return f
}

// appliedFilters lists which criteria actually constrained the
// search, for the stats block.
func appliedFilters(p searchParams) echo.Map {
    m := echo.Map{}
    if p.HousingType != nil {
        m["type_logement"] = *p.HousingType
    }
    if p.PriceMin != nil {
        m["prix_min"] = *p.PriceMin
    }
    if p.PriceMax != nil {
        m["prix_max"] = *p.PriceMax
    }
    if p.Lat != nil && p.Lng != nil {
        m["geo"] = echo.Map{"lat": *p.Lat, "lng": *p.Lng, "radius_km": p.RadiusKm}
    }
    if p.ScoreMin != nil {
        m["score_min"] = *p.ScoreMin
    }
    if p.TenantID != nil {
        m["locataire_id"] = *p.TenantID
    }
    return m
}
