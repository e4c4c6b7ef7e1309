package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values used in getUserID
    "strconv" // strconv converts strings to numeric types
    "time"    // time formats listing timestamps

    "github.com/go-playground/validator/v10" // struct-tag validation of request bodies
    "github.com/labstack/echo/v4"            // echo defines request context types

    "github.com/iliyamo/student-housing-marketplace/internal/model"
)

// validate is shared by all handlers; validator instances cache
// struct metadata and are safe for concurrent use.
var validate = validator.New()

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// pagination is the page descriptor attached to every list envelope.
type pagination struct {
    Page       int   `json:"page"`
    Limit      int   `json:"limit"`
    Total      int64 `json:"total"`
    TotalPages int   `json:"totalPages"`
}

// newPagination computes the page descriptor from a pre-pagination total.
func newPagination(page, limit int, total int64) pagination {
    pages := int((total + int64(limit) - 1) / int64(limit))
    return pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// pageParams parses page/limit query parameters with the documented
// defaults (page 1, limit 10, limit capped at 100).
func pageParams(c echo.Context) (page, limit int, err error) {
    page, limit = 1, 10
    if raw := c.QueryParam("page"); raw != "" {
        page, err = strconv.Atoi(raw)
        if err != nil || page < 1 {
            return 0, 0, errors.New("page invalide")
        }
    }
    if raw := c.QueryParam("limit"); raw != "" {
        limit, err = strconv.Atoi(raw)
        if err != nil || limit < 1 {
            return 0, 0, errors.New("limit invalide")
        }
    }
    if limit > 100 {
        limit = 100
    }
    return page, limit, nil
}

// listingResponse is the wire shape of a listing.  The legacy
// disponible flag is derived from statut; compatibility_score is
// only present on search results computed for a tenant.
type listingResponse struct {
    ID            uint64   `json:"id"`
    LandlordID    uint64   `json:"bailleur_id"`
    Title         string   `json:"titre"`
    Pitch         *string  `json:"accroche,omitempty"`
    Address       string   `json:"adresse"`
    Latitude      float64  `json:"latitude"`
    Longitude     float64  `json:"longitude"`
    Price         int      `json:"prix"`
    HousingType   string   `json:"type_logement"`
    Status        string   `json:"statut"`
    Available     bool     `json:"disponible"`
    Score         float64  `json:"score"`
    Photos        []string `json:"photos"`
    CreatedAt     string   `json:"date_ajout"`
    Compatibility *int     `json:"compatibility_score,omitempty"`
}

func toListingResponse(l *model.Listing, compatibility *int) listingResponse {
    return listingResponse{
        ID:            l.ID,
        LandlordID:    l.LandlordID,
        Title:         l.Title,
        Pitch:         l.Pitch,
        Address:       l.Address,
        Latitude:      l.Latitude,
        Longitude:     l.Longitude,
        Price:         l.Price,
        HousingType:   l.HousingType,
        Status:        l.Status,
        Available:     l.Available(),
        Score:         l.Score,
        Photos:        l.Photos,
        CreatedAt:     l.CreatedAt.UTC().Format(time.RFC3339),
        Compatibility: compatibility,
    }
}
