package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
    "github.com/iliyamo/student-housing-marketplace/internal/repository"
)

// GetListing handles GET /v1/logements/:id.
func (h *PublicHandler) GetListing(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "id invalide"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    l, err := h.Listings.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "logement introuvable"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "data": toListingResponse(&l, nil)})
}

// reviewResponse is the wire shape of a review.
type reviewResponse struct {
    ID         uint64  `json:"id"`
    TenantID   *uint64 `json:"locataire_id,omitempty"`
    LandlordID *uint64 `json:"bailleur_id,omitempty"`
    ListingID  uint64  `json:"logement_id"`
    Rating     int     `json:"note"`
    Comment    *string `json:"commentaire,omitempty"`
    CreatedAt  string  `json:"date_avis"`
}

func toReviewResponse(r *model.Review) reviewResponse {
    return reviewResponse{
        ID:         r.ID,
        TenantID:   r.TenantID,
        LandlordID: r.LandlordID,
        ListingID:  r.ListingID,
        Rating:     r.Rating,
        Comment:    r.Comment,
        CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
    }
}

// ListReviews handles GET /v1/avis with optional logement_id,
// locataire_id, bailleur_id, note_min and note_max filters.
func (h *PublicHandler) ListReviews(c echo.Context) error {
    q := repository.ReviewQuery{}
    if raw := c.QueryParam("logement_id"); raw != "" {
        id, err := strconv.ParseUint(raw, 10, 64)
        if err != nil || id == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "logement_id invalide"})
        }
        q.ListingID = id
    }
    if raw := c.QueryParam("locataire_id"); raw != "" {
        id, err := strconv.ParseUint(raw, 10, 64)
        if err != nil || id == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "locataire_id invalide"})
        }
        q.TenantID = id
    }
    if raw := c.QueryParam("bailleur_id"); raw != "" {
        id, err := strconv.ParseUint(raw, 10, 64)
        if err != nil || id == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "bailleur_id invalide"})
        }
        q.LandlordID = id
    }
    if raw := c.QueryParam("note_min"); raw != "" {
        n, err := strconv.Atoi(raw)
        if err != nil || n < 1 || n > 5 {
            return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "note_min invalide"})
        }
        q.RatingMin = &n
    }
    if raw := c.QueryParam("note_max"); raw != "" {
        n, err := strconv.Atoi(raw)
        if err != nil || n < 1 || n > 5 {
            return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "note_max invalide"})
        }
        q.RatingMax = &n
    }
    if q.RatingMin != nil && q.RatingMax != nil && *q.RatingMin > *q.RatingMax {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "note_min superieur a note_max"})
    }
    page, limit, err := pageParams(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
    }
    q.Page, q.PageSize = page, limit

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, total, err := h.Reviews.List(ctx, q)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }

    data := make([]reviewResponse, 0, len(items))
    for i := range items {
        data = append(data, toReviewResponse(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{
        "success":    true,
        "data":       data,
        "pagination": newPagination(page, limit, total),
    })
}
