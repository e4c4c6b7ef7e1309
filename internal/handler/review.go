package handler

import (
    "context"
    "database/sql"
    "errors"
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/student-housing-marketplace/internal/aggregate"
    "github.com/iliyamo/student-housing-marketplace/internal/model"
    "github.com/iliyamo/student-housing-marketplace/internal/queue"
    "github.com/iliyamo/student-housing-marketplace/internal/repository"
    queue_publisher "github.com/iliyamo/student-housing-marketplace/internal/service"
)

// ReviewHandler creates reviews and runs the score side effects: the
// aggregator recomputes the listing score synchronously, then a
// review.recorded event goes out best-effort.
type ReviewHandler struct {
    Reviews    *repository.ReviewRepo
    Listings   *repository.ListingRepo
    Tenants    *repository.TenantRepo
    Landlords  *repository.LandlordRepo
    Aggregator *aggregate.ScoreAggregator
}

// NewReviewHandler constructs a ReviewHandler; all dependencies must be non-nil.
func NewReviewHandler(reviews *repository.ReviewRepo, listings *repository.ListingRepo, tenants *repository.TenantRepo, landlords *repository.LandlordRepo, agg *aggregate.ScoreAggregator) *ReviewHandler {
    if reviews == nil || listings == nil || tenants == nil || landlords == nil || agg == nil {
        panic("nil dependency passed to NewReviewHandler")
    }
    return &ReviewHandler{Reviews: reviews, Listings: listings, Tenants: tenants, Landlords: landlords, Aggregator: agg}
}

type reviewCreateReq struct {
    ListingID uint64  `json:"logement_id" validate:"required,gt=0"`
    Rating    int     `json:"note" validate:"required,min=1,max=5"`
    Comment   *string `json:"commentaire"`
}

// Create handles POST /v1/avis.  The reviewer side follows the
// authenticated role: tenants review as tenants, landlords as
// landlords.  One review per reviewer per listing.
func (h *ReviewHandler) Create(c echo.Context) error {
    var req reviewCreateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "corps invalide"})
    }
    if err := validate.Struct(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "logement_id et note 1-5 requis"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    role, _ := c.Get("role").(string)

    var tenantID, landlordID *uint64
    switch strings.ToUpper(role) {
    case model.RoleTenant:
        t, err := h.Tenants.GetByUserID(ctx, userID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "profil introuvable"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
        }
        if !t.IsActive {
            return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "compte desactive"})
        }
        tenantID = &t.ID
    case model.RoleLandlord:
        ll, err := h.Landlords.GetByUserID(ctx, userID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "compte introuvable"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
        }
        if !ll.IsActive {
            return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "compte desactive"})
        }
        landlordID = &ll.ID
    default:
        return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "role inconnu"})
    }

    listing, err := h.Listings.GetByID(ctx, req.ListingID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "logement introuvable"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }

    exists, err := h.Reviews.ExistsForReviewer(ctx, listing.ID, tenantID, landlordID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    if exists {
        return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "avis deja depose pour ce logement"})
    }

    rev := model.Review{
        TenantID:   tenantID,
        LandlordID: landlordID,
        ListingID:  listing.ID,
        Rating:     req.Rating,
        Comment:    req.Comment,
    }
    if err := h.Reviews.Create(ctx, &rev); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }

    newScore, err := h.Aggregator.RecomputeListing(ctx, listing.ID)
    if err != nil {
        // The review is stored; the score catches up on the next write.
        log.Printf("review: score recompute failed for listing %d: %v", listing.ID, err)
        newScore = listing.Score
    }

    ev := queue.ReviewRecordedEvent{
        ReviewID:     rev.ID,
        ListingID:    listing.ID,
        ListingTitle: listing.Title,
        TenantID:     tenantID,
        LandlordID:   landlordID,
        Rating:       rev.Rating,
        NewScore:     newScore,
        RecordedAt:   rev.CreatedAt.UTC().Format(time.RFC3339),
    }
    go func() {
        pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer pubCancel()
        _ = queue_publisher.PublishReviewRecorded(pubCtx, ev)
    }()

    return c.JSON(http.StatusCreated, echo.Map{
        "success": true,
        "data":    toReviewResponse(&rev),
        "stats":   echo.Map{"nouveau_score": newScore},
    })
}
