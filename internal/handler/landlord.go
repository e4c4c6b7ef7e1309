package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
    "github.com/iliyamo/student-housing-marketplace/internal/repository"
)

// LandlordHandler groups the repositories landlords need to manage
// their listings and account.  Routes are mounted behind JWT auth
// with the LANDLORD role.
type LandlordHandler struct {
    Landlords *repository.LandlordRepo
    Listings  *repository.ListingRepo
}

// NewLandlordHandler constructs a LandlordHandler; all dependencies must be non-nil.
func NewLandlordHandler(landlords *repository.LandlordRepo, listings *repository.ListingRepo) *LandlordHandler {
    if landlords == nil || listings == nil {
        panic("nil repository passed to NewLandlordHandler")
    }
    return &LandlordHandler{Landlords: landlords, Listings: listings}
}

// currentLandlord resolves the authenticated user to their landlord profile.
func (h *LandlordHandler) currentLandlord(ctx context.Context, c echo.Context) (model.Landlord, error) {
    userID, err := getUserID(c)
    if err != nil {
        return model.Landlord{}, err
    }
    return h.Landlords.GetByUserID(ctx, userID)
}

// ownListing loads a listing and checks ownership.
func (h *LandlordHandler) ownListing(ctx context.Context, c echo.Context, landlordID uint64) (model.Listing, error) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return model.Listing{}, errBadListingID
    }
    l, err := h.Listings.GetByID(ctx, id)
    if err != nil {
        return model.Listing{}, err
    }
    if l.LandlordID != landlordID {
        return model.Listing{}, repository.ErrForbidden
    }
    return l, nil
}

var errBadListingID = errors.New("invalid listing id")

type listingCreateReq struct {
    Title       string   `json:"titre" validate:"required"`
    Pitch       *string  `json:"accroche"`
    Address     string   `json:"adresse" validate:"required"`
    Latitude    float64  `json:"latitude" validate:"min=-90,max=90"`
    Longitude   float64  `json:"longitude" validate:"min=-180,max=180"`
    Price       int      `json:"prix" validate:"required,gt=0"`
    HousingType string   `json:"type_logement" validate:"required"`
    Photos      []string `json:"photos"`
}

// CreateListing handles POST /v1/logements.  New listings start
// disponible with score 0.
func (h *LandlordHandler) CreateListing(c echo.Context) error {
    var req listingCreateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "corps invalide"})
    }
    req.Title = strings.TrimSpace(req.Title)
    req.Address = strings.TrimSpace(req.Address)
    if err := validate.Struct(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "titre, adresse, prix > 0 et type_logement requis"})
    }
    if !model.ValidHousingType(req.HousingType) {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "type_logement invalide"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ll, err := h.currentLandlord(ctx, c)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "compte introuvable"})
        }
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    if !ll.IsActive {
        return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "compte desactive"})
    }

    l := model.Listing{
        LandlordID:  ll.ID,
        Title:       req.Title,
        Pitch:       req.Pitch,
        Address:     req.Address,
        Latitude:    req.Latitude,
        Longitude:   req.Longitude,
        Price:       req.Price,
        HousingType: req.HousingType,
        Photos:      req.Photos,
    }
    if err := h.Listings.Create(ctx, &l); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": toListingResponse(&l, nil)})
}

type listingUpdateReq struct {
    Title       *string  `json:"titre"`
    Pitch       *string  `json:"accroche"`
    Address     *string  `json:"adresse"`
    Latitude    *float64 `json:"latitude"`
    Longitude   *float64 `json:"longitude"`
    Price       *int     `json:"prix"`
    HousingType *string  `json:"type_logement"`
    Status      *string  `json:"statut"`
}

// UpdateListing handles PUT /v1/logements/:id (partial update).
func (h *LandlordHandler) UpdateListing(c echo.Context) error {
    var req listingUpdateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "corps invalide"})
    }
    if req.Price != nil && *req.Price <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "prix invalide"})
    }
    if req.HousingType != nil && !model.ValidHousingType(*req.HousingType) {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "type_logement invalide"})
    }
    if req.Status != nil && !model.ValidListingStatus(*req.Status) {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "statut invalide"})
    }
    if req.Latitude != nil && (*req.Latitude < -90 || *req.Latitude > 90) {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "latitude invalide"})
    }
    if req.Longitude != nil && (*req.Longitude < -180 || *req.Longitude > 180) {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "longitude invalide"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ll, err := h.currentLandlord(ctx, c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    l, err := h.ownListing(ctx, c, ll.ID)
    if err != nil {
        return h.listingError(c, err)
    }

    upd := repository.ListingUpdate{
        Title:       req.Title,
        Pitch:       req.Pitch,
        Address:     req.Address,
        Latitude:    req.Latitude,
        Longitude:   req.Longitude,
        Price:       req.Price,
        HousingType: req.HousingType,
        Status:      req.Status,
    }
    if err := h.Listings.Update(ctx, l.ID, upd); err != nil {
        if errors.Is(err, repository.ErrNoChange) {
            return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "aucun champ fourni"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    updated, err := h.Listings.GetByID(ctx, l.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "data": toListingResponse(&updated, nil)})
}

type photosReq struct {
    Photos []string `json:"photos" validate:"required,min=1,dive,required,uri"`
}

// AddPhotos handles POST /v1/logements/:id/photos, appending URIs to
// the stored photo array.
func (h *LandlordHandler) AddPhotos(c echo.Context) error {
    var req photosReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "corps invalide"})
    }
    if err := validate.Struct(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "photos: au moins une URI valide requise"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ll, err := h.currentLandlord(ctx, c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    l, err := h.ownListing(ctx, c, ll.ID)
    if err != nil {
        return h.listingError(c, err)
    }

    merged := append(append([]string{}, l.Photos...), req.Photos...)
    if err := h.Listings.SetPhotos(ctx, l.ID, merged); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"photos": merged}})
}

// DeleteListing handles DELETE /v1/logements/:id.  Listings are
// never removed; they transition to indisponible.
func (h *LandlordHandler) DeleteListing(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ll, err := h.currentLandlord(ctx, c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    l, err := h.ownListing(ctx, c, ll.ID)
    if err != nil {
        return h.listingError(c, err)
    }
    if err := h.Listings.UpdateStatus(ctx, l.ID, model.StatusUnavailable); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    return c.NoContent(http.StatusNoContent)
}

// MyListings handles GET /v1/mes-logements.
func (h *LandlordHandler) MyListings(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ll, err := h.currentLandlord(ctx, c)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "compte introuvable"})
        }
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    items, err := h.Listings.ListByLandlord(ctx, ll.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    data := make([]listingResponse, 0, len(items))
    for i := range items {
        data = append(data, toListingResponse(&items[i], nil))
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}

type landlordResponse struct {
    ID        uint64 `json:"id"`
    Name      string `json:"nom"`
    Email     string `json:"email"`
    Phone     string `json:"telephone"`
    IsActive  bool   `json:"is_active"`
    CreatedAt string `json:"date_inscription"`
}

// GetAccount handles GET /v1/mon-compte.
func (h *LandlordHandler) GetAccount(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ll, err := h.currentLandlord(ctx, c)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "compte introuvable"})
        }
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "data": landlordResponse{
        ID: ll.ID, Name: ll.Name, Email: ll.Email, Phone: ll.Phone,
        IsActive: ll.IsActive, CreatedAt: ll.CreatedAt.UTC().Format(time.RFC3339),
    }})
}

type landlordUpdateReq struct {
    Name  *string `json:"nom"`
    Phone *string `json:"telephone"`
}

// UpdateAccount handles PUT /v1/mon-compte (partial update).
func (h *LandlordHandler) UpdateAccount(c echo.Context) error {
    var req landlordUpdateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "corps invalide"})
    }
    if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "nom vide"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ll, err := h.currentLandlord(ctx, c)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "compte introuvable"})
        }
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    if err := h.Landlords.Update(ctx, ll.ID, req.Name, req.Phone); err != nil {
        if errors.Is(err, repository.ErrNoChange) {
            return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "aucun champ fourni"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    return c.NoContent(http.StatusNoContent)
}

// DeactivateAccount handles DELETE /v1/mon-compte (soft delete).
func (h *LandlordHandler) DeactivateAccount(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ll, err := h.currentLandlord(ctx, c)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "compte introuvable"})
        }
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    if err := h.Landlords.Deactivate(ctx, ll.ID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    return c.NoContent(http.StatusNoContent)
}

// listingError maps ownListing failures onto HTTP responses.
func (h *LandlordHandler) listingError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, errBadListingID):
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "id invalide"})
    case errors.Is(err, sql.ErrNoRows):
        return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "logement introuvable"})
    case errors.Is(err, repository.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "acces interdit"})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
}
