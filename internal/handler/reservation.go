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

// ReservationHandler groups the repositories needed to book, cancel
// and progress reservations.  Creation runs inside a transaction so
// the availability check and the listing status transition cannot
// race with a concurrent booking of the same listing: the UPDATE
// that flips the listing out of disponible is conditional, and zero
// affected rows means someone else won.
type ReservationHandler struct {
    Reservations *repository.ReservationRepo
    Listings     *repository.ListingRepo
    Tenants      *repository.TenantRepo
    Landlords    *repository.LandlordRepo
}

// NewReservationHandler constructs a ReservationHandler; all dependencies must be non-nil.
func NewReservationHandler(reservations *repository.ReservationRepo, listings *repository.ListingRepo, tenants *repository.TenantRepo, landlords *repository.LandlordRepo) *ReservationHandler {
    if reservations == nil || listings == nil || tenants == nil || landlords == nil {
        panic("nil repository passed to NewReservationHandler")
    }
    return &ReservationHandler{Reservations: reservations, Listings: listings, Tenants: tenants, Landlords: landlords}
}

type reservationCreateReq struct {
    ListingID     uint64  `json:"logement_id" validate:"required,gt=0"`
    Amount        int     `json:"montant_total" validate:"required,gt=0"`
    StartDate     string  `json:"date_debut" validate:"required"`
    EndDate       string  `json:"date_fin" validate:"required"`
    SecurePayment bool    `json:"is_paiement_securise"`
    ContractURL   *string `json:"contrat_url"`
}

type reservationResponse struct {
    ID            uint64  `json:"id"`
    TenantID      uint64  `json:"locataire_id"`
    ListingID     uint64  `json:"logement_id"`
    Status        string  `json:"statut"`
    Amount        int     `json:"montant_total"`
    StartDate     string  `json:"date_debut"`
    EndDate       string  `json:"date_fin"`
    SecurePayment bool    `json:"is_paiement_securise"`
    ContractURL   *string `json:"contrat_url,omitempty"`
    CreatedAt     string  `json:"date_reservation"`
}

func toReservationResponse(r *model.Reservation) reservationResponse {
    return reservationResponse{
        ID:            r.ID,
        TenantID:      r.TenantID,
        ListingID:     r.ListingID,
        Status:        r.Status,
        Amount:        r.Amount,
        StartDate:     r.StartDate.UTC().Format("2006-01-02"),
        EndDate:       r.EndDate.UTC().Format("2006-01-02"),
        SecurePayment: r.SecurePayment,
        ContractURL:   r.ContractURL,
        CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339),
    }
}

// parseRentalWindow validates the date pair: parseable, ordered, and
// starting in the future.
func parseRentalWindow(startRaw, endRaw string) (start, end time.Time, msg string) {
    start, err := time.Parse("2006-01-02", startRaw)
    if err != nil {
        return start, end, "date_debut invalide (AAAA-MM-JJ)"
    }
    end, err = time.Parse("2006-01-02", endRaw)
    if err != nil {
        return start, end, "date_fin invalide (AAAA-MM-JJ)"
    }
    if !start.Before(end) {
        return start, end, "date_debut doit preceder date_fin"
    }
    if !start.After(time.Now().UTC()) {
        return start, end, "date_debut doit etre dans le futur"
    }
    return start, end, ""
}

// Create handles POST /v1/reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
    var req reservationCreateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "corps invalide"})
    }
    if err := validate.Struct(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "logement_id, montant_total > 0 et dates requis"})
    }
    start, end, msg := parseRentalWindow(req.StartDate, req.EndDate)
    if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": msg})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    tenant, err := h.Tenants.GetByUserID(ctx, userID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "profil introuvable"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    if !tenant.IsActive {
        return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "compte desactive"})
    }

    listing, err := h.Listings.GetByID(ctx, req.ListingID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "logement introuvable"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    if listing.Status != model.StatusAvailable {
        return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "logement non disponible"})
    }

    // Soft pre-checks; the conditional update below is the hard guarantee.
    if busy, err := h.Reservations.HasOverlapForListing(ctx, listing.ID, start, end); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    } else if busy {
        return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "logement deja reserve sur cette periode"})
    }
    if busy, err := h.Reservations.HasOverlapForTenant(ctx, tenant.ID, start, end); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    } else if busy {
        return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "vous avez deja une reservation sur cette periode"})
    }

    tx, err := h.Reservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    res := model.Reservation{
        TenantID:      tenant.ID,
        ListingID:     listing.ID,
        Status:        model.ReservationPending,
        Amount:        req.Amount,
        StartDate:     start,
        EndDate:       end,
        SecurePayment: req.SecurePayment,
        ContractURL:   req.ContractURL,
    }
    if err := h.Reservations.CreateTx(ctx, tx, &res); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    won, err := h.Listings.UpdateStatusIfTx(ctx, tx, listing.ID, model.StatusAvailable, model.StatusReserved)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    if !won {
        // A concurrent booking flipped the listing first.
        return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "logement non disponible"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    committed = true

    return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": toReservationResponse(&res)})
}

// List handles GET /v1/reservations (the tenant's own).
func (h *ReservationHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    tenant, err := h.Tenants.GetByUserID(ctx, userID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "profil introuvable"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }

    q := repository.ReservationQuery{TenantID: tenant.ID}
    if raw := c.QueryParam("statut"); raw != "" {
        if !model.ValidReservationStatus(raw) {
            return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "statut invalide"})
        }
        q.Status = raw
    }
    page, limit, err := pageParams(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
    }
    q.Page, q.PageSize = page, limit

    items, total, err := h.Reservations.List(ctx, q)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    data := make([]reservationResponse, 0, len(items))
    for i := range items {
        data = append(data, toReservationResponse(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{
        "success":    true,
        "data":       data,
        "pagination": newPagination(page, limit, total),
    })
}

// Get handles GET /v1/reservations/:id for the owning tenant.
func (h *ReservationHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "id invalide"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    tenant, err := h.Tenants.GetByUserID(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    res, err := h.Reservations.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "reservation introuvable"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    if res.TenantID != tenant.ID {
        return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "acces interdit"})
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "data": toReservationResponse(&res)})
}

// Cancel handles POST /v1/reservations/:id/annuler.  Pending and
// confirmed reservations can be cancelled by their tenant; the
// listing goes back to disponible.
func (h *ReservationHandler) Cancel(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "id invalide"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    tenant, err := h.Tenants.GetByUserID(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    res, err := h.Reservations.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "reservation introuvable"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    if res.TenantID != tenant.ID {
        return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "acces interdit"})
    }
    if res.Status != model.ReservationPending && res.Status != model.ReservationConfirmed {
        return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "reservation non annulable"})
    }

    return h.transition(c, ctx, &res, res.Status, model.ReservationCancelled, model.StatusAvailable)
}

// Confirm handles POST /v1/reservations/:id/confirmer (landlord,
// en_attente -> confirmee; listing stays reserve).
func (h *ReservationHandler) Confirm(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    res, ok, resp := h.loadForLandlord(ctx, c)
    if !ok {
        return resp
    }
    if res.Status != model.ReservationPending {
        return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "reservation non confirmable"})
    }
    return h.transition(c, ctx, &res, model.ReservationPending, model.ReservationConfirmed, "")
}

// Complete handles POST /v1/reservations/:id/terminer (landlord,
// confirmee -> terminee; listing returns to disponible).
func (h *ReservationHandler) Complete(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    res, ok, resp := h.loadForLandlord(ctx, c)
    if !ok {
        return resp
    }
    if res.Status != model.ReservationConfirmed {
        return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "reservation non terminable"})
    }
    return h.transition(c, ctx, &res, model.ReservationConfirmed, model.ReservationCompleted, model.StatusAvailable)
}

// ListForListing handles GET /v1/logements/:id/reservations for the
// owning landlord.
func (h *ReservationHandler) ListForListing(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "id invalide"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    ll, err := h.Landlords.GetByUserID(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    listing, err := h.Listings.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "logement introuvable"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    if listing.LandlordID != ll.ID {
        return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "acces interdit"})
    }

    page, limit, err := pageParams(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
    }
    items, total, err := h.Reservations.List(ctx, repository.ReservationQuery{
        ListingID: listing.ID, Page: page, PageSize: limit,
    })
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    data := make([]reservationResponse, 0, len(items))
    for i := range items {
        data = append(data, toReservationResponse(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{
        "success":    true,
        "data":       data,
        "pagination": newPagination(page, limit, total),
    })
}

// loadForLandlord parses the :id param, loads the reservation and
// checks the caller owns its listing.  When ok is false the error
// response has already been written and resp must be returned.
func (h *ReservationHandler) loadForLandlord(ctx context.Context, c echo.Context) (res model.Reservation, ok bool, resp error) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return res, false, c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "id invalide"})
    }
    userID, err := getUserID(c)
    if err != nil {
        return res, false, c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    ll, err := h.Landlords.GetByUserID(ctx, userID)
    if err != nil {
        return res, false, c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    res, err = h.Reservations.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return res, false, c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "reservation introuvable"})
        }
        return res, false, c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    listing, err := h.Listings.GetByID(ctx, res.ListingID)
    if err != nil {
        return res, false, c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    if listing.LandlordID != ll.ID {
        return res, false, c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "acces interdit"})
    }
    return res, true, nil
}

// transition flips the reservation from -> to inside a transaction
// and, when listingStatus is non-empty, moves the listing out of
// reserve as part of the same commit.
func (h *ReservationHandler) transition(c echo.Context, ctx context.Context, res *model.Reservation, from, to, listingStatus string) error {
    tx, err := h.Reservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    moved, err := h.Reservations.UpdateStatusIfTx(ctx, tx, res.ID, from, to)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    if !moved {
        return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "etat de reservation modifie entre-temps"})
    }
    if listingStatus != "" {
        if _, err := h.Listings.UpdateStatusIfTx(ctx, tx, res.ListingID, model.StatusReserved, listingStatus); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
        }
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    committed = true

    res.Status = to
    return c.JSON(http.StatusOK, echo.Map{"success": true, "data": toReservationResponse(res)})
}
