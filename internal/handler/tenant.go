package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
    "github.com/iliyamo/student-housing-marketplace/internal/repository"
)

// TenantHandler serves the tenant's own profile, stored search
// preferences and interaction history.  Routes are mounted behind
// JWT auth with the TENANT role.
type TenantHandler struct {
    Tenants      *repository.TenantRepo
    Preferences  *repository.PreferenceRepo
    Interactions *repository.InteractionRepo
    Listings     *repository.ListingRepo
}

// NewTenantHandler constructs a TenantHandler; all dependencies must be non-nil.
func NewTenantHandler(tenants *repository.TenantRepo, prefs *repository.PreferenceRepo, interactions *repository.InteractionRepo, listings *repository.ListingRepo) *TenantHandler {
    if tenants == nil || prefs == nil || interactions == nil || listings == nil {
        panic("nil repository passed to NewTenantHandler")
    }
    return &TenantHandler{Tenants: tenants, Preferences: prefs, Interactions: interactions, Listings: listings}
}

// currentTenant resolves the authenticated user to their tenant profile.
func (h *TenantHandler) currentTenant(ctx context.Context, c echo.Context) (model.Tenant, error) {
    userID, err := getUserID(c)
    if err != nil {
        return model.Tenant{}, err
    }
    return h.Tenants.GetByUserID(ctx, userID)
}

type tenantResponse struct {
    ID         uint64 `json:"id"`
    Name       string `json:"nom"`
    Email      string `json:"email"`
    University string `json:"universite"`
    IsActive   bool   `json:"is_active"`
    CreatedAt  string `json:"date_inscription"`
}

// GetProfile handles GET /v1/mon-profil.
func (h *TenantHandler) GetProfile(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t, err := h.currentTenant(ctx, c)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "profil introuvable"})
        }
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "data": tenantResponse{
        ID: t.ID, Name: t.Name, Email: t.Email, University: t.University,
        IsActive: t.IsActive, CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
    }})
}

type tenantUpdateReq struct {
    Name       *string `json:"nom"`
    University *string `json:"universite"`
}

// UpdateProfile handles PUT /v1/mon-profil (partial update).
func (h *TenantHandler) UpdateProfile(c echo.Context) error {
    var req tenantUpdateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "corps invalide"})
    }
    if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "nom vide"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t, err := h.currentTenant(ctx, c)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "profil introuvable"})
        }
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    if err := h.Tenants.Update(ctx, t.ID, req.Name, req.University); err != nil {
        if errors.Is(err, repository.ErrNoChange) {
            return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "aucun champ fourni"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    return c.NoContent(http.StatusNoContent)
}

type preferenceReq struct {
    HousingType string  `json:"type_logement" validate:"required"`
    BudgetMin   int     `json:"budget_min" validate:"required,gt=0"`
    BudgetMax   int     `json:"budget_max" validate:"required,gtefield=BudgetMin"`
    RadiusKm    int     `json:"rayon_km" validate:"required,min=1,max=100"`
    Notes       *string `json:"autres_spec"`
}

type preferenceResponse struct {
    HousingType string  `json:"type_logement"`
    BudgetMin   int     `json:"budget_min"`
    BudgetMax   int     `json:"budget_max"`
    RadiusKm    int     `json:"rayon_km"`
    Notes       *string `json:"autres_spec,omitempty"`
}

// GetPreferences handles GET /v1/preferences.
func (h *TenantHandler) GetPreferences(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t, err := h.currentTenant(ctx, c)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "profil introuvable"})
        }
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    prefs, err := h.Preferences.ListByTenant(ctx, t.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    data := make([]preferenceResponse, 0, len(prefs))
    for _, p := range prefs {
        data = append(data, preferenceResponse{
            HousingType: p.HousingType, BudgetMin: p.BudgetMin, BudgetMax: p.BudgetMax,
            RadiusKm: p.RadiusKm, Notes: p.Notes,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}

// PutPreferences handles PUT /v1/preferences (single-row upsert).
func (h *TenantHandler) PutPreferences(c echo.Context) error {
    var req preferenceReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "corps invalide"})
    }
    if err := validate.Struct(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "budget_min <= budget_max, rayon_km 1-100 requis"})
    }
    if !model.ValidHousingType(req.HousingType) {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "type_logement invalide"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t, err := h.currentTenant(ctx, c)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "profil introuvable"})
        }
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }

    p := model.TenantPreference{
        TenantID:    t.ID,
        HousingType: req.HousingType,
        BudgetMin:   req.BudgetMin,
        BudgetMax:   req.BudgetMax,
        RadiusKm:    req.RadiusKm,
        Notes:       req.Notes,
    }
    created, err := h.Preferences.Upsert(ctx, &p)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    status := http.StatusOK
    if created {
        status = http.StatusCreated
    }
    return c.JSON(status, echo.Map{"success": true, "data": preferenceResponse{
        HousingType: p.HousingType, BudgetMin: p.BudgetMin, BudgetMax: p.BudgetMax,
        RadiusKm: p.RadiusKm, Notes: p.Notes,
    }})
}

type interactionReq struct {
    ListingID uint64 `json:"logement_id" validate:"required,gt=0"`
    Outcome   string `json:"resultat" validate:"required"`
}

type interactionResponse struct {
    ID        uint64 `json:"id"`
    ListingID uint64 `json:"logement_id"`
    Outcome   string `json:"resultat"`
    CreatedAt string `json:"date_interaction"`
}

// CreateInteraction handles POST /v1/interactions.
func (h *TenantHandler) CreateInteraction(c echo.Context) error {
    var req interactionReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "corps invalide"})
    }
    if err := validate.Struct(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "logement_id et resultat requis"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t, err := h.currentTenant(ctx, c)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "profil introuvable"})
        }
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    if _, err := h.Listings.GetByID(ctx, req.ListingID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "logement introuvable"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }

    in := model.Interaction{TenantID: t.ID, ListingID: req.ListingID, Outcome: strings.TrimSpace(req.Outcome)}
    if err := h.Interactions.Create(ctx, &in); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": interactionResponse{
        ID: in.ID, ListingID: in.ListingID, Outcome: in.Outcome,
        CreatedAt: in.CreatedAt.UTC().Format(time.RFC3339),
    }})
}

// ListInteractions handles GET /v1/interactions.
func (h *TenantHandler) ListInteractions(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t, err := h.currentTenant(ctx, c)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "profil introuvable"})
        }
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
    }
    items, err := h.Interactions.ListByTenant(ctx, t.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "erreur serveur"})
    }
    data := make([]interactionResponse, 0, len(items))
    for _, in := range items {
        data = append(data, interactionResponse{
            ID: in.ID, ListingID: in.ListingID, Outcome: in.Outcome,
            CreatedAt: in.CreatedAt.UTC().Format(time.RFC3339),
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}
