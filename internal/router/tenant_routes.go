package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/student-housing-marketplace/internal/handler"
    "github.com/iliyamo/student-housing-marketplace/internal/middleware"
)

// RegisterTenant registers tenant-scoped endpoints under /v1.  All
// routes require a valid JWT and the TENANT role.  Tenants manage
// their profile, stored search preferences, reservations,
// interactions and reviews.
func RegisterTenant(e *echo.Echo, t *handler.TenantHandler, r *handler.ReservationHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("TENANT"),
    )

    // ---- Profile ----
    g.GET("/mon-profil", t.GetProfile)
    g.PUT("/mon-profil", t.UpdateProfile)

    // ---- Preferences (single-row upsert) ----
    g.GET("/preferences", t.GetPreferences)
    g.PUT("/preferences", t.PutPreferences)

    // ---- Reservations ----
    g.POST("/reservations", r.Create)
    g.GET("/reservations", r.List)
    g.GET("/reservations/:id", r.Get)
    g.POST("/reservations/:id/annuler", r.Cancel)

    // ---- Interactions ----
    g.POST("/interactions", t.CreateInteraction)
    g.GET("/interactions", t.ListInteractions)
}
