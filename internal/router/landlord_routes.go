package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/student-housing-marketplace/internal/handler"
    "github.com/iliyamo/student-housing-marketplace/internal/middleware"
)

// RegisterLandlord registers LANDLORD-scoped endpoints under /v1.
// All routes require a valid JWT and the LANDLORD role.  Landlords
// manage their listings, the reservations placed on them, and their
// own account.
func RegisterLandlord(e *echo.Echo, l *handler.LandlordHandler, r *handler.ReservationHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("LANDLORD"),
    )

    // ---- Listings ----
    g.POST("/logements", l.CreateListing)
    g.PUT("/logements/:id", l.UpdateListing)
    g.PATCH("/logements/:id", l.UpdateListing) // allow partial updates via PATCH as well
    g.POST("/logements/:id/photos", l.AddPhotos)
    // Soft delete: the listing transitions to indisponible.
    g.DELETE("/logements/:id", l.DeleteListing)
    g.GET("/mes-logements", l.MyListings)

    // ---- Reservations on own listings ----
    g.GET("/logements/:id/reservations", r.ListForListing)
    g.POST("/reservations/:id/confirmer", r.Confirm)
    g.POST("/reservations/:id/terminer", r.Complete)

    // ---- Account ----
    g.GET("/mon-compte", l.GetAccount)
    g.PUT("/mon-compte", l.UpdateAccount)
    g.DELETE("/mon-compte", l.DeactivateAccount)
}
