package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/student-housing-marketplace/internal/handler"
    "github.com/iliyamo/student-housing-marketplace/internal/middleware"
)

// RegisterReviews registers the review creation endpoint.  Both
// sides of the marketplace can leave reviews, so the route accepts
// either role; the handler resolves the reviewer from the role
// claim.
func RegisterReviews(e *echo.Echo, rv *handler.ReviewHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("TENANT", "LANDLORD"),
    )
    g.POST("/avis", rv.Create)
}
