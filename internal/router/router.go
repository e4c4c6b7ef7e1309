package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/iliyamo/student-housing-marketplace/internal/handler"    // import the handlers that implement business logic
    "github.com/iliyamo/student-housing-marketplace/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check, used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth, while protected
// endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Rotates the refresh token.
    g.POST("/refresh", a.Refresh)
    // Issues a new access token without rotating the refresh token.
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout accepts a refresh_token body or a bearer header; it does
    // not require the JWT middleware.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)

    // Same handler reachable without the auth group so a refresh
    // token alone can terminate a session.
    e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse and search
// endpoints.  These routes apply no JWT or role middleware and are
// intended for guests; compatibility scoring is opted into via the
// locataire_id query parameter.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
    // The documented search contract.
    e.GET("/v1/recherche", p.Search)
    // Listing browse with explicit status filters, and detail.
    e.GET("/v1/logements", p.Browse)
    e.GET("/v1/logements/:id", p.GetListing)
    // Reviews are public reading material.
    e.GET("/v1/avis", p.ListReviews)
}
