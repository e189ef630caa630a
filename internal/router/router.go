// Package router defines how HTTP routes are registered for the API.
// Routes are split into three tiers: public browse endpoints (rate
// limited), authenticated user endpoints and staff-only endpoints.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Register,
// login, refresh and logout live under /v1/auth and need no session;
// /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// Behind the JWT middleware a bodyless logout revokes every
	// session of the current user.
	auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse endpoints. The
// rate limiter only guards this tier; authenticated traffic is
// already bounded by its user accounts.
func RegisterPublic(e *echo.Echo, m *handler.MovieHandler, rev *handler.ReviewHandler,
	cat *handler.CatalogHandler, p *handler.PersonHandler, s *handler.SeriesHandler,
	limiter echo.MiddlewareFunc) {

	g := e.Group("/v1", limiter)

	g.GET("/movies", m.List)
	g.GET("/movies/:id", m.Get)
	g.GET("/movies/:id/reviews", rev.ListByMovie)
	g.GET("/movies/:id/seasons", s.ListSeasons)
	g.GET("/movies/:id/subtitles", s.ListSubtitles)
	g.GET("/seasons/:id/episodes", s.ListEpisodes)

	g.GET("/genres", cat.ListGenres)
	g.GET("/countries", cat.ListCountries)
	g.GET("/awards", cat.ListAwards)
	g.GET("/people", p.List)
	g.GET("/people/:id", p.Get)
}
