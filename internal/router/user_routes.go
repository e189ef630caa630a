package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/model"
)

// RegisterUser registers the endpoints available to any
// authenticated account. Ownership checks happen inside the
// handlers; this tier only requires a valid token with a known role.
func RegisterUser(e *echo.Echo, jwtSecret string,
	rev *handler.ReviewHandler, col *handler.CollectionHandler,
	lists *handler.MovieListHandler, rep *handler.ReportHandler,
	not *handler.NotificationHandler, act *handler.ActivityHandler) {

	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleStaff),
	)

	// Reviews. Creating is nested under the movie; update/delete
	// address the review directly.
	g.POST("/movies/:id/reviews", rev.Create)
	g.PUT("/reviews/:id", rev.Update)
	g.DELETE("/reviews/:id", rev.Delete)
	g.GET("/my-reviews", rev.ListMine)

	// Collections.
	g.POST("/collections", col.Create)
	g.GET("/collections", col.List)
	g.GET("/collections/:id", col.Get)
	g.PUT("/collections/:id", col.Update)
	g.DELETE("/collections/:id", col.Delete)
	g.POST("/collections/:id/movies", col.AddMovie)
	g.DELETE("/collections/:id/movies/:movie_id", col.RemoveMovie)

	// Watchlist and typed lists.
	g.POST("/watchlist", lists.AddToWatchlist)
	g.DELETE("/watchlist/:movie_id", lists.RemoveFromWatchlist)
	g.GET("/watchlist", lists.Watchlist)
	g.GET("/lists", lists.ListEntries)
	g.POST("/lists/:kind", lists.AddListEntry)
	g.DELETE("/lists/:kind/:movie_id", lists.RemoveListEntry)

	// Reports.
	g.POST("/reports", rep.Create)
	g.GET("/my-reports", rep.ListMine)

	// Notifications and the activity trail.
	g.GET("/notifications", not.List)
	g.POST("/notifications/:id/read", not.MarkRead)
	g.GET("/my-activities", act.ListMine)
}
