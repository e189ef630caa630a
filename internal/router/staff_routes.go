package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/model"
)

// RegisterStaff registers the catalog management and moderation
// endpoints. Everything here requires the STAFF role.
func RegisterStaff(e *echo.Echo, jwtSecret string,
	m *handler.MovieHandler, cat *handler.CatalogHandler,
	p *handler.PersonHandler, s *handler.SeriesHandler,
	rep *handler.ReportHandler) {

	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStaff),
	)

	// Movies.
	g.POST("/movies", m.Create)
	g.PUT("/movies/:id", m.Update)
	g.DELETE("/movies/:id", m.Delete)
	g.PUT("/movies/:id/genres", m.SetGenres)
	g.PUT("/movies/:id/countries", m.SetCountries)
	g.PUT("/movies/:id/people/:role", m.SetPeople)
	g.PUT("/movies/:id/cast", m.SetCast)
	g.POST("/movies/:id/poster", m.UploadPoster)
	g.POST("/movies/:id/trailer", m.UploadTrailer)
	g.POST("/movies/:id/awards", cat.AddMovieAward)

	// Seasons, episodes and subtitles.
	g.POST("/movies/:id/seasons", s.CreateSeason)
	g.DELETE("/seasons/:id", s.DeleteSeason)
	g.POST("/seasons/:id/episodes", s.CreateEpisode)
	g.DELETE("/episodes/:id", s.DeleteEpisode)
	g.POST("/episodes/:id/video", s.UploadEpisodeVideo)
	g.POST("/movies/:id/subtitles", s.UploadSubtitle)
	g.DELETE("/subtitles/:id", s.DeleteSubtitle)

	// Reference data.
	g.POST("/genres", cat.CreateGenre)
	g.PUT("/genres/:id", cat.UpdateGenre)
	g.DELETE("/genres/:id", cat.DeleteGenre)
	g.POST("/countries", cat.CreateCountry)
	g.PUT("/countries/:id", cat.UpdateCountry)
	g.DELETE("/countries/:id", cat.DeleteCountry)
	g.POST("/awards", cat.CreateAward)
	g.PUT("/awards/:id", cat.UpdateAward)
	g.DELETE("/awards/:id", cat.DeleteAward)
	g.POST("/people", p.Create)
	g.PUT("/people/:id", p.Update)
	g.DELETE("/people/:id", p.Delete)
	g.POST("/people/:id/photo", p.UploadPhoto)

	// Moderation queue.
	g.GET("/reports/open", rep.ListOpen)
	g.POST("/reports/:id/resolve", rep.Resolve)
}
