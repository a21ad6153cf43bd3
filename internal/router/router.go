// Package router wires the web surface's routes onto an echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/s9096309/movie-shelf/internal/handler"
)

// RegisterRoutes registers the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterMovies registers the HTML pages and serves generated static
// pages from siteDir under /site. Unmatched paths fall through to the
// 404 page via handler.HTTPErrorHandler.
func RegisterMovies(e *echo.Echo, h *handler.MovieHandler, siteDir string) {
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.GET("/", h.Home)
	e.GET("/users", h.ListUsers)
	e.GET("/add_user", h.AddUserForm)
	e.POST("/add_user", h.AddUser)
	e.GET("/users/:user_id", h.UserMovies)

	// Movies of one user
	e.GET("/users/:user_id/add_movie", h.AddMovieForm)
	e.POST("/users/:user_id/add_movie", h.AddMovie)
	e.GET("/users/:user_id/update_movie/:movie_id", h.UpdateMovieForm)
	e.POST("/users/:user_id/update_movie/:movie_id", h.UpdateMovie)
	e.GET("/delete_movie/:movie_id", h.DeleteMovie)

	e.GET("/generate_website/:user_id", h.GenerateWebsite)
	e.Static("/site", siteDir)
}
