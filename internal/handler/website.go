package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/s9096309/movie-shelf/internal/site"
)

// GenerateWebsite renders the static page for :user_id and redirects home,
// where the page is linked. Failures are reported as plain text.
func (h *MovieHandler) GenerateWebsite(c echo.Context) error {
	id, ok := pathID(c, "user_id")
	if !ok {
		return echo.ErrNotFound
	}

	path, err := h.Site.Generate(c.Request().Context(), id)
	switch {
	case err == nil:
		c.Logger().Infof("generated %s", path)
		return c.Redirect(http.StatusFound, "/")
	case errors.Is(err, site.ErrNoMovies):
		return c.String(http.StatusUnprocessableEntity, "No movies to display.")
	case errors.Is(err, site.ErrTemplateMissing):
		return c.String(http.StatusInternalServerError, "Error: index_template.html not found.")
	default:
		c.Logger().Errorf("generate website for user %d: %v", id, err)
		return c.String(http.StatusInternalServerError, "An error occurred: "+err.Error())
	}
}
