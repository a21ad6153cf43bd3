package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/s9096309/movie-shelf/internal/model"
	"github.com/s9096309/movie-shelf/internal/omdb"
	"github.com/s9096309/movie-shelf/internal/repository"
)

// AddMovieForm renders the title lookup form for a user.
func (h *MovieHandler) AddMovieForm(c echo.Context) error {
	user, err := h.userFromPath(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, viewAddMovie, map[string]any{"User": user})
}

// AddMovie looks the "name" field up in the catalog and stores the result.
// The persisted title is the catalog's, not the typed one.
func (h *MovieHandler) AddMovie(c echo.Context) error {
	user, err := h.userFromPath(c)
	if err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("name"))
	if title == "" {
		return c.String(http.StatusBadRequest, "Movie title is required.")
	}

	if _, err := h.Library.AddMovieByTitle(c.Request().Context(), user.ID, title); err != nil {
		var storeErr *repository.StoreError
		if errors.As(err, &storeErr) {
			return fmt.Errorf("add movie: %w", err)
		}
		c.Logger().Warnf("add movie %q for user %d: %v", title, user.ID, err)
		return c.String(fetchStatus(err), "Error fetching movie details from OMDb API: "+err.Error())
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/users/%d", user.ID))
}

func fetchStatus(err error) int {
	switch {
	case errors.Is(err, omdb.ErrMissingAPIKey):
		return http.StatusServiceUnavailable
	case errors.Is(err, omdb.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// UpdateMovieForm renders the edit form pre-filled with the stored values.
func (h *MovieHandler) UpdateMovieForm(c echo.Context) error {
	user, err := h.userFromPath(c)
	if err != nil {
		return err
	}
	movie, err := h.ownedMovie(c, user.ID)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, viewUpdateMovie, map[string]any{"User": user, "Movie": movie})
}

// UpdateMovie applies the non-empty submitted fields; omitted or empty
// fields keep their stored value.
func (h *MovieHandler) UpdateMovie(c echo.Context) error {
	user, err := h.userFromPath(c)
	if err != nil {
		return err
	}
	movie, err := h.ownedMovie(c, user.ID)
	if err != nil {
		return err
	}

	upd := *movie
	if v := strings.TrimSpace(c.FormValue("name")); v != "" {
		upd.Title = v
	}
	if v := strings.TrimSpace(c.FormValue("director")); v != "" {
		upd.Director = v
	}
	if v := strings.TrimSpace(c.FormValue("year")); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return c.String(http.StatusBadRequest, fmt.Sprintf("Invalid year: %s", v))
		}
		upd.Year = year
	}
	if v := strings.TrimSpace(c.FormValue("rating")); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.String(http.StatusBadRequest, fmt.Sprintf("Invalid rating: %s", v))
		}
		upd.Rating = rating
	}

	if err := h.Library.UpdateMovie(c.Request().Context(), upd); err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/users/%d", user.ID))
}

// DeleteMovie removes :movie_id and goes back home. Unknown ids are a no-op.
func (h *MovieHandler) DeleteMovie(c echo.Context) error {
	id, ok := pathID(c, "movie_id")
	if !ok {
		return echo.ErrNotFound
	}
	if err := h.Library.DeleteMovie(c.Request().Context(), id); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	return c.Redirect(http.StatusFound, "/")
}

// ownedMovie resolves :movie_id and requires it to belong to userID.
func (h *MovieHandler) ownedMovie(c echo.Context, userID int64) (*model.Movie, error) {
	id, ok := pathID(c, "movie_id")
	if !ok {
		return nil, echo.ErrNotFound
	}
	m, err := h.Store.GetMovie(c.Request().Context(), id)
	if errors.Is(err, repository.ErrMovieNotFound) {
		return nil, echo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if m.UserID != userID {
		return nil, echo.ErrNotFound
	}
	return m, nil
}
