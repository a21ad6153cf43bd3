package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/s9096309/movie-shelf/internal/model"
	"github.com/s9096309/movie-shelf/internal/repository"
)

// ListUsers renders every user.
func (h *MovieHandler) ListUsers(c echo.Context) error {
	users, err := h.Store.ListUsers(c.Request().Context())
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	return c.Render(http.StatusOK, viewUsers, map[string]any{"Users": users})
}

// AddUserForm renders the new-user form.
func (h *MovieHandler) AddUserForm(c echo.Context) error {
	return c.Render(http.StatusOK, viewAddUser, nil)
}

// AddUser creates the user named in the "username" field and redirects to
// the user list.
func (h *MovieHandler) AddUser(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("username"))
	if name == "" {
		return c.String(http.StatusBadRequest, "Username is required.")
	}
	if _, err := h.Library.CreateUser(c.Request().Context(), name); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return c.String(http.StatusConflict, fmt.Sprintf("Error: User '%s' already exists.", name))
		}
		return fmt.Errorf("create user: %w", err)
	}
	return c.Redirect(http.StatusSeeOther, "/users")
}

// UserMovies renders one user's collection.
func (h *MovieHandler) UserMovies(c echo.Context) error {
	user, err := h.userFromPath(c)
	if err != nil {
		return err
	}
	movies, err := h.Store.ListMoviesForUser(c.Request().Context(), user.ID)
	if err != nil {
		return fmt.Errorf("list movies: %w", err)
	}
	return c.Render(http.StatusOK, viewUserMovies, map[string]any{"User": user, "Movies": movies})
}

// userFromPath resolves :user_id, mapping bad or unknown ids to 404.
func (h *MovieHandler) userFromPath(c echo.Context) (*model.User, error) {
	id, ok := pathID(c, "user_id")
	if !ok {
		return nil, echo.ErrNotFound
	}
	user, err := h.Store.GetUser(c.Request().Context(), id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, echo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
