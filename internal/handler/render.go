// Package handler exposes the HTML handlers of the web surface. Views are
// html/template files rendered through echo's Renderer; failures that the
// user must see verbatim are answered as plain text.
package handler

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/s9096309/movie-shelf/internal/site"
)

// View names under the templates directory.
const (
	viewHome        = "index.html"
	viewUsers       = "users_list.html"
	viewAddUser     = "add_user.html"
	viewUserMovies  = "user_movies.html"
	viewAddMovie    = "add_movie.html"
	viewUpdateMovie = "update_movie.html"
	viewNotFound    = "404.html"
)

// Renderer implements echo.Renderer over every *.html file in a directory.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses dir/*.html once at startup.
func NewRenderer(dir string) (*Renderer, error) {
	t, err := template.New("views").Funcs(site.Funcs).ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates in %s: %w", dir, err)
	}
	return &Renderer{tmpl: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

// HTTPErrorHandler renders 404.html for every not-found outcome and plain
// text for everything else.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}
	if code >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}

	if code == http.StatusNotFound {
		if rerr := c.Render(http.StatusNotFound, viewNotFound, nil); rerr != nil {
			c.Logger().Error(rerr)
			_ = c.String(http.StatusNotFound, "Not Found")
		}
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.String(code, msg)
}
