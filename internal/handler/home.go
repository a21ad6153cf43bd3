package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/s9096309/movie-shelf/internal/repository"
	"github.com/s9096309/movie-shelf/internal/service"
	"github.com/s9096309/movie-shelf/internal/site"
)

// MovieHandler serves every page of the web surface.
type MovieHandler struct {
	Store   repository.DataStore
	Library *service.Library
	Site    *site.Generator
	SiteDir string
}

type pageLink struct {
	File string
	Name string
}

// Home renders the landing page with links to the generated user pages.
func (h *MovieHandler) Home(c echo.Context) error {
	pages, err := h.generatedPages(c.Request().Context())
	if err != nil {
		c.Logger().Warnf("home: listing generated pages: %v", err)
	}
	return c.Render(http.StatusOK, viewHome, map[string]any{"Pages": pages})
}

func (h *MovieHandler) generatedPages(ctx context.Context) ([]pageLink, error) {
	entries, err := os.ReadDir(h.SiteDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	type found struct {
		id   int64
		link pageLink
	}
	var list []found
	for _, e := range entries {
		var id int64
		if e.IsDir() {
			continue
		}
		if _, err := fmt.Sscanf(e.Name(), "user_%d.html", &id); err != nil || site.PageName(id) != e.Name() {
			continue
		}
		link := pageLink{File: e.Name(), Name: e.Name()}
		if u, err := h.Store.GetUser(ctx, id); err == nil {
			link.Name = u.Name
		}
		list = append(list, found{id: id, link: link})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].id < list[j].id })

	out := make([]pageLink, 0, len(list))
	for _, f := range list {
		out = append(out, f.link)
	}
	return out, nil
}
