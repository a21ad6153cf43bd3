// Package site renders a user's collection into a standalone HTML page.
// Pages are written one file per user under the output directory, and
// writes are serialized, so concurrent generation for different users
// never shares or tears a file.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/s9096309/movie-shelf/internal/model"
)

// TemplateName is the listing template looked up in the templates dir.
const TemplateName = "index_template.html"

// PageTitle is shown in the generated document's <title>.
const PageTitle = "My Movie App"

var (
	// ErrNoMovies means the user has nothing to list.
	ErrNoMovies = errors.New("no movies to display")
	// ErrTemplateMissing means index_template.html is not in the templates dir.
	ErrTemplateMissing = errors.New("index_template.html not found")
)

// Source is the read access the generator needs.
type Source interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListMoviesForUser(ctx context.Context, userID int64) ([]model.Movie, error)
}

// Generator renders TemplateName for one user at a time.
type Generator struct {
	src          Source
	templatesDir string
	outDir       string
	mu           sync.Mutex
}

func NewGenerator(src Source, templatesDir, outDir string) *Generator {
	return &Generator{src: src, templatesDir: templatesDir, outDir: outDir}
}

// pageData is what index_template.html is executed with.
type pageData struct {
	Title  string
	User   model.User
	Movies []model.Movie
}

// PageName is the file name of userID's page inside the output dir.
func PageName(userID int64) string { return fmt.Sprintf("user_%d.html", userID) }

// PagePath is the full path of userID's page.
func (g *Generator) PagePath(userID int64) string {
	return filepath.Join(g.outDir, PageName(userID))
}

// Generate renders and writes userID's page, returning its path. The
// template is read on every call so edits show up without a restart.
func (g *Generator) Generate(ctx context.Context, userID int64) (string, error) {
	movies, err := g.src.ListMoviesForUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("list movies: %w", err)
	}
	if len(movies) == 0 {
		return "", ErrNoMovies
	}
	user, err := g.src.GetUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}

	raw, err := os.ReadFile(filepath.Join(g.templatesDir, TemplateName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrTemplateMissing
		}
		return "", fmt.Errorf("read template: %w", err)
	}
	tmpl, err := template.New(TemplateName).Funcs(Funcs).Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, pageData{Title: PageTitle, User: *user, Movies: movies}); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	path := g.PagePath(userID)
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

// writeFileAtomic writes to a temp file next to path and renames it into
// place, so readers never observe a half-written page.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".page-*.html")
	if err != nil {
		return fmt.Errorf("create temp page: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close page: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod page: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename page: %w", err)
	}
	return nil
}
