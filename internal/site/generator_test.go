package site

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/s9096309/movie-shelf/internal/model"
)

// =============================================================================
// Fake source
// =============================================================================

type fakeSource struct {
	users  map[int64]model.User
	movies map[int64][]model.Movie
	err    error
}

func (f *fakeSource) GetUser(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return &u, nil
}

func (f *fakeSource) ListMoviesForUser(_ context.Context, userID int64) ([]model.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.movies[userID], nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		users: map[int64]model.User{1: {ID: 1, Name: "alice"}, 2: {ID: 2, Name: "bob"}, 3: {ID: 3, Name: "carol"}},
		movies: map[int64][]model.Movie{
			1: {
				{ID: 10, UserID: 1, Title: "Inception", Director: "Christopher Nolan", Year: 2010, Rating: 8.8,
					PosterURL: sql.NullString{String: "https://img.example/i.jpg", Valid: true}, IMDbID: "tt1375666"},
				{ID: 11, UserID: 1, Title: "Obscure <Short>", Rating: 0},
			},
			2: {{ID: 20, UserID: 2, Title: "Alien", Year: 1979, Rating: 8.5}},
		},
	}
}

const shippedTemplates = "../../web/templates"

// =============================================================================
// Tests
// =============================================================================

func TestGenerateWritesPerUserPage(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(newFakeSource(), shippedTemplates, out)

	path, err := g.Generate(context.Background(), 1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if path != filepath.Join(out, "user_1.html") {
		t.Errorf("path = %q", path)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	html := string(body)
	for _, want := range []string{"My Movie App", "alice", "Inception", "8.8", "https://img.example/i.jpg",
		"tt1375666", "Obscure &lt;Short&gt;", "Rating: 0.0"} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestGenerateKeepsUsersApart(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(newFakeSource(), shippedTemplates, out)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		for _, id := range []int64{1, 2} {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				if _, err := g.Generate(context.Background(), id); err != nil {
					errs <- err
				}
			}(id)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Generate() error = %v", err)
	}

	alice, _ := os.ReadFile(filepath.Join(out, "user_1.html"))
	bob, _ := os.ReadFile(filepath.Join(out, "user_2.html"))
	if !strings.Contains(string(alice), "Inception") || strings.Contains(string(alice), "Alien") {
		t.Error("alice's page has the wrong collection")
	}
	if !strings.Contains(string(bob), "Alien") || strings.Contains(string(bob), "Inception") {
		t.Error("bob's page has the wrong collection")
	}

	entries, _ := os.ReadDir(out)
	if len(entries) != 2 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("output dir = %v, want only the two pages", names)
	}
}

func TestGenerateNoMovies(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(newFakeSource(), shippedTemplates, out)

	if _, err := g.Generate(context.Background(), 3); !errors.Is(err, ErrNoMovies) {
		t.Fatalf("Generate() error = %v, want ErrNoMovies", err)
	}
	if _, err := os.Stat(g.PagePath(3)); !os.IsNotExist(err) {
		t.Error("page written for a user without movies")
	}
}

func TestGenerateTemplateMissing(t *testing.T) {
	g := NewGenerator(newFakeSource(), t.TempDir(), t.TempDir())
	if _, err := g.Generate(context.Background(), 1); !errors.Is(err, ErrTemplateMissing) {
		t.Fatalf("Generate() error = %v, want ErrTemplateMissing", err)
	}
}

func TestGenerateBrokenTemplate(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, TemplateName), []byte("{{range}"), 0o644); err != nil {
		t.Fatal(err)
	}
	g := NewGenerator(newFakeSource(), dir, t.TempDir())

	_, err := g.Generate(context.Background(), 1)
	if err == nil || errors.Is(err, ErrTemplateMissing) || errors.Is(err, ErrNoMovies) {
		t.Fatalf("Generate() error = %v, want a generic render error", err)
	}
}

func TestGenerateSourceError(t *testing.T) {
	src := newFakeSource()
	src.err = fmt.Errorf("db down")
	g := NewGenerator(src, shippedTemplates, t.TempDir())

	if _, err := g.Generate(context.Background(), 1); err == nil || !strings.Contains(err.Error(), "db down") {
		t.Fatalf("Generate() error = %v, want wrapped source error", err)
	}
}

func TestFormatRating(t *testing.T) {
	tests := map[float64]string{0: "0.0", 8: "8.0", 8.8: "8.8", 7.25: "7.25"}
	for in, want := range tests {
		if got := FormatRating(in); got != want {
			t.Errorf("FormatRating(%v) = %q, want %q", in, got, want)
		}
	}
}
