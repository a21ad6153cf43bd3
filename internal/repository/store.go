package repository

import (
	"context"
	"database/sql"

	"github.com/s9096309/movie-shelf/internal/model"
)

// DataStore is the capability set both front ends depend on.
type DataStore interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	CreateUser(ctx context.Context, name string) (*model.User, error)
	ListMoviesForUser(ctx context.Context, userID int64) ([]model.Movie, error)
	GetMovie(ctx context.Context, id int64) (*model.Movie, error)
	AddMovie(ctx context.Context, m *model.Movie) error
	UpdateMovie(ctx context.Context, id int64, title, director string, year int, rating float64) error
	DeleteMovie(ctx context.Context, id int64) error
}

// Store is the database/sql implementation of DataStore.
type Store struct {
	Users  *UserRepo
	Movies *MovieRepo
}

var _ DataStore = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{Users: NewUserRepo(db), Movies: NewMovieRepo(db)}
}

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) { return s.Users.List(ctx) }

func (s *Store) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.Users.GetByID(ctx, id)
}

func (s *Store) CreateUser(ctx context.Context, name string) (*model.User, error) {
	return s.Users.Create(ctx, name)
}

func (s *Store) ListMoviesForUser(ctx context.Context, userID int64) ([]model.Movie, error) {
	return s.Movies.ListByUser(ctx, userID)
}

func (s *Store) GetMovie(ctx context.Context, id int64) (*model.Movie, error) {
	return s.Movies.GetByID(ctx, id)
}

func (s *Store) AddMovie(ctx context.Context, m *model.Movie) error { return s.Movies.Create(ctx, m) }

func (s *Store) UpdateMovie(ctx context.Context, id int64, title, director string, year int, rating float64) error {
	return s.Movies.Update(ctx, id, title, director, year, rating)
}

func (s *Store) DeleteMovie(ctx context.Context, id int64) error { return s.Movies.Delete(ctx, id) }
