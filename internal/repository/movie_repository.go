package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/s9096309/movie-shelf/internal/model"
)

const movieColumns = "id, user_id, title, director, year, rating, poster_url, imdb_id"

// MovieRepo manages persistence for movies.
type MovieRepo struct {
	db *sql.DB
}

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// scanMovie is the explicit row-to-record mapping for the movies table.
// Nullable columns collapse to their zero values, except poster_url which
// keeps its validity.
func scanMovie(row rowScanner) (model.Movie, error) {
	var (
		m        model.Movie
		director sql.NullString
		year     sql.NullInt64
		rating   sql.NullFloat64
		imdbID   sql.NullString
	)
	if err := row.Scan(&m.ID, &m.UserID, &m.Title, &director, &year, &rating, &m.PosterURL, &imdbID); err != nil {
		return model.Movie{}, err
	}
	m.Director = director.String
	m.Year = int(year.Int64)
	m.Rating = rating.Float64
	m.IMDbID = imdbID.String
	return m, nil
}

// ListByUser returns every movie owned by userID ordered by id. A user
// without movies yields an empty slice.
func (r *MovieRepo) ListByUser(ctx context.Context, userID int64) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a movie by id. It returns ErrMovieNotFound if no row exists.
func (r *MovieRepo) GetByID(ctx context.Context, id int64) (*model.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts m and populates its ID. Any failure, including a foreign
// key violation for an unknown user, is returned as a *StoreError after
// the transaction is rolled back.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	if strings.TrimSpace(m.Title) == "" {
		return &StoreError{Op: "add movie", Err: ErrTitleRequired}
	}
	const q = `INSERT INTO movies (user_id, title, director, year, rating, poster_url, imdb_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q,
			m.UserID, m.Title, nullString(m.Director), nullInt(m.Year), m.Rating, m.PosterURL, nullString(m.IMDbID))
		if err != nil {
			return err
		}
		m.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return &StoreError{Op: "add movie", Err: err}
	}
	return nil
}

// Update overwrites title, director, year and rating of the movie. An
// unknown id is a no-op.
func (r *MovieRepo) Update(ctx context.Context, id int64, title, director string, year int, rating float64) error {
	const q = `UPDATE movies SET title = ?, director = ?, year = ?, rating = ? WHERE id = ?`
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, q, title, nullString(director), nullInt(year), rating, id)
		return err
	})
	if err != nil {
		return &StoreError{Op: "update movie", Err: err}
	}
	return nil
}

// Delete permanently removes the movie. An unknown id is a no-op.
func (r *MovieRepo) Delete(ctx context.Context, id int64) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
		return err
	})
	if err != nil {
		return &StoreError{Op: "delete movie", Err: err}
	}
	return nil
}
