package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/s9096309/movie-shelf/internal/model"
)

// UserRepo encapsulates all database queries related to users.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// scanUser is the explicit row-to-record mapping for the users table.
func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name)
	return u, err
}

// List returns all users ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a user by id. It returns ErrUserNotFound if no row exists.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, "SELECT id, name FROM users WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a user and returns it with its new id. A name that is
// already taken yields ErrDuplicateName and leaves the table untouched.
func (r *UserRepo) Create(ctx context.Context, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	u := &model.User{Name: name}
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "INSERT INTO users (name) VALUES (?)", name)
		if err != nil {
			return err
		}
		u.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, &StoreError{Op: "create user", Err: err}
	}
	return u, nil
}
