// Package repository defines error types that are reused across the user
// and movie repositories. These values allow higher layers such as
// handlers and the CLI to distinguish between failure scenarios and turn
// each one into a message for the person at the keyboard.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// ErrDuplicateName is returned when a user is created with a name that
// already exists. Handlers should translate this into an HTTP 409.
var ErrDuplicateName = errors.New("user name already exists")

// ErrUserNotFound is returned when no user has the requested id.
var ErrUserNotFound = errors.New("user not found")

// ErrMovieNotFound is returned when no movie has the requested id.
var ErrMovieNotFound = errors.New("movie not found")

// ErrTitleRequired is returned when a movie is added without a title.
var ErrTitleRequired = errors.New("title is required")

// StoreError wraps any persistence failure of a mutating operation. The
// transaction has already been rolled back when it is returned.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

// isUniqueViolation reports whether err is a unique-key violation from
// either supported driver (sqlite3 or mysql error 1062).
func isUniqueViolation(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	return false
}
