package omdb

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey means OMDB_API_KEY was not configured.
	ErrMissingAPIKey = errors.New("OMDB API key is missing")
	// ErrNotFound means the catalog answered but has no such title.
	ErrNotFound = errors.New("movie not found in catalog")
	// ErrNetwork covers transport failures and non-2xx answers.
	ErrNetwork = errors.New("could not reach the catalog service")
	// ErrMalformedResponse covers undecodable bodies and missing fields.
	ErrMalformedResponse = errors.New("malformed catalog response")
	// ErrBadYear means the Year field could not be reduced to an integer.
	ErrBadYear = errors.New("invalid year format")
)

// NotFoundError carries the catalog's own explanation, e.g. "Movie not found!".
type NotFoundError struct {
	Title   string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %q", ErrNotFound, e.Title)
	}
	return e.Message
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// BadYearError reports the year token that failed to parse.
type BadYearError struct {
	Token string
}

func (e *BadYearError) Error() string { return fmt.Sprintf("%s: %s", ErrBadYear, e.Token) }

func (e *BadYearError) Is(target error) bool { return target == ErrBadYear }
