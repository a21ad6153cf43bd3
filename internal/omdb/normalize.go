package omdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/s9096309/movie-shelf/internal/model"
)

// notAvailable is the catalog's placeholder for a missing value.
const notAvailable = "N/A"

// Normalized is a catalog answer reduced to the fields a Movie stores.
type Normalized struct {
	Title     string
	Director  string
	Year      int
	Rating    float64
	PosterURL sql.NullString
	IMDbID    string
}

// Movie returns the record to persist for userID.
func (n Normalized) Movie(userID int64) model.Movie {
	return model.Movie{
		UserID:    userID,
		Title:     n.Title,
		Director:  n.Director,
		Year:      n.Year,
		Rating:    n.Rating,
		PosterURL: n.PosterURL,
		IMDbID:    n.IMDbID,
	}
}

// response mirrors the subset of the OMDb JSON body that is read. Pointer
// fields distinguish a missing key from an empty value.
type response struct {
	Response *string `json:"Response"`
	Error    *string `json:"Error"`
	Title    *string `json:"Title"`
	Director *string `json:"Director"`
	Year     *string `json:"Year"`
	Rating   *string `json:"imdbRating"`
	Poster   *string `json:"Poster"`
	IMDbID   *string `json:"imdbID"`
}

// ParseResponse decodes an OMDb body and normalizes it.
func ParseResponse(title string, body []byte) (Normalized, error) {
	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return Normalized{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if r.Response == nil {
		return Normalized{}, fmt.Errorf("%w: missing field Response", ErrMalformedResponse)
	}
	if !strings.EqualFold(*r.Response, "True") {
		msg := ""
		if r.Error != nil {
			msg = *r.Error
		}
		return Normalized{}, &NotFoundError{Title: title, Message: msg}
	}

	fields := map[string]*string{
		"Title": r.Title, "Director": r.Director, "Year": r.Year,
		"imdbRating": r.Rating, "Poster": r.Poster, "imdbID": r.IMDbID,
	}
	for _, name := range []string{"Title", "Director", "Year", "imdbRating", "Poster", "imdbID"} {
		if fields[name] == nil {
			return Normalized{}, fmt.Errorf("%w: missing field %s", ErrMalformedResponse, name)
		}
	}

	year, err := ExtractYear(*r.Year)
	if err != nil {
		return Normalized{}, err
	}
	rating, err := ParseRating(*r.Rating)
	if err != nil {
		return Normalized{}, err
	}

	n := Normalized{
		Title:     *r.Title,
		Director:  *r.Director,
		Year:      year,
		Rating:    rating,
		PosterURL: parsePoster(*r.Poster),
		IMDbID:    *r.IMDbID,
	}
	if n.Director == notAvailable {
		n.Director = ""
	}
	return n, nil
}

// ExtractYear keeps the start of a year token. Series report ranges such
// as "1994–1998" or open ranges such as "2019–"; only 1994 / 2019 is kept.
func ExtractYear(token string) (int, error) {
	s := strings.TrimSpace(token)
	if i := strings.IndexAny(s, "–-"); i >= 0 {
		s = s[:i]
	}
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || year <= 0 {
		return 0, &BadYearError{Token: token}
	}
	return year, nil
}

// ParseRating turns the imdbRating token into a number; "N/A" is 0.0.
func ParseRating(token string) (float64, error) {
	s := strings.TrimSpace(token)
	if s == notAvailable || s == "" {
		return 0.0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: rating %q", ErrMalformedResponse, token)
	}
	return f, nil
}

func parsePoster(token string) sql.NullString {
	s := strings.TrimSpace(token)
	if s == "" || s == notAvailable {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
