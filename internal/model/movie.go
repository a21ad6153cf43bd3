package model

import "database/sql"

// Movie represents one entry in a user's collection.  It corresponds to a
// row in the `movies` table and carries the metadata normalized from the
// catalog lookup.
//
// Fields:
//
//	ID        – primary key identifier, assigned by the store.
//	UserID    – owner of the movie (users.id).
//	Title     – display title, required.
//	Director  – director name, empty when unknown.
//	Year      – release (or first) year, zero when unknown.
//	Rating    – catalog rating, 0.0 when the catalog has none.
//	PosterURL – poster image URL, invalid when the catalog has none.
//	IMDbID    – external catalog identifier, display only.
type Movie struct {
	ID        int64          // movies.id
	UserID    int64          // movies.user_id
	Title     string         // movies.title
	Director  string         // movies.director (nullable)
	Year      int            // movies.year (nullable)
	Rating    float64        // movies.rating (nullable)
	PosterURL sql.NullString // movies.poster_url (nullable)
	IMDbID    string         // movies.imdb_id (nullable)
}

// Poster returns the poster URL or an empty string when absent.
func (m Movie) Poster() string {
	if m.PosterURL.Valid {
		return m.PosterURL.String
	}
	return ""
}
