// Package queue defines message payloads exchanged over the message broker.
package queue

// ActivityQueueName is the durable queue carrying MovieEvents.
const ActivityQueueName = "movie.activity"

// Event kinds.
const (
	KindUserCreated  = "user.created"
	KindMovieAdded   = "movie.added"
	KindMovieUpdated = "movie.updated"
	KindMovieDeleted = "movie.deleted"
)

// MovieEvent is published after a successful change to a collection. It
// carries enough to write an activity line without querying the store.
type MovieEvent struct {
	Kind    string  `json:"kind"`
	UserID  int64   `json:"user_id,omitempty"`
	MovieID int64   `json:"movie_id,omitempty"`
	Title   string  `json:"title,omitempty"`
	Year    int     `json:"year,omitempty"`
	Rating  float64 `json:"rating,omitempty"`
	IMDbID  string  `json:"imdb_id,omitempty"`
	Source  string  `json:"source"`
	At      string  `json:"at"`
}
