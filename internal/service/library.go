package service

import (
	"context"
	"time"

	"github.com/s9096309/movie-shelf/internal/model"
	"github.com/s9096309/movie-shelf/internal/omdb"
	q "github.com/s9096309/movie-shelf/internal/queue"
	"github.com/s9096309/movie-shelf/internal/repository"
)

// Fetcher resolves a free-text title into catalog metadata.
type Fetcher interface {
	Fetch(ctx context.Context, title string) (omdb.Normalized, error)
}

// Library wraps the store mutations that emit activity events. Reads go
// straight to the store.
type Library struct {
	store   repository.DataStore
	fetcher Fetcher
	events  EventPublisher
	source  string
	now     func() time.Time
}

// NewLibrary builds a Library. source tags published events ("web", "cli").
// A nil events publisher disables publishing.
func NewLibrary(store repository.DataStore, fetcher Fetcher, events EventPublisher, source string) *Library {
	if events == nil {
		events = NoopPublisher{}
	}
	return &Library{store: store, fetcher: fetcher, events: events, source: source, now: time.Now}
}

// CreateUser registers a new user.
func (l *Library) CreateUser(ctx context.Context, name string) (*model.User, error) {
	u, err := l.store.CreateUser(ctx, name)
	if err != nil {
		return nil, err
	}
	l.publish(ctx, q.MovieEvent{Kind: q.KindUserCreated, UserID: u.ID, Title: u.Name})
	return u, nil
}

// AddMovieByTitle looks title up in the catalog and stores the normalized
// result for userID. Nothing is written when the lookup fails.
func (l *Library) AddMovieByTitle(ctx context.Context, userID int64, title string) (*model.Movie, error) {
	n, err := l.fetcher.Fetch(ctx, title)
	if err != nil {
		return nil, err
	}
	m := n.Movie(userID)
	if err := l.store.AddMovie(ctx, &m); err != nil {
		return nil, err
	}
	l.publish(ctx, q.MovieEvent{
		Kind: q.KindMovieAdded, UserID: userID, MovieID: m.ID,
		Title: m.Title, Year: m.Year, Rating: m.Rating, IMDbID: m.IMDbID,
	})
	return &m, nil
}

// UpdateMovie replaces the editable fields of movie id.
func (l *Library) UpdateMovie(ctx context.Context, m model.Movie) error {
	if err := l.store.UpdateMovie(ctx, m.ID, m.Title, m.Director, m.Year, m.Rating); err != nil {
		return err
	}
	l.publish(ctx, q.MovieEvent{
		Kind: q.KindMovieUpdated, UserID: m.UserID, MovieID: m.ID,
		Title: m.Title, Year: m.Year, Rating: m.Rating,
	})
	return nil
}

// DeleteMovie removes movie id. An absent id is a no-op.
func (l *Library) DeleteMovie(ctx context.Context, id int64) error {
	if err := l.store.DeleteMovie(ctx, id); err != nil {
		return err
	}
	l.publish(ctx, q.MovieEvent{Kind: q.KindMovieDeleted, MovieID: id})
	return nil
}

func (l *Library) publish(ctx context.Context, ev q.MovieEvent) {
	ev.Source = l.source
	ev.At = l.now().UTC().Format(time.RFC3339)
	_ = l.events.Publish(ctx, ev)
}
