// Package collection holds the read-only computations the CLI runs over a
// user's movie list: statistics, title search, rating sort and random pick.
// Nothing here touches the store.
package collection

import (
	"errors"
	"math/rand"
	"sort"
	"strings"

	"github.com/s9096309/movie-shelf/internal/model"
)

// ErrEmpty is returned by operations that need at least one movie.
var ErrEmpty = errors.New("no movies")

// Stats summarizes the ratings of a collection. Best and Worst are the
// first movies holding the maximum and minimum rating.
type Stats struct {
	Mean   float64
	Median float64
	Best   model.Movie
	Worst  model.Movie
}

// ComputeStats returns mean, median, best and worst over movies.
func ComputeStats(movies []model.Movie) (Stats, error) {
	if len(movies) == 0 {
		return Stats{}, ErrEmpty
	}
	ratings := make([]float64, len(movies))
	best, worst := 0, 0
	sum := 0.0
	for i, m := range movies {
		ratings[i] = m.Rating
		sum += m.Rating
		if m.Rating > movies[best].Rating {
			best = i
		}
		if m.Rating < movies[worst].Rating {
			worst = i
		}
	}
	return Stats{
		Mean:   sum / float64(len(movies)),
		Median: median(ratings),
		Best:   movies[best],
		Worst:  movies[worst],
	}, nil
}

// median of an even count is the mean of the two middle values.
func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Search returns the movies whose title contains term, ignoring case.
func Search(movies []model.Movie, term string) []model.Movie {
	term = strings.ToLower(term)
	var out []model.Movie
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Title), term) {
			out = append(out, m)
		}
	}
	return out
}

// Order is a rating sort direction.
type Order string

const (
	Ascending  Order = "A"
	Descending Order = "D"
)

// ParseOrder accepts "a"/"A"/"d"/"D" (surrounding spaces ignored). Any
// other token falls back to Ascending and ok is false.
func ParseOrder(token string) (order Order, ok bool) {
	switch Order(strings.ToUpper(strings.TrimSpace(token))) {
	case Ascending:
		return Ascending, true
	case Descending:
		return Descending, true
	}
	return Ascending, false
}

// SortByRating returns a sorted copy; equal ratings keep their order.
func SortByRating(movies []model.Movie, order Order) []model.Movie {
	out := append([]model.Movie(nil), movies...)
	sort.SliceStable(out, func(i, j int) bool {
		if order == Descending {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Rating < out[j].Rating
	})
	return out
}

// Picker returns an index in [0, n).
type Picker func(n int) int

// Random picks one movie uniformly using pick, or rand.Intn when nil.
func Random(movies []model.Movie, pick Picker) (model.Movie, error) {
	if len(movies) == 0 {
		return model.Movie{}, ErrEmpty
	}
	if pick == nil {
		pick = rand.Intn
	}
	return movies[pick(len(movies))], nil
}
