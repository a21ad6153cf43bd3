package collection

import (
	"errors"
	"reflect"
	"testing"

	"github.com/s9096309/movie-shelf/internal/model"
)

func movies(ratings ...float64) []model.Movie {
	out := make([]model.Movie, len(ratings))
	for i, r := range ratings {
		out[i] = model.Movie{ID: int64(i + 1), Title: string(rune('A' + i)), Rating: r}
	}
	return out
}

func ratingsOf(ms []model.Movie) []float64 {
	out := make([]float64, len(ms))
	for i, m := range ms {
		out[i] = m.Rating
	}
	return out
}

func TestComputeStats(t *testing.T) {
	s, err := ComputeStats(movies(7.0, 9.0, 5.0))
	if err != nil {
		t.Fatalf("ComputeStats() error = %v", err)
	}
	if s.Mean != 7.0 || s.Median != 7.0 {
		t.Errorf("mean/median = %v/%v, want 7/7", s.Mean, s.Median)
	}
	if s.Best.Rating != 9.0 || s.Worst.Rating != 5.0 {
		t.Errorf("best/worst = %v/%v, want 9/5", s.Best.Rating, s.Worst.Rating)
	}
}

func TestComputeStatsEvenMedianAndTies(t *testing.T) {
	ms := movies(8.0, 6.0, 8.0, 6.0)
	s, err := ComputeStats(ms)
	if err != nil {
		t.Fatalf("ComputeStats() error = %v", err)
	}
	if s.Median != 7.0 {
		t.Errorf("Median = %v, want 7.0", s.Median)
	}
	if s.Best.ID != 1 {
		t.Errorf("Best = movie %d, want first occurrence 1", s.Best.ID)
	}
	if s.Worst.ID != 2 {
		t.Errorf("Worst = movie %d, want first occurrence 2", s.Worst.ID)
	}
	if !reflect.DeepEqual(ratingsOf(ms), []float64{8, 6, 8, 6}) {
		t.Error("ComputeStats mutated its input")
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	if _, err := ComputeStats(nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("ComputeStats(nil) error = %v, want ErrEmpty", err)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	ms := []model.Movie{{Title: "Inception"}, {Title: "Interstellar"}, {Title: "The Prestige"}}

	got := Search(ms, "incep")
	if len(got) != 1 || got[0].Title != "Inception" {
		t.Errorf("Search(incep) = %+v", got)
	}
	if got := Search(ms, "IN"); len(got) != 2 {
		t.Errorf("Search(IN) = %d results, want 2", len(got))
	}
	if got := Search(ms, "matrix"); len(got) != 0 {
		t.Errorf("Search(matrix) = %+v, want none", got)
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		token  string
		want   Order
		wantOK bool
	}{
		{"A", Ascending, true},
		{"a", Ascending, true},
		{"d", Descending, true},
		{" D ", Descending, true},
		{"x", Ascending, false},
		{"", Ascending, false},
	}
	for _, tt := range tests {
		got, ok := ParseOrder(tt.token)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseOrder(%q) = %v,%v; want %v,%v", tt.token, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSortByRating(t *testing.T) {
	ms := movies(3.0, 8.0, 1.0)

	if got := ratingsOf(SortByRating(ms, Descending)); !reflect.DeepEqual(got, []float64{8, 3, 1}) {
		t.Errorf("descending = %v", got)
	}
	order, _ := ParseOrder("sideways")
	if got := ratingsOf(SortByRating(ms, order)); !reflect.DeepEqual(got, []float64{1, 3, 8}) {
		t.Errorf("fallback ascending = %v", got)
	}
	if got := ratingsOf(ms); !reflect.DeepEqual(got, []float64{3, 8, 1}) {
		t.Errorf("input mutated: %v", got)
	}
}

func TestSortByRatingStable(t *testing.T) {
	ms := movies(5.0, 5.0, 5.0)
	for _, o := range []Order{Ascending, Descending} {
		got := SortByRating(ms, o)
		if got[0].ID != 1 || got[1].ID != 2 || got[2].ID != 3 {
			t.Errorf("order %s not stable: %+v", o, got)
		}
	}
}

func TestRandom(t *testing.T) {
	ms := movies(1, 2, 3)
	got, err := Random(ms, func(n int) int {
		if n != 3 {
			t.Errorf("picker called with n=%d, want 3", n)
		}
		return 2
	})
	if err != nil || got.ID != 3 {
		t.Errorf("Random() = %+v, %v; want movie 3", got, err)
	}

	if _, err := Random(nil, nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("Random(nil) error = %v, want ErrEmpty", err)
	}
	if _, err := Random(ms, nil); err != nil {
		t.Errorf("Random() with default picker error = %v", err)
	}
}
