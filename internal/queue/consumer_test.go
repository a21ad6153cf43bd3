package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name string
		ev   MovieEvent
		want string
	}{
		{
			name: "movie added",
			ev: MovieEvent{Kind: KindMovieAdded, UserID: 1, MovieID: 7, Title: "Inception", Year: 2010,
				Rating: 8.8, IMDbID: "tt1375666", Source: "web", At: "2026-01-02T03:04:05Z"},
			want: `[2026-01-02T03:04:05Z] movie.added | user_id=1 | movie_id=7 | title="Inception" | year=2010 | rating=8.8 | imdb_id=tt1375666 | source=web` + "\n",
		},
		{
			name: "movie deleted",
			ev:   MovieEvent{Kind: KindMovieDeleted, MovieID: 7, Source: "cli", At: "t"},
			want: "[t] movie.deleted | movie_id=7 | source=cli\n",
		},
		{
			name: "user created",
			ev:   MovieEvent{Kind: KindUserCreated, UserID: 3, Title: "alice", Source: "web", At: "t"},
			want: `[t] user.created | user_id=3 | title="alice" | source=web` + "\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLine(tt.ev); got != tt.want {
				t.Errorf("FormatLine() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestHandleMessageAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	for _, ev := range []MovieEvent{
		{Kind: KindMovieAdded, MovieID: 1, Title: "A", Source: "web", At: "t1"},
		{Kind: KindMovieDeleted, MovieID: 1, Source: "web", At: "t2"},
	} {
		body, _ := json.Marshal(ev)
		if err := HandleMessage(dir, body); err != nil {
			t.Fatalf("HandleMessage() error = %v", err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, ActivityLogName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "[t1] movie.added") || !strings.HasPrefix(lines[1], "[t2] movie.deleted") {
		t.Errorf("log lines = %q", lines)
	}
}

func TestHandleMessageRejectsBadPayload(t *testing.T) {
	dir := t.TempDir()
	if err := HandleMessage(dir, []byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if err := HandleMessage(dir, []byte(`{"source":"web"}`)); err == nil {
		t.Error("expected error for event without kind")
	}
	if _, err := os.Stat(filepath.Join(dir, ActivityLogName)); !os.IsNotExist(err) {
		t.Error("log file written for rejected messages")
	}
}
