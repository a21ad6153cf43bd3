package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/s9096309/movie-shelf/internal/site"
)

// PageTrigger asks the web surface to generate a user's static page and
// returns the URL the page is served at.
type PageTrigger interface {
	Trigger(ctx context.Context, userID int64) (string, error)
}

// PageRejectedError carries the web surface's own explanation, such as
// "No movies to display.".
type PageRejectedError struct {
	Status  int
	Message string
}

func (e *PageRejectedError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// HTTPPageTrigger calls GET <base>/generate_website/<id>.
type HTTPPageTrigger struct {
	baseURL string
	client  *http.Client
}

// NewHTTPPageTrigger does not follow redirects: the redirect home is the
// success signal.
func NewHTTPPageTrigger(baseURL string, timeout time.Duration) *HTTPPageTrigger {
	return &HTTPPageTrigger{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (t *HTTPPageTrigger) Trigger(ctx context.Context, userID int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/generate_website/%d", t.baseURL, userID), nil)
	if err != nil {
		return "", err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		return t.baseURL + "/site/" + site.PageName(userID), nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(body))
	if msg == "" || resp.StatusCode == http.StatusNotFound {
		msg = http.StatusText(resp.StatusCode)
	}
	return "", &PageRejectedError{Status: resp.StatusCode, Message: msg}
}
