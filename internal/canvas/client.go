package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	apperrors "github.com/bianoble/canvas-sync/internal/errors"
)

// PageSize is the per_page value sent on list endpoints. A single page is
// assumed to hold every active course and every assignment of a course.
const PageSize = 100

// maxErrorBody caps how much of a non-2xx response is read for its message.
const maxErrorBody = 4096

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues authenticated GET requests against a Canvas instance.
// It never retries; a failed call is returned to the caller as a network
// error and the caller decides what to skip.
type Client struct {
	baseURL string
	token   string
	http    HTTPClient
	timeout time.Duration
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds each request (0 = no extra timeout beyond context).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit paces requests to at most rps per second with a burst of
// one. Zero or negative leaves requests unpaced.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a client for the Canvas instance at baseURL.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListActiveCourses returns the courses the user is actively enrolled in.
func (c *Client) ListActiveCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	path := fmt.Sprintf("/api/v1/courses?enrollment_state=active&per_page=%d", PageSize)
	if err := c.get(ctx, "listing courses", path, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// ListAssignments returns the assignments of a course.
func (c *Client) ListAssignments(ctx context.Context, courseID int64) ([]Assignment, error) {
	var assignments []Assignment
	path := fmt.Sprintf("/api/v1/courses/%d/assignments?per_page=%d", courseID, PageSize)
	if err := c.get(ctx, fmt.Sprintf("listing assignments for course %d", courseID), path, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListEnrollments returns the caller's own enrollments in a course,
// including total scores.
func (c *Client) ListEnrollments(ctx context.Context, courseID int64) ([]Enrollment, error) {
	var enrollments []Enrollment
	path := fmt.Sprintf("/api/v1/courses/%d/enrollments?user_id=self&include[]=total_scores", courseID)
	if err := c.get(ctx, fmt.Sprintf("listing enrollments for course %d", courseID), path, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (c *Client) get(ctx context.Context, op, path string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return apperrors.Network(op, err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.Network(op, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Network(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.Network(op, statusError(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Network(op, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// apiErrorBody is the error envelope Canvas returns on failures.
type apiErrorBody struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Message string `json:"message"`
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var parsed apiErrorBody
	if json.Unmarshal(body, &parsed) == nil {
		var msgs []string
		for _, e := range parsed.Errors {
			if e.Message != "" {
				msgs = append(msgs, e.Message)
			}
		}
		if parsed.Message != "" {
			msgs = append(msgs, parsed.Message)
		}
		if len(msgs) > 0 {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.Join(msgs, "; "))
		}
	}
	return fmt.Errorf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
