// Package canvas provides a read-only client for the Canvas LMS REST API.
//
// The client never surfaces an error: any transport failure, timeout, or
// non-2xx status collapses to "no data", pushing resilience decisions to the
// fetch pipeline.
package canvas

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/danielzdev/cougarplanner/pkg/constants"
	"github.com/danielzdev/cougarplanner/pkg/logging"
)

// DefaultBaseURL is the Canvas instance used when none is configured.
const DefaultBaseURL = "https://csusm.instructure.com"

// Client issues authenticated read requests against a Canvas instance.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the given Canvas base URL and bearer token.
// An empty baseURL selects DefaultBaseURL.
func New(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http: &http.Client{
			Timeout: constants.RequestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: constants.DialTimeout}).DialContext,
			},
		},
	}
}

// CoursesRaw fetches the active-enrollment course list. It returns the raw
// JSON payload, or ok=false on any failure.
func (c *Client) CoursesRaw(ctx context.Context) ([]byte, bool) {
	q := url.Values{}
	q.Set("enrollment_state", "active")
	q.Set("per_page", strconv.Itoa(constants.PageSize))
	return c.get(ctx, "/api/v1/courses", q)
}

// AssignmentsRaw fetches one course's assignment list, ordered by due date.
// It returns the raw JSON payload, or ok=false on any failure.
func (c *Client) AssignmentsRaw(ctx context.Context, courseID string) ([]byte, bool) {
	q := url.Values{}
	q.Set("order_by", "due_at")
	q.Set("per_page", strconv.Itoa(constants.PageSize))
	return c.get(ctx, "/api/v1/courses/"+url.PathEscape(courseID)+"/assignments", q)
}

// AnnouncementsRaw fetches recent announcements across the given courses in a
// single request. It returns the raw JSON payload, or ok=false on any failure.
func (c *Client) AnnouncementsRaw(ctx context.Context, courseIDs []string) ([]byte, bool) {
	q := url.Values{}
	for _, id := range courseIDs {
		q.Add("context_codes[]", "course_"+id)
	}
	q.Set("per_page", strconv.Itoa(constants.PageSize))
	return c.get(ctx, "/api/v1/announcements", q)
}

// ValidateToken issues a minimal page-size-1 request and reports whether the
// configured token is accepted.
func (c *Client) ValidateToken(ctx context.Context) bool {
	q := url.Values{}
	q.Set("per_page", "1")
	_, ok := c.get(ctx, "/api/v1/courses", q)
	return ok
}

// get performs an authenticated GET and returns the body for 2xx responses.
// All failure modes collapse to ok=false.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, bool) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logging.Warn().Err(err).Str("url", endpoint).Msg("Failed to build Canvas request")
		return nil, false
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Canvas request failed")
		return nil, false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		logging.Warn().
			Int("status", resp.StatusCode).
			Str("path", path).
			Msg("Canvas returned non-2xx status")
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Failed to read Canvas response body")
		return nil, false
	}
	return body, true
}
