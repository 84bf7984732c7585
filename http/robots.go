package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pagelens/pagelens"
)

// DefaultRobotsTimeout bounds the robots.txt lookup. The file is
// advisory metadata, so the budget is deliberately short.
const DefaultRobotsTimeout = 3 * time.Second

// Ensure RobotsClient implements pagelens.RobotsFetcher at compile time.
var _ pagelens.RobotsFetcher = (*RobotsClient)(nil)

// RobotsClient fetches /robots.txt for an origin. Callers treat every
// error as "no robots.txt available".
type RobotsClient struct {
	client    *http.Client
	userAgent string
}

// NewRobotsClient creates a RobotsClient. If client is nil a client with
// DefaultRobotsTimeout is used.
func NewRobotsClient(client *http.Client) *RobotsClient {
	if client == nil {
		client = &http.Client{Timeout: DefaultRobotsTimeout}
	}
	return &RobotsClient{client: client, userAgent: DefaultUserAgent}
}

// FetchRobots retrieves the raw robots.txt content for the given origin.
func (c *RobotsClient) FetchRobots(ctx context.Context, origin string) (string, error) {
	robotsURL := strings.TrimSuffix(origin, "/") + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return "", pagelens.Errorf(pagelens.EINVALID, "invalid robots URL %q: %v", robotsURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "fetching %s: %v", robotsURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", pagelens.Errorf(pagelens.ENOTFOUND, "no robots.txt at %s", robotsURL)
	}
	if resp.StatusCode != http.StatusOK {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, robotsURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "reading %s: %v", robotsURL, err)
	}

	return string(body), nil
}
