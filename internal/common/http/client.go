// internal/common/http/client.go
package http

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client wraps an outbound HTTP client with a request timeout and a rate
// limiter shared across all calls to one provider.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

func NewClient(timeout time.Duration, rps int, userAgent string) *Client {
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter:   rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		userAgent: userAgent,
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.httpClient.Do(req)
}
