// Package github is a minimal client for the handful of GitHub REST
// endpoints the dispatcher needs: app installation lookup, installation
// token exchange, and Actions workflow listing/dispatch. It is not a general
// API surface; callers pass credentials per call and nothing is cached.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	acceptMediaType = "application/vnd.github+json"
	userAgent       = "jai-org-control-plane/2.0"

	requestTimeout = 20 * time.Second
)

// Client issues the API calls of a single run. It holds no credentials.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

// do issues one request and returns the status code and full response body.
// auth is the complete Authorization header value ("Bearer <jwt>" for the app
// assertion, "token <tok>" for an installation token), or empty for
// unauthenticated calls. Status handling is left to the caller.
func (c *Client) do(ctx context.Context, method, path, auth string, body any) (int, []byte, error) {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request body: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", acceptMediaType)
	req.Header.Set("User-Agent", userAgent)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response from %s: %w", path, err)
	}

	c.logger.Debug("api call", "method", method, "path", path, "status", resp.StatusCode)
	return resp.StatusCode, data, nil
}

func bearerAuth(jwt string) string { return "Bearer " + jwt }

func tokenAuth(tok string) string { return "token " + tok }
