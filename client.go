package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Default endpoint and identification.
const (
	defaultBaseURL = "https://adventofcode.com"
	siteDomain     = "adventofcode.com"
	userAgent      = "aochelper (github.com/blairfrandeen/aochelper)"
)

// apiClient fetches puzzle inputs from the Advent of Code site.
type apiClient struct {
	baseURL    string
	sessionKey string
	http       *http.Client
}

// newAPIClient creates a client for the given base URL and session key.
// No client timeout is set; fetches are interactive and at-most-once.
func newAPIClient(baseURL, sessionKey string) (*apiClient, error) {
	if sessionKey == "" {
		return nil, errors.New("session key is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	return &apiClient{
		baseURL:    u.String(),
		sessionKey: sessionKey,
		http:       &http.Client{},
	}, nil
}

// fetchError represents an HTTP error response from the site.
type fetchError struct {
	StatusCode int
	Body       []byte
}

func (e *fetchError) Error() string {
	return fmt.Sprintf("fetch %d: %s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

// fetchInput downloads the puzzle input for the given year and day.
func (c *apiClient) fetchInput(ctx context.Context, year, day int) ([]byte, error) {
	if day < 1 || day > 25 {
		return nil, fmt.Errorf("day must be 1-25, got %d", day)
	}

	reqURL := fmt.Sprintf("%s/%d/day/%d/input", c.baseURL, year, day)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.AddCookie(&http.Cookie{Name: "session", Value: c.sessionKey})

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	const maxResponseSize = 10 * 1024 * 1024 // 10MB limit
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &fetchError{StatusCode: resp.StatusCode, Body: b}
	}
	return b, nil
}

// isAuthError reports whether err is an authentication rejection. The site
// answers 400 "Please log in" to a missing or stale session cookie.
func isAuthError(err error) bool {
	var fe *fetchError
	return errors.As(err, &fe) && (fe.StatusCode == 400 || fe.StatusCode == 401 || fe.StatusCode == 403)
}

// isNotFound reports whether err means the day's input is not published yet.
func isNotFound(err error) bool {
	var fe *fetchError
	return errors.As(err, &fe) && fe.StatusCode == 404
}
