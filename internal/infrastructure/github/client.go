package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/oksasatya/go-devconnector/internal/domain/repository"
)

// Client lists public repositories through the GitHub REST API. With a
// token every request carries "Authorization: Bearer <token>", which
// lifts the anonymous rate limit.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(ctx context.Context, baseURL, token string) *Client {
	hc := &http.Client{}
	if token != "" {
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	hc.Timeout = 10 * time.Second
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// RecentRepos returns the raw JSON array of the user's five most recently
// created repositories exactly as GitHub sent it. Any non-200 answer is
// reported as repository.ErrNotFound.
func (c *Client) RecentRepos(ctx context.Context, username string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("github: building request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "node.js")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: listing repos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: user %q (status %d): %w", username, resp.StatusCode, repository.ErrNotFound)
	}

	var repos json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("github: decoding repos: %w", err)
	}
	return repos, nil
}
