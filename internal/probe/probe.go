// Package probe smoke-checks a running gateway: health, week listing, and a
// rankings snapshot for one (year, week).
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cfbranks/rankview/pkg/logger"
)

// Config carries the probe parameters.
type Config struct {
	BaseURL string
	Year    int
	Week    int
	Timeout time.Duration
}

// Result summarizes one probe run.
type Result struct {
	Upstream bool
	Weeks    int
	Teams    int
}

// Run executes the three checks in order and fails fast on the first problem.
func (c *Config) Run(ctx context.Context) (Result, error) {
	log := logger.Get().Named("probe")
	client := &http.Client{Timeout: c.Timeout}

	var res Result

	health, err := c.checkHealth(ctx, client)
	if err != nil {
		return res, err
	}
	res.Upstream = health
	log.Info(ctx, "health check passed", logger.Bool("upstream", health))

	weeks, err := c.checkWeeks(ctx, client)
	if err != nil {
		return res, err
	}
	res.Weeks = len(weeks)
	log.Info(ctx, "weeks check passed", logger.Int("weeks", len(weeks)))

	teams, err := c.checkRankings(ctx, client)
	if err != nil {
		return res, err
	}
	res.Teams = teams
	log.Info(ctx, "rankings check passed", logger.Int("teams", teams))

	if !health {
		return res, fmt.Errorf("gateway is up but the ranking service is unreachable")
	}
	return res, nil
}

func (c *Config) getJSON(ctx context.Context, client *http.Client, path string, query url.Values, out any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: HTTP %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Config) checkHealth(ctx context.Context, client *http.Client) (bool, error) {
	var body struct {
		Status   string `json:"status"`
		Upstream bool   `json:"upstream"`
	}
	if err := c.getJSON(ctx, client, "/api/health", nil, &body); err != nil {
		return false, err
	}
	if body.Status != "ok" {
		return false, fmt.Errorf("unexpected health status %q", body.Status)
	}
	return body.Upstream, nil
}

func (c *Config) checkWeeks(ctx context.Context, client *http.Client) ([]int, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(c.Year))
	var body struct {
		Weeks []int `json:"weeks"`
	}
	if err := c.getJSON(ctx, client, "/api/weeks", q, &body); err != nil {
		return nil, err
	}
	if len(body.Weeks) == 0 {
		return nil, fmt.Errorf("week listing for %d is empty", c.Year)
	}
	return body.Weeks, nil
}

func (c *Config) checkRankings(ctx context.Context, client *http.Client) (int, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(c.Year))
	q.Set("week", strconv.Itoa(c.Week))
	var body struct {
		Teams []json.RawMessage `json:"teams"`
	}
	if err := c.getJSON(ctx, client, "/api/rankings", q, &body); err != nil {
		return 0, err
	}
	if len(body.Teams) == 0 {
		return 0, fmt.Errorf("rankings for %d week %d came back empty", c.Year, c.Week)
	}
	return len(body.Teams), nil
}
