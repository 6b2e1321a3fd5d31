// Package rankings is the query client for the remote ranking service.
//
// The client owns the error policy at the transport boundary: rankings and
// breakdown fetches reduce every failure to a single user-facing message,
// while the weeks listing and the health probe are advisory lookups that
// substitute safe defaults instead of surfacing errors at all.
package rankings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/cfbranks/rankview/internal/adapters/cache"
	"github.com/cfbranks/rankview/internal/domain/normalize"
	"github.com/cfbranks/rankview/internal/domain/season"
	"github.com/cfbranks/rankview/internal/domain/types"
	"github.com/cfbranks/rankview/pkg/logger"
	"github.com/cfbranks/rankview/pkg/metrics"
)

const defaultHealthTimeout = 5 * time.Second

// Client issues queries against the ranking service. One attempt per call;
// retries are the caller's concern.
type Client struct {
	baseURL       string
	http          *http.Client
	healthTimeout time.Duration
	maxWeek       int
	cache         *cache.Store
	now           func() time.Time
	logger        logger.Logger
}

// New constructs a Client with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:       "http://localhost:5000",
		http:          &http.Client{},
		healthTimeout: defaultHealthTimeout,
		maxWeek:       season.PostseasonWeek,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// queryParams builds the shared year/week/weights query string.
func queryParams(year, week int, weights *types.Weights) url.Values {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	q.Set("week", strconv.Itoa(week))
	if weights != nil {
		q.Set("team_quality_weight", formatWeight(weights.TeamQuality))
		q.Set("record_score_weight", formatWeight(weights.RecordScore))
		q.Set("conference_quality_weight", formatWeight(weights.ConferenceQuality))
		q.Set("prior_strength", formatWeight(weights.PriorStrength))
	}
	return q
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// FetchRankings returns the canonical rankings snapshot for (year, week),
// passing custom weights through to the service when supplied.
func (c *Client) FetchRankings(ctx context.Context, year, week int, weights *types.Weights) (types.RankingsResponse, error) {
	const op = "rankings"

	key := cache.Key{Year: year, Week: week}
	if c.cache != nil && weights == nil {
		if resp, ok := c.cache.Get(key); ok {
			metrics.RecordCacheHit()
			return resp, nil
		}
		metrics.RecordCacheMiss()
	}

	raw, err := c.getJSON(ctx, op, "/api/rankings", queryParams(year, week, weights))
	if err != nil {
		return types.RankingsResponse{}, err
	}

	resp := normalize.Response(raw, year, week, c.now())
	if c.cache != nil && weights == nil {
		c.cache.Put(key, resp)
	}
	return resp, nil
}

// FetchTeamBreakdown returns the score decomposition and ranked-neighbor
// comparisons for one team under the current query parameters. A payload
// carrying an explicit error field is returned as data, not as a Go error.
func (c *Client) FetchTeamBreakdown(ctx context.Context, team string, year, week int, weights *types.Weights) (types.TeamBreakdown, error) {
	const op = "breakdown"

	u := c.baseURL + "/rankings/team/" + url.PathEscape(team) + "?" + queryParams(year, week, weights).Encode()
	start := time.Now()
	body, status, err := c.do(ctx, u)
	if err != nil {
		metrics.RecordUpstreamError(op)
		return types.TeamBreakdown{}, err
	}
	metrics.RecordUpstreamFetch(op, float64(time.Since(start).Milliseconds()))

	var breakdown types.TeamBreakdown
	if err := json.Unmarshal(body, &breakdown); err != nil {
		if status < 200 || status > 299 {
			metrics.RecordUpstreamError(op)
			return types.TeamBreakdown{}, &StatusError{Status: status}
		}
		// Delivered but malformed; absorb like any other malformed payload.
		return types.TeamBreakdown{}, nil
	}
	return breakdown, nil
}

// AvailableWeeks returns the weeks the service has data for. This is an
// advisory lookup: every failure degrades to the default 1..max range.
func (c *Client) AvailableWeeks(ctx context.Context, year int) []int {
	const op = "weeks"

	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	raw, err := c.getJSON(ctx, op, "/api/weeks", q)
	if err != nil {
		metrics.RecordWeeksFallback()
		return season.DefaultWeeks(c.maxWeek)
	}

	list, ok := raw["weeks"].([]any)
	if !ok || len(list) == 0 {
		metrics.RecordWeeksFallback()
		return season.DefaultWeeks(c.maxWeek)
	}
	weeks := make([]int, 0, len(list))
	for _, v := range list {
		if n, ok := v.(float64); ok {
			weeks = append(weeks, int(n))
		}
	}
	if len(weeks) == 0 {
		metrics.RecordWeeksFallback()
		return season.DefaultWeeks(c.maxWeek)
	}
	return weeks
}

// Healthy probes the service's liveness endpoint under a hard timeout. It
// answers false on any failure and never blocks past the timeout.
func (c *Client) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		metrics.SetUpstreamHealthy(false)
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.SetUpstreamHealthy(false)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	healthy := resp.StatusCode >= 200 && resp.StatusCode <= 299
	metrics.SetUpstreamHealthy(healthy)
	return healthy
}

// getJSON performs one GET and decodes a JSON object, translating non-2xx
// responses into StatusError.
func (c *Client) getJSON(ctx context.Context, op, path string, q url.Values) (map[string]any, error) {
	u := c.baseURL + path + "?" + q.Encode()
	start := time.Now()
	body, status, err := c.do(ctx, u)
	if err != nil {
		metrics.RecordUpstreamError(op)
		return nil, err
	}

	if status < 200 || status > 299 {
		metrics.RecordUpstreamError(op)
		return nil, &StatusError{Status: status, Message: errorMessage(body)}
	}
	metrics.RecordUpstreamFetch(op, float64(time.Since(start).Milliseconds()))

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		// Malformed-but-delivered payloads normalize to defaults downstream.
		return map[string]any{}, nil
	}
	return raw, nil
}

// do issues the request with a correlation id and returns the raw body.
func (c *Client) do(ctx context.Context, u string) (body []byte, status int, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	if c.logger != nil {
		c.logger.Debug(ctx, "upstream request", logger.String("url", u), logger.String("request_id", reqID))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn(ctx, "upstream request failed", logger.String("request_id", reqID), logger.Error(err))
		}
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// errorMessage digs a human-readable message out of an error payload.
// Falls back to empty, which StatusError renders as "HTTP <status>".
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
