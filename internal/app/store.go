// Package app owns the live view state of the dashboard session: the current
// team and conference collections, the fetch lifecycle flags, and the filter
// criteria, plus the derived filtered team list.
//
// All mutation of the base collections funnels through FetchRankings; the
// setters touch exactly one filter field each. The derived view is pull-based:
// FilteredTeams recomputes from the current collections and filter on every
// read, so there is no hidden subscription graph to invalidate.
package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cfbranks/rankview/internal/domain/season"
	"github.com/cfbranks/rankview/internal/domain/types"
	"github.com/cfbranks/rankview/pkg/logger"
)

// Client is the upstream surface the store depends on.
type Client interface {
	FetchRankings(ctx context.Context, year, week int, weights *types.Weights) (types.RankingsResponse, error)
	FetchTeamBreakdown(ctx context.Context, team string, year, week int, weights *types.Weights) (types.TeamBreakdown, error)
	AvailableWeeks(ctx context.Context, year int) []int
	Healthy(ctx context.Context) bool
}

// Store holds the session's reactive view state. Single writer per
// operation; overlapping fetches resolve last-write-wins with no generation
// fencing.
type Store struct {
	mu sync.RWMutex

	client     Client
	logger     logger.Logger
	now        func() time.Time
	yearsShown int
	maxWeek    int

	teams       []types.Team
	conferences []types.Conference
	loading     bool
	errMsg      string
	filter      types.FilterState
	weights     *types.Weights
	generatedAt string
	weeks       []int
}

// New constructs a Store. The filter's year and week default from the season
// calendar at construction time.
func New(opts ...Option) *Store {
	s := &Store{
		now:        time.Now,
		yearsShown: 5,
		maxWeek:    season.PostseasonWeek,
	}
	for _, opt := range opts {
		opt(s)
	}

	year, week := season.Resolve(s.now())
	s.filter = types.FilterState{
		Year: year,
		Week: week,
		View: types.ViewFBS,
	}
	s.weeks = season.DefaultWeeks(s.maxWeek)
	return s
}

// FetchRankings loads a fresh snapshot and replaces the collections
// wholesale. On failure the collections empty out and the error message is
// kept for display. Loading clears last on both paths.
func (s *Store) FetchRankings(ctx context.Context, year, week int, weights *types.Weights) {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	resp, err := s.client.FetchRankings(ctx, year, week, weights)

	s.mu.Lock()
	defer func() {
		s.loading = false
		s.mu.Unlock()
	}()

	if err != nil {
		if s.logger != nil {
			s.logger.Warn(ctx, "rankings fetch failed",
				logger.Int("year", year), logger.Int("week", week), logger.Error(err))
		}
		s.teams = nil
		s.conferences = nil
		s.errMsg = err.Error()
		return
	}

	s.teams = resp.Teams
	s.conferences = resp.Conferences
	s.generatedAt = resp.GeneratedAt
	s.weights = weights
	// The server may substitute its own defaults; adopt what it echoed.
	s.filter.Year = resp.Year
	s.filter.Week = resp.Week
}

// RefreshWeeks updates the selectable week range for year. Failures inside
// the client already degrade to the default range, so this never errors.
func (s *Store) RefreshWeeks(ctx context.Context, year int) {
	weeks := s.client.AvailableWeeks(ctx, year)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.weeks = weeks
}

// TeamBreakdown fetches the detail payload for team under the currently
// selected query parameters.
func (s *Store) TeamBreakdown(ctx context.Context, team string) (types.TeamBreakdown, error) {
	s.mu.RLock()
	year, week, weights := s.filter.Year, s.filter.Week, s.weights
	s.mu.RUnlock()

	return s.client.FetchTeamBreakdown(ctx, team, year, week, weights)
}

// Healthy reports the upstream probe result.
func (s *Store) Healthy(ctx context.Context) bool {
	return s.client.Healthy(ctx)
}

// SetYear replaces the selected year.
func (s *Store) SetYear(year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Year = year
}

// SetWeek replaces the selected week.
func (s *Store) SetWeek(week int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Week = week
}

// SetConferenceFilter replaces the conference filter; empty clears it.
func (s *Store) SetConferenceFilter(conference string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.ConferenceFilter = conference
}

// SetSearchQuery replaces the free-text search query.
func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.SearchQuery = query
}

// SetView replaces the tier view discriminator.
func (s *Store) SetView(view types.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.View = view
}

// ClearFilters resets the conference filter and search query only; the
// selected year and week stay put.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.ConferenceFilter = ""
	s.filter.SearchQuery = ""
}

// FilteredTeams derives the visible team list from the current collection
// and filter: exact conference match first, then a case-insensitive
// substring match against team name or conference name. Ranking order is
// preserved.
func (s *Store) FilteredTeams() []types.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]types.Team, 0, len(s.teams))
	query := strings.ToLower(s.filter.SearchQuery)
	for _, t := range s.teams {
		if s.filter.ConferenceFilter != "" && t.Conference != s.filter.ConferenceFilter {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.TeamName), query) &&
			!strings.Contains(strings.ToLower(t.Conference), query) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// Teams returns the unfiltered team collection.
func (s *Store) Teams() []types.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teams
}

// Conferences returns the conference collection.
func (s *Store) Conferences() []types.Conference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conferences
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last fetch's error message, empty when the fetch
// succeeded.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Filter returns a copy of the current filter state.
func (s *Store) Filter() types.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// GeneratedAt returns the snapshot's generation timestamp.
func (s *Store) GeneratedAt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generatedAt
}

// AvailableWeeks returns the selectable week range.
func (s *Store) AvailableWeeks() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weeks
}

// AvailableYears returns the seasons the dashboard offers, newest first.
func (s *Store) AvailableYears() []int {
	return season.Years(s.now(), s.yearsShown)
}
