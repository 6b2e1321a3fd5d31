// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cfbranks/rankview/internal/domain/types"
)

// Dependencies bundles everything the HTTP handlers need from the view-state
// store. Using an interface bundle keeps the handler layer loosely coupled
// to implementations in other packages.
type Dependencies interface {
	RankingsDependencies
	WeeksDependencies
	HealthDependencies
	TeamDependencies
}

// RankingsDependencies covers the rankings snapshot endpoint.
type RankingsDependencies interface {
	FetchRankings(ctx context.Context, year, week int, weights *types.Weights)
	SetConferenceFilter(conference string)
	SetSearchQuery(query string)
	SetView(view types.View)
	Teams() []types.Team
	FilteredTeams() []types.Team
	Conferences() []types.Conference
	Filter() types.FilterState
	GeneratedAt() string
	Err() string
	AvailableYears() []int
	AvailableWeeks() []int
}

// WeeksDependencies covers the weeks listing endpoint.
type WeeksDependencies interface {
	RefreshWeeks(ctx context.Context, year int)
	AvailableWeeks() []int
	Filter() types.FilterState
}

// HealthDependencies covers the health endpoint.
type HealthDependencies interface {
	Healthy(ctx context.Context) bool
}

// TeamDependencies covers the team breakdown endpoint.
type TeamDependencies interface {
	TeamBreakdown(ctx context.Context, team string) (types.TeamBreakdown, error)
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	rankingsHandler *RankingsHandler
	weeksHandler    *WeeksHandler
	healthHandler   *HealthHandler
	teamHandler     *TeamHandler
	metricsHandler  *MetricsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		rankingsHandler: NewRankingsHandler(deps),
		weeksHandler:    NewWeeksHandler(deps),
		healthHandler:   NewHealthHandler(deps),
		teamHandler:     NewTeamHandler(deps),
		metricsHandler:  NewMetricsHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", s.metricsHandler.HandleMetrics)
	mux.HandleFunc("/api/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/api/weeks", MetricsMiddleware(s.weeksHandler.HandleGetWeeks, "weeks"))
	mux.HandleFunc("/api/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/rankings/team/", MetricsMiddleware(s.teamHandler.HandleGetTeam, "team"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
