package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cfbranks/rankview/internal/domain/types"
)

// RankingsHandler handles rankings snapshot requests.
type RankingsHandler struct {
	deps RankingsDependencies
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps RankingsDependencies) *RankingsHandler {
	return &RankingsHandler{deps: deps}
}

// rankingsSnapshot is the JSON shape the dashboard consumes: the full
// collections plus the derived filtered view and the filter that produced it.
type rankingsSnapshot struct {
	Teams          []types.Team       `json:"teams"`
	FilteredTeams  []types.Team       `json:"filtered_teams"`
	Conferences    []types.Conference `json:"conferences"`
	Filter         types.FilterState  `json:"filter"`
	GeneratedAt    string             `json:"generated_at"`
	AvailableYears []int              `json:"available_years"`
	AvailableWeeks []int              `json:"available_weeks"`
}

// HandleGetRankings handles GET /api/rankings requests. Year and week
// default from the current filter state; conference, search and view
// parameters adjust the filters before the snapshot is taken.
func (h *RankingsHandler) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rankings"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	current := h.deps.Filter()

	year, err := intParam(q.Get("year"), current.Year)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	week, err := intParam(q.Get("week"), current.Week)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	h.deps.SetConferenceFilter(q.Get("conference"))
	h.deps.SetSearchQuery(q.Get("search"))
	if v := q.Get("view"); v != "" {
		h.deps.SetView(types.View(v))
	}

	h.deps.FetchRankings(r.Context(), year, week, weightsParam(q))

	if msg := h.deps.Err(); msg != "" {
		writeError(w, http.StatusBadGateway, "upstream_error", Wrap(op, errors.New(msg)))
		return
	}

	writeJSON(w, http.StatusOK, rankingsSnapshot{
		Teams:          h.deps.Teams(),
		FilteredTeams:  h.deps.FilteredTeams(),
		Conferences:    h.deps.Conferences(),
		Filter:         h.deps.Filter(),
		GeneratedAt:    h.deps.GeneratedAt(),
		AvailableYears: h.deps.AvailableYears(),
		AvailableWeeks: h.deps.AvailableWeeks(),
	})
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// weightsParam extracts the four formula weights; all four must be present
// for a weighted query, otherwise the service's defaults apply.
func weightsParam(q map[string][]string) *types.Weights {
	get := func(key string) (float64, bool) {
		vals, ok := q[key]
		if !ok || len(vals) == 0 {
			return 0, false
		}
		f, err := strconv.ParseFloat(vals[0], 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}

	tq, okTQ := get("team_quality_weight")
	rec, okRec := get("record_score_weight")
	cq, okCQ := get("conference_quality_weight")
	prior, okPrior := get("prior_strength")
	if !okTQ || !okRec || !okCQ || !okPrior {
		return nil
	}
	return &types.Weights{
		TeamQuality:       tq,
		RecordScore:       rec,
		ConferenceQuality: cq,
		PriorStrength:     prior,
	}
}
