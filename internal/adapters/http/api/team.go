package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/cfbranks/rankview/internal/breakdown"
)

// TeamHandler handles team breakdown requests.
type TeamHandler struct {
	deps      TeamDependencies
	presenter *breakdown.Presenter
}

// NewTeamHandler creates a new team breakdown handler.
func NewTeamHandler(deps TeamDependencies) *TeamHandler {
	return &TeamHandler{deps: deps, presenter: breakdown.New()}
}

// HandleGetTeam handles GET /rankings/team/{teamName} requests under the
// currently selected query parameters. Browsers asking for text/html get the
// rendered fragment; everyone else gets the JSON payload. A payload carrying
// the service's explicit error field is delivered as display data either way.
func (h *TeamHandler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_team"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/rankings/team/")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	payload, err := h.deps.TeamBreakdown(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusBadGateway, "upstream_error", Wrap(op, err))
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.presenter.Render(w, payload); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, payload)
}
