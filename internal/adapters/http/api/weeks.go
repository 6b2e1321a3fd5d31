package api

import (
	"net/http"
	"strconv"
)

// WeeksHandler handles week listing requests.
type WeeksHandler struct {
	deps WeeksDependencies
}

// NewWeeksHandler creates a new weeks handler.
func NewWeeksHandler(deps WeeksDependencies) *WeeksHandler {
	return &WeeksHandler{deps: deps}
}

type weeksResponse struct {
	Weeks []int `json:"weeks"`
}

// HandleGetWeeks handles GET /api/weeks?year=N requests. The lookup is
// advisory and always answers 200; upstream failures already degraded to the
// default week range inside the client.
func (h *WeeksHandler) HandleGetWeeks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	year := h.deps.Filter().Year
	if raw := r.URL.Query().Get("year"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			year = parsed
		}
	}

	h.deps.RefreshWeeks(r.Context(), year)
	writeJSON(w, http.StatusOK, weeksResponse{Weeks: h.deps.AvailableWeeks()})
}
