// Package normalize reconciles the ranking service's historical payload
// shapes into the canonical types.
//
// The backend has shipped several field-naming schemes over time
// (team_rankings vs teams, team_name vs team, record_vs_p4 as a fraction or a
// "wins-losses" string). Each canonical field has an ordered candidate-key
// list evaluated first-match-wins, so the tolerance rules stay in one
// auditable table instead of scattered conditionals. Normalization never
// fails: missing or malformed values become zero, and optional metrics stay
// absent rather than zero.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/cfbranks/rankview/internal/domain/types"
)

// Candidate keys per canonical field, highest priority first.
var (
	teamListKeys  = []string{"team_rankings", "teams"}
	confListKeys  = []string{"conference_rankings", "conferences"}
	teamNameKeys  = []string{"team_name", "team"}
	finalKeys     = []string{"final_ranking_score", "score"}
	confNameKeys  = []string{"conference_name", "conference"}
	avgKeys       = []string{"average_team_quality", "avg_ranking"}
	teamCountKeys = []string{"number_of_teams", "team_count"}
	powerPctKeys  = []string{"record_vs_p4", "power_win_pct"}
	g5PctKeys     = []string{"record_vs_g5", "g5_win_pct"}
)

// first returns the value of the first candidate key present in m.
func first(m map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func str(m map[string]any, keys []string) string {
	v, ok := first(m, keys)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// number coerces a decoded JSON value to float64, returning 0 for anything
// that is not numeric.
func number(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func num(m map[string]any, keys []string) float64 {
	v, ok := first(m, keys)
	if !ok {
		return 0
	}
	return number(v)
}

// optNum keeps "not computed" distinct from "computed as zero": only a
// numeric value yields a pointer.
func optNum(m map[string]any, key string) *float64 {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	default:
		return nil
	}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// ParseWinPct accepts either a ready-made fraction or a "wins-losses" string
// and returns the win fraction. Zero denominators and unparseable input both
// yield 0.
func ParseWinPct(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		wins, losses, ok := splitRecord(val)
		if !ok || wins+losses == 0 {
			return 0
		}
		return float64(wins) / float64(wins+losses)
	default:
		return 0
	}
}

// splitRecord parses a "W-L" string into its integer halves.
func splitRecord(s string) (wins, losses int, ok bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	wins, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	losses, errL := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errL != nil {
		return 0, 0, false
	}
	return wins, losses, true
}

// Team maps one raw team object into the canonical shape.
func Team(raw map[string]any) types.Team {
	if raw == nil {
		return types.Team{}
	}
	records := asMap(raw["records"])
	return types.Team{
		TeamName:               str(raw, teamNameKeys),
		Conference:             stringOr(raw["conference"]),
		ConferenceType:         stringOr(raw["conference_type"]),
		FinalRankingScore:      num(raw, finalKeys),
		TeamQualityScore:       number(raw["team_quality_score"]),
		RecordScore:            number(raw["record_score"]),
		ConferenceQualityScore: number(raw["conference_quality_score"]),
		SoS:                    optNum(raw, "sos"),
		SoV:                    optNum(raw, "sov"),
		Records: types.TeamRecords{
			TotalWins:       count(records, "total_wins"),
			TotalLosses:     count(records, "total_losses"),
			ConfWins:        count(records, "conf_wins"),
			ConfLosses:      count(records, "conf_losses"),
			PowerWins:       count(records, "power_wins"),
			PowerLosses:     count(records, "power_losses"),
			GroupFiveWins:   count(records, "group_five_wins"),
			GroupFiveLosses: count(records, "group_five_losses"),
		},
	}
}

func stringOr(v any) string {
	s, _ := v.(string)
	return s
}

func count(m map[string]any, key string) int {
	if m == nil {
		return 0
	}
	n := int(number(m[key]))
	if n < 0 {
		return 0
	}
	return n
}

// Conference maps one raw conference object into the canonical shape.
func Conference(raw map[string]any) types.Conference {
	if raw == nil {
		return types.Conference{}
	}
	c := types.Conference{
		Conference:  str(raw, confNameKeys),
		AvgRanking:  num(raw, avgKeys),
		TeamCount:   int(num(raw, teamCountKeys)),
		RankedTeams: int(number(raw["ranked_teams"])),
	}
	if v, ok := first(raw, powerPctKeys); ok {
		c.PowerWinPct = ParseWinPct(v)
	}
	if v, ok := first(raw, g5PctKeys); ok {
		c.G5WinPct = ParseWinPct(v)
	}
	c.FCSWins, c.FCSLosses = fcsCounts(raw)
	return c
}

// fcsCounts resolves FCS results from dedicated numeric fields or from a
// legacy "W-L" record string. Absent stays absent.
func fcsCounts(raw map[string]any) (*int, *int) {
	var wins, losses *int
	if v := optNum(raw, "fcs_wins"); v != nil {
		w := int(*v)
		wins = &w
	}
	if v := optNum(raw, "fcs_losses"); v != nil {
		l := int(*v)
		losses = &l
	}
	if wins != nil || losses != nil {
		return wins, losses
	}
	if s, ok := raw["record_vs_fcs"].(string); ok {
		if w, l, ok := splitRecord(s); ok {
			return &w, &l
		}
	}
	return nil, nil
}

// Response builds the canonical RankingsResponse from a raw payload. The
// server's echoed year/week win over the request's when present, and
// generated_at defaults to now when the server omits it.
func Response(raw map[string]any, reqYear, reqWeek int, now time.Time) types.RankingsResponse {
	resp := types.RankingsResponse{
		Teams:       []types.Team{},
		Conferences: []types.Conference{},
		Year:        reqYear,
		Week:        reqWeek,
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}
	if raw == nil {
		return resp
	}

	if v, ok := first(raw, teamListKeys); ok {
		if list, ok := v.([]any); ok {
			for _, item := range list {
				resp.Teams = append(resp.Teams, Team(asMap(item)))
			}
		}
	}
	if v, ok := first(raw, confListKeys); ok {
		if list, ok := v.([]any); ok {
			for _, item := range list {
				resp.Conferences = append(resp.Conferences, Conference(asMap(item)))
			}
		}
	}

	if y := number(raw["year"]); y != 0 {
		resp.Year = int(y)
	}
	if w := number(raw["week"]); w != 0 {
		resp.Week = int(w)
	}
	if s, ok := raw["generated_at"].(string); ok && s != "" {
		resp.GeneratedAt = s
	}
	return resp
}
