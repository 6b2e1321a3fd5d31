// Package types contains common types used across the application
package types

// TeamRecords aggregates a team's win/loss counts for a season week.
// All counts are non-negative.
type TeamRecords struct {
	TotalWins       int `json:"total_wins"`
	TotalLosses     int `json:"total_losses"`
	ConfWins        int `json:"conf_wins"`
	ConfLosses      int `json:"conf_losses"`
	PowerWins       int `json:"power_wins"`
	PowerLosses     int `json:"power_losses"`
	GroupFiveWins   int `json:"group_five_wins"`
	GroupFiveLosses int `json:"group_five_losses"`
}

// Team is one ranked program for a given (year, week). Sub-scores and the
// final composite are owned by the remote ranking service and never
// recomputed here. SoS and SoV are nil when the service did not compute them,
// which is distinct from a computed zero.
type Team struct {
	TeamName               string      `json:"team_name"`
	Conference             string      `json:"conference"`
	ConferenceType         string      `json:"conference_type,omitempty"`
	FinalRankingScore      float64     `json:"final_ranking_score"`
	TeamQualityScore       float64     `json:"team_quality_score"`
	RecordScore            float64     `json:"record_score"`
	ConferenceQualityScore float64     `json:"conference_quality_score"`
	SoS                    *float64    `json:"sos"`
	SoV                    *float64    `json:"sov"`
	Records                TeamRecords `json:"records"`
}

// Conference aggregates the member teams of a conference for a (year, week).
// FCS counts are nil when the service did not report them.
type Conference struct {
	Conference  string  `json:"conference"`
	AvgRanking  float64 `json:"avg_ranking"`
	TeamCount   int     `json:"team_count"`
	RankedTeams int     `json:"ranked_teams"`
	PowerWinPct float64 `json:"power_win_pct"`
	G5WinPct    float64 `json:"g5_win_pct"`
	FCSWins     *int    `json:"fcs_wins,omitempty"`
	FCSLosses   *int    `json:"fcs_losses,omitempty"`
}

// RankingsResponse is one fetch result. It is treated as immutable once
// received and replaced wholesale on the next fetch.
type RankingsResponse struct {
	Teams       []Team       `json:"teams"`
	Conferences []Conference `json:"conferences"`
	Year        int          `json:"year"`
	Week        int          `json:"week"`
	GeneratedAt string       `json:"generated_at"`
}

// Weights carries the four optional ranking-formula weights passed through to
// the remote service.
type Weights struct {
	TeamQuality       float64 `json:"team_quality_weight"`
	RecordScore       float64 `json:"record_score_weight"`
	ConferenceQuality float64 `json:"conference_quality_weight"`
	PriorStrength     float64 `json:"prior_strength"`
}

// View selects which competitive tier the dashboard shows.
type View string

// View values.
const (
	ViewFBS View = "fbs"
	ViewP4  View = "p4"
	ViewG5  View = "g5"
	ViewFCS View = "fcs"
)

// FilterState is the session's view state. ConferenceFilter empty means no
// conference filter.
type FilterState struct {
	Year             int    `json:"year"`
	Week             int    `json:"week"`
	ConferenceFilter string `json:"conference_filter"`
	SearchQuery      string `json:"search_query"`
	View             View   `json:"view"`
}

// BreakdownTeam is the subject of a team-breakdown payload.
type BreakdownTeam struct {
	Rank              int     `json:"rank"`
	Name              string  `json:"name"`
	Conference        string  `json:"conference"`
	Record            string  `json:"record"`
	ConfRecord        string  `json:"conf_record"`
	FinalScore        float64 `json:"final_score"`
	TeamQuality       float64 `json:"team_quality"`
	RecordScore       float64 `json:"record_score"`
	ConferenceQuality float64 `json:"conference_quality"`
	SoS               float64 `json:"sos"`
	SoV               float64 `json:"sov"`
	PowerRecord       string  `json:"power_record"`
	G5Record          string  `json:"g5_record"`
}

// FormulaBreakdown shows each sub-score's weighted contribution to the final
// composite.
type FormulaBreakdown struct {
	TQContribution  float64 `json:"tq_contribution"`
	RecContribution float64 `json:"rec_contribution"`
	CQContribution  float64 `json:"cq_contribution"`
	Total           float64 `json:"total"`
}

// ComparisonFactor explains one per-factor advantage in a team comparison.
// Advantage is "target" when the subject team holds it, "other" otherwise.
type ComparisonFactor struct {
	Factor       string  `json:"factor"`
	Advantage    string  `json:"advantage"`
	Diff         float64 `json:"diff"`
	Contribution float64 `json:"contribution"`
	Explanation  string  `json:"explanation"`
}

// Comparison annotates one ranked neighbor of the subject team.
type Comparison struct {
	OtherTeam       string             `json:"other_team"`
	OtherRank       int                `json:"other_rank"`
	OtherConference string             `json:"other_conference"`
	OtherRecord     string             `json:"other_record"`
	ScoreDiff       float64            `json:"score_diff"`
	Factors         []ComparisonFactor `json:"factors"`
	Direction       string             `json:"direction,omitempty"`
}

// TeamBreakdown is the detail payload for one team. Err carries the service's
// explicit error field when present; it is display data, not a Go error.
type TeamBreakdown struct {
	Team              BreakdownTeam    `json:"team"`
	Formula           FormulaBreakdown `json:"formula_breakdown"`
	ComparisonsAhead  []Comparison     `json:"comparisons_ahead"`
	ComparisonsBehind []Comparison     `json:"comparisons_behind"`
	Err               string           `json:"error,omitempty"`
}
