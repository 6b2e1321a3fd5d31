// Package breakdown renders a team's score decomposition and ranked-neighbor
// comparisons as an HTML fragment for the dashboard modal.
package breakdown

import (
	"fmt"
	"html/template"
	"io"

	"github.com/cfbranks/rankview/internal/domain/types"
)

// maxFactorsShown caps the per-comparison factor list.
const maxFactorsShown = 2

// Presenter renders TeamBreakdown payloads.
type Presenter struct {
	tmpl *template.Template
}

// New constructs a Presenter with its templates parsed.
func New() *Presenter {
	funcs := template.FuncMap{
		"f0": func(v float64) string { return fmt.Sprintf("%.0f", v) },
		"f1": func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"f2": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"topFactors": func(factors []types.ComparisonFactor) []types.ComparisonFactor {
			if len(factors) > maxFactorsShown {
				return factors[:maxFactorsShown]
			}
			return factors
		},
		"factorIcon":  factorIcon,
		"factorClass": factorClass,
	}
	return &Presenter{
		tmpl: template.Must(template.New("breakdown").Funcs(funcs).Parse(fragmentTemplate)),
	}
}

// factorIcon points up when the named side holds the advantage in this
// section. In the "ahead" section the other team is the favored side; in the
// "behind" section it is the subject team.
func factorIcon(direction, advantage string) string {
	if favors(direction, advantage) {
		return "↑"
	}
	return "↓"
}

func factorClass(direction, advantage string) string {
	up := favors(direction, advantage)
	if (direction == "ahead") == up {
		return "text-danger"
	}
	return "text-success"
}

func favors(direction, advantage string) bool {
	if direction == "ahead" {
		return advantage == "other"
	}
	return advantage == "target"
}

// Render writes the HTML fragment for b. A payload carrying an explicit
// error renders an alert; empty comparison sections render nothing.
func (p *Presenter) Render(w io.Writer, b types.TeamBreakdown) error {
	view := fragmentView{
		TeamBreakdown: b,
		Ahead:         section{Title: "Why Behind These Teams", Direction: "ahead", Comparisons: b.ComparisonsAhead},
		Behind:        section{Title: "Why Ahead of These Teams", Direction: "behind", Comparisons: b.ComparisonsBehind},
	}
	if err := p.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("render breakdown: %w", err)
	}
	return nil
}

type fragmentView struct {
	types.TeamBreakdown
	Ahead  section
	Behind section
}

type section struct {
	Title       string
	Direction   string
	Comparisons []types.Comparison
}

const fragmentTemplate = `{{if .Err}}<div class="alert alert-danger">{{.Err}}</div>{{else}}
<div class="row mb-4">
  <div class="col-md-6">
    <h4 class="mb-3"><span class="badge bg-primary me-2">#{{.Team.Rank}}</span>{{.Team.Name}}</h4>
    <p class="text-muted mb-2">
      <span class="badge bg-secondary">{{.Team.Conference}}</span>
      <strong class="ms-2">{{.Team.Record}}</strong> ({{.Team.ConfRecord}} conf)
    </p>
    <p class="small text-muted">vs P4: {{.Team.PowerRecord}} | vs G5: {{.Team.G5Record}}</p>
  </div>
  <div class="col-md-6">
    <div class="card bg-light"><div class="card-body py-2">
      <h6 class="card-title mb-2">Final Score Breakdown</h6>
      <div class="small">
        <div class="d-flex justify-content-between">
          <span>Team Quality (55%):</span>
          <strong>{{f1 .Team.TeamQuality}} &times; 0.55 = {{f1 .Formula.TQContribution}}</strong>
        </div>
        <div class="d-flex justify-content-between">
          <span>Record Score (35%):</span>
          <strong>{{f1 .Team.RecordScore}} &times; 0.35 = {{f1 .Formula.RecContribution}}</strong>
        </div>
        <div class="d-flex justify-content-between">
          <span>Conf Quality (10%):</span>
          <strong>{{f1 .Team.ConferenceQuality}} &times; 0.10 = {{f1 .Formula.CQContribution}}</strong>
        </div>
        <hr class="my-1">
        <div class="d-flex justify-content-between fw-bold">
          <span>Final Score:</span><span>{{f2 .Formula.Total}}</span>
        </div>
      </div>
    </div></div>
  </div>
</div>
<div class="row mb-3">
  <div class="col-md-6"><div class="small"><strong>SoS (Avg Opp Elo):</strong> {{f0 .Team.SoS}}</div></div>
  <div class="col-md-6"><div class="small"><strong>SoV (Avg Win Opp Elo):</strong> {{f0 .Team.SoV}}</div></div>
</div>
{{template "section" .Ahead}}
{{template "section" .Behind}}
{{end}}
{{define "section"}}{{if .Comparisons}}
<h5 class="mt-4 mb-3">{{.Title}}</h5>
<div class="table-responsive">
  <table class="table table-sm table-bordered">
    <thead class="table-light">
      <tr><th>Rank</th><th>Team</th><th>Gap</th><th>Key Factors</th></tr>
    </thead>
    <tbody>
      {{$dir := .Direction}}
      {{range .Comparisons}}
      <tr>
        <td class="fw-bold">#{{.OtherRank}}</td>
        <td>{{.OtherTeam}} <small class="text-muted">({{.OtherRecord}})</small></td>
        <td class="{{if eq $dir "ahead"}}text-danger{{else}}text-success{{end}}">{{if eq $dir "behind"}}+{{end}}{{f1 .ScoreDiff}}</td>
        <td class="small">
          {{$factors := topFactors .Factors}}
          {{if $factors}}{{range $i, $f := $factors}}{{if $i}}<br>{{end}}<span class="{{factorClass $dir $f.Advantage}}">{{factorIcon $dir $f.Advantage}} {{$f.Factor}}</span>: {{$f.Explanation}}{{end}}{{else}}Marginal differences{{end}}
        </td>
      </tr>
      {{end}}
    </tbody>
  </table>
</div>
{{end}}{{end}}`
