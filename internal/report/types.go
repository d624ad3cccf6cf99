package report

import (
	"time"
)

// Status is the closed classification taxonomy for pipeline states.
// Free-typed source labels always collapse into one of these four values.
type Status string

const (
	StatusClosed       Status = "closed"       // purchase order issued
	StatusPending      Status = "pending"      // order committed, paperwork pending
	StatusInPipeline   Status = "in_pipeline"  // still being worked
	StatusUnclassified Status = "unclassified" // label not recognized
)

// Policy selects how repeated weekly observations per entity are reduced
// to a single authoritative row.
type Policy string

const (
	// LatestPerEntity keeps the most recent observation of every entity
	// in the period, so entities updated in earlier weeks still count.
	LatestPerEntity Policy = "latest_per_entity"

	// LatestReportDateOnly keeps only rows from the single most recent
	// report date in the period. Entities not re-reported that week are
	// silently dropped from the totals.
	LatestReportDateOnly Policy = "latest_report_date"
)

// ParsePolicy maps a config/query string to a Policy, defaulting to
// LatestPerEntity for unknown input.
func ParsePolicy(s string) Policy {
	if Policy(s) == LatestReportDateOnly {
		return LatestReportDateOnly
	}
	return LatestPerEntity
}

// Observation is one row of the weekly registry after normalization.
type Observation struct {
	ReportDate  time.Time `json:"report_date"`
	Client      string    `json:"client"`
	Salesperson string    `json:"salesperson"`
	RawStatus   string    `json:"raw_status"`
	Status      Status    `json:"classified_status"`
	Phase       string    `json:"phase,omitempty"`
	Amount      float64   `json:"amount"`
	PeriodKey   string    `json:"period_key"`

	// Row is the source row index, used as the deterministic tie-break
	// when an entity has two observations on the same report date.
	Row int `json:"-"`
}

// EntityKey returns the (client, salesperson) grouping key.
func (o Observation) EntityKey() string {
	return o.Client + "\x00" + o.Salesperson
}

// Target is one row of the monthly targets table after normalization.
// An empty Salesperson means the row applies to the whole team.
type Target struct {
	PeriodKey   string  `json:"period_key"`
	Salesperson string  `json:"salesperson,omitempty"`
	Amount      float64 `json:"target_amount"`
}

// EvolutionPoint is the summed pipeline value of one report date.
type EvolutionPoint struct {
	ReportDate  time.Time `json:"report_date"`
	SummedValue float64   `json:"summed_value"`
}

// ClientBreakdown is the per-status value split of one client, feeding
// the stacked per-client chart.
type ClientBreakdown struct {
	Client        string             `json:"client"`
	Total         float64            `json:"total"`
	TotalByStatus map[Status]float64 `json:"total_by_status"`
}

// Metrics is the full report document handed to the presentation layer.
type Metrics struct {
	PeriodKey     string  `json:"period_key"`
	Salesperson   string  `json:"salesperson,omitempty"`
	Policy        Policy  `json:"policy"`
	Empty         bool    `json:"empty"`
	MetaTotal     float64 `json:"meta_total"`
	TotalValue    float64 `json:"total_value"`
	AttainmentPct float64 `json:"attainment_pct"`

	TotalByStatus   map[Status]float64 `json:"total_by_status"`
	DetailRows      []Observation      `json:"detail_rows"`
	EvolutionSeries []EvolutionPoint   `json:"evolution_series"`
	ClientBreakdown []ClientBreakdown  `json:"client_breakdown"`
}

// Filters lists the selectable report dimensions found in the registry.
type Filters struct {
	Months      []string `json:"months"`
	Salespeople []string `json:"salespeople"`
}

// SalespersonAll is the sentinel filter value meaning "whole team".
const SalespersonAll = "Todos"
