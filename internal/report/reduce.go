package report

import (
	"sort"
	"time"
)

// Reduce collapses repeated weekly observations down to one authoritative
// row per (client, salesperson) entity, according to the selected policy.
//
// When an entity has two observations with the same report date, the one
// with the higher source row index wins, so re-entered rows later in the
// sheet override earlier ones regardless of input ordering.
func Reduce(observations []Observation, policy Policy) []Observation {
	if policy == LatestReportDateOnly {
		return reduceLatestDate(observations)
	}
	return reduceLatestPerEntity(observations)
}

func reduceLatestPerEntity(observations []Observation) []Observation {
	latest := make(map[string]Observation)
	for _, o := range observations {
		cur, ok := latest[o.EntityKey()]
		if !ok || supersedes(o, cur) {
			latest[o.EntityKey()] = o
		}
	}

	out := make([]Observation, 0, len(latest))
	for _, o := range latest {
		out = append(out, o)
	}
	sortByEntity(out)
	return out
}

// reduceLatestDate keeps only rows matching the maximum report date in
// the set. Entities not re-reported on that date drop out of the totals.
func reduceLatestDate(observations []Observation) []Observation {
	var maxDate time.Time
	for _, o := range observations {
		if o.ReportDate.After(maxDate) {
			maxDate = o.ReportDate
		}
	}

	latest := make(map[string]Observation)
	for _, o := range observations {
		if !o.ReportDate.Equal(maxDate) {
			continue
		}
		cur, ok := latest[o.EntityKey()]
		if !ok || o.Row >= cur.Row {
			latest[o.EntityKey()] = o
		}
	}

	out := make([]Observation, 0, len(latest))
	for _, o := range latest {
		out = append(out, o)
	}
	sortByEntity(out)
	return out
}

func supersedes(candidate, current Observation) bool {
	if candidate.ReportDate.After(current.ReportDate) {
		return true
	}
	if candidate.ReportDate.Equal(current.ReportDate) {
		return candidate.Row >= current.Row
	}
	return false
}

func sortByEntity(rows []Observation) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Client != rows[j].Client {
			return rows[i].Client < rows[j].Client
		}
		return rows[i].Salesperson < rows[j].Salesperson
	})
}
