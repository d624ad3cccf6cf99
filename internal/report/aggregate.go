package report

import (
	"sort"
	"strings"
)

// Aggregate joins a reduced snapshot against the target table and
// computes the roll-up totals for one period. salesperson narrows both
// sides to a single seller; SalespersonAll (or "") aggregates the team.
//
// Pure function of its inputs: no I/O, no shared state.
func Aggregate(reduced []Observation, targets []Target, periodKey, salesperson string) Metrics {
	m := Metrics{
		PeriodKey:   periodKey,
		Salesperson: salesperson,
		TotalByStatus: map[Status]float64{
			StatusClosed:     0,
			StatusPending:    0,
			StatusInPipeline: 0,
		},
	}

	filterAll := salesperson == "" || salesperson == SalespersonAll

	for _, t := range targets {
		if t.PeriodKey != periodKey {
			continue
		}
		// Duplicate target rows for the same seller are tolerated by
		// summing, matching the team-level semantics.
		if filterAll || strings.TrimSpace(t.Salesperson) == salesperson {
			m.MetaTotal += t.Amount
		}
	}

	for _, o := range reduced {
		if o.PeriodKey != periodKey {
			continue
		}
		if !filterAll && o.Salesperson != salesperson {
			continue
		}
		m.TotalValue += o.Amount
		if _, tracked := m.TotalByStatus[o.Status]; tracked {
			m.TotalByStatus[o.Status] += o.Amount
		}
		m.DetailRows = append(m.DetailRows, o)
	}

	if m.MetaTotal > 0 {
		m.AttainmentPct = m.TotalValue / m.MetaTotal * 100
	}

	// Detail view ordering is fixed: largest deals first, entity key as
	// the deterministic secondary ordering.
	sort.Slice(m.DetailRows, func(i, j int) bool {
		if m.DetailRows[i].Amount != m.DetailRows[j].Amount {
			return m.DetailRows[i].Amount > m.DetailRows[j].Amount
		}
		if m.DetailRows[i].Client != m.DetailRows[j].Client {
			return m.DetailRows[i].Client < m.DetailRows[j].Client
		}
		return m.DetailRows[i].Salesperson < m.DetailRows[j].Salesperson
	})

	m.ClientBreakdown = breakdownByClient(m.DetailRows)
	m.Empty = len(m.DetailRows) == 0

	return m
}

// Evolution sums amounts per distinct report date across the full
// period-filtered observation set. It intentionally bypasses the reducer
// to show the week-by-week history instead of a single snapshot.
func Evolution(observations []Observation) []EvolutionPoint {
	byDate := make(map[string]*EvolutionPoint)
	for _, o := range observations {
		key := o.ReportDate.Format("2006-01-02")
		p, ok := byDate[key]
		if !ok {
			p = &EvolutionPoint{ReportDate: o.ReportDate}
			byDate[key] = p
		}
		p.SummedValue += o.Amount
	}

	out := make([]EvolutionPoint, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReportDate.Before(out[j].ReportDate)
	})
	return out
}

func breakdownByClient(rows []Observation) []ClientBreakdown {
	byClient := make(map[string]*ClientBreakdown)
	for _, o := range rows {
		b, ok := byClient[o.Client]
		if !ok {
			b = &ClientBreakdown{Client: o.Client, TotalByStatus: make(map[Status]float64)}
			byClient[o.Client] = b
		}
		b.Total += o.Amount
		b.TotalByStatus[o.Status] += o.Amount
	}

	out := make([]ClientBreakdown, 0, len(byClient))
	for _, b := range byClient {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Client < out[j].Client
	})
	return out
}
