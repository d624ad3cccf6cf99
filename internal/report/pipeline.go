package report

import (
	"sort"

	"salesboard/internal/sheets"
)

// Options selects what one report render covers.
type Options struct {
	PeriodKey   string
	Salesperson string // SalespersonAll or "" aggregates the team
	Policy      Policy
	DayFirst    bool
	Classifier  *Classifier
}

func (o Options) classifier() *Classifier {
	if o.Classifier != nil {
		return o.Classifier
	}
	return NewClassifier()
}

// Generate runs the full one-shot pipeline over freshly fetched copies of
// the registry and targets tables and returns the report document.
//
// Structural problems (missing columns) abort the render; data-quality
// problems in individual rows are recovered locally during ingestion.
// A period with no observations yields an empty-state document, not an
// error.
func Generate(registry, targets *sheets.Table, opts Options) (Metrics, error) {
	observations, err := Observations(registry, opts.classifier(), opts.DayFirst)
	if err != nil {
		return Metrics{}, err
	}
	targetRows, err := Targets(targets, opts.DayFirst)
	if err != nil {
		return Metrics{}, err
	}

	var periodObs []Observation
	for _, o := range observations {
		if o.PeriodKey == opts.PeriodKey {
			periodObs = append(periodObs, o)
		}
	}

	if len(periodObs) == 0 {
		return Metrics{
			PeriodKey:   opts.PeriodKey,
			Salesperson: opts.Salesperson,
			Policy:      opts.Policy,
			Empty:       true,
			TotalByStatus: map[Status]float64{
				StatusClosed:     0,
				StatusPending:    0,
				StatusInPipeline: 0,
			},
		}, nil
	}

	reduced := Reduce(periodObs, opts.Policy)
	m := Aggregate(reduced, targetRows, opts.PeriodKey, opts.Salesperson)
	m.Policy = opts.Policy

	// The evolution line is the week-by-week history of the whole period,
	// so it runs over the unreduced set.
	m.EvolutionSeries = Evolution(periodObs)

	return m, nil
}

// DiscoverFilters lists the months and salespeople present in the
// registry, for the selection controls of the presentation layer. The
// salespeople list always starts with the team aggregate.
func DiscoverFilters(registry *sheets.Table, dayFirst bool) (Filters, error) {
	observations, err := Observations(registry, NewClassifier(), dayFirst)
	if err != nil {
		return Filters{}, err
	}

	months := make(map[string]bool)
	sellers := make(map[string]bool)
	for _, o := range observations {
		months[o.PeriodKey] = true
		if o.Salesperson != "" {
			sellers[o.Salesperson] = true
		}
	}

	f := Filters{Salespeople: []string{SalespersonAll}}
	for m := range months {
		f.Months = append(f.Months, m)
	}
	sort.Strings(f.Months)

	names := make([]string, 0, len(sellers))
	for s := range sellers {
		names = append(names, s)
	}
	sort.Strings(names)
	f.Salespeople = append(f.Salespeople, names...)

	return f, nil
}
