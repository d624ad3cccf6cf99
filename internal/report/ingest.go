package report

import (
	"fmt"
	"strings"

	"salesboard/internal/sheets"

	"github.com/rs/zerolog/log"
)

// Registry and target table column names as they appear in the source
// spreadsheet.
const (
	colReportDate  = "Fecha_Reporte"
	colClient      = "Cliente"
	colSalesperson = "Vendedor"
	colStatus      = "Estado"
	colAmount      = "Valor"
	colPhase       = "Fase_Detalle"
	colPeriodLabel = "Mes"

	colTargetPeriod = "Mes_Objetivo"
	colTargetAmount = "Meta_Total"
)

// MissingColumnError reports a structurally broken input table. It is
// fatal for the current render: no partial report is produced.
type MissingColumnError struct {
	Worksheet string
	Missing   []string
	Present   []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("worksheet %s is missing required columns %s (present: %s)",
		e.Worksheet, strings.Join(e.Missing, ", "), strings.Join(e.Present, ", "))
}

func requireColumns(t *sheets.Table, names ...string) (map[string]int, error) {
	cols := make(map[string]int, len(names))
	var missing []string
	for _, name := range names {
		idx := t.Column(name)
		if idx == -1 {
			missing = append(missing, name)
			continue
		}
		cols[name] = idx
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Worksheet: t.Worksheet, Missing: missing, Present: t.Headers}
	}
	return cols, nil
}

// Observations maps the weekly registry table into normalized, classified
// observations. Rows without a resolvable period key or client are
// dropped; bad money cells degrade to 0. Only missing columns are fatal.
func Observations(t *sheets.Table, classifier *Classifier, dayFirst bool) ([]Observation, error) {
	cols, err := requireColumns(t, colReportDate, colClient, colSalesperson, colStatus, colAmount)
	if err != nil {
		return nil, err
	}
	phaseCol := t.Column(colPhase)
	labelCol := t.Column(colPeriodLabel)

	var out []Observation
	dropped := 0
	for i, row := range t.Rows {
		date, dateOK := ParseDate(t.Cell(row, cols[colReportDate]), dayFirst)

		// A pre-existing period label takes precedence over the derived
		// key, so sheets that track the month explicitly keep working.
		period := ""
		if labelCol != -1 {
			period = PeriodKeyFromLabel(t.Cell(row, labelCol), dayFirst)
		}
		if period == "" && dateOK {
			period = PeriodKey(date)
		}

		client := t.Cell(row, cols[colClient])
		if period == "" || client == "" {
			dropped++
			continue
		}

		raw := t.Cell(row, cols[colStatus])
		out = append(out, Observation{
			ReportDate:  date,
			Client:      client,
			Salesperson: t.Cell(row, cols[colSalesperson]),
			RawStatus:   raw,
			Status:      classifier.Classify(raw),
			Phase:       t.Cell(row, phaseCol),
			Amount:      ParseCurrency(t.Cell(row, cols[colAmount])),
			PeriodKey:   period,
			Row:         i,
		})
	}

	if dropped > 0 {
		log.Warn().Str("worksheet", t.Worksheet).Int("dropped", dropped).
			Msg("Dropped registry rows without a valid period key or client")
	}
	return out, nil
}

// Targets maps the monthly targets table. The salesperson column is
// optional; an empty value means the row applies to the whole team.
func Targets(t *sheets.Table, dayFirst bool) ([]Target, error) {
	cols, err := requireColumns(t, colTargetPeriod, colTargetAmount)
	if err != nil {
		return nil, err
	}
	sellerCol := t.Column(colSalesperson)

	var out []Target
	dropped := 0
	for _, row := range t.Rows {
		period := PeriodKeyFromLabel(t.Cell(row, cols[colTargetPeriod]), dayFirst)
		if period == "" {
			dropped++
			continue
		}
		out = append(out, Target{
			PeriodKey:   period,
			Salesperson: t.Cell(row, sellerCol),
			Amount:      ParseCurrency(t.Cell(row, cols[colTargetAmount])),
		})
	}

	if dropped > 0 {
		log.Warn().Str("worksheet", t.Worksheet).Int("dropped", dropped).
			Msg("Dropped target rows without a valid period key")
	}
	return out, nil
}
