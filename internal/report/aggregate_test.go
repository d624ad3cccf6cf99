package report

import (
	"testing"
)

func TestAggregate_TeamTotals(t *testing.T) {
	reduced := []Observation{
		withStatus(obs("A", "Ana", 9, 6000, 0), StatusPending),
		withStatus(obs("B", "Juan", 2, 2000, 1), StatusInPipeline),
		withStatus(obs("C", "Ana", 2, 1000, 2), StatusClosed),
	}
	targets := []Target{
		{PeriodKey: "2026-01", Salesperson: "Ana", Amount: 7000},
		{PeriodKey: "2026-01", Salesperson: "Juan", Amount: 3000},
		{PeriodKey: "2026-02", Salesperson: "Ana", Amount: 99999}, // other month, ignored
	}

	m := Aggregate(reduced, targets, "2026-01", SalespersonAll)

	if m.MetaTotal != 10000 {
		t.Errorf("MetaTotal = %v, want 10000", m.MetaTotal)
	}
	if m.TotalValue != 9000 {
		t.Errorf("TotalValue = %v, want 9000", m.TotalValue)
	}
	if m.AttainmentPct != 90 {
		t.Errorf("AttainmentPct = %v, want 90", m.AttainmentPct)
	}
	if m.TotalByStatus[StatusPending] != 6000 || m.TotalByStatus[StatusInPipeline] != 2000 || m.TotalByStatus[StatusClosed] != 1000 {
		t.Errorf("TotalByStatus = %+v", m.TotalByStatus)
	}
	if m.Empty {
		t.Error("Empty should be false")
	}
}

func TestAggregate_SalespersonFilter(t *testing.T) {
	reduced := []Observation{
		withStatus(obs("A", "Ana", 9, 6000, 0), StatusPending),
		withStatus(obs("B", "Juan", 2, 2000, 1), StatusInPipeline),
	}
	targets := []Target{
		{PeriodKey: "2026-01", Salesperson: "Ana", Amount: 4000},
		// Duplicate target rows for the same seller sum up.
		{PeriodKey: "2026-01", Salesperson: "Ana", Amount: 2000},
		{PeriodKey: "2026-01", Salesperson: "Juan", Amount: 3000},
	}

	m := Aggregate(reduced, targets, "2026-01", "Ana")

	if m.MetaTotal != 6000 {
		t.Errorf("MetaTotal = %v, want 6000", m.MetaTotal)
	}
	if m.TotalValue != 6000 {
		t.Errorf("TotalValue = %v, want 6000", m.TotalValue)
	}
	if m.AttainmentPct != 100 {
		t.Errorf("AttainmentPct = %v, want 100", m.AttainmentPct)
	}
	if len(m.DetailRows) != 1 || m.DetailRows[0].Client != "A" {
		t.Errorf("DetailRows = %+v", m.DetailRows)
	}
}

func TestAggregate_ZeroTarget(t *testing.T) {
	reduced := []Observation{
		withStatus(obs("A", "Ana", 9, 6000, 0), StatusPending),
	}

	m := Aggregate(reduced, nil, "2026-01", SalespersonAll)

	if m.AttainmentPct != 0 {
		t.Errorf("AttainmentPct = %v, want 0 with no targets", m.AttainmentPct)
	}
	if m.TotalValue != 6000 {
		t.Errorf("TotalValue = %v, want 6000", m.TotalValue)
	}
}

func TestAggregate_UnclassifiedCountsInTotalOnly(t *testing.T) {
	reduced := []Observation{
		withStatus(obs("A", "Ana", 9, 5000, 0), StatusClosed),
		withStatus(obs("B", "Ana", 9, 1500, 1), StatusUnclassified),
	}

	m := Aggregate(reduced, nil, "2026-01", SalespersonAll)

	if m.TotalValue != 6500 {
		t.Errorf("TotalValue = %v, want 6500", m.TotalValue)
	}
	sum := m.TotalByStatus[StatusClosed] + m.TotalByStatus[StatusPending] + m.TotalByStatus[StatusInPipeline]
	if sum != 5000 {
		t.Errorf("status buckets sum to %v, want 5000", sum)
	}
	if len(m.DetailRows) != 2 {
		t.Errorf("unclassified row must stay in the detail view, got %d rows", len(m.DetailRows))
	}
}

func TestAggregate_DetailRowsSortedByAmountDesc(t *testing.T) {
	reduced := []Observation{
		withStatus(obs("A", "Ana", 9, 1000, 0), StatusPending),
		withStatus(obs("B", "Ana", 9, 9000, 1), StatusPending),
		withStatus(obs("C", "Ana", 9, 5000, 2), StatusPending),
	}

	m := Aggregate(reduced, nil, "2026-01", SalespersonAll)

	want := []float64{9000, 5000, 1000}
	for i, w := range want {
		if m.DetailRows[i].Amount != w {
			t.Errorf("detail row %d amount = %v, want %v", i, m.DetailRows[i].Amount, w)
		}
	}
}

func TestAggregate_ClientBreakdown(t *testing.T) {
	reduced := []Observation{
		withStatus(obs("A", "Ana", 9, 5000, 0), StatusClosed),
		withStatus(obs("A", "Juan", 9, 2000, 1), StatusPending),
		withStatus(obs("B", "Ana", 9, 4000, 2), StatusPending),
	}

	m := Aggregate(reduced, nil, "2026-01", SalespersonAll)

	if len(m.ClientBreakdown) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(m.ClientBreakdown))
	}
	a := m.ClientBreakdown[0]
	if a.Client != "A" || a.Total != 7000 {
		t.Errorf("first breakdown = %+v, want client A with 7000", a)
	}
	if a.TotalByStatus[StatusClosed] != 5000 || a.TotalByStatus[StatusPending] != 2000 {
		t.Errorf("client A split = %+v", a.TotalByStatus)
	}
}

func TestAggregate_EmptySelection(t *testing.T) {
	reduced := []Observation{
		withStatus(obs("A", "Ana", 9, 5000, 0), StatusClosed),
	}

	m := Aggregate(reduced, nil, "2026-01", "Nadie")
	if !m.Empty {
		t.Error("expected empty-state result for a salesperson with no rows")
	}
	if m.TotalValue != 0 {
		t.Errorf("TotalValue = %v, want 0", m.TotalValue)
	}
}

func TestEvolution(t *testing.T) {
	in := []Observation{
		obs("A", "Ana", 2, 5000, 0),
		obs("B", "Juan", 2, 2000, 1),
		obs("A", "Ana", 9, 6000, 2),
	}

	series := Evolution(in)
	if len(series) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series))
	}
	if !series[0].ReportDate.Before(series[1].ReportDate) {
		t.Error("series not sorted ascending by date")
	}
	if series[0].SummedValue != 7000 {
		t.Errorf("week 1 sum = %v, want 7000", series[0].SummedValue)
	}
	if series[1].SummedValue != 6000 {
		t.Errorf("week 2 sum = %v, want 6000", series[1].SummedValue)
	}
}

func withStatus(o Observation, s Status) Observation {
	o.Status = s
	return o
}
