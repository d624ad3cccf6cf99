package report

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func obs(client, seller string, d int, amount float64, row int) Observation {
	return Observation{
		ReportDate:  day(d),
		Client:      client,
		Salesperson: seller,
		Amount:      amount,
		PeriodKey:   "2026-01",
		Row:         row,
	}
}

func TestReduce_LatestPerEntity(t *testing.T) {
	// Client A updated week 1 and week 3, client B only week 1. Both must
	// contribute exactly one row, each from their own latest week.
	in := []Observation{
		obs("A", "Ana", 2, 5000, 0),
		obs("B", "Juan", 2, 2000, 1),
		obs("A", "Ana", 16, 6000, 2),
	}

	out := Reduce(in, LatestPerEntity)
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	if out[0].Client != "A" || out[0].Amount != 6000 {
		t.Errorf("entity A: got %+v, want week-3 row", out[0])
	}
	if out[1].Client != "B" || out[1].Amount != 2000 {
		t.Errorf("entity B: got %+v, want week-1 row", out[1])
	}
}

func TestReduce_LatestPerEntity_Idempotent(t *testing.T) {
	in := []Observation{
		obs("A", "Ana", 2, 5000, 0),
		obs("A", "Ana", 9, 6000, 1),
		obs("B", "Juan", 2, 2000, 2),
	}

	once := Reduce(in, LatestPerEntity)
	twice := Reduce(once, LatestPerEntity)

	if len(once) != len(twice) {
		t.Fatalf("reduce not idempotent: %d vs %d rows", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("row %d changed on second reduce: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestReduce_LatestReportDateOnly(t *testing.T) {
	// B was not re-reported on the latest date and drops out.
	in := []Observation{
		obs("A", "Ana", 2, 5000, 0),
		obs("B", "Juan", 2, 2000, 1),
		obs("A", "Ana", 16, 6000, 2),
	}

	out := Reduce(in, LatestReportDateOnly)
	if len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}
	if out[0].Client != "A" || out[0].Amount != 6000 {
		t.Errorf("got %+v, want A at 6000", out[0])
	}
}

func TestReduce_TieBreakBySourceRow(t *testing.T) {
	// Same entity, same report date: the later source row wins,
	// regardless of input order.
	first := obs("A", "Ana", 9, 1000, 3)
	second := obs("A", "Ana", 9, 7777, 8)

	for _, in := range [][]Observation{
		{first, second},
		{second, first},
	} {
		out := Reduce(in, LatestPerEntity)
		if len(out) != 1 {
			t.Fatalf("expected 1 row, got %d", len(out))
		}
		if out[0].Amount != 7777 {
			t.Errorf("tie-break picked amount %v, want 7777", out[0].Amount)
		}
	}
}

func TestReduce_EntityKeyIncludesSalesperson(t *testing.T) {
	// Same client handled by two salespeople stays two entities.
	in := []Observation{
		obs("A", "Ana", 2, 5000, 0),
		obs("A", "Juan", 2, 3000, 1),
	}

	out := Reduce(in, LatestPerEntity)
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
}

func TestReduce_Empty(t *testing.T) {
	for _, p := range []Policy{LatestPerEntity, LatestReportDateOnly} {
		if out := Reduce(nil, p); len(out) != 0 {
			t.Errorf("policy %s: expected empty output, got %d rows", p, len(out))
		}
	}
}
