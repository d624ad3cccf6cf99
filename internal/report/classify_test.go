package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		in   string
		want Status
	}{
		{"OP Emitida", StatusClosed},
		{"op generada", StatusClosed},
		{"OP EMITIDA Y FACTURADA", StatusClosed},
		{"Pendiente OP", StatusPending},
		{"pte de OP", StatusPending},
		{"Fendiente", StatusPending}, // misspelling tolerance
		{"OP pendiente de emitir", StatusPending},
		{"Pipeline comercial", StatusInPipeline},
		{"pipe", StatusInPipeline},
		{"xyz", StatusUnclassified},
		{"", StatusUnclassified},
	}

	for _, tc := range cases {
		if got := c.Classify(tc.in); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClassify_OrderMatters(t *testing.T) {
	c := NewClassifier()

	// Contains both an order marker and a pending marker; the pending
	// guard on the closed rule must win.
	if got := c.Classify("OP generada pero pendiente"); got != StatusPending {
		t.Errorf("overlapping label classified as %q, want %q", got, StatusPending)
	}
}

func TestLoadClassifier_CustomRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	doc := `rules:
  - label: closed
    any: ["facturado"]
  - label: pending
    any: ["pend", "espera"]
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadClassifier(path)
	if err != nil {
		t.Fatalf("LoadClassifier: %v", err)
	}

	if got := c.Classify("Facturado completo"); got != StatusClosed {
		t.Errorf("custom rule: got %q, want closed", got)
	}
	if got := c.Classify("en espera"); got != StatusPending {
		t.Errorf("custom synonym: got %q, want pending", got)
	}
	// Default-only markers are gone with a custom table.
	if got := c.Classify("pipeline"); got != StatusUnclassified {
		t.Errorf("got %q, want unclassified", got)
	}
}

func TestLoadClassifier_Invalid(t *testing.T) {
	dir := t.TempDir()

	badLabel := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badLabel, []byte("rules:\n  - label: bogus\n    any: [x]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadClassifier(badLabel); err == nil {
		t.Error("expected error for unknown label")
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("rules: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadClassifier(empty); err == nil {
		t.Error("expected error for empty rule table")
	}
}

func TestLoadClassifier_EmptyPathUsesDefaults(t *testing.T) {
	c, err := LoadClassifier("")
	if err != nil {
		t.Fatalf("LoadClassifier(\"\"): %v", err)
	}
	if got := c.Classify("OP Emitida"); got != StatusClosed {
		t.Errorf("default rules missing: got %q", got)
	}
}
