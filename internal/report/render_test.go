package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/leakmon/leakmon/internal/audit"
	"github.com/leakmon/leakmon/internal/types"
)

func TestPrintTable_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, nil, PrintOptions{Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	if !strings.Contains(out, "No secrets found") {
		t.Fatalf("expected friendly no-findings message; got: %q", out)
	}
	if !strings.Contains(out, "Files scanned: 10") {
		t.Fatalf("expected footer with files scanned; got: %q", out)
	}
}

func TestPrintTable_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	fs := []types.Finding{{
		Path: "a.go", Line: 1, ValuePreview: "gh**********xx",
		Detector: "github_token", Severity: types.SevHigh, Confidence: 0.9,
	}}
	PrintTable(&buf, fs, PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "github_token") {
		t.Fatalf("expected detector in table; got: %q", out)
	}
	if !strings.Contains(out, "a.go:1") {
		t.Fatalf("expected location column; got: %q", out)
	}
	if !strings.Contains(out, "Findings: 1 (high: 1, medium: 0, low: 0)") {
		t.Fatalf("expected severity summary; got: %q", out)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("nil findings must render as empty array; got: %q", buf.String())
	}
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	st := audit.Stats{
		Total: 3, New: 2, Resolved: 1,
		ByDetector: map[string]int{"aws_access_key": 2},
		BySeverity: map[string]int{"high": 2},
		ByDay:      map[string]int{"2026-08-26": 3},
		First:      time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC),
		Last:       time.Date(2026, 8, 26, 18, 0, 0, 0, time.UTC),
	}
	PrintStats(&buf, st)
	out := buf.String()
	if !strings.Contains(out, "Audit records: 3 (new: 2, resolved: 1)") {
		t.Fatalf("expected totals line; got: %q", out)
	}
	if !strings.Contains(out, "aws_access_key") {
		t.Fatalf("expected detector breakdown; got: %q", out)
	}
	if !strings.Contains(out, "2026-08-26") {
		t.Fatalf("expected per-day breakdown; got: %q", out)
	}
}
