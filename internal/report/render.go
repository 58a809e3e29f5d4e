package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/leakmon/leakmon/internal/audit"
	"github.com/leakmon/leakmon/internal/engine"
	"github.com/leakmon/leakmon/internal/types"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned uint64
}

// PrintTable renders findings grouped by path, one row per finding, with a
// severity summary footer.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) {
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Path == findings[j].Path {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Path < findings[j].Path
	})
	if len(findings) == 0 {
		fmt.Fprintln(w, "No secrets found ✅")
	} else {
		tbl := tablewriter.NewWriter(w)
		tbl.Header("Severity", "Conf", "Detector", "Location", "Value")
		for _, f := range findings {
			sev := string(f.Severity)
			if !opts.NoColor {
				sev = colorSeverity(f.Severity)
			}
			_ = tbl.Append(
				sev,
				fmt.Sprintf("%.2f", f.Confidence),
				f.Detector,
				fmt.Sprintf("%s:%d", f.Path, f.Line),
				f.ValuePreview,
			)
		}
		_ = tbl.Render()
	}

	high, med, low := 0, 0, 0
	for _, f := range findings {
		switch f.Severity {
		case types.SevHigh:
			high++
		case types.SevMed:
			med++
		default:
			low++
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (high: %d, medium: %d, low: %d)\n", len(findings), high, med, low)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
	}
}

// PrintJSON emits findings as a JSON array for machine consumption.
func PrintJSON(w io.Writer, findings []types.Finding) error {
	if findings == nil {
		findings = []types.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// PrintStats renders aggregated audit statistics: totals, per-detector and
// per-day breakdowns.
func PrintStats(w io.Writer, st audit.Stats) {
	fmt.Fprintf(w, "Audit records: %d (new: %d, resolved: %d)\n", st.Total, st.New, st.Resolved)
	if !st.First.IsZero() {
		fmt.Fprintf(w, "Range: %s – %s\n", st.First.Format("2006-01-02"), st.Last.Format("2006-01-02"))
	}
	if len(st.ByDetector) > 0 {
		fmt.Fprintln(w)
		tbl := tablewriter.NewWriter(w)
		tbl.Header("Detector", "New findings")
		for _, id := range st.TopDetectors(0) {
			_ = tbl.Append(id, fmt.Sprintf("%d", st.ByDetector[id]))
		}
		_ = tbl.Render()
	}
	if len(st.ByDay) > 0 {
		days := make([]string, 0, len(st.ByDay))
		for d := range st.ByDay {
			days = append(days, d)
		}
		sort.Strings(days)
		fmt.Fprintln(w)
		tbl := tablewriter.NewWriter(w)
		tbl.Header("Day", "Records")
		for _, d := range days {
			_ = tbl.Append(d, fmt.Sprintf("%d", st.ByDay[d]))
		}
		_ = tbl.Render()
	}
}

// PrintEngineStats renders live orchestrator counters for the stats command.
func PrintEngineStats(w io.Writer, st engine.Stats) {
	fmt.Fprintf(w, "Files scanned:     %d\n", st.FilesScanned)
	fmt.Fprintf(w, "Files skipped:     %d\n", st.FilesSkipped)
	fmt.Fprintf(w, "Detector errors:   %d\n", st.DetectorErrors)
	fmt.Fprintf(w, "Coalesced events:  %d\n", st.Coalesced)
	fmt.Fprintf(w, "Dropped events:    %d\n", st.DroppedEvents)
	fmt.Fprintf(w, "Dropped audit:     %d\n", st.DroppedAudit)
	fmt.Fprintf(w, "Active findings:   %d\n", st.ActiveFindings)
}

func colorSeverity(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "\x1b[31mhigh\x1b[0m" // red
	case types.SevMed:
		return "\x1b[33mmedium\x1b[0m" // yellow
	default:
		return "\x1b[36mlow\x1b[0m" // cyan
	}
}
