// Package dedupe owns the durable fingerprint table that decides whether a
// match is a new finding, a repeat of a known one, or a resolved one. One
// table exists per monitored root and is mutated only by that root's worker;
// external readers get snapshots.
package dedupe

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/leakmon/leakmon/internal/redact"
	"github.com/leakmon/leakmon/internal/types"
)

// entry pairs a finding with the scan that last saw it.
type entry struct {
	finding    types.Finding
	lastScanID uint64
}

// Table maps fingerprints to finding state for one monitored root.
// Not safe for concurrent mutation; the owning worker serializes access.
type Table struct {
	entries map[string]*entry
	scanSeq uint64
}

func NewTable() *Table {
	return &Table{entries: map[string]*entry{}}
}

// Fingerprint derives the stable identity of a match: path, detector, line
// and the shape-normalized value. Masking the value keeps the fingerprint
// stable across cosmetic edits to the secret itself while staying specific
// enough not to collide with a different secret on the same line.
func Fingerprint(m types.RawMatch) string {
	h := xxhash.New()
	_, _ = h.WriteString(m.Path)
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(m.Detector)
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(strconv.Itoa(m.Line))
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(redact.Shape(m.Text))
	return fmt.Sprintf("%016x", h.Sum64())
}

// Apply folds one scan pass for path into the table. Matches must already be
// confidence-annotated and suppression-filtered. It returns the ScanResult
// for this pass plus the finding transitions to emit: one "new" event per
// previously unknown fingerprint and one "resolved" event per fingerprint
// previously active for this path but absent now. Known-and-still-present
// fingerprints only bump LastSeenAt and emit nothing.
func (t *Table) Apply(path string, matches []types.RawMatch, confidences []float64, now time.Time) (types.ScanResult, []types.Event) {
	t.scanSeq++
	scanID := t.scanSeq

	res := types.ScanResult{Path: path}
	var events []types.Event
	present := make(map[string]bool, len(matches))

	for i, m := range matches {
		fp := Fingerprint(m)
		if present[fp] {
			continue // identical match twice in one pass
		}
		present[fp] = true

		if e, ok := t.entries[fp]; ok {
			e.finding.LastSeenAt = now
			if e.finding.Status == types.StatusResolved {
				// the secret came back; treat as a fresh detection
				e.finding.Status = types.StatusActive
				e.finding.Confidence = confidences[i]
				events = append(events, types.Event{Kind: types.EventNew, Finding: e.finding, At: now})
			}
			e.lastScanID = scanID
			res.Findings = append(res.Findings, e.finding)
			continue
		}

		f := types.Finding{
			ID:             fp,
			Detector:       m.Detector,
			Kind:           m.Kind,
			Severity:       m.Severity,
			Confidence:     confidences[i],
			Path:           m.Path,
			Line:           m.Line,
			ContextPreview: redact.ContextPreview(m.Context, m.Text, 120),
			ValuePreview:   redact.MaskValue(m.Text),
			FirstSeenAt:    now,
			LastSeenAt:     now,
			Status:         types.StatusActive,
		}
		t.entries[fp] = &entry{finding: f, lastScanID: scanID}
		res.Findings = append(res.Findings, f)
		events = append(events, types.Event{Kind: types.EventNew, Finding: f, At: now})
	}

	for fp, e := range t.entries {
		if e.finding.Path != path || present[fp] || e.finding.Status != types.StatusActive {
			continue
		}
		e.finding.Status = types.StatusResolved
		e.finding.LastSeenAt = now
		res.Resolved = append(res.Resolved, fp)
		events = append(events, types.Event{Kind: types.EventResolved, Finding: e.finding, At: now})
	}
	sort.Strings(res.Resolved)

	return res, events
}

// Snapshot returns a point-in-time copy of every finding, active and
// resolved, ordered by path then line. Callers get values, never a live
// handle into the table.
func (t *Table) Snapshot() []types.Finding {
	out := make([]types.Finding, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.finding)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			if out[i].Line == out[j].Line {
				return out[i].ID < out[j].ID
			}
			return out[i].Line < out[j].Line
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// ActiveCount reports how many findings are currently active.
func (t *Table) ActiveCount() int {
	n := 0
	for _, e := range t.entries {
		if e.finding.Status == types.StatusActive {
			n++
		}
	}
	return n
}
