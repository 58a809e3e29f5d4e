package audit

import (
	"sort"
	"time"

	"github.com/leakmon/leakmon/internal/types"
)

// Stats summarizes a slice of audit records for the report and stats
// commands.
type Stats struct {
	Total       int
	New         int
	Resolved    int
	ByDetector  map[string]int
	BySeverity  map[string]int
	ByDay       map[string]int // YYYY-MM-DD -> record count
	First, Last time.Time
}

// Summarize aggregates records. Only "new" transitions count toward the
// detector and severity breakdowns; resolutions are tallied separately.
func Summarize(recs []Record) Stats {
	st := Stats{
		ByDetector: make(map[string]int),
		BySeverity: make(map[string]int),
		ByDay:      make(map[string]int),
	}
	for _, r := range recs {
		st.Total++
		st.ByDay[r.Timestamp.Format("2006-01-02")]++
		if st.First.IsZero() || r.Timestamp.Before(st.First) {
			st.First = r.Timestamp
		}
		if r.Timestamp.After(st.Last) {
			st.Last = r.Timestamp
		}
		switch r.Kind {
		case types.EventResolved:
			st.Resolved++
		default:
			st.New++
			st.ByDetector[r.Finding.Detector]++
			st.BySeverity[string(r.Finding.Severity)]++
		}
	}
	return st
}

// TopDetectors returns detector IDs by descending new-finding count,
// ties broken alphabetically.
func (st Stats) TopDetectors(n int) []string {
	ids := make([]string, 0, len(st.ByDetector))
	for id := range st.ByDetector {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if st.ByDetector[ids[i]] != st.ByDetector[ids[j]] {
			return st.ByDetector[ids[i]] > st.ByDetector[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if n > 0 && len(ids) > n {
		ids = ids[:n]
	}
	return ids
}
