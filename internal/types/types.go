package types

import "time"

// Severity is a coarse-grained risk level for a finding. It classifies the
// type of risk and is never adjusted by match confidence.
type Severity string

const (
	SevLow  Severity = "low"
	SevMed  Severity = "medium"
	SevHigh Severity = "high"
)

// Kind distinguishes fixed-syntax detectors from entropy-based ones.
type Kind string

const (
	KindStructural  Kind = "structural"
	KindStatistical Kind = "statistical"
)

// Status is the lifecycle state of a deduplicated finding.
type Status string

const (
	StatusActive   Status = "active"
	StatusResolved Status = "resolved"
)

// RawMatch is one detector hit before confidence composition. It carries the
// raw matched text and exists only for the duration of a single scan call;
// it is never serialized or retained.
type RawMatch struct {
	Detector string
	Kind     Kind
	Severity Severity
	Path     string
	Line     int
	ColStart int
	ColEnd   int
	Text     string // raw matched value, transient
	Context  string // bounded window around the match
	Entropy  float64
}

// Finding is the unit crossing the system boundary. The raw secret value is
// reduced to ValuePreview (first/last two characters) before a Finding is
// constructed; the original value cannot be reconstructed from it.
type Finding struct {
	ID             string    `json:"id"`
	Detector       string    `json:"detector"`
	Kind           Kind      `json:"kind"`
	Severity       Severity  `json:"severity"`
	Confidence     float64   `json:"confidence"`
	Path           string    `json:"path"`
	Line           int       `json:"line"`
	ContextPreview string    `json:"context_preview,omitempty"`
	ValuePreview   string    `json:"value_preview"`
	FirstSeenAt    time.Time `json:"first_seen_at"`
	LastSeenAt     time.Time `json:"last_seen_at"`
	Status         Status    `json:"status"`
}

// SkipReason explains why a path produced no findings.
type SkipReason string

const (
	SkipNone      SkipReason = ""
	SkipExcluded  SkipReason = "excluded"
	SkipOversized SkipReason = "oversized"
	SkipBinary    SkipReason = "binary"
	SkipUnread    SkipReason = "unreadable"
	SkipUnchanged SkipReason = "unchanged"
)

// ScanResult is the orchestrator's output for one file version.
type ScanResult struct {
	Path     string     `json:"path"`
	Findings []Finding  `json:"findings"`
	Resolved []string   `json:"resolved,omitempty"` // fingerprints resolved this pass
	Skipped  bool       `json:"skipped,omitempty"`
	Reason   SkipReason `json:"reason,omitempty"`
}

// EventKind tags finding lifecycle transitions on the live stream.
type EventKind string

const (
	EventNew      EventKind = "new"
	EventResolved EventKind = "resolved"
)

// Event is a finding transition delivered to the audit sink and to live
// subscribers (dashboard, CLI watch output).
type Event struct {
	Kind    EventKind `json:"kind"`
	Finding Finding   `json:"finding"`
	At      time.Time `json:"at"`
}
