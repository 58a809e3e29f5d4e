// Package compose turns raw detector matches into calibrated confidence
// values, applying context-aware suppression before anything reaches the
// deduplicator. Severity passes through untouched: it classifies the type of
// risk, confidence classifies certainty of the match.
package compose

import (
	"strings"

	"github.com/leakmon/leakmon/internal/detectors"
	"github.com/leakmon/leakmon/internal/types"
)

// Options tunes composition. Zero values fall back to defaults; the
// thresholds are heuristics, not load-bearing constants.
type Options struct {
	MinConfidence   float64  // floor below which a match is suppressed, default 0.3
	ContextPenalty  float64  // subtracted when inline markers surround a match, default 0.4
	ChecksumBonus   float64  // added when an auxiliary checksum passes, default 0.05
	TestPathMarkers []string // path components marking test-data roots
	InlineMarkers   []string // words adjacent to a match that mark fake data
}

func (o Options) withDefaults() Options {
	if o.MinConfidence <= 0 {
		o.MinConfidence = 0.3
	}
	if o.ContextPenalty <= 0 {
		o.ContextPenalty = 0.4
	}
	if o.ChecksumBonus <= 0 {
		o.ChecksumBonus = 0.05
	}
	if o.TestPathMarkers == nil {
		o.TestPathMarkers = []string{"testdata", "fixtures", "test_data"}
	}
	if o.InlineMarkers == nil {
		o.InlineMarkers = []string{"example", "dummy", "fake", "sample", "placeholder", "test"}
	}
	return o
}

// Compose returns the calibrated confidence for a raw match and whether it is
// suppressed. Suppressed matches are dropped by the orchestrator; they are
// not findings and are never audited.
func Compose(m types.RawMatch, opts Options) (confidence float64, suppressed bool) {
	opts = opts.withDefaults()
	confidence = prior(m)

	if r, ok := detectors.ByID(m.Detector); ok && r.Checksum != nil {
		if r.Checksum(m.Text) {
			confidence += opts.ChecksumBonus
		} else {
			// a failing check digit means a coincidental match
			return 0, true
		}
	}

	if onTestPath(m.Path, opts) {
		// files under a test-data root are fake by convention
		return 0, true
	}
	if inlineMarked(m, opts) {
		confidence -= opts.ContextPenalty
	}

	if confidence > 0.99 {
		confidence = 0.99
	}
	if confidence < opts.MinConfidence {
		return confidence, true
	}
	return confidence, false
}

// prior is the detector-specific base confidence. Structural rules carry a
// fixed prior; statistical matches scale with normalized entropy into the
// 0.5–0.85 band.
func prior(m types.RawMatch) float64 {
	if m.Kind == types.KindStatistical {
		c := 0.5 + 0.35*m.Entropy
		if c > 0.85 {
			c = 0.85
		}
		if c < 0.5 {
			c = 0.5
		}
		return c
	}
	if r, ok := detectors.ByID(m.Detector); ok && r.Prior > 0 {
		return r.Prior
	}
	return 0.9
}

func onTestPath(p string, opts Options) bool {
	p = strings.ToLower(strings.ReplaceAll(p, "\\", "/"))
	for _, part := range strings.Split(p, "/") {
		for _, marker := range opts.TestPathMarkers {
			if part == marker {
				return true
			}
		}
	}
	return false
}

func inlineMarked(m types.RawMatch, opts Options) bool {
	ctx := strings.ToLower(m.Context)
	// the match itself must not veto itself: only surrounding text counts
	ctx = strings.Replace(ctx, strings.ToLower(m.Text), "", 1)
	for _, marker := range opts.InlineMarkers {
		if strings.Contains(ctx, marker) {
			return true
		}
	}
	return false
}
