package core

import (
	"context"

	"github.com/leakmon/leakmon/internal/engine"
	"github.com/leakmon/leakmon/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type Finding = types.Finding
type Event = types.Event
type ScanResult = types.ScanResult
type Stats = engine.Stats

// Scan runs a single pass over the configured roots and returns the
// resulting deduplicated finding set.
func Scan(cfg Config) ([]Finding, error) {
	return ScanContext(context.Background(), cfg)
}

// ScanContext is Scan with caller-controlled cancellation.
func ScanContext(ctx context.Context, cfg Config) ([]Finding, error) {
	eng := engine.New(cfg)
	defer eng.Close()
	if _, err := eng.ScanOnce(ctx); err != nil {
		return nil, err
	}
	return eng.Findings(), nil
}

// ScanOnce runs a single pass and returns the per-file results, including
// skips with their reasons.
func ScanOnce(ctx context.Context, cfg Config) ([]ScanResult, error) {
	eng := engine.New(cfg)
	defer eng.Close()
	return eng.ScanOnce(ctx)
}

// Monitor is a running continuous-scan session. Feed it change
// notifications via Notify and consume transitions from Events.
type Monitor struct {
	eng    *engine.Engine
	watch  *engine.Watcher
	events <-chan types.Event
	cancel func()
}

// StartContinuous performs an initial full pass over the roots and then
// keeps scanning paths handed to Notify. Stop must be called to drain it.
func StartContinuous(ctx context.Context, cfg Config) (*Monitor, error) {
	eng := engine.New(cfg)
	events, cancel := eng.Subscribe(256)
	if _, err := eng.ScanOnce(ctx); err != nil {
		cancel()
		_ = eng.Close()
		return nil, err
	}
	return &Monitor{
		eng:    eng,
		watch:  eng.Watch(ctx),
		events: events,
		cancel: cancel,
	}, nil
}

// Notify reports a changed path (root-relative) under one of the configured
// roots. It never blocks.
func (m *Monitor) Notify(root, rel string) { m.watch.Notify(root, rel) }

// Events is the live stream of finding transitions. Slow consumers lose
// events rather than stalling the scanner.
func (m *Monitor) Events() <-chan Event { return m.events }

// Findings snapshots the current deduplicated finding set.
func (m *Monitor) Findings() []Finding { return m.eng.Findings() }

// Stats snapshots the engine counters.
func (m *Monitor) Stats() Stats { return m.eng.Stats() }

// Stop drains pending scans, flushes state, and releases the session.
func (m *Monitor) Stop() error {
	m.watch.Stop()
	m.cancel()
	return m.eng.Close()
}

// DetectorIDs returns the list of configured detector IDs.
// This is exposed for convenience to avoid importing internals directly.
func DetectorIDs() []string { return engine.DetectorIDs() }
