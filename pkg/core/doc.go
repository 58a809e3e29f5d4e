// Package core provides a small, stable facade over LeakMon's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so third-party tools can depend on a stable import path without
// reaching into internal packages.
//
// Example:
//
//	cfg := core.Config{Roots: []string{"."}}
//	findings, err := core.Scan(cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, findings)
package core
