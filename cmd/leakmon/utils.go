package main

import (
	"time"

	"github.com/leakmon/leakmon/internal/types"
)

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickFloat(cli float64, local, global *float64) float64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

func pickDuration(cli time.Duration, local, global *string) time.Duration {
	if cli != 0 {
		return cli
	}
	for _, s := range []*string{local, global} {
		if s != nil {
			if d, err := time.ParseDuration(*s); err == nil {
				return d
			}
		}
	}
	return 0
}

// severityRank orders severities for the fail-on threshold.
func severityRank(s types.Severity) int {
	switch s {
	case types.SevHigh:
		return 3
	case types.SevMed:
		return 2
	case types.SevLow:
		return 1
	}
	return 0
}

// shouldFail reports whether any finding meets the fail-on threshold.
// An empty or "never" threshold disables the non-zero exit.
func shouldFail(findings []types.Finding, failOn string) bool {
	var min int
	switch failOn {
	case "low":
		min = 1
	case "medium":
		min = 2
	case "high":
		min = 3
	default:
		return false
	}
	for _, f := range findings {
		if severityRank(f.Severity) >= min {
			return true
		}
	}
	return false
}
