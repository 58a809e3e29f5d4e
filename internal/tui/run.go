package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/leakmon/leakmon/internal/engine"
	"github.com/leakmon/leakmon/internal/types"
)

// Run starts the dashboard over a live event subscription and blocks until
// the user quits.
func Run(snapshot []types.Finding, events <-chan types.Event, stats func() engine.Stats) error {
	m := NewModel(snapshot, events, stats)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
