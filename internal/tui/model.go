package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leakmon/leakmon/internal/engine"
	"github.com/leakmon/leakmon/internal/types"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)

	sevHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sevMedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// severityText returns plain text for severity (ANSI codes break table truncation).
func severityText(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "HIGH"
	case types.SevMed:
		return "MED"
	case types.SevLow:
		return "LOW"
	default:
		return string(s)
	}
}

// Model is the live monitoring dashboard: a findings table fed by the
// engine's event stream, with a stats line at the bottom.
type Model struct {
	table    table.Model
	spinner  spinner.Model
	findings []types.Finding

	events <-chan types.Event
	stats  func() engine.Stats

	width, height int
	ready         bool
	quitting      bool
	statusMessage string
	statusTimeout *time.Time

	lastEventAt time.Time
}

type eventMsg types.Event

type tickMsg time.Time

// NewModel builds the dashboard over an engine event subscription. snapshot
// seeds the table with the current finding set.
func NewModel(snapshot []types.Finding, events <-chan types.Event, stats func() engine.Stats) Model {
	columns := []table.Column{
		{Title: "Sev", Width: 6},
		{Title: "Conf", Width: 5},
		{Title: "Detector", Width: 20},
		{Title: "Location", Width: 42},
		{Title: "Value", Width: 28},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true)
	t.SetStyles(st)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		table:    t,
		spinner:  sp,
		findings: append([]types.Finding(nil), snapshot...),
		events:   events,
		stats:    stats,
	}
	m.refreshRows()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events), tick())
}

func waitForEvent(ch <-chan types.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		h := msg.Height - 8
		if h < 4 {
			h = 4
		}
		m.table.SetHeight(h)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "c":
			return m.copySelection(), nil
		}

	case eventMsg:
		m.applyEvent(types.Event(msg))
		m.lastEventAt = time.Now()
		return m, waitForEvent(m.events)

	case tickMsg:
		if m.statusTimeout != nil && time.Now().After(*m.statusTimeout) {
			m.statusMessage = ""
			m.statusTimeout = nil
		}
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// applyEvent folds a finding transition into the table: new findings append
// or replace by fingerprint, resolutions remove the row.
func (m *Model) applyEvent(ev types.Event) {
	switch ev.Kind {
	case types.EventResolved:
		out := m.findings[:0]
		for _, f := range m.findings {
			if f.ID != ev.Finding.ID {
				out = append(out, f)
			}
		}
		m.findings = out
	default:
		replaced := false
		for i, f := range m.findings {
			if f.ID == ev.Finding.ID {
				m.findings[i] = ev.Finding
				replaced = true
				break
			}
		}
		if !replaced {
			m.findings = append(m.findings, ev.Finding)
		}
	}
	m.refreshRows()
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, len(m.findings))
	for i, f := range m.findings {
		rows[i] = table.Row{
			severityText(f.Severity),
			fmt.Sprintf("%.2f", f.Confidence),
			f.Detector,
			fmt.Sprintf("%s:%d", f.Path, f.Line),
			f.ValuePreview,
		}
	}
	m.table.SetRows(rows)
}

// copySelection puts the selected finding's location on the clipboard. The
// masked preview goes along; the raw value is not available to copy.
func (m Model) copySelection() Model {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.findings) {
		return m
	}
	f := m.findings[idx]
	text := fmt.Sprintf("%s:%d %s %s", f.Path, f.Line, f.Detector, f.ValuePreview)
	if err := clipboard.WriteAll(text); err != nil {
		m.setStatus("clipboard unavailable")
		return m
	}
	m.setStatus("copied " + f.Path)
	return m
}

func (m *Model) setStatus(s string) {
	m.statusMessage = s
	t := time.Now().Add(3 * time.Second)
	m.statusTimeout = &t
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  " + m.spinner.View() + " starting…"
	}

	title := titleStyle.Render("LeakMon — live monitor")

	var body string
	if len(m.findings) == 0 {
		body = emptyTextStyle.Width(m.width).Render("\nNo active findings. Watching for changes " + m.spinner.View() + "\n")
	} else {
		body = tableBorderStyle.Render(m.table.View())
	}

	return title + "\n" + body + "\n" + m.statusLine() + "\n"
}

func (m Model) statusLine() string {
	st := m.stats()
	high, med, low := 0, 0, 0
	for _, f := range m.findings {
		switch f.Severity {
		case types.SevHigh:
			high++
		case types.SevMed:
			med++
		default:
			low++
		}
	}
	sev := sevHighStyle.Render(fmt.Sprintf("high %d", high)) + "  " +
		sevMedStyle.Render(fmt.Sprintf("med %d", med)) + "  " +
		sevLowStyle.Render(fmt.Sprintf("low %d", low))
	counts := fmt.Sprintf(" scanned %d  skipped %d  errors %d  coalesced %d ",
		st.FilesScanned, st.FilesSkipped, st.DetectorErrors, st.Coalesced)
	line := sev + statusStyle.Render(counts)
	if m.statusMessage != "" {
		line += " " + m.statusMessage
	}
	if !m.lastEventAt.IsZero() {
		line += " last event " + m.lastEventAt.Format("15:04:05")
	}
	return line
}
