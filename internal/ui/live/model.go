package live

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"govorun/internal/store"
)

// Fetcher supplies recent call records for each refresh.
type Fetcher interface {
	FetchRecent(ctx context.Context, limit int) ([]store.CallRecord, error)
}

// Model renders a live call monitor using Bubble Tea.
type Model struct {
	fetcher      Fetcher
	table        table.Model
	limit        int
	pollInterval time.Duration
	endpoint     string
	noColor      bool

	calls     []store.CallRecord
	refreshed time.Time
	fetchErr  error
}

// Options configures the live monitor model.
type Options struct {
	Endpoint     string
	Limit        int
	PollInterval time.Duration
	NoColor      bool
}

// NewModel constructs a monitor over a call fetcher.
func NewModel(fetcher Fetcher, opts Options) Model {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	t := table.New(
		table.WithColumns(defaultColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	return Model{
		fetcher:      fetcher,
		table:        t,
		limit:        limit,
		pollInterval: interval,
		endpoint:     opts.Endpoint,
		noColor:      opts.NoColor,
	}
}

// callsMsg carries one refresh result.
type callsMsg struct {
	calls []store.CallRecord
	err   error
}

// pollMsg triggers the next refresh.
type pollMsg time.Time

// Init fetches immediately and schedules polling.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), poll(m.pollInterval))
}

// Update consumes refresh results, poll ticks, and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-4, 1))
		return m, nil
	case tea.KeyMsg:
		switch typed.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.fetch()
		}
	case callsMsg:
		m.fetchErr = typed.err
		if typed.err == nil {
			m.calls = typed.calls
			m.refreshed = time.Now()
			m.table.SetRows(rowsForCalls(m.calls))
		}
		return m, nil
	case pollMsg:
		return m, tea.Batch(m.fetch(), poll(m.pollInterval))
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the monitor.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.table.View(),
		m.renderFooter(),
	)
}

// fetch loads recent calls off the UI loop.
func (m Model) fetch() tea.Cmd {
	fetcher, limit := m.fetcher, m.limit
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		calls, err := fetcher.FetchRecent(ctx, limit)
		return callsMsg{calls: calls, err: err}
	}
}

// poll emits the next refresh trigger.
func poll(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return pollMsg(t) })
}

func (m Model) renderHeader() string {
	title := fmt.Sprintf("govorun monitor — %s", m.endpoint)
	if m.noColor {
		return title
	}
	return lipgloss.NewStyle().Bold(true).Render(title)
}

func (m Model) renderFooter() string {
	status := "never refreshed"
	if !m.refreshed.IsZero() {
		status = fmt.Sprintf("%d calls, refreshed %s", len(m.calls), formatWhen(m.refreshed))
	}
	if m.fetchErr != nil {
		status = fmt.Sprintf("%s — fetch error: %v", status, m.fetchErr)
	}
	footer := fmt.Sprintf("%s · q quit · r refresh", status)
	if m.noColor {
		return footer
	}
	return lipgloss.NewStyle().Faint(true).Render(footer)
}
