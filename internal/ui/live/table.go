package live

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"govorun/internal/store"
)

// defaultColumns defines the monitor table layout.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "Time", Width: 8},
		{Title: "Outcome", Width: 12},
		{Title: "Att", Width: 3},
		{Title: "HTTP", Width: 4},
		{Title: "Dur", Width: 6},
		{Title: "Utterance", Width: 28},
		{Title: "Reply", Width: 36},
	}
}

// tableStyles returns table styles for the monitor.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252")).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	return styles
}

// rowsForCalls converts call records into table rows.
func rowsForCalls(calls []store.CallRecord) []table.Row {
	rows := make([]table.Row, 0, len(calls))
	for _, call := range calls {
		rows = append(rows, table.Row{
			formatWhen(call.CreatedAt),
			call.Outcome,
			fmt.Sprint(call.Attempts),
			formatStatus(call.Status),
			formatDuration(call.DurationMs),
			truncateCell(call.Utterance, 28),
			truncateCell(call.Reply, 36),
		})
	}
	return rows
}
