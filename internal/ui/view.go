package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"TrafficLens/internal/stats"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	headerBgStyle = lipgloss.NewStyle().Background(lipgloss.Color("235"))
	colHeadStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("255"))
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("235")).Align(lipgloss.Center)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.renderMetrics())
	s.WriteString("\n")

	if m.loadErr != "" {
		s.WriteString(m.renderLoadError())
	} else if m.viewMode == ViewModeTable {
		s.WriteString(m.renderTable())
	} else {
		s.WriteString(m.renderCharts())
	}

	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(" Traffic Lens ")
	right := dimStyle.Padding(0, 1).Render(m.status)

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, title,
		lipgloss.NewStyle().Width(gap).Render(""), right)
	return headerBgStyle.Width(m.width).Render(line)
}

func (m Model) renderMetrics() string {
	selection := allProtocols
	if m.protocolIdx > 0 && m.protocolIdx < len(m.protocols) {
		selection = m.protocols[m.protocolIdx]
	}
	s := stats.Summarize(m.filtered)
	line := fmt.Sprintf(
		" Filter: %s | Packets: %d/%d | Data: %s | Avg: %.0f B | Top proto: %s | Top dest: %s",
		selection, len(m.filtered), len(m.records),
		formatBytes(s.TotalBytes), s.AvgPacketSize,
		orNA(s.TopProtocol), orNA(s.TopDestIP),
	)
	return dimStyle.Width(m.width).Render(line)
}

func (m Model) renderLoadError() string {
	msg := fmt.Sprintf("Failed to load dataset\n\n%s\n\nPress r to retry", m.loadErr)
	return errorStyle.
		Align(lipgloss.Center).
		Width(m.width).
		Height(m.viewportHeight()).
		Render(msg)
}

func (m Model) renderTable() string {
	rows := m.visibleRows()
	viewHeight := m.viewportHeight()

	if len(rows) == 0 {
		return dimStyle.
			Align(lipgloss.Center).
			Width(m.width).
			Height(viewHeight).
			Render("No records match the current filter")
	}

	var lines []string
	header := fmt.Sprintf("%-20s %-16s %-16s %-9s %7s %6s",
		"Timestamp", "Source IP", "Dest IP", "Protocol", "Length", "Port")
	lines = append(lines, colHeadStyle.Render(header))

	endIdx := m.scrollOffset + viewHeight - 1
	if endIdx > len(rows) {
		endIdx = len(rows)
	}
	for i := m.scrollOffset; i < endIdx; i++ {
		r := rows[i]
		line := fmt.Sprintf("%-20s %-16s %-16s %-9s %7d %6d",
			r.Timestamp,
			truncateString(r.SourceIP, 16),
			truncateString(r.DestIP, 16),
			truncateString(r.Protocol, 9),
			r.Length,
			r.Port,
		)
		style := lipgloss.NewStyle()
		if i == m.selectedIndex {
			style = selectedStyle
		}
		lines = append(lines, style.Width(m.width).Render(line))
	}

	for len(lines) < viewHeight {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderCharts() string {
	viewHeight := m.viewportHeight()

	counts := stats.ProtocolCounts(m.filtered)
	protoEntries := make([]barEntry, 0, len(counts))
	for label, count := range counts {
		protoEntries = append(protoEntries, barEntry{label, count})
	}
	// Map order is random; render by descending count, label on ties.
	sort.Slice(protoEntries, func(i, j int) bool {
		if protoEntries[i].count != protoEntries[j].count {
			return protoEntries[i].count > protoEntries[j].count
		}
		return protoEntries[i].label < protoEntries[j].label
	})

	top, err := stats.TopDestinations(m.filtered, m.cfg.Viewer.TopN)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	destEntries := make([]barEntry, 0, len(top))
	for _, d := range top {
		destEntries = append(destEntries, barEntry{d.DestIP, d.Count})
	}

	var s strings.Builder
	s.WriteString(renderBarChart("Protocol Distribution", protoEntries, m.width))
	s.WriteString("\n")
	s.WriteString(renderBarChart(fmt.Sprintf("Top %d Destination IPs", m.cfg.Viewer.TopN), destEntries, m.width))

	rendered := strings.Split(s.String(), "\n")
	for len(rendered) < viewHeight {
		rendered = append(rendered, "")
	}
	if len(rendered) > viewHeight {
		rendered = rendered[:viewHeight]
	}
	return strings.Join(rendered, "\n")
}

type barEntry struct {
	label string
	count int
}

// renderBarChart draws one horizontal bar per entry, scaled to the widest
// count.
func renderBarChart(title string, entries []barEntry, width int) string {
	var s strings.Builder
	s.WriteString(colHeadStyle.Render(" " + title))
	s.WriteString("\n")

	if len(entries) == 0 {
		s.WriteString(dimStyle.Render("  (no data)"))
		s.WriteString("\n")
		return s.String()
	}

	max := entries[0].count
	for _, e := range entries {
		if e.count > max {
			max = e.count
		}
	}

	barWidth := width - 32
	if barWidth < 10 {
		barWidth = 10
	}
	for _, e := range entries {
		n := e.count * barWidth / max
		if n < 1 {
			n = 1
		}
		s.WriteString(fmt.Sprintf("  %-16s %s %d\n",
			truncateString(e.label, 16),
			barStyle.Render(strings.Repeat("█", n)),
			e.count,
		))
	}
	return s.String()
}

func (m Model) renderFooter() string {
	help := " q:quit | ?:help | tab:charts | p:protocol filter | c:clear | r:reload | j/k:navigate "
	if m.viewMode == ViewModeCharts {
		help = " q:quit | ?:help | tab:table | p:protocol filter | c:clear | r:reload "
	}
	return footerStyle.Width(m.width).Render(help)
}

func (m Model) renderHelp() string {
	helpText := `
 Traffic Lens - Help

 Navigation:
   j/↓     Move down
   k/↑     Move up
   g       Go to top
   G       Go to bottom
   Ctrl+d  Page down
   Ctrl+u  Page up

 Actions:
   tab     Toggle table/charts view
   p       Cycle the protocol filter
   c       Clear the filter
   r       Reload the dataset from disk
   ?/h     Toggle this help
   q       Quit

 Press any key to return...`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(helpText)
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
