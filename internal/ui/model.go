// Package ui renders the interactive dataset viewer. It is a thin adapter:
// every number on screen comes from the store, filter, and stats packages.
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"TrafficLens/internal/config"
	"TrafficLens/internal/core/model"
	"TrafficLens/internal/filter"
	"TrafficLens/internal/stats"
	"TrafficLens/internal/store"
)

type ViewMode int

const (
	ViewModeTable ViewMode = iota
	ViewModeCharts
)

// allProtocols is the sentinel filter selection that matches everything.
const allProtocols = "All"

type Model struct {
	cfg *config.Config

	records   []model.TrafficRecord
	filtered  []model.TrafficRecord
	skipped   int
	protocols []string

	// Index into protocols; 0 selects "All".
	protocolIdx int

	viewMode      ViewMode
	width         int
	height        int
	scrollOffset  int
	selectedIndex int
	showHelp      bool
	status        string
	loadErr       string
}

func NewModel(cfg *config.Config) Model {
	return Model{
		cfg:      cfg,
		viewMode: ViewModeTable,
		status:   "Loading dataset...",
	}
}

type datasetMsg struct {
	dataset *model.Dataset
	err     error
}

func (m Model) loadDataset() tea.Cmd {
	return func() tea.Msg {
		ds, err := store.Load(m.cfg.Dataset.Path)
		return datasetMsg{dataset: ds, err: err}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadDataset(), tea.EnterAltScreen)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case datasetMsg:
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			m.status = "Load failed"
			return m, nil
		}
		m.loadErr = ""
		m.records = msg.dataset.Records
		m.skipped = msg.dataset.Skipped
		m.protocols = append([]string{allProtocols}, stats.Protocols(m.records)...)
		if m.protocolIdx >= len(m.protocols) {
			m.protocolIdx = 0
		}
		m.applyFilter()
		m.status = fmt.Sprintf("Loaded %d records (%d skipped) from %s",
			len(m.records), m.skipped, m.cfg.Dataset.Path)
		return m, nil
	}

	return m, nil
}

// handleKeyPress has a value receiver on purpose: Update must always wrap a
// Model value, never *Model, in the returned tea.Model.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?", "h":
		m.showHelp = true
		return m, nil

	case "tab":
		if m.viewMode == ViewModeTable {
			m.viewMode = ViewModeCharts
		} else {
			m.viewMode = ViewModeTable
		}
		return m, nil

	case "r":
		m.status = "Reloading dataset..."
		return m, m.loadDataset()

	case "p":
		if len(m.protocols) > 0 {
			m.protocolIdx = (m.protocolIdx + 1) % len(m.protocols)
			m.applyFilter()
		}
		return m, nil

	case "c":
		m.protocolIdx = 0
		m.applyFilter()
		return m, nil

	case "j", "down":
		if m.selectedIndex < len(m.visibleRows())-1 {
			m.selectedIndex++
			m.ensureSelectedVisible()
		}
		return m, nil

	case "k", "up":
		if m.selectedIndex > 0 {
			m.selectedIndex--
			m.ensureSelectedVisible()
		}
		return m, nil

	case "g":
		m.selectedIndex = 0
		m.scrollOffset = 0
		return m, nil

	case "G":
		m.selectedIndex = len(m.visibleRows()) - 1
		if m.selectedIndex < 0 {
			m.selectedIndex = 0
		}
		m.ensureSelectedVisible()
		return m, nil

	case "ctrl+d":
		m.scrollDown(m.viewportHeight() / 2)
		return m, nil

	case "ctrl+u":
		m.scrollUp(m.viewportHeight() / 2)
		return m, nil
	}

	return m, nil
}

// applyFilter narrows the working set through the filter engine using the
// current protocol selection.
func (m *Model) applyFilter() {
	criteria := filter.Criteria{}
	if m.protocolIdx > 0 && m.protocolIdx < len(m.protocols) {
		criteria[model.FieldProtocol] = m.protocols[m.protocolIdx]
	}

	// Criteria built here only name known fields, so Apply cannot fail.
	filtered, err := filter.Apply(m.records, criteria)
	if err != nil {
		m.loadErr = err.Error()
		return
	}
	m.filtered = filtered

	if m.selectedIndex >= len(m.visibleRows()) {
		m.selectedIndex = len(m.visibleRows()) - 1
	}
	if m.selectedIndex < 0 {
		m.selectedIndex = 0
	}
	m.scrollOffset = 0
}

// visibleRows caps the table at the configured row limit, matching the API's
// data endpoint.
func (m Model) visibleRows() []model.TrafficRecord {
	if len(m.filtered) > m.cfg.Viewer.MaxRows {
		return m.filtered[:m.cfg.Viewer.MaxRows]
	}
	return m.filtered
}

func (m *Model) scrollDown(lines int) {
	maxOffset := len(m.visibleRows()) - m.viewportHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	m.scrollOffset += lines
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
}

func (m *Model) scrollUp(lines int) {
	m.scrollOffset -= lines
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

func (m *Model) ensureSelectedVisible() {
	viewHeight := m.viewportHeight()
	if m.selectedIndex < m.scrollOffset {
		m.scrollOffset = m.selectedIndex
	} else if m.selectedIndex >= m.scrollOffset+viewHeight {
		m.scrollOffset = m.selectedIndex - viewHeight + 1
	}
}

func (m Model) viewportHeight() int {
	// Account for header, metrics, and footer
	return m.height - 6
}
