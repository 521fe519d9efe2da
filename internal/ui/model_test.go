package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"TrafficLens/internal/config"
	"TrafficLens/internal/core/model"
)

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := &config.Config{Viewer: config.ViewerConfig{TopN: 5, MaxRows: 200}}
	m := NewModel(cfg)

	ds := &model.Dataset{
		Records: []model.TrafficRecord{
			{Timestamp: "2024-03-01 00:00:05", SourceIP: "192.168.1.10", DestIP: "10.0.0.5", Protocol: "TCP", Length: 100, Port: 443},
			{Timestamp: "2024-03-01 00:00:09", SourceIP: "192.168.1.11", DestIP: "10.0.0.6", Protocol: "UDP", Length: 90, Port: 53},
			{Timestamp: "2024-03-01 00:00:14", SourceIP: "192.168.1.12", DestIP: "10.0.0.5", Protocol: "TCP", Length: 400, Port: 443},
		},
		Skipped: 1,
	}
	updated, _ := m.Update(datasetMsg{dataset: ds})
	return updated.(Model)
}

func TestModel_LoadsDataset(t *testing.T) {
	m := testModel(t)

	if len(m.records) != 3 || len(m.filtered) != 3 {
		t.Fatalf("dataset not loaded: %d records, %d filtered", len(m.records), len(m.filtered))
	}
	// "All" plus the two distinct protocols.
	if len(m.protocols) != 3 || m.protocols[0] != allProtocols {
		t.Errorf("protocol choices = %v", m.protocols)
	}
	if m.skipped != 1 {
		t.Errorf("skipped = %d, want 1", m.skipped)
	}
}

func TestModel_ProtocolFilterCycle(t *testing.T) {
	m := testModel(t)

	// First press selects "TCP" (labels are sorted after "All").
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = updated.(Model)
	if len(m.filtered) != 2 {
		t.Fatalf("TCP filter kept %d records, want 2", len(m.filtered))
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = updated.(Model)
	if len(m.filtered) != 1 {
		t.Fatalf("UDP filter kept %d records, want 1", len(m.filtered))
	}

	// Clearing restores the full set.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	m = updated.(Model)
	if len(m.filtered) != 3 {
		t.Errorf("clear left %d records, want 3", len(m.filtered))
	}
}

func TestModel_UpdateReturnsValueModel(t *testing.T) {
	m := testModel(t)

	// Every Update path must wrap a Model value, not *Model, or callers
	// asserting on the concrete type panic.
	for _, key := range []rune{'p', 'j', 'k', 'g', 'G', '?', 'r', 'c'} {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}})
		next, ok := updated.(Model)
		if !ok {
			t.Fatalf("Update after %q returned %T, want ui.Model", key, updated)
		}
		m = next
	}
}

func TestModel_LoadError(t *testing.T) {
	m := NewModel(&config.Config{})
	updated, _ := m.Update(datasetMsg{err: errFake{}})
	m = updated.(Model)
	if m.loadErr == "" {
		t.Error("load error not recorded")
	}
}

type errFake struct{}

func (errFake) Error() string { return "boom" }
