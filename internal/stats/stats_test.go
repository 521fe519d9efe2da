package stats

import (
	"errors"
	"reflect"
	"testing"

	"TrafficLens/internal/core/model"
)

func recordsWithDests(dests ...string) []model.TrafficRecord {
	records := make([]model.TrafficRecord, len(dests))
	for i, d := range dests {
		records[i] = model.TrafficRecord{
			Timestamp: "2024-03-01 00:00:00",
			SourceIP:  "192.168.1.10",
			DestIP:    d,
			Protocol:  "TCP",
			Length:    100,
			Port:      443,
		}
	}
	return records
}

func TestProtocolCounts(t *testing.T) {
	records := []model.TrafficRecord{
		{Protocol: "TCP"}, {Protocol: "UDP"}, {Protocol: "TCP"},
		{Protocol: "DNS"}, {Protocol: "TCP"},
	}

	counts := ProtocolCounts(records)
	want := map[string]int{"TCP": 3, "UDP": 1, "DNS": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("ProtocolCounts = %v, want %v", counts, want)
	}

	// Counts sum to the record total when every record has a protocol.
	total := 0
	for _, c := range counts {
		total += c
	}
	if total != len(records) {
		t.Errorf("counts sum to %d, want %d", total, len(records))
	}
}

func TestProtocolCounts_Empty(t *testing.T) {
	counts := ProtocolCounts(nil)
	if len(counts) != 0 {
		t.Errorf("ProtocolCounts(nil) = %v, want empty map", counts)
	}
}

func TestProtocols_Sorted(t *testing.T) {
	records := []model.TrafficRecord{
		{Protocol: "UDP"}, {Protocol: "DNS"}, {Protocol: "TCP"}, {Protocol: "DNS"},
	}
	got := Protocols(records)
	want := []string{"DNS", "TCP", "UDP"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Protocols = %v, want %v", got, want)
	}
}

func TestTopDestinations(t *testing.T) {
	// Dests [A,A,B,C,A]: A ranks first with 3; B beats C on the tie because
	// it appears earlier in the input.
	records := recordsWithDests("10.0.0.1", "10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.1")

	got, err := TopDestinations(records, 2)
	if err != nil {
		t.Fatalf("TopDestinations failed: %v", err)
	}
	want := []DestCount{
		{DestIP: "10.0.0.1", Count: 3},
		{DestIP: "10.0.0.2", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopDestinations = %v, want %v", got, want)
	}
}

func TestTopDestinations_TieBreakByFirstAppearance(t *testing.T) {
	records := recordsWithDests("10.0.0.9", "10.0.0.1", "10.0.0.5", "10.0.0.1", "10.0.0.5", "10.0.0.9")

	got, err := TopDestinations(records, 3)
	if err != nil {
		t.Fatalf("TopDestinations failed: %v", err)
	}
	want := []DestCount{
		{DestIP: "10.0.0.9", Count: 2},
		{DestIP: "10.0.0.1", Count: 2},
		{DestIP: "10.0.0.5", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tied counts not in first-appearance order: %v", got)
	}
}

func TestTopDestinations_TruncatesToDistinct(t *testing.T) {
	records := recordsWithDests("10.0.0.1", "10.0.0.2")

	got, err := TopDestinations(records, 5)
	if err != nil {
		t.Fatalf("TopDestinations failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected min(n, distinct) = 2 entries, got %d", len(got))
	}
}

func TestTopDestinations_Empty(t *testing.T) {
	got, err := TopDestinations(nil, 5)
	if err != nil {
		t.Fatalf("TopDestinations failed on empty input: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("TopDestinations(nil, 5) = %v, want empty", got)
	}
}

func TestTopDestinations_InvalidLimit(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := TopDestinations(recordsWithDests("10.0.0.1"), n); !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("n=%d: expected ErrInvalidLimit, got %v", n, err)
		}
	}
}

func TestTopDestinations_SortedDescending(t *testing.T) {
	records := recordsWithDests(
		"10.0.0.3",
		"10.0.0.1", "10.0.0.1", "10.0.0.1",
		"10.0.0.2", "10.0.0.2",
	)
	got, err := TopDestinations(records, 10)
	if err != nil {
		t.Fatalf("TopDestinations failed: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Count > got[i-1].Count {
			t.Fatalf("ranking not descending: %v", got)
		}
	}
}

func TestSummarize(t *testing.T) {
	records := []model.TrafficRecord{
		{Timestamp: "2024-03-01 00:00:05", SourceIP: "192.168.1.10", DestIP: "10.0.0.5", Protocol: "TCP", Length: 100},
		{Timestamp: "2024-03-01 00:00:09", SourceIP: "192.168.1.11", DestIP: "10.0.0.6", Protocol: "UDP", Length: 200},
		{Timestamp: "2024-03-01 00:00:14", SourceIP: "192.168.1.10", DestIP: "10.0.0.5", Protocol: "TCP", Length: 300},
	}

	s := Summarize(records)
	if s.TotalPackets != 3 {
		t.Errorf("TotalPackets = %d, want 3", s.TotalPackets)
	}
	if s.TotalBytes != 600 {
		t.Errorf("TotalBytes = %d, want 600", s.TotalBytes)
	}
	if s.AvgPacketSize != 200 {
		t.Errorf("AvgPacketSize = %v, want 200", s.AvgPacketSize)
	}
	if s.TopProtocol != "TCP" || s.TopSourceIP != "192.168.1.10" || s.TopDestIP != "10.0.0.5" {
		t.Errorf("top values wrong: %+v", s)
	}
	if s.UniqueProtocols != 2 {
		t.Errorf("UniqueProtocols = %d, want 2", s.UniqueProtocols)
	}
	if s.FirstSeen != "2024-03-01 00:00:05" || s.LastSeen != "2024-03-01 00:00:14" {
		t.Errorf("time range wrong: %s .. %s", s.FirstSeen, s.LastSeen)
	}
}

func TestSummarize_ModeTieBreak(t *testing.T) {
	// UDP and TCP both occur twice; UDP appears first and wins the tie.
	records := []model.TrafficRecord{
		{Timestamp: "2024-03-01 00:00:05", Protocol: "UDP", SourceIP: "a", DestIP: "x"},
		{Timestamp: "2024-03-01 00:00:06", Protocol: "TCP", SourceIP: "b", DestIP: "y"},
		{Timestamp: "2024-03-01 00:00:07", Protocol: "UDP", SourceIP: "a", DestIP: "x"},
		{Timestamp: "2024-03-01 00:00:08", Protocol: "TCP", SourceIP: "b", DestIP: "y"},
	}
	if s := Summarize(records); s.TopProtocol != "UDP" {
		t.Errorf("TopProtocol = %q, want UDP (first appearance wins ties)", s.TopProtocol)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero Summary", s)
	}
}
