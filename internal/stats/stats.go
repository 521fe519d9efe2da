// Package stats computes derived statistics over record sequences. Every
// function here is pure: an empty input is a legitimate case and yields an
// empty result, never an error.
package stats

import (
	"errors"
	"sort"

	"TrafficLens/internal/core/model"
)

// ErrInvalidLimit reports a non-positive top-N limit.
var ErrInvalidLimit = errors.New("top-N limit must be a positive integer")

// DestCount is one entry of a destination ranking.
type DestCount struct {
	DestIP string `json:"dest_ip"`
	Count  int    `json:"count"`
}

// ProtocolCounts counts occurrences per distinct protocol label. The map is
// sparse: labels with zero occurrences are absent. Consumers that render the
// mapping are responsible for a deterministic order (sorted keys or count).
func ProtocolCounts(records []model.TrafficRecord) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Protocol]++
	}
	return counts
}

// Protocols returns the distinct protocol labels present in the input, sorted.
func Protocols(records []model.TrafficRecord) []string {
	counts := ProtocolCounts(records)
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// TopDestinations counts occurrences per destination IP and returns the
// min(n, distinct) most frequent, descending by count. The sort is stable
// over first-appearance order, so equal counts rank in input order and the
// result is reproducible for a given input ordering.
func TopDestinations(records []model.TrafficRecord, n int) ([]DestCount, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}

	index := make(map[string]int)
	ranked := []DestCount{}
	for _, r := range records {
		i, ok := index[r.DestIP]
		if !ok {
			i = len(ranked)
			index[r.DestIP] = i
			ranked = append(ranked, DestCount{DestIP: r.DestIP})
		}
		ranked[i].Count++
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// Summary holds the key metrics of a record set.
type Summary struct {
	TotalPackets    int     `json:"total_packets"`
	TotalBytes      int64   `json:"total_bytes"`
	AvgPacketSize   float64 `json:"avg_packet_size"`
	TopProtocol     string  `json:"top_protocol"`
	TopSourceIP     string  `json:"top_source_ip"`
	TopDestIP       string  `json:"top_dest_ip"`
	UniqueProtocols int     `json:"unique_protocols"`
	FirstSeen       string  `json:"first_seen"`
	LastSeen        string  `json:"last_seen"`
}

// Summarize computes the key metrics over a record set. Each "top" value is
// the most frequent one, with ties broken by first appearance. The zero
// Summary is returned for empty input.
func Summarize(records []model.TrafficRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	var totalBytes int64
	first, last := records[0].Timestamp, records[0].Timestamp
	for _, r := range records {
		totalBytes += int64(r.Length)
		if r.Timestamp < first {
			first = r.Timestamp
		}
		if r.Timestamp > last {
			last = r.Timestamp
		}
	}

	return Summary{
		TotalPackets:    len(records),
		TotalBytes:      totalBytes,
		AvgPacketSize:   float64(totalBytes) / float64(len(records)),
		TopProtocol:     mode(records, func(r model.TrafficRecord) string { return r.Protocol }),
		TopSourceIP:     mode(records, func(r model.TrafficRecord) string { return r.SourceIP }),
		TopDestIP:       mode(records, func(r model.TrafficRecord) string { return r.DestIP }),
		UniqueProtocols: len(ProtocolCounts(records)),
		FirstSeen:       first,
		LastSeen:        last,
	}
}

// mode returns the most frequent value of the keyed field, ties broken by
// first appearance in the input.
func mode(records []model.TrafficRecord, key func(model.TrafficRecord) string) string {
	counts := make(map[string]int)
	best, bestCount := "", 0
	for _, r := range records {
		k := key(r)
		counts[k]++
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}
