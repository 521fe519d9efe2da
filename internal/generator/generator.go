// Package generator synthesizes mock traffic datasets. Synthesis itself is a
// pure, seedable function; writing the dataset file is a separate guarded side
// effect so generation stays deterministically testable.
package generator

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"TrafficLens/internal/config"
	"TrafficLens/internal/core/model"
)

// Packet sizes are drawn uniformly from a realistic Ethernet payload range.
const (
	minPacketLength = 64
	maxPacketLength = 1500
)

// wellKnownPorts maps protocol labels to their conventional destination port.
var wellKnownPorts = map[string]int{
	"HTTP":  80,
	"HTTPS": 443,
	"SSH":   22,
	"DNS":   53,
	"FTP":   21,
}

// commonPorts is the draw pool for raw TCP/UDP traffic; one extra slot in the
// draw selects a random ephemeral port instead.
var commonPorts = []int{80, 443, 21, 22, 23, 53, 110, 143, 3389}

// Generate synthesizes cfg.Count records. Output is deterministic for a given
// config: the same seed always yields the same dataset. Timestamps advance a
// base time by a random 1..MaxStepSeconds increment per row, so the dataset is
// chronologically ordered. Source and destination addresses are drawn from a
// small fixed pool mixing private-range and random public hosts, which gives
// repeated runs overlapping, analyzable traffic concentrations.
func Generate(cfg config.GeneratorConfig) ([]model.TrafficRecord, error) {
	base, err := time.Parse(model.TimestampLayout, cfg.BaseTime)
	if err != nil {
		return nil, fmt.Errorf("invalid base time %q: %w", cfg.BaseTime, err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	pool := buildAddressPool(rng, cfg.InternalHosts, cfg.ExternalHosts)

	records := make([]model.TrafficRecord, 0, cfg.Count)
	ts := base
	for i := 0; i < cfg.Count; i++ {
		ts = ts.Add(time.Duration(rng.Intn(cfg.MaxStepSeconds)+1) * time.Second)
		protocol := cfg.Protocols[rng.Intn(len(cfg.Protocols))]

		records = append(records, model.TrafficRecord{
			Timestamp: ts.Format(model.TimestampLayout),
			SourceIP:  pool[rng.Intn(len(pool))],
			DestIP:    pool[rng.Intn(len(pool))],
			Protocol:  protocol,
			Length:    rng.Intn(maxPacketLength-minPacketLength+1) + minPacketLength,
			Port:      drawPort(rng, protocol),
		})
	}
	return records, nil
}

// buildAddressPool draws internal hosts cycling through the three private
// ranges, then external hosts with fully random public-looking addresses.
func buildAddressPool(rng *rand.Rand, internal, external int) []string {
	pool := make([]string, 0, internal+external)
	for i := 0; i < internal; i++ {
		switch i % 3 {
		case 0:
			pool = append(pool, fmt.Sprintf("192.168.1.%d", rng.Intn(253)+2))
		case 1:
			pool = append(pool, fmt.Sprintf("10.0.0.%d", rng.Intn(253)+2))
		case 2:
			pool = append(pool, fmt.Sprintf("172.16.%d.%d", rng.Intn(31)+1, rng.Intn(253)+2))
		}
	}
	for i := 0; i < external; i++ {
		pool = append(pool, fmt.Sprintf("%d.%d.%d.%d",
			rng.Intn(254)+1, rng.Intn(254)+1, rng.Intn(254)+1, rng.Intn(254)+1))
	}
	return pool
}

// drawPort picks the protocol's well-known port where one exists. Raw TCP/UDP
// draws from the common-port list or, one time in ten, the ephemeral range.
// Anything else gets a random port.
func drawPort(rng *rand.Rand, protocol string) int {
	if port, ok := wellKnownPorts[protocol]; ok {
		return port
	}
	if protocol == "TCP" || protocol == "UDP" {
		if idx := rng.Intn(len(commonPorts) + 1); idx < len(commonPorts) {
			return commonPorts[idx]
		}
		return rng.Intn(65535-1024) + 1024
	}
	return rng.Intn(65535) + 1
}

// WriteIfAbsent writes the records to path as a CSV dataset, header first,
// unless the file already exists. An existing file is never touched, so a
// second call is a no-op and leaves it byte-identical. The rows are written to
// a temp file in the target directory and renamed into place; on failure the
// temp file is removed and no partial dataset is left behind. The returned
// bool reports whether the file was created.
func WriteIfAbsent(path string, records []model.TrafficRecord) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat dataset file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".dataset-*.csv")
	if err != nil {
		return false, fmt.Errorf("failed to create temp dataset file: %w", err)
	}

	if err := writeCSV(tmp, records); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return false, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return false, fmt.Errorf("failed to close temp dataset file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return false, fmt.Errorf("failed to place dataset file: %w", err)
	}
	return true, nil
}

func writeCSV(f *os.File, records []model.TrafficRecord) error {
	w := csv.NewWriter(f)
	if err := w.Write(model.CSVHeader); err != nil {
		return fmt.Errorf("failed to write dataset header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(r.CSVRow()); err != nil {
			return fmt.Errorf("failed to write dataset row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush dataset rows: %w", err)
	}
	return nil
}
