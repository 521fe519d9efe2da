// Package store loads the on-disk dataset into an immutable in-memory
// sequence of records. It never generates data itself; callers decide whether
// to invoke the generator before a load.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"TrafficLens/internal/core/model"
	"TrafficLens/internal/record"
)

var (
	// ErrDatasetNotFound reports a missing dataset file. The caller decides
	// whether to trigger generation.
	ErrDatasetNotFound = errors.New("dataset file not found")

	// ErrEmptyDataset reports a dataset file that yielded zero valid records,
	// distinct from a merely missing file.
	ErrEmptyDataset = errors.New("dataset contains no valid records")
)

// Load reads the dataset file at path into memory. Each row is parsed by the
// record schema; rows failing validation are skipped and counted in
// Dataset.Skipped rather than failing the load. In-memory order matches
// on-disk row order, with no dedup and no sorting. Every call reads the file
// fresh; nothing is cached across calls.
func Load(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%q: %w", path, ErrDatasetNotFound)
		}
		return nil, fmt.Errorf("failed to open dataset file %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row width is validated by the schema

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%q has no header row: %w", path, ErrEmptyDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	ds := &model.Dataset{}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed line (e.g. a stray quote) is treated like any other
			// invalid row: counted and skipped.
			ds.Skipped++
			continue
		}

		rec, err := record.ParseRow(row)
		if err != nil {
			ds.Skipped++
			continue
		}
		ds.Records = append(ds.Records, rec)
	}

	if len(ds.Records) == 0 {
		return nil, fmt.Errorf("%q: %w", path, ErrEmptyDataset)
	}
	return ds, nil
}

func checkHeader(header []string) error {
	if len(header) != len(model.CSVHeader) {
		return fmt.Errorf("unexpected dataset header: got %d columns, want %d", len(header), len(model.CSVHeader))
	}
	for i, want := range model.CSVHeader {
		if header[i] != want {
			return fmt.Errorf("unexpected dataset header: column %d is %q, want %q", i, header[i], want)
		}
	}
	return nil
}
