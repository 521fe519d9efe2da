// Package record validates and coerces raw dataset rows into TrafficRecords.
package record

import (
	"fmt"
	"strconv"
	"strings"

	"TrafficLens/internal/core/model"
)

// InvalidRowError reports a row that failed schema validation. Loaders recover
// from it by skipping the row; it is never fatal to a load.
type InvalidRowError struct {
	Reason string
}

func (e *InvalidRowError) Error() string {
	return "invalid row: " + e.Reason
}

// ParseRow validates a raw row of the dataset file and coerces it into a
// TrafficRecord. A row must carry exactly six non-blank fields in CSVHeader
// order, with Length and Port parsing as non-negative decimal integers. No
// other field has a closed-value constraint; in particular Protocol is an open
// set and kept as an opaque label.
func ParseRow(fields []string) (model.TrafficRecord, error) {
	if len(fields) != len(model.CSVHeader) {
		return model.TrafficRecord{}, &InvalidRowError{
			Reason: fmt.Sprintf("expected %d fields, got %d", len(model.CSVHeader), len(fields)),
		}
	}

	trimmed := make([]string, len(fields))
	for i, f := range fields {
		trimmed[i] = strings.TrimSpace(f)
		if trimmed[i] == "" {
			return model.TrafficRecord{}, &InvalidRowError{
				Reason: fmt.Sprintf("field %q is empty", model.CSVHeader[i]),
			}
		}
	}

	length, err := parseCount("Length", trimmed[4])
	if err != nil {
		return model.TrafficRecord{}, err
	}
	port, err := parseCount("Port", trimmed[5])
	if err != nil {
		return model.TrafficRecord{}, err
	}

	return model.TrafficRecord{
		Timestamp: trimmed[0],
		SourceIP:  trimmed[1],
		DestIP:    trimmed[2],
		Protocol:  trimmed[3],
		Length:    length,
		Port:      port,
	}, nil
}

// parseCount parses a non-negative decimal integer field.
func parseCount(column, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &InvalidRowError{Reason: fmt.Sprintf("field %q is not an integer: %q", column, value)}
	}
	if n < 0 {
		return 0, &InvalidRowError{Reason: fmt.Sprintf("field %q is negative: %d", column, n)}
	}
	return n, nil
}
