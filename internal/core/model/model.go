package model

import "strconv"

// TimestampLayout is the wall-clock format used for record timestamps, both in
// the dataset file and in JSON output.
const TimestampLayout = "2006-01-02 15:04:05"

// Filter field names. They match the JSON tags on TrafficRecord and the query
// parameters accepted by the API.
const (
	FieldTimestamp = "timestamp"
	FieldSourceIP  = "source_ip"
	FieldDestIP    = "dest_ip"
	FieldProtocol  = "protocol"
	FieldLength    = "length"
	FieldPort      = "port"
)

// FieldNames lists every filterable field in column order.
var FieldNames = []string{
	FieldTimestamp,
	FieldSourceIP,
	FieldDestIP,
	FieldProtocol,
	FieldLength,
	FieldPort,
}

// CSVHeader is the fixed column order of the dataset file.
var CSVHeader = []string{"Timestamp", "Source IP", "Dest IP", "Protocol", "Length", "Port"}

// TrafficRecord is a single synthesized packet observation.
type TrafficRecord struct {
	Timestamp string `json:"timestamp"`
	SourceIP  string `json:"source_ip"`
	DestIP    string `json:"dest_ip"`
	Protocol  string `json:"protocol"`
	Length    int    `json:"length"`
	Port      int    `json:"port"`
}

// Field returns the record's value for a filter field name, with numeric
// fields rendered in their decimal form. The second return value reports
// whether the name is a known field.
func (r TrafficRecord) Field(name string) (string, bool) {
	switch name {
	case FieldTimestamp:
		return r.Timestamp, true
	case FieldSourceIP:
		return r.SourceIP, true
	case FieldDestIP:
		return r.DestIP, true
	case FieldProtocol:
		return r.Protocol, true
	case FieldLength:
		return strconv.Itoa(r.Length), true
	case FieldPort:
		return strconv.Itoa(r.Port), true
	}
	return "", false
}

// CSVRow renders the record as a row of the dataset file, in CSVHeader order.
func (r TrafficRecord) CSVRow() []string {
	return []string{
		r.Timestamp,
		r.SourceIP,
		r.DestIP,
		r.Protocol,
		strconv.Itoa(r.Length),
		strconv.Itoa(r.Port),
	}
}

// Dataset is the ordered sequence of valid records loaded from the dataset
// file, plus the number of rows dropped during validation. Records preserves
// on-disk row order and is treated as read-only by consumers; filtering and
// aggregation produce new values instead of mutating it.
type Dataset struct {
	Records []TrafficRecord
	Skipped int
}
