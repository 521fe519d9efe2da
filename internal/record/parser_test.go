package record

import (
	"errors"
	"testing"

	"TrafficLens/internal/core/model"
)

func TestParseRow_Valid(t *testing.T) {
	fields := []string{"2024-03-01 10:15:00", "192.168.1.24", "10.0.0.8", "DNS", "128", "53"}

	rec, err := ParseRow(fields)
	if err != nil {
		t.Fatalf("ParseRow failed: %v", err)
	}

	want := model.TrafficRecord{
		Timestamp: "2024-03-01 10:15:00",
		SourceIP:  "192.168.1.24",
		DestIP:    "10.0.0.8",
		Protocol:  "DNS",
		Length:    128,
		Port:      53,
	}
	if rec != want {
		t.Errorf("ParseRow = %+v, want %+v", rec, want)
	}
}

func TestParseRow_TrimsSurroundingSpace(t *testing.T) {
	fields := []string{" 2024-03-01 10:15:00", "192.168.1.24 ", "10.0.0.8", " TCP ", " 64", "443 "}

	rec, err := ParseRow(fields)
	if err != nil {
		t.Fatalf("ParseRow failed: %v", err)
	}
	if rec.Protocol != "TCP" || rec.Length != 64 || rec.Port != 443 {
		t.Errorf("fields not trimmed: %+v", rec)
	}
}

func TestParseRow_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		fields []string
	}{
		{"too few fields", []string{"2024-03-01 10:15:00", "192.168.1.24", "10.0.0.8", "TCP", "64"}},
		{"too many fields", []string{"2024-03-01 10:15:00", "192.168.1.24", "10.0.0.8", "TCP", "64", "443", "extra"}},
		{"empty field", []string{"2024-03-01 10:15:00", "", "10.0.0.8", "TCP", "64", "443"}},
		{"non-numeric length", []string{"2024-03-01 10:15:00", "192.168.1.24", "10.0.0.8", "TCP", "abc", "443"}},
		{"non-numeric port", []string{"2024-03-01 10:15:00", "192.168.1.24", "10.0.0.8", "TCP", "64", "https"}},
		{"negative length", []string{"2024-03-01 10:15:00", "192.168.1.24", "10.0.0.8", "TCP", "-1", "443"}},
		{"negative port", []string{"2024-03-01 10:15:00", "192.168.1.24", "10.0.0.8", "TCP", "64", "-443"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRow(tc.fields)
			if err == nil {
				t.Fatalf("ParseRow accepted invalid row %v", tc.fields)
			}
			var invalid *InvalidRowError
			if !errors.As(err, &invalid) {
				t.Errorf("error is %T, want *InvalidRowError", err)
			}
		})
	}
}
