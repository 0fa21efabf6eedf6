package caldate

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse_DateOnly(t *testing.T) {
	d, err := Parse("2025-01-01", time.UTC)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.January || d.Day() != 1 {
		t.Errorf("Expected 2025-01-01, got %s", d)
	}
}

func TestParse_LegacyTimestamp(t *testing.T) {
	// Legacy rows persist due dates as midnight-UTC instants. Viewed from a
	// western zone that instant falls on the previous evening, but the
	// calendar date must survive when parsed in the zone it was written for.
	d, err := Parse("2025-03-15T00:00:00Z", time.UTC)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if d.String() != "2025-03-15" {
		t.Errorf("Expected 2025-03-15, got %s", d)
	}
}

func TestParse_TimestampNormalizedToZone(t *testing.T) {
	denver, err := time.LoadLocation("America/Denver")
	if err != nil {
		t.Fatalf("Failed to load zone: %v", err)
	}

	// 03:00 UTC on the 15th is still the evening of the 14th in Denver.
	d, err := Parse("2025-03-15T03:00:00Z", denver)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if d.String() != "2025-03-14" {
		t.Errorf("Expected 2025-03-14, got %s", d)
	}
}

func TestParse_NaiveTimestamp(t *testing.T) {
	d, err := Parse("2025-03-15T18:30:00", time.UTC)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if d.String() != "2025-03-15" {
		t.Errorf("Expected 2025-03-15, got %s", d)
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := Parse("next tuesday", time.UTC); err == nil {
		t.Error("Expected error for unparseable input")
	}
	if _, err := Parse("", time.UTC); err == nil {
		t.Error("Expected error for empty input")
	}
}

func TestAddDays_Rollover(t *testing.T) {
	d := New(2024, time.December, 30).AddDays(5)
	if d.String() != "2025-01-04" {
		t.Errorf("Expected 2025-01-04, got %s", d)
	}

	// Leap day
	d = New(2024, time.February, 28).AddDays(1)
	if d.String() != "2024-02-29" {
		t.Errorf("Expected 2024-02-29, got %s", d)
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		date Date
		want int
	}{
		{"thirty days out", New(2025, time.July, 1), 30},
		{"later today", New(2025, time.June, 1), 0},
		{"tomorrow", New(2025, time.June, 2), 1},
		{"yesterday", New(2025, time.May, 31), -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.date.DaysUntil(now, time.UTC)
			if got != tc.want {
				t.Errorf("DaysUntil(%s) = %d, want %d", tc.date, got, tc.want)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2025, time.January, 1)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != `"2025-01-01"` {
		t.Errorf("Expected quoted date-only string, got %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("Round trip mismatch: %s != %s", back, d)
	}
}

func TestUnmarshalJSON_AcceptsTimestamp(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2025-01-01T00:00:00Z"`), &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if d.String() != "2025-01-01" {
		t.Errorf("Expected 2025-01-01, got %s", d)
	}
}

func TestScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan time.Time failed: %v", err)
	}
	if d.String() != "2025-05-20" {
		t.Errorf("Expected 2025-05-20, got %s", d)
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("Scan nil failed: %v", err)
	}
	if !d.IsZero() {
		t.Error("Expected zero date after scanning nil")
	}
}
