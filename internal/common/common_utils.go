package common

import (
	"fmt"
	"time"

	"skybound/flightline/internal/caldate"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

func GetKeysStringMap(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys

}

// ParseDateRange parses a from/to query pair in the school timezone.
// Returns an error when the range is inverted.
func ParseDateRange(from, to string, loc *time.Location) (caldate.Date, caldate.Date, error) {
	f, err := caldate.Parse(from, loc)
	if err != nil {
		return caldate.Date{}, caldate.Date{}, fmt.Errorf("invalid from date: %w", err)
	}
	t, err := caldate.Parse(to, loc)
	if err != nil {
		return caldate.Date{}, caldate.Date{}, fmt.Errorf("invalid to date: %w", err)
	}
	if t.Before(f) {
		return caldate.Date{}, caldate.Date{}, fmt.Errorf("range ends before it starts")
	}
	return f, t, nil
}
