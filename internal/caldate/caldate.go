package caldate

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Layout is the wire format for date-only values.
const Layout = "2006-01-02"

// Date is a calendar date with no time-of-day component, distinct from an
// instant. Due dates, visit dates and credential expiries are calendar dates:
// "the 100-hour inspection is due on 2025-06-01" means the same day regardless
// of what clock the server runs on.
type Date struct {
	year  int
	month time.Month
	day   int
}

func New(year int, month time.Month, day int) Date {
	return Date{year: year, month: month, day: day}
}

// FromTime truncates an instant to the calendar date it falls on in loc.
func FromTime(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Date{year: y, month: m, day: d}
}

// Today returns the current calendar date in loc.
func Today(loc *time.Location) Date {
	return FromTime(time.Now(), loc)
}

// Parse accepts either a date-only string (YYYY-MM-DD) or a full ISO-8601
// timestamp. Timestamps are normalized to the calendar date they fall on in
// loc; legacy rows store due dates as midnight-UTC instants and must round-trip
// to the same day.
func Parse(s string, loc *time.Location) (Date, error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("caldate: empty date string")
	}

	if t, err := time.ParseInLocation(Layout, s, loc); err == nil {
		y, m, d := t.Date()
		return Date{year: y, month: m, day: d}, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return FromTime(t, loc), nil
	}

	// Timestamps without a zone offset are taken to be in loc.
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, loc); err == nil {
		return FromTime(t, loc), nil
	}

	return Date{}, fmt.Errorf("caldate: cannot parse %q as date or timestamp", s)
}

func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

// Time returns midnight of the date in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// AddDays returns the date n days later (earlier for negative n), with
// month/year rollover handled by the time package.
func (d Date) AddDays(n int) Date {
	t := time.Date(d.year, d.month, d.day+n, 0, 0, 0, 0, time.UTC)
	y, m, day := t.Date()
	return Date{year: y, month: m, day: day}
}

// DaysUntil returns the number of whole days from now until midnight of the
// date in loc, rounded up. A due date later today yields 0 or 1 depending on
// the clock; a past date yields a negative count.
func (d Date) DaysUntil(now time.Time, loc *time.Location) int {
	diff := d.Time(loc).Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

func (d Date) Before(other Date) bool {
	return d.Time(time.UTC).Before(other.Time(time.UTC))
}

func (d Date) After(other Date) bool {
	return d.Time(time.UTC).After(other.Time(time.UTC))
}

func (d Date) Equal(other Date) bool {
	return d.year == other.year && d.month == other.month && d.day == other.day
}

func (d Date) String() string {
	return d.Time(time.UTC).Format(Layout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts YYYY-MM-DD or an ISO timestamp. Timestamps are
// normalized in UTC here; callers that need the school's zone parse request
// fields explicitly with Parse.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s, time.UTC)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner so date columns load through sqlx.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		y, m, day := v.UTC().Date()
		*d = Date{year: y, month: m, day: day}
		return nil
	case string:
		parsed, err := Parse(v, time.UTC)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := Parse(string(v), time.UTC)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("caldate: cannot scan type %T", src)
	}
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}
