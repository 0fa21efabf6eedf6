package duestatus

import (
	"fmt"
	"math"
	"time"
)

// DueNowEpsilon is the band around zero margin reported as "Due now" rather
// than as a fractional hour count.
const DueNowEpsilon = 0.01

const (
	labelNA      = "N/A"
	labelDueNow  = "Due now"
	labelOverdue = "Overdue"
)

// Margin returns a human-readable "due in" label and a raw sort key. Hours
// margins sort in hours; calendar margins are converted to hours so mixed
// lists order sensibly. Components with no usable due value sort last.
//
// One convention applies everywhere: negative margin reads "Overdue", margin
// within [0, DueNowEpsilon) reads "Due now", anything else is formatted with
// one decimal and an "h" unit (or as whole days for calendar-tracked
// components).
func Margin(c Component, currentHours *float64, now time.Time, loc *time.Location) (string, float64) {
	// Hours-based due values take priority over date-based when both exist.
	if due := EffectiveDueHours(c); due != nil {
		if currentHours == nil {
			return labelNA, math.Inf(1)
		}
		margin := *due - *currentHours
		switch {
		case margin < 0:
			return labelOverdue, margin
		case margin < DueNowEpsilon:
			return labelDueNow, 0
		default:
			return fmt.Sprintf("%.1fh", margin), margin
		}
	}

	if due := EffectiveDueDate(c); due != nil {
		days := due.DaysUntil(now, loc)
		switch {
		case days < 0:
			return labelOverdue, float64(days) * 24
		case days == 0:
			return labelDueNow, 0
		case days == 1:
			return "1 day", 24
		default:
			return fmt.Sprintf("%d days", days), float64(days) * 24
		}
	}

	return labelNA, math.Inf(1)
}
