package scheduler

import "time"

// Calendar advances a date by a signed number of days. Date arithmetic goes
// through this single function so working-day or holiday logic can be
// substituted without touching the topological or constraint logic.
type Calendar func(t time.Time, days int) time.Time

// CalendarDays is the default Calendar: plain calendar-day arithmetic.
func CalendarDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}
