package calendar

import (
	"time"

	"spiritedlamb/internal/model"
)

// Day is one cell of the month grid.
type Day struct {
	Date time.Time
	// InMonth is false for the leading/trailing days that pad the grid to
	// whole weeks. Presentation suppresses those cells.
	InMonth bool
	// Events starting on Date, in store order.
	Events []model.Event
}

func (d Day) HasEvents() bool {
	return len(d.Events) > 0
}

// First returns the event a click on this day discloses.
func (d Day) First() (model.Event, bool) {
	if len(d.Events) == 0 {
		return model.Event{}, false
	}
	return d.Events[0], true
}

type dateKey struct {
	y int
	m time.Month
	d int
}

func keyOf(t time.Time) dateKey {
	y, m, d := t.Date()
	return dateKey{y, m, d}
}

// BuildMonthGrid lays out the month containing ref as whole weeks starting on
// weekStart, and buckets events by the calendar day of their start in ref's
// location. Every returned slice is freshly allocated.
func BuildMonthGrid(ref time.Time, events []model.Event, weekStart time.Weekday) []Day {
	loc := ref.Location()
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	gridStart := first.AddDate(0, 0, -weekdayOffset(first.Weekday(), weekStart))
	gridEnd := last.AddDate(0, 0, 6-weekdayOffset(last.Weekday(), weekStart))

	buckets := make(map[dateKey][]model.Event)
	for _, e := range events {
		k := keyOf(e.Start.In(loc))
		buckets[k] = append(buckets[k], e)
	}

	days := make([]Day, 0, 42)
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, Day{
			Date:    d,
			InMonth: d.Month() == ref.Month() && d.Year() == ref.Year(),
			Events:  buckets[keyOf(d)],
		})
	}
	return days
}

// weekdayOffset is how many days wd sits after weekStart.
func weekdayOffset(wd, weekStart time.Weekday) int {
	return (int(wd) - int(weekStart) + 7) % 7
}

// AdvanceMonth moves the reference date by a signed number of days. Stepping
// by 30 is not a calendar month and drifts over time; callers rely on that.
func AdvanceMonth(ref time.Time, deltaDays int) time.Time {
	return ref.AddDate(0, 0, deltaDays)
}

// Weekdays returns the seven column headers starting at weekStart.
func Weekdays(weekStart time.Weekday) []time.Weekday {
	out := make([]time.Weekday, 7)
	for i := range out {
		out[i] = time.Weekday((int(weekStart) + i) % 7)
	}
	return out
}
