package stats

import (
	"time"

	"github.com/kampus/tugasin/internal/domain"
)

// DateKey is the calendar grouping key, YYYY-MM-DD.
const DateKey = "2006-01-02"

// TasksByDate groups tasks by due date in loc, keeping collection order
// inside each day.
func TasksByDate(tasks []domain.Task, loc *time.Location) map[string][]domain.Task {
	out := map[string][]domain.Task{}
	for _, t := range tasks {
		key := t.DueDate.In(loc).Format(DateKey)
		out[key] = append(out[key], t)
	}
	return out
}

// Day is one cell of a month grid.
type Day struct {
	Date    time.Time
	InMonth bool
}

// MonthGrid returns whole weeks, Sunday first, covering the month that
// contains month. Days outside the month are flagged.
func MonthGrid(month time.Time) [][]Day {
	loc := month.Location()
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var weeks [][]Day
	var week []Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		week = append(week, Day{Date: d, InMonth: d.Month() == first.Month()})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = nil
		}
	}
	return weeks
}
