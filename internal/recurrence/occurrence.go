// Package recurrence expands recurring schedules into dated occurrences.
package recurrence

import (
	"fmt"
	"sort"
	"time"

	"github.com/Dan9191/finance-service/internal/models"
)

const dateLayout = "2006-01-02"

// Window is an inclusive range of calendar days
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow returns the window [start, start+days]
func NewWindow(start time.Time, days int) Window {
	start = Date(start)
	return Window{Start: start, End: start.AddDate(0, 0, days)}
}

// MonthWindow returns the window covering the calendar month of t
func MonthWindow(t time.Time) Window {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(0, 1, -1)}
}

// Date truncates t to midnight UTC of the same calendar day
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Generate expands one schedule and its exceptions into the occurrences that
// fall inside w, sorted by date. Exceptions that belong to other schedules are
// ignored. The result is rebuilt on every call.
func Generate(s models.RecurringSchedule, exceptions []models.ScheduleException, w Window) []models.Occurrence {
	start, end, ok := effectiveRange(s, w)
	if !ok {
		return nil
	}

	suppressed := make(map[string]struct{})
	var moved []time.Time
	for _, ex := range exceptions {
		if ex.ScheduleID != s.ID {
			continue
		}
		switch ex.Action {
		case models.ExceptionSkip, models.ExceptionPostpone, models.ExceptionMove:
			suppressed[Date(ex.OriginalDate).Format(dateLayout)] = struct{}{}
		}
		if ex.NewDate != nil {
			d := Date(*ex.NewDate)
			if !d.Before(start) && !d.After(end) {
				moved = append(moved, d)
			}
		}
	}

	var out []models.Occurrence
	emit := func(d time.Time) {
		out = append(out, models.Occurrence{ScheduleID: s.ID, Date: d, Amount: s.Amount, Type: s.Type})
	}

	cadence(s, start, end, func(d time.Time, key string) {
		if _, skip := suppressed[key]; !skip {
			emit(d)
		}
	})
	for _, d := range moved {
		emit(d)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// GenerateAll expands every schedule over w, merged and sorted by date
func GenerateAll(schedules []models.RecurringSchedule, exceptions []models.ScheduleException, w Window) []models.Occurrence {
	bySchedule := GroupExceptions(exceptions)
	var out []models.Occurrence
	for _, s := range schedules {
		out = append(out, Generate(s, bySchedule[s.ID], w)...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// GroupExceptions indexes exceptions by schedule id
func GroupExceptions(exceptions []models.ScheduleException) map[int64][]models.ScheduleException {
	out := make(map[int64][]models.ScheduleException)
	for _, ex := range exceptions {
		out[ex.ScheduleID] = append(out[ex.ScheduleID], ex)
	}
	return out
}

// effectiveRange intersects the schedule's active span with w
func effectiveRange(s models.RecurringSchedule, w Window) (time.Time, time.Time, bool) {
	start := Date(s.StartDate)
	if ws := Date(w.Start); ws.After(start) {
		start = ws
	}
	end := Date(w.End)
	if !s.Indefinite && s.EndDate != nil {
		if se := Date(*s.EndDate); se.Before(end) {
			end = se
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// cadence calls fn for every regular date of s in [start, end]. key is the
// date used for exception matching; for monthly schedules it is built from the
// anchor day before clamping, so a clamped date (the 28th standing in for the
// 31st) only matches an exception recorded on the un-clamped day.
func cadence(s models.RecurringSchedule, start, end time.Time, fn func(d time.Time, key string)) {
	anchor := Date(s.StartDate)
	switch s.Frequency {
	case models.FrequencyDaily:
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			fn(d, d.Format(dateLayout))
		}
	case models.FrequencyWeekly:
		offset := (int(anchor.Weekday()) - int(start.Weekday()) + 7) % 7
		for d := start.AddDate(0, 0, offset); !d.After(end); d = d.AddDate(0, 0, 7) {
			fn(d, d.Format(dateLayout))
		}
	case models.FrequencyMonthly:
		day := anchor.Day()
		y, m, _ := start.Date()
		for {
			d := time.Date(y, m, min(day, DaysIn(y, m)), 0, 0, 0, 0, time.UTC)
			if d.After(end) {
				return
			}
			if !d.Before(start) {
				fn(d, fmt.Sprintf("%04d-%02d-%02d", y, m, day))
			}
			m++
			if m > time.December {
				m = time.January
				y++
			}
		}
	}
}
