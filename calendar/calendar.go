// Package calendar lays incidents out on a month grid. Weeks start on
// Sunday and the grid is padded to whole weeks on both ends.
package calendar

import (
	"DentalCenter/models"
	"fmt"
	"strings"
	"time"
)

const (
	MonthLayout = "2006-01"
	DayLayout   = "2006-01-02"
)

// DayCell is one square of the grid.
type DayCell struct {
	Date      time.Time
	InMonth   bool
	Incidents []models.Incident
}

// View is the whole navigation state: the displayed month and an optional selected day.
type View struct {
	Month    time.Time
	Selected *time.Time
}

// StartOfDay truncates t's wall clock to midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfMonth returns midnight on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// SameDay compares calendar dates only.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func NextMonth(month time.Time) time.Time {
	return StartOfMonth(month).AddDate(0, 1, 0)
}

func PrevMonth(month time.Time) time.Time {
	return StartOfMonth(month).AddDate(0, -1, 0)
}

// GridRange returns the first and last day shown for month: the Sunday on or
// before the 1st and the Saturday on or after the last day.
func GridRange(month time.Time) (time.Time, time.Time) {
	first := StartOfMonth(month)
	last := first.AddDate(0, 1, -1)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))
	return start, end
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{y, m, d}
}

// BuildGrid returns the day cells for month. Each cell holds the incidents
// whose appointment falls on that date, in source order.
func BuildGrid(month time.Time, incidents []models.Incident) []DayCell {
	month = models.WallClock(month)
	start, end := GridRange(month)

	var cells []DayCell
	index := make(map[dayKey]int)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		index[keyOf(day)] = len(cells)
		cells = append(cells, DayCell{
			Date:      day,
			InMonth:   day.Month() == month.Month() && day.Year() == month.Year(),
			Incidents: []models.Incident{},
		})
	}

	for _, inc := range incidents {
		if i, ok := index[keyOf(inc.AppointmentDate.Time)]; ok {
			cells[i].Incidents = append(cells[i].Incidents, inc)
		}
	}
	return cells
}

// IncidentsOn returns the incidents on day, in source order.
func IncidentsOn(day time.Time, incidents []models.Incident) []models.Incident {
	day = models.WallClock(day)
	matches := make([]models.Incident, 0)
	for _, inc := range incidents {
		if SameDay(inc.AppointmentDate.Time, day) {
			matches = append(matches, inc)
		}
	}
	return matches
}

// ParseView decodes the month (YYYY-MM) and day (YYYY-MM-DD) query values.
// An empty month shows the selected day's month, or today's.
func ParseView(monthParam, dayParam string, today time.Time) (View, error) {
	view := View{Month: StartOfMonth(models.WallClock(today))}

	if dayParam = strings.TrimSpace(dayParam); dayParam != "" {
		day, err := time.Parse(DayLayout, dayParam)
		if err != nil {
			return View{}, fmt.Errorf("invalid day %q: expected YYYY-MM-DD", dayParam)
		}
		view.Selected = &day
		view.Month = StartOfMonth(day)
	}

	if monthParam = strings.TrimSpace(monthParam); monthParam != "" {
		month, err := time.Parse(MonthLayout, monthParam)
		if err != nil {
			return View{}, fmt.Errorf("invalid month %q: expected YYYY-MM", monthParam)
		}
		view.Month = month
	}
	return view, nil
}
