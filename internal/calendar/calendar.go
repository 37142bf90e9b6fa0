package calendar

import (
	"errors"
	"time"
)

var (
	ErrInvalidMonth    = errors.New("invalid month, expected YYYY-MM")
	ErrInvalidDay      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTimeSlot = errors.New("invalid time slot, expected HH:MM")
)

const (
	monthLayout = "2006-01"
	dayLayout   = "2006-01-02"
	slotLayout  = "15:04"
)

// DayOffSlot is the sentinel time slot of a full-day unavailability cell.
const DayOffSlot = "00:00"

// lessonTimes is the fixed grid published for every enabled day.
var lessonTimes = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

// LessonTimes returns the ordered hourly time slots of a lesson day.
func LessonTimes() []string {
	out := make([]string, len(lessonTimes))
	copy(out, lessonTimes)
	return out
}

// ParseMonth parses "YYYY-MM" into the first day of the month in UTC.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return t.UTC(), nil
}

// ParseDay parses "YYYY-MM-DD" into a UTC midnight.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDay
	}
	return t.UTC(), nil
}

// ParseTimeSlot validates an "HH:MM" slot label.
func ParseTimeSlot(s string) (time.Time, error) {
	t, err := time.Parse(slotLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidTimeSlot
	}
	return t, nil
}

// MonthOf formats the "YYYY-MM" month a day belongs to.
func MonthOf(day time.Time) string {
	return day.Format(monthLayout)
}

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TimeSlotOf formats the "HH:MM" slot label of a lesson start time.
func TimeSlotOf(t time.Time) string {
	return t.UTC().Format(slotLayout)
}

// SlotStart combines a calendar day and an "HH:MM" label into the lesson
// start time. The label must have been validated beforehand.
func SlotStart(day time.Time, timeSlot string) time.Time {
	tod, _ := time.Parse(slotLayout, timeSlot)
	day = DayOf(day)
	return day.Add(time.Duration(tod.Hour())*time.Hour + time.Duration(tod.Minute())*time.Minute)
}

// MonthDays lists the days of month that are not strictly before the
// calendar day of from. Past days are skipped so enabling the current month
// never publishes history.
func MonthDays(month time.Time, from time.Time) []time.Time {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	today := DayOf(from)

	var days []time.Time
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		if d.Before(today) {
			continue
		}
		days = append(days, d)
	}
	return days
}

// MonthCell is the per-cell view SummarizeMonths needs.
type MonthCell struct {
	Month  string
	Status string
	DayOff bool
}

// SummarizeMonths splits the months present in cells into two disjoint sets:
// enabled months have at least one available or booked cell, disabled months
// consist entirely of unavailable or day-off cells. A month with no cells at
// all belongs to neither set.
func SummarizeMonths(cells []MonthCell) (enabled, disabled []string) {
	type tally struct {
		open bool
		shut bool
	}
	byMonth := make(map[string]*tally)
	var order []string

	for _, c := range cells {
		if c.Month == "" {
			continue
		}
		t, ok := byMonth[c.Month]
		if !ok {
			t = &tally{shut: true}
			byMonth[c.Month] = t
			order = append(order, c.Month)
		}
		if c.Status == "available" || c.Status == "booked" {
			t.open = true
		}
		if !(c.Status == "unavailable" || c.DayOff) {
			t.shut = false
		}
	}

	for _, m := range order {
		t := byMonth[m]
		switch {
		case t.open:
			enabled = append(enabled, m)
		case t.shut:
			disabled = append(disabled, m)
		}
	}
	return enabled, disabled
}
