package calendar

import (
	"reflect"
	"testing"
	"time"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDay(s)
	if err != nil {
		t.Fatalf("parse day %q: %v", s, err)
	}
	return d
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2025-06")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if m.Year() != 2025 || m.Month() != time.June || m.Day() != 1 {
		t.Fatalf("unexpected month start: %v", m)
	}

	for _, bad := range []string{"", "2025", "2025-13", "06-2025", "2025-06-01"} {
		if _, err := ParseMonth(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseTimeSlot(t *testing.T) {
	if _, err := ParseTimeSlot("08:00"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, bad := range []string{"", "8am", "25:00", "08:60"} {
		if _, err := ParseTimeSlot(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestLessonTimes_FixedGrid(t *testing.T) {
	got := LessonTimes()
	want := []string{"08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected grid: %v", got)
	}

	// Callers must not be able to mutate the grid.
	got[0] = "00:00"
	if LessonTimes()[0] != "08:00" {
		t.Fatal("grid mutated through returned slice")
	}
}

func TestMonthDays_SkipsPastDays(t *testing.T) {
	month, _ := ParseMonth("2025-06")
	from := mustDay(t, "2025-06-10")

	days := MonthDays(month, from)
	if len(days) != 21 {
		t.Fatalf("expected 21 days (10th..30th), got %d", len(days))
	}
	if !days[0].Equal(mustDay(t, "2025-06-10")) {
		t.Fatalf("expected first day 2025-06-10, got %v", days[0])
	}
	if !days[len(days)-1].Equal(mustDay(t, "2025-06-30")) {
		t.Fatalf("expected last day 2025-06-30, got %v", days[len(days)-1])
	}
}

func TestMonthDays_WholeFutureMonth(t *testing.T) {
	month, _ := ParseMonth("2025-02")
	days := MonthDays(month, mustDay(t, "2024-12-31"))
	if len(days) != 28 {
		t.Fatalf("expected 28 days, got %d", len(days))
	}
}

func TestMonthDays_PastMonthEmpty(t *testing.T) {
	month, _ := ParseMonth("2025-02")
	if days := MonthDays(month, mustDay(t, "2025-03-01")); len(days) != 0 {
		t.Fatalf("expected no days, got %d", len(days))
	}
}

func TestSlotStartRoundTrip(t *testing.T) {
	day := mustDay(t, "2025-06-10")
	start := SlotStart(day, "09:00")

	if start.Hour() != 9 || start.Minute() != 0 {
		t.Fatalf("unexpected start: %v", start)
	}
	if !DayOf(start).Equal(day) {
		t.Fatalf("day round trip failed: %v", DayOf(start))
	}
	if TimeSlotOf(start) != "09:00" {
		t.Fatalf("time slot round trip failed: %q", TimeSlotOf(start))
	}
}

func TestSummarizeMonths(t *testing.T) {
	cells := []MonthCell{
		{Month: "2025-06", Status: "available"},
		{Month: "2025-06", Status: "booked"},
		{Month: "2025-07", Status: "unavailable", DayOff: true},
		{Month: "2025-08", Status: "locked"},
	}

	enabled, disabled := SummarizeMonths(cells)

	if !reflect.DeepEqual(enabled, []string{"2025-06"}) {
		t.Fatalf("unexpected enabled months: %v", enabled)
	}
	if !reflect.DeepEqual(disabled, []string{"2025-07"}) {
		t.Fatalf("unexpected disabled months: %v", disabled)
	}
}

func TestSummarizeMonths_BookedMonthStaysEnabled(t *testing.T) {
	cells := []MonthCell{
		{Month: "2025-06", Status: "booked"},
		{Month: "2025-06", Status: "unavailable"},
	}
	enabled, disabled := SummarizeMonths(cells)
	if len(enabled) != 1 || enabled[0] != "2025-06" {
		t.Fatalf("unexpected enabled months: %v", enabled)
	}
	if len(disabled) != 0 {
		t.Fatalf("unexpected disabled months: %v", disabled)
	}
}

func TestSummarizeMonths_Empty(t *testing.T) {
	enabled, disabled := SummarizeMonths(nil)
	if len(enabled) != 0 || len(disabled) != 0 {
		t.Fatalf("expected empty sets, got %v / %v", enabled, disabled)
	}
}
