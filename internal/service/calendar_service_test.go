package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openroad/driveschool/internal/calendar"
	"github.com/openroad/driveschool/internal/model"
	"github.com/openroad/driveschool/internal/repository"
)

func newCalendarService(db *gorm.DB, blockDestructive bool) *CalendarService {
	return NewCalendarService(
		db,
		repository.NewGormInstructorRepository(db),
		repository.NewGormAvailabilityRepository(db),
		repository.NewGormBookingRepository(db),
		blockDestructive,
		testLogger(),
	)
}

// futureMonth returns a "YYYY-MM" label a few months ahead, so every day of
// it survives the past-day filter.
func futureMonth(t *testing.T) (string, time.Time) {
	t.Helper()
	start := time.Now().UTC().AddDate(0, 3, 0)
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	return calendar.MonthOf(start), start
}

func cellsOf(t *testing.T, db *gorm.DB, instructorID uuid.UUID) []model.AvailabilityCell {
	t.Helper()
	var cells []model.AvailabilityCell
	if err := db.Where("instructor_id = ?", instructorID).Find(&cells).Error; err != nil {
		t.Fatalf("load cells: %v", err)
	}
	return cells
}

func TestCalendarService_EnableMonth_PublishesFullGrid(t *testing.T) {
	db := newTestDB(t)
	svc := newCalendarService(db, false)
	school := seedSchool(t, db, nil)
	inst := seedInstructor(t, db, school.ID)
	ctx := context.Background()

	month, start := futureMonth(t)
	daysInMonth := start.AddDate(0, 1, -1).Day()

	created, err := svc.EnableMonth(ctx, inst.ID, month)
	if err != nil {
		t.Fatalf("enable month: %v", err)
	}
	want := daysInMonth * len(calendar.LessonTimes())
	if created != want {
		t.Fatalf("created = %d, want %d", created, want)
	}

	cells := cellsOf(t, db, inst.ID)
	if len(cells) != want {
		t.Fatalf("stored cells = %d, want %d", len(cells), want)
	}
	for _, c := range cells {
		if c.Status != model.CellStatusAvailable || c.IsUnavailableDay {
			t.Fatalf("cell %s %s not published available", c.Month, c.TimeSlot)
		}
		if c.Month != month {
			t.Fatalf("cell month = %q, want %q", c.Month, month)
		}
	}
}

func TestCalendarService_EnableMonth_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newCalendarService(db, false)
	school := seedSchool(t, db, nil)
	inst := seedInstructor(t, db, school.ID)
	ctx := context.Background()

	month, _ := futureMonth(t)
	first, err := svc.EnableMonth(ctx, inst.ID, month)
	if err != nil {
		t.Fatalf("enable month: %v", err)
	}

	// Mark one cell booked, then enable again: nothing changes.
	if err := db.Model(&model.AvailabilityCell{}).
		Where("instructor_id = ?", inst.ID).
		Limit(1).
		Update("status", model.CellStatusBooked).Error; err != nil {
		t.Fatalf("mark booked: %v", err)
	}

	second, err := svc.EnableMonth(ctx, inst.ID, month)
	if err != nil {
		t.Fatalf("re-enable month: %v", err)
	}
	if second != 0 {
		t.Fatalf("re-enable created %d cells, want 0", second)
	}
	if got := len(cellsOf(t, db, inst.ID)); got != first {
		t.Fatalf("cells after re-enable = %d, want %d", got, first)
	}
}

func TestCalendarService_EnableMonth_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := newCalendarService(db, false)
	school := seedSchool(t, db, nil)
	inst := seedInstructor(t, db, school.ID)
	ctx := context.Background()

	if _, err := svc.EnableMonth(ctx, inst.ID, "June 2030"); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad month: err = %v, want ErrValidation", err)
	}
	if _, err := svc.EnableMonth(ctx, uuid.New(), "2030-06"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown instructor: err = %v, want ErrNotFound", err)
	}
}

func TestCalendarService_DisableMonth_RemovesEverything(t *testing.T) {
	db := newTestDB(t)
	svc := newCalendarService(db, false)
	school := seedSchool(t, db, nil)
	inst := seedInstructor(t, db, school.ID)
	ctx := context.Background()

	month, _ := futureMonth(t)
	if _, err := svc.EnableMonth(ctx, inst.ID, month); err != nil {
		t.Fatalf("enable month: %v", err)
	}
	// Booked cells go too; the legacy destructive behavior.
	if err := db.Model(&model.AvailabilityCell{}).
		Where("instructor_id = ?", inst.ID).
		Limit(1).
		Update("status", model.CellStatusBooked).Error; err != nil {
		t.Fatalf("mark booked: %v", err)
	}

	if err := svc.DisableMonth(ctx, inst.ID, month); err != nil {
		t.Fatalf("disable month: %v", err)
	}
	if got := len(cellsOf(t, db, inst.ID)); got != 0 {
		t.Fatalf("cells after disable = %d, want 0", got)
	}
}

func TestCalendarService_SetUnavailableDay_CollapsesToSentinel(t *testing.T) {
	db := newTestDB(t)
	svc := newCalendarService(db, false)
	school := seedSchool(t, db, nil)
	inst := seedInstructor(t, db, school.ID)
	ctx := context.Background()

	month, start := futureMonth(t)
	if _, err := svc.EnableMonth(ctx, inst.ID, month); err != nil {
		t.Fatalf("enable month: %v", err)
	}

	day := start.AddDate(0, 0, 4)
	date := day.Format("2006-01-02")
	if err := svc.SetUnavailableDay(ctx, inst.ID, date); err != nil {
		t.Fatalf("set unavailable day: %v", err)
	}

	repo := repository.NewGormAvailabilityRepository(db)
	cells, err := repo.ListByInstructorDay(ctx, inst.ID, day)
	if err != nil {
		t.Fatalf("list day cells: %v", err)
	}
	if len(cells) != 1 {
		t.Fatalf("day cells = %d, want 1 sentinel", len(cells))
	}
	sentinel := cells[0]
	if sentinel.TimeSlot != calendar.DayOffSlot {
		t.Fatalf("sentinel time slot = %q, want %q", sentinel.TimeSlot, calendar.DayOffSlot)
	}
	if !sentinel.IsUnavailableDay || sentinel.Status != model.CellStatusUnavailable {
		t.Fatalf("sentinel not a day-off cell: %+v", sentinel)
	}

	// Other days keep their full grid.
	other, err := repo.ListByInstructorDay(ctx, inst.ID, start)
	if err != nil {
		t.Fatalf("list other day: %v", err)
	}
	if len(other) != len(calendar.LessonTimes()) {
		t.Fatalf("other day cells = %d, want %d", len(other), len(calendar.LessonTimes()))
	}
}

func TestCalendarService_TimeSlotOverrides(t *testing.T) {
	db := newTestDB(t)
	svc := newCalendarService(db, false)
	school := seedSchool(t, db, nil)
	inst := seedInstructor(t, db, school.ID)
	ctx := context.Background()

	month, start := futureMonth(t)
	if _, err := svc.EnableMonth(ctx, inst.ID, month); err != nil {
		t.Fatalf("enable month: %v", err)
	}

	day := start.AddDate(0, 0, 2)
	date := day.Format("2006-01-02")
	repo := repository.NewGormAvailabilityRepository(db)

	if err := svc.SetUnavailableTimeSlot(ctx, inst.ID, date, "10:00"); err != nil {
		t.Fatalf("set unavailable timeslot: %v", err)
	}
	cells, err := repo.ListByInstructorDayTimeSlot(ctx, inst.ID, day, "10:00")
	if err != nil || len(cells) != 1 {
		t.Fatalf("load cell: %v (%d cells)", err, len(cells))
	}
	if cells[0].Status != model.CellStatusUnavailable {
		t.Fatalf("status = %q, want unavailable", cells[0].Status)
	}

	if err := svc.SetAvailableTimeSlot(ctx, inst.ID, date, "10:00"); err != nil {
		t.Fatalf("set available timeslot: %v", err)
	}
	cells, err = repo.ListByInstructorDayTimeSlot(ctx, inst.ID, day, "10:00")
	if err != nil || len(cells) != 1 {
		t.Fatalf("reload cell: %v (%d cells)", err, len(cells))
	}
	if cells[0].Status != model.CellStatusAvailable || cells[0].IsUnavailableDay {
		t.Fatalf("cell not reopened: %+v", cells[0])
	}
}

func TestCalendarService_SetUnavailableTimeSlot_CreatesMissingCell(t *testing.T) {
	db := newTestDB(t)
	svc := newCalendarService(db, false)
	school := seedSchool(t, db, nil)
	inst := seedInstructor(t, db, school.ID)
	ctx := context.Background()

	// Month never enabled; the override still lands.
	_, start := futureMonth(t)
	day := start.AddDate(0, 0, 7)
	date := day.Format("2006-01-02")

	if err := svc.SetUnavailableTimeSlot(ctx, inst.ID, date, "09:00"); err != nil {
		t.Fatalf("set unavailable timeslot: %v", err)
	}

	repo := repository.NewGormAvailabilityRepository(db)
	cells, err := repo.ListByInstructorDayTimeSlot(ctx, inst.ID, day, "09:00")
	if err != nil || len(cells) != 1 {
		t.Fatalf("load cell: %v (%d cells)", err, len(cells))
	}
	if cells[0].Status != model.CellStatusUnavailable {
		t.Fatalf("status = %q, want unavailable", cells[0].Status)
	}
	if cells[0].Month != calendar.MonthOf(day) {
		t.Fatalf("month = %q, want %q", cells[0].Month, calendar.MonthOf(day))
	}
}

func TestCalendarService_MonthsSummary(t *testing.T) {
	db := newTestDB(t)
	svc := newCalendarService(db, false)
	school := seedSchool(t, db, nil)
	inst := seedInstructor(t, db, school.ID)
	ctx := context.Background()

	month, start := futureMonth(t)
	if _, err := svc.EnableMonth(ctx, inst.ID, month); err != nil {
		t.Fatalf("enable month: %v", err)
	}

	// A second month consisting only of day-off sentinels counts disabled.
	nextStart := start.AddDate(0, 1, 0)
	for i := 0; i < 3; i++ {
		date := nextStart.AddDate(0, 0, i).Format("2006-01-02")
		if err := svc.SetUnavailableDay(ctx, inst.ID, date); err != nil {
			t.Fatalf("set unavailable day: %v", err)
		}
	}

	enabled, disabled, err := svc.MonthsSummary(ctx, inst.ID)
	if err != nil {
		t.Fatalf("months summary: %v", err)
	}
	if len(enabled) != 1 || enabled[0] != month {
		t.Fatalf("enabled = %v, want [%s]", enabled, month)
	}
	nextMonth := calendar.MonthOf(nextStart)
	if len(disabled) != 1 || disabled[0] != nextMonth {
		t.Fatalf("disabled = %v, want [%s]", disabled, nextMonth)
	}
}

func TestCalendarService_DestructivePolicy_BlocksWithActiveBookings(t *testing.T) {
	db := newTestDB(t)
	svc := newCalendarService(db, true)
	school := seedSchool(t, db, nil)
	inst := seedInstructor(t, db, school.ID)
	learner := seedUser(t, db, "learner@example.com")
	ctx := context.Background()

	month, start := futureMonth(t)
	if _, err := svc.EnableMonth(ctx, inst.ID, month); err != nil {
		t.Fatalf("enable month: %v", err)
	}

	lessonDay := start.AddDate(0, 0, 5)
	slot := &model.LessonSlot{
		InstructorID:    inst.ID,
		StartTime:       calendar.SlotStart(lessonDay, "11:00"),
		DurationMinutes: 60,
		Price:           350,
		Available:       false,
	}
	if err := db.Create(slot).Error; err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	booking := &model.Booking{
		LearnerID: learner.ID,
		SlotID:    slot.ID,
		Status:    model.BookingStatusConfirmed,
	}
	if err := db.Create(booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	if err := svc.DisableMonth(ctx, inst.ID, month); !errors.Is(err, ErrConflict) {
		t.Fatalf("disable month: err = %v, want ErrConflict", err)
	}
	date := lessonDay.Format("2006-01-02")
	if err := svc.SetUnavailableDay(ctx, inst.ID, date); !errors.Is(err, ErrConflict) {
		t.Fatalf("set unavailable day: err = %v, want ErrConflict", err)
	}

	// Cancelled bookings do not block.
	if err := db.Model(booking).Update("status", model.BookingStatusCancelled).Error; err != nil {
		t.Fatalf("cancel booking: %v", err)
	}
	if err := svc.DisableMonth(ctx, inst.ID, month); err != nil {
		t.Fatalf("disable month after cancel: %v", err)
	}
}
