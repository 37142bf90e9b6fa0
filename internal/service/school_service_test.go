package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/openroad/driveschool/internal/calendar"
	"github.com/openroad/driveschool/internal/model"
	"github.com/openroad/driveschool/internal/repository"
)

func newSchoolService(db *gorm.DB) *SchoolService {
	return NewSchoolService(
		db,
		repository.NewGormSchoolRepository(db),
		repository.NewGormInstructorRepository(db),
		repository.NewGormSlotRepository(db),
		repository.NewGormBookingRepository(db),
		testLogger(),
	)
}

func TestSchoolService_Search(t *testing.T) {
	db := newTestDB(t)
	svc := newSchoolService(db)
	ctx := context.Background()

	seedSchool(t, db, &model.School{Name: "City Drivers", City: "Amsterdam"})
	seedSchool(t, db, &model.School{Name: "Highway Heroes", City: "Rotterdam"})
	seedSchool(t, db, &model.School{Name: "Rotterdam Rijschool", City: "Rotterdam"})

	all, err := svc.Search(ctx, "", "")
	if err != nil || len(all) != 3 {
		t.Fatalf("search all: %v (%d schools)", err, len(all))
	}

	byCity, err := svc.Search(ctx, "rotterdam", "")
	if err != nil || len(byCity) != 2 {
		t.Fatalf("search by city: %v (%d schools)", err, len(byCity))
	}

	byName, err := svc.Search(ctx, "", "heroes")
	if err != nil || len(byName) != 1 {
		t.Fatalf("search by name: %v (%d schools)", err, len(byName))
	}
	if byName[0].Name != "Highway Heroes" {
		t.Fatalf("search by name hit = %q", byName[0].Name)
	}
}

func TestSchoolService_DeleteInstructor_Cascades(t *testing.T) {
	db := newTestDB(t)
	svc := newSchoolService(db)
	calSvc := newCalendarService(db, false)
	bookSvc := newBookingService(db)
	ctx := context.Background()

	school := seedSchool(t, db, nil)
	inst := seedInstructor(t, db, school.ID)

	month, start := futureMonth(t)
	if _, err := calSvc.EnableMonth(ctx, inst.ID, month); err != nil {
		t.Fatalf("enable month: %v", err)
	}
	date := start.Format("2006-01-02")
	if _, err := bookSvc.BookFromCalendar(ctx, calendarRequest(inst.ID, date, "10:00", "cascade@example.com")); err != nil {
		t.Fatalf("book: %v", err)
	}

	if err := svc.DeleteInstructor(ctx, inst.ID); err != nil {
		t.Fatalf("delete instructor: %v", err)
	}

	for _, table := range []string{"lesson_slots", "bookings", "driver_availability", "instructors"} {
		var count int64
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Fatalf("%s still has %d rows after cascade", table, count)
		}
	}
}

func TestSchoolService_DeleteSlot_BlockedByActiveBooking(t *testing.T) {
	db := newTestDB(t)
	svc := newSchoolService(db)
	bookSvc := newBookingService(db)
	ctx := context.Background()

	school := seedSchool(t, db, nil)
	inst := seedInstructor(t, db, school.ID)

	_, start := futureMonth(t)
	slot, err := svc.CreateSlot(ctx, inst.ID, calendar.SlotStart(start, "11:00"), 60, 350)
	if err != nil {
		t.Fatalf("create slot: %v", err)
	}

	booking, err := bookSvc.BookSlot(ctx, SlotBookingRequest{
		SlotID:  slot.ID,
		Learner: LearnerInfo{Email: "hold@example.com"},
	}, model.BookingStatusConfirmed)
	if err != nil {
		t.Fatalf("book slot: %v", err)
	}

	if err := svc.DeleteSlot(ctx, slot.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("delete booked slot: err = %v, want ErrConflict", err)
	}

	if _, err := bookSvc.Cancel(ctx, booking.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := svc.DeleteSlot(ctx, slot.ID); err != nil {
		t.Fatalf("delete after cancel: %v", err)
	}
}

func TestSchoolService_CreateSlot_RejectsDuplicateStart(t *testing.T) {
	db := newTestDB(t)
	svc := newSchoolService(db)
	ctx := context.Background()

	school := seedSchool(t, db, nil)
	inst := seedInstructor(t, db, school.ID)

	_, start := futureMonth(t)
	at := calendar.SlotStart(start, "09:00")
	if _, err := svc.CreateSlot(ctx, inst.ID, at, 60, 350); err != nil {
		t.Fatalf("create slot: %v", err)
	}
	if _, err := svc.CreateSlot(ctx, inst.ID, at, 45, 300); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate start: err = %v, want ErrConflict", err)
	}
}
