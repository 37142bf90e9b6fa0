package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/openroad/driveschool/internal/calendar"
	"github.com/openroad/driveschool/internal/model"
	"github.com/openroad/driveschool/internal/repository"
)

// CalendarService owns the per-instructor availability grid: month
// enable/disable, day and time-slot overrides, and status queries.
type CalendarService struct {
	db               *gorm.DB
	instructorRepo   repository.InstructorRepository
	availabilityRepo repository.AvailabilityRepository
	bookingRepo      repository.BookingRepository
	blockDestructive bool
	logger           *zap.Logger
}

// NewCalendarService wires the calendar over the given repositories.
// blockDestructive makes DisableMonth and SetUnavailableDay refuse when
// active bookings reference the affected range; off keeps the legacy
// destructive behavior.
func NewCalendarService(
	db *gorm.DB,
	instructorRepo repository.InstructorRepository,
	availabilityRepo repository.AvailabilityRepository,
	bookingRepo repository.BookingRepository,
	blockDestructive bool,
	logger *zap.Logger,
) *CalendarService {
	return &CalendarService{
		db:               db,
		instructorRepo:   instructorRepo,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		blockDestructive: blockDestructive,
		logger:           logger,
	}
}

func (s *CalendarService) instructor(ctx context.Context, id uuid.UUID) (*model.Instructor, error) {
	inst, err := s.instructorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("instructor %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get instructor: %w", err)
	}
	return inst, nil
}

// EnableMonth publishes one available cell per remaining day of the month
// and lesson time. A month that already has cells is left untouched; the
// returned count is zero in that case.
func (s *CalendarService) EnableMonth(ctx context.Context, instructorID uuid.UUID, month string) (int, error) {
	if _, err := s.instructor(ctx, instructorID); err != nil {
		return 0, err
	}
	monthStart, err := calendar.ParseMonth(month)
	if err != nil {
		return 0, fmt.Errorf("%v: %w", err, ErrValidation)
	}

	existing, err := s.availabilityRepo.ListByInstructorMonth(ctx, instructorID, month)
	if err != nil {
		return 0, fmt.Errorf("list month cells: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	var cells []model.AvailabilityCell
	for _, day := range calendar.MonthDays(monthStart, time.Now()) {
		for _, ts := range calendar.LessonTimes() {
			cells = append(cells, model.AvailabilityCell{
				InstructorID: instructorID,
				Month:        month,
				Day:          datatypes.Date(day),
				TimeSlot:     ts,
				Status:       model.CellStatusAvailable,
			})
		}
	}
	if err := s.availabilityRepo.BulkCreate(ctx, cells); err != nil {
		return 0, fmt.Errorf("bulk create cells: %w", err)
	}

	s.logger.Info("month enabled",
		zap.String("instructor_id", instructorID.String()),
		zap.String("month", month),
		zap.Int("cells", len(cells)),
	)
	return len(cells), nil
}

// DisableMonth removes every cell of the month, booked and locked ones
// included. Bookings whose cells disappear are not cancelled.
func (s *CalendarService) DisableMonth(ctx context.Context, instructorID uuid.UUID, month string) error {
	if _, err := s.instructor(ctx, instructorID); err != nil {
		return err
	}
	monthStart, err := calendar.ParseMonth(month)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrValidation)
	}

	if s.blockDestructive {
		if err := s.ensureNoActiveBookings(ctx, instructorID, monthStart, monthStart.AddDate(0, 1, 0)); err != nil {
			return err
		}
	}

	if err := s.availabilityRepo.DeleteByInstructorMonth(ctx, instructorID, month); err != nil {
		return fmt.Errorf("delete month cells: %w", err)
	}

	s.logger.Info("month disabled",
		zap.String("instructor_id", instructorID.String()),
		zap.String("month", month),
	)
	return nil
}

// SetUnavailableDay collapses the day into a single day-off sentinel cell,
// discarding whatever cells the day had.
func (s *CalendarService) SetUnavailableDay(ctx context.Context, instructorID uuid.UUID, date string) error {
	if _, err := s.instructor(ctx, instructorID); err != nil {
		return err
	}
	day, err := calendar.ParseDay(date)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrValidation)
	}

	if s.blockDestructive {
		if err := s.ensureNoActiveBookings(ctx, instructorID, day, day.AddDate(0, 0, 1)); err != nil {
			return err
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cells := repository.NewGormAvailabilityRepository(tx)
		if err := cells.DeleteByInstructorDay(ctx, instructorID, day); err != nil {
			return fmt.Errorf("delete day cells: %w", err)
		}
		sentinel := model.AvailabilityCell{
			InstructorID:     instructorID,
			Month:            calendar.MonthOf(day),
			Day:              datatypes.Date(day),
			TimeSlot:         calendar.DayOffSlot,
			Status:           model.CellStatusUnavailable,
			IsUnavailableDay: true,
		}
		if err := cells.Create(ctx, &sentinel); err != nil {
			return fmt.Errorf("create day-off cell: %w", err)
		}
		s.logger.Info("day set unavailable",
			zap.String("instructor_id", instructorID.String()),
			zap.String("day", date),
		)
		return nil
	})
}

// SetUnavailableTimeSlot marks one (day, time slot) unavailable, creating
// the cell if the grid never had it.
func (s *CalendarService) SetUnavailableTimeSlot(ctx context.Context, instructorID uuid.UUID, date, timeSlot string) error {
	if _, err := s.instructor(ctx, instructorID); err != nil {
		return err
	}
	day, err := calendar.ParseDay(date)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrValidation)
	}
	if _, err := calendar.ParseTimeSlot(timeSlot); err != nil {
		return fmt.Errorf("%v: %w", err, ErrValidation)
	}

	rows, err := s.availabilityRepo.UpdateStatusByDayTimeSlot(ctx, instructorID, day, timeSlot, model.CellStatusUnavailable, false)
	if err != nil {
		return fmt.Errorf("update cell status: %w", err)
	}
	if rows == 0 {
		cell := model.AvailabilityCell{
			InstructorID: instructorID,
			Month:        calendar.MonthOf(day),
			Day:          datatypes.Date(day),
			TimeSlot:     timeSlot,
			Status:       model.CellStatusUnavailable,
		}
		if err := s.availabilityRepo.Create(ctx, &cell); err != nil {
			return fmt.Errorf("create unavailable cell: %w", err)
		}
	}
	return nil
}

// SetAvailableTimeSlot re-opens one (day, time slot) and clears the day-off
// flag on it. Missing cells are left missing.
func (s *CalendarService) SetAvailableTimeSlot(ctx context.Context, instructorID uuid.UUID, date, timeSlot string) error {
	if _, err := s.instructor(ctx, instructorID); err != nil {
		return err
	}
	day, err := calendar.ParseDay(date)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrValidation)
	}
	if _, err := calendar.ParseTimeSlot(timeSlot); err != nil {
		return fmt.Errorf("%v: %w", err, ErrValidation)
	}

	if _, err := s.availabilityRepo.UpdateStatusByDayTimeSlot(ctx, instructorID, day, timeSlot, model.CellStatusAvailable, true); err != nil {
		return fmt.Errorf("update cell status: %w", err)
	}
	return nil
}

// Calendar lists the cells of one month.
func (s *CalendarService) Calendar(ctx context.Context, instructorID uuid.UUID, month string) ([]model.AvailabilityCell, error) {
	if _, err := s.instructor(ctx, instructorID); err != nil {
		return nil, err
	}
	if _, err := calendar.ParseMonth(month); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}
	return s.availabilityRepo.ListByInstructorMonth(ctx, instructorID, month)
}

// Availability lists every published cell of an instructor.
func (s *CalendarService) Availability(ctx context.Context, instructorID uuid.UUID) ([]model.AvailabilityCell, error) {
	if _, err := s.instructor(ctx, instructorID); err != nil {
		return nil, err
	}
	return s.availabilityRepo.ListByInstructor(ctx, instructorID)
}

// MonthsSummary returns the disjoint enabled/disabled month sets.
func (s *CalendarService) MonthsSummary(ctx context.Context, instructorID uuid.UUID) (enabled, disabled []string, err error) {
	if _, err := s.instructor(ctx, instructorID); err != nil {
		return nil, nil, err
	}
	cells, err := s.availabilityRepo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, nil, fmt.Errorf("list cells: %w", err)
	}

	view := make([]calendar.MonthCell, 0, len(cells))
	for _, c := range cells {
		view = append(view, calendar.MonthCell{
			Month:  c.Month,
			Status: string(c.Status),
			DayOff: c.IsUnavailableDay,
		})
	}
	enabled, disabled = calendar.SummarizeMonths(view)
	return enabled, disabled, nil
}

func (s *CalendarService) ensureNoActiveBookings(ctx context.Context, instructorID uuid.UUID, from, to time.Time) error {
	bookings, err := s.bookingRepo.ListByInstructorAndRange(ctx, instructorID, from, to)
	if err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}
	for _, b := range bookings {
		if b.Active() {
			return fmt.Errorf("active bookings exist in the affected range: %w", ErrConflict)
		}
	}
	return nil
}
