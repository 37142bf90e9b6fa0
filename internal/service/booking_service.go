package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openroad/driveschool/internal/calendar"
	"github.com/openroad/driveschool/internal/model"
	"github.com/openroad/driveschool/internal/repository"
)

// Fallback lesson defaults when the instructor's school carries none.
const (
	defaultLessonMinutes = 60
	defaultLessonPrice   = 350
)

// BookingService is the only component that transitions bookings between
// states. It keeps LessonSlot.Available and the calendar cells consistent
// with the booking status, and it serializes every check-and-reserve
// sequence inside one transaction with conditional updates so two
// concurrent requests can never both win the same slot.
type BookingService struct {
	db             *gorm.DB
	userRepo       repository.UserRepository
	instructorRepo repository.InstructorRepository
	slotRepo       repository.SlotRepository
	bookingRepo    repository.BookingRepository
	logger         *zap.Logger
}

func NewBookingService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	instructorRepo repository.InstructorRepository,
	slotRepo repository.SlotRepository,
	bookingRepo repository.BookingRepository,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		db:             db,
		userRepo:       userRepo,
		instructorRepo: instructorRepo,
		slotRepo:       slotRepo,
		bookingRepo:    bookingRepo,
		logger:         logger,
	}
}

// LearnerInfo identifies or describes the booking learner. ID wins when it
// resolves; otherwise the learner is found or created by email.
type LearnerInfo struct {
	UserID   *uuid.UUID
	FullName string
	Email    string
	Phone    string
}

// PaymentInfo is stored on the booking verbatim (uppercased method).
type PaymentInfo struct {
	Method    string
	CardLast4 string
}

// CalendarBookingRequest books a (instructor, date, time slot) cell.
type CalendarBookingRequest struct {
	InstructorID uuid.UUID
	Date         string // YYYY-MM-DD
	TimeSlot     string // HH:MM
	Learner      LearnerInfo
	Payment      PaymentInfo
}

// SlotBookingRequest books a pre-existing lesson slot directly.
type SlotBookingRequest struct {
	SlotID  uuid.UUID
	Learner LearnerInfo
	Payment PaymentInfo
}

// BookFromCalendar runs the calendar booking sequence: resolve the cells,
// reserve them, materialize the lesson slot, reserve it, resolve the
// learner, create a PENDING booking. The whole sequence is one transaction;
// the reserve steps are conditional updates, so of any number of concurrent
// attempts on the same cell exactly one succeeds and the rest get a
// conflict.
func (s *BookingService) BookFromCalendar(ctx context.Context, req CalendarBookingRequest) (*model.Booking, error) {
	day, err := calendar.ParseDay(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}
	if _, err := calendar.ParseTimeSlot(req.TimeSlot); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}

	var booking *model.Booking
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		instructors := repository.NewGormInstructorRepository(tx)
		cells := repository.NewGormAvailabilityRepository(tx)
		slots := repository.NewGormSlotRepository(tx)
		bookings := repository.NewGormBookingRepository(tx)
		users := repository.NewGormUserRepository(tx)

		instructor, err := instructors.GetByID(ctx, req.InstructorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("instructor %s: %w", req.InstructorID, ErrNotFound)
			}
			return fmt.Errorf("get instructor: %w", err)
		}

		matching, err := cells.ListByInstructorDayTimeSlot(ctx, req.InstructorID, day, req.TimeSlot)
		if err != nil {
			return fmt.Errorf("list cells: %w", err)
		}
		if len(matching) == 0 {
			// Distinct from "unavailable": the month was never enabled or
			// has been disabled since.
			return fmt.Errorf("no availability published for %s %s: %w", req.Date, req.TimeSlot, ErrNotFound)
		}
		if !anyBookable(matching) {
			if anyReserved(matching) {
				return fmt.Errorf("time slot %s %s: %w", req.Date, req.TimeSlot, ErrConflict)
			}
			return fmt.Errorf("time slot %s %s: %w", req.Date, req.TimeSlot, ErrUnavailable)
		}

		// Check-and-reserve on the cells. Zero rows means a concurrent
		// booking won between the read above and this update.
		won, err := cells.ReserveCells(ctx, req.InstructorID, day, req.TimeSlot)
		if err != nil {
			return fmt.Errorf("reserve cells: %w", err)
		}
		if won == 0 {
			return fmt.Errorf("time slot %s %s: %w", req.Date, req.TimeSlot, ErrConflict)
		}

		slot, err := s.materializeSlot(ctx, slots, instructor, calendar.SlotStart(day, req.TimeSlot))
		if err != nil {
			return err
		}

		reserved, err := slots.Reserve(ctx, slot.ID)
		if err != nil {
			return fmt.Errorf("reserve slot: %w", err)
		}
		if reserved == 0 {
			return fmt.Errorf("slot %s: %w", slot.ID, ErrConflict)
		}
		slot.Available = false

		learner, err := s.resolveLearner(ctx, users, req.Learner)
		if err != nil {
			return err
		}

		booking = &model.Booking{
			LearnerID:     learner.ID,
			SlotID:        slot.ID,
			Status:        model.BookingStatusPending,
			PaymentMethod: strings.ToUpper(req.Payment.Method),
			CardLast4:     req.Payment.CardLast4,
		}
		if err := bookings.Create(ctx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		booking.Slot = slot
		booking.Learner = learner
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created from calendar",
		zap.String("booking_id", booking.ID.String()),
		zap.String("instructor_id", req.InstructorID.String()),
		zap.String("date", req.Date),
		zap.String("time_slot", req.TimeSlot),
	)
	return booking, nil
}

// BookSlot books an existing lesson slot without touching the calendar.
// initialStatus selects the entry path: the legacy direct flow creates the
// booking CONFIRMED, the driver-approval flow creates it PENDING.
func (s *BookingService) BookSlot(ctx context.Context, req SlotBookingRequest, initialStatus model.BookingStatus) (*model.Booking, error) {
	if initialStatus != model.BookingStatusPending && initialStatus != model.BookingStatusConfirmed {
		return nil, fmt.Errorf("initial status %q: %w", initialStatus, ErrValidation)
	}

	var booking *model.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slots := repository.NewGormSlotRepository(tx)
		bookings := repository.NewGormBookingRepository(tx)
		users := repository.NewGormUserRepository(tx)

		slot, err := slots.GetByID(ctx, req.SlotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("slot %s: %w", req.SlotID, ErrNotFound)
			}
			return fmt.Errorf("get slot: %w", err)
		}

		reserved, err := slots.Reserve(ctx, slot.ID)
		if err != nil {
			return fmt.Errorf("reserve slot: %w", err)
		}
		if reserved == 0 {
			return fmt.Errorf("slot %s: %w", slot.ID, ErrConflict)
		}
		slot.Available = false

		learner, err := s.resolveLearner(ctx, users, req.Learner)
		if err != nil {
			return err
		}

		booking = &model.Booking{
			LearnerID:     learner.ID,
			SlotID:        slot.ID,
			Status:        initialStatus,
			PaymentMethod: strings.ToUpper(req.Payment.Method),
			CardLast4:     req.Payment.CardLast4,
		}
		if err := bookings.Create(ctx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		booking.Slot = slot
		booking.Learner = learner
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("slot_id", req.SlotID.String()),
		zap.String("status", string(initialStatus)),
	)
	return booking, nil
}

// Confirm moves a PENDING booking to CONFIRMED, keeps the slot reserved and
// locks the matching calendar cells.
func (s *BookingService) Confirm(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	return s.transition(ctx, bookingID, model.BookingStatusConfirmed)
}

// Reject cancels a PENDING booking and releases the slot and cells.
func (s *BookingService) Reject(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	return s.transition(ctx, bookingID, model.BookingStatusCancelled)
}

// Cancel releases a booking; allowed from PENDING and from CONFIRMED.
func (s *BookingService) Cancel(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	return s.transition(ctx, bookingID, model.BookingStatusCancelled)
}

func (s *BookingService) transition(ctx context.Context, bookingID uuid.UUID, target model.BookingStatus) (*model.Booking, error) {
	var booking *model.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookings := repository.NewGormBookingRepository(tx)
		slots := repository.NewGormSlotRepository(tx)
		cells := repository.NewGormAvailabilityRepository(tx)

		var err error
		booking, err = bookings.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
			}
			return fmt.Errorf("get booking: %w", err)
		}

		// Nothing leaves CANCELLED.
		if booking.Status == model.BookingStatusCancelled {
			return fmt.Errorf("booking %s is cancelled: %w", bookingID, ErrConflict)
		}

		if err := bookings.UpdateStatus(ctx, bookingID, target); err != nil {
			return fmt.Errorf("update booking status: %w", err)
		}
		booking.Status = target

		slotAvailable := target == model.BookingStatusCancelled
		cellStatus := model.CellStatusLocked
		if slotAvailable {
			cellStatus = model.CellStatusAvailable
		}

		if err := slots.SetAvailable(ctx, booking.SlotID, slotAvailable); err != nil {
			return fmt.Errorf("update slot: %w", err)
		}
		if booking.Slot != nil {
			booking.Slot.Available = slotAvailable
			day := calendar.DayOf(booking.Slot.StartTime)
			timeSlot := calendar.TimeSlotOf(booking.Slot.StartTime)
			if _, err := cells.UpdateStatusByDayTimeSlot(ctx, booking.Slot.InstructorID, day, timeSlot, cellStatus, false); err != nil {
				return fmt.Errorf("update cells: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking transitioned",
		zap.String("booking_id", bookingID.String()),
		zap.String("status", string(target)),
	)
	return booking, nil
}

// materializeSlot guarantees a LessonSlot exists for the lesson start,
// creating one with the school defaults on first use. A freshly created
// slot starts available; the caller reserves it before anyone can observe
// it.
func (s *BookingService) materializeSlot(ctx context.Context, slots repository.SlotRepository, instructor *model.Instructor, start time.Time) (*model.LessonSlot, error) {
	slot, err := slots.FindByInstructorAndStart(ctx, instructor.ID, start)
	if err == nil {
		return slot, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find slot: %w", err)
	}

	minutes := defaultLessonMinutes
	price := float64(defaultLessonPrice)
	if school := instructor.School; school != nil {
		if school.DefaultLessonMinutes != nil {
			minutes = *school.DefaultLessonMinutes
		}
		if school.PricePerLesson != nil {
			price = *school.PricePerLesson
		}
	}

	slot = &model.LessonSlot{
		InstructorID:    instructor.ID,
		StartTime:       start,
		DurationMinutes: minutes,
		Price:           price,
		Available:       true,
	}
	if err := slots.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}
	return slot, nil
}

// resolveLearner finds the learner by id, falling back to the email
// find-or-create path, refreshing name and phone when supplied.
func (s *BookingService) resolveLearner(ctx context.Context, users repository.UserRepository, info LearnerInfo) (*model.User, error) {
	if info.UserID != nil {
		learner, err := users.GetByID(ctx, *info.UserID)
		if err == nil {
			return learner, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get user: %w", err)
		}
		if info.Email == "" {
			return nil, fmt.Errorf("user %s: %w", *info.UserID, ErrNotFound)
		}
		// Stale id, fall through to the email path.
	}
	if info.Email == "" {
		return nil, fmt.Errorf("user information required: %w", ErrValidation)
	}

	learner, err := users.FindByEmail(ctx, info.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		learner = &model.User{
			FullName: info.FullName,
			Email:    info.Email,
			Phone:    info.Phone,
			Role:     model.UserRoleLearner,
		}
		if err := users.Create(ctx, learner); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return learner, nil
	}

	if info.FullName != "" {
		learner.FullName = info.FullName
	}
	if info.Phone != "" {
		learner.Phone = info.Phone
	}
	if err := users.Update(ctx, learner); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return learner, nil
}

// AvailableSlots lists the upcoming slots of an instructor.
func (s *BookingService) AvailableSlots(ctx context.Context, instructorID uuid.UUID) ([]model.LessonSlot, error) {
	if _, err := s.instructorRepo.GetByID(ctx, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("instructor %s: %w", instructorID, ErrNotFound)
		}
		return nil, fmt.Errorf("get instructor: %w", err)
	}
	return s.slotRepo.ListUpcomingByInstructor(ctx, instructorID, time.Now().UTC())
}

// BookingsForUser lists the bookings of one learner.
func (s *BookingService) BookingsForUser(ctx context.Context, userID uuid.UUID) ([]model.Booking, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return s.bookingRepo.ListByLearner(ctx, userID)
}

// AllBookings lists every booking.
func (s *BookingService) AllBookings(ctx context.Context) ([]model.Booking, error) {
	return s.bookingRepo.ListAll(ctx)
}

// BookingsForInstructor lists the bookings on an instructor's slots.
func (s *BookingService) BookingsForInstructor(ctx context.Context, instructorID uuid.UUID) ([]model.Booking, error) {
	if _, err := s.instructorRepo.GetByID(ctx, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("instructor %s: %w", instructorID, ErrNotFound)
		}
		return nil, fmt.Errorf("get instructor: %w", err)
	}
	return s.bookingRepo.ListByInstructor(ctx, instructorID)
}

// BookingsForInstructorDay lists an instructor's bookings on one day.
func (s *BookingService) BookingsForInstructorDay(ctx context.Context, instructorID uuid.UUID, date string) ([]model.Booking, error) {
	day, err := calendar.ParseDay(date)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}
	if _, err := s.instructorRepo.GetByID(ctx, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("instructor %s: %w", instructorID, ErrNotFound)
		}
		return nil, fmt.Errorf("get instructor: %w", err)
	}
	return s.bookingRepo.ListByInstructorAndRange(ctx, instructorID, day, day.AddDate(0, 0, 1))
}

func anyBookable(cells []model.AvailabilityCell) bool {
	for i := range cells {
		if cells[i].Bookable() {
			return true
		}
	}
	return false
}

func anyReserved(cells []model.AvailabilityCell) bool {
	for i := range cells {
		if cells[i].Status == model.CellStatusBooked || cells[i].Status == model.CellStatusLocked {
			return true
		}
	}
	return false
}
