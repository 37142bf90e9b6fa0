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

	"github.com/openroad/driveschool/internal/model"
	"github.com/openroad/driveschool/internal/repository"
)

// SchoolService covers the catalog: schools, their instructors and the
// admin-managed lesson slots.
type SchoolService struct {
	db             *gorm.DB
	schoolRepo     repository.SchoolRepository
	instructorRepo repository.InstructorRepository
	slotRepo       repository.SlotRepository
	bookingRepo    repository.BookingRepository
	logger         *zap.Logger
}

func NewSchoolService(
	db *gorm.DB,
	schoolRepo repository.SchoolRepository,
	instructorRepo repository.InstructorRepository,
	slotRepo repository.SlotRepository,
	bookingRepo repository.BookingRepository,
	logger *zap.Logger,
) *SchoolService {
	return &SchoolService{
		db:             db,
		schoolRepo:     schoolRepo,
		instructorRepo: instructorRepo,
		slotRepo:       slotRepo,
		bookingRepo:    bookingRepo,
		logger:         logger,
	}
}

// Search filters schools by city (exact, case-insensitive) or by name
// substring. Empty filters return the full catalog; city wins when both
// are present.
func (s *SchoolService) Search(ctx context.Context, city, name string) ([]model.School, error) {
	switch {
	case strings.TrimSpace(city) != "":
		return s.schoolRepo.SearchByCity(ctx, strings.TrimSpace(city))
	case strings.TrimSpace(name) != "":
		return s.schoolRepo.SearchByName(ctx, strings.TrimSpace(name))
	default:
		return s.schoolRepo.List(ctx)
	}
}

func (s *SchoolService) Get(ctx context.Context, id uuid.UUID) (*model.School, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("school %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get school: %w", err)
	}
	return school, nil
}

func (s *SchoolService) Instructors(ctx context.Context, schoolID uuid.UUID) ([]model.Instructor, error) {
	if _, err := s.Get(ctx, schoolID); err != nil {
		return nil, err
	}
	return s.instructorRepo.ListBySchool(ctx, schoolID)
}

func (s *SchoolService) CreateSchool(ctx context.Context, school *model.School) error {
	if strings.TrimSpace(school.Name) == "" {
		return fmt.Errorf("school name required: %w", ErrValidation)
	}
	if err := s.schoolRepo.Create(ctx, school); err != nil {
		return fmt.Errorf("create school: %w", err)
	}
	s.logger.Info("school created", zap.String("school_id", school.ID.String()), zap.String("name", school.Name))
	return nil
}

func (s *SchoolService) UpdateSchool(ctx context.Context, school *model.School) error {
	if _, err := s.Get(ctx, school.ID); err != nil {
		return err
	}
	if strings.TrimSpace(school.Name) == "" {
		return fmt.Errorf("school name required: %w", ErrValidation)
	}
	return s.schoolRepo.Update(ctx, school)
}

// DeleteSchool removes the school with everything hanging off it:
// bookings, slots and availability of each instructor, then the
// instructors, then the school row.
func (s *SchoolService) DeleteSchool(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		instructors := repository.NewGormInstructorRepository(tx)
		schools := repository.NewGormSchoolRepository(tx)

		list, err := instructors.ListBySchool(ctx, id)
		if err != nil {
			return fmt.Errorf("list instructors: %w", err)
		}
		for _, inst := range list {
			if err := removeInstructor(ctx, tx, inst.ID); err != nil {
				return err
			}
		}
		return schools.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("school deleted", zap.String("school_id", id.String()))
	return nil
}

func (s *SchoolService) CreateInstructor(ctx context.Context, instructor *model.Instructor) error {
	if strings.TrimSpace(instructor.Name) == "" {
		return fmt.Errorf("instructor name required: %w", ErrValidation)
	}
	if _, err := s.Get(ctx, instructor.SchoolID); err != nil {
		return err
	}
	if err := s.instructorRepo.Create(ctx, instructor); err != nil {
		return fmt.Errorf("create instructor: %w", err)
	}
	s.logger.Info("instructor created",
		zap.String("instructor_id", instructor.ID.String()),
		zap.String("school_id", instructor.SchoolID.String()),
	)
	return nil
}

// DeleteInstructor removes the instructor and every booking, slot and
// availability cell that references it.
func (s *SchoolService) DeleteInstructor(ctx context.Context, id uuid.UUID) error {
	if _, err := s.instructorRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("instructor %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("get instructor: %w", err)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return removeInstructor(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("instructor deleted", zap.String("instructor_id", id.String()))
	return nil
}

// removeInstructor deletes in dependency order inside the caller's
// transaction.
func removeInstructor(ctx context.Context, tx *gorm.DB, instructorID uuid.UUID) error {
	slots := repository.NewGormSlotRepository(tx)
	bookings := repository.NewGormBookingRepository(tx)
	cells := repository.NewGormAvailabilityRepository(tx)
	instructors := repository.NewGormInstructorRepository(tx)

	list, err := slots.ListByInstructor(ctx, instructorID)
	if err != nil {
		return fmt.Errorf("list slots: %w", err)
	}
	for _, slot := range list {
		if err := bookings.DeleteBySlot(ctx, slot.ID); err != nil {
			return fmt.Errorf("delete bookings: %w", err)
		}
	}
	if err := slots.DeleteByInstructor(ctx, instructorID); err != nil {
		return fmt.Errorf("delete slots: %w", err)
	}
	if err := cells.DeleteByInstructor(ctx, instructorID); err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}
	return instructors.Delete(ctx, instructorID)
}

// CreateSlot publishes an admin-managed lesson slot. Start times snap to
// the lesson grid.
func (s *SchoolService) CreateSlot(ctx context.Context, instructorID uuid.UUID, start time.Time, durationMinutes int, price float64) (*model.LessonSlot, error) {
	instructor, err := s.instructorRepo.GetByID(ctx, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("instructor %s: %w", instructorID, ErrNotFound)
		}
		return nil, fmt.Errorf("get instructor: %w", err)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("duration must be positive: %w", ErrValidation)
	}
	if price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", ErrValidation)
	}

	if existing, err := s.slotRepo.FindByInstructorAndStart(ctx, instructorID, start.UTC()); err == nil {
		return nil, fmt.Errorf("slot %s already exists at %s: %w", existing.ID, start, ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find slot: %w", err)
	}

	slot := &model.LessonSlot{
		InstructorID:    instructor.ID,
		StartTime:       start.UTC(),
		DurationMinutes: durationMinutes,
		Price:           price,
		Available:       true,
	}
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}
	return slot, nil
}

// DeleteSlot removes a slot; active bookings on it block the delete.
func (s *SchoolService) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	if _, err := s.slotRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("slot %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("get slot: %w", err)
	}
	active, err := s.bookingRepo.CountActiveBySlotIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return fmt.Errorf("count bookings: %w", err)
	}
	if active > 0 {
		return fmt.Errorf("slot %s has active bookings: %w", id, ErrConflict)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookings := repository.NewGormBookingRepository(tx)
		slots := repository.NewGormSlotRepository(tx)
		if err := bookings.DeleteBySlot(ctx, id); err != nil {
			return fmt.Errorf("delete bookings: %w", err)
		}
		return slots.Delete(ctx, id)
	})
}

// Slots lists every slot of an instructor, booked ones included.
func (s *SchoolService) Slots(ctx context.Context, instructorID uuid.UUID) ([]model.LessonSlot, error) {
	if _, err := s.instructorRepo.GetByID(ctx, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("instructor %s: %w", instructorID, ErrNotFound)
		}
		return nil, fmt.Errorf("get instructor: %w", err)
	}
	return s.slotRepo.ListByInstructor(ctx, instructorID)
}
