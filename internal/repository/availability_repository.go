package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/openroad/driveschool/internal/model"
)

type AvailabilityRepository interface {
	// All cells published for an instructor.
	ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]model.AvailabilityCell, error)
	// Cells of one month.
	ListByInstructorMonth(ctx context.Context, instructorID uuid.UUID, month string) ([]model.AvailabilityCell, error)
	// Cells of one day.
	ListByInstructorDay(ctx context.Context, instructorID uuid.UUID, day time.Time) ([]model.AvailabilityCell, error)
	// Cells of one (day, time slot) pair. Duplicates are possible at the
	// store level, hence a list.
	ListByInstructorDayTimeSlot(ctx context.Context, instructorID uuid.UUID, day time.Time, timeSlot string) ([]model.AvailabilityCell, error)
	// Create a single cell.
	Create(ctx context.Context, cell *model.AvailabilityCell) error
	// Bulk insert, used by month enabling.
	BulkCreate(ctx context.Context, cells []model.AvailabilityCell) error
	// Delete every cell of a month.
	DeleteByInstructorMonth(ctx context.Context, instructorID uuid.UUID, month string) error
	// Delete every cell of a day.
	DeleteByInstructorDay(ctx context.Context, instructorID uuid.UUID, day time.Time) error
	// Delete every cell of an instructor (instructor removal cascade).
	DeleteByInstructor(ctx context.Context, instructorID uuid.UUID) error
	// Unconditional status update for every cell of a (day, time slot).
	UpdateStatusByDayTimeSlot(ctx context.Context, instructorID uuid.UUID, day time.Time, timeSlot string, status model.CellStatus, clearDayOff bool) (int64, error)
	// ReserveCells is the check-and-reserve step: it flips the matching
	// bookable cells to booked in one conditional update and reports how
	// many rows were won. Zero means another booking got there first or the
	// cells are not bookable.
	ReserveCells(ctx context.Context, instructorID uuid.UUID, day time.Time, timeSlot string) (int64, error)
}

type GormAvailabilityRepository struct {
	db *gorm.DB
}

func NewGormAvailabilityRepository(db *gorm.DB) *GormAvailabilityRepository {
	return &GormAvailabilityRepository{db: db}
}

func (r *GormAvailabilityRepository) ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]model.AvailabilityCell, error) {
	var cells []model.AvailabilityCell
	err := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("available_date ASC, time_slot ASC").
		Find(&cells).Error
	if err != nil {
		return nil, err
	}
	return cells, nil
}

func (r *GormAvailabilityRepository) ListByInstructorMonth(ctx context.Context, instructorID uuid.UUID, month string) ([]model.AvailabilityCell, error) {
	var cells []model.AvailabilityCell
	err := r.db.WithContext(ctx).
		Where("instructor_id = ? AND availability_month = ?", instructorID, month).
		Order("available_date ASC, time_slot ASC").
		Find(&cells).Error
	if err != nil {
		return nil, err
	}
	return cells, nil
}

func (r *GormAvailabilityRepository) ListByInstructorDay(ctx context.Context, instructorID uuid.UUID, day time.Time) ([]model.AvailabilityCell, error) {
	var cells []model.AvailabilityCell
	err := r.db.WithContext(ctx).
		Where("instructor_id = ? AND available_date = ?", instructorID, datatypes.Date(day)).
		Order("time_slot ASC").
		Find(&cells).Error
	if err != nil {
		return nil, err
	}
	return cells, nil
}

func (r *GormAvailabilityRepository) ListByInstructorDayTimeSlot(ctx context.Context, instructorID uuid.UUID, day time.Time, timeSlot string) ([]model.AvailabilityCell, error) {
	var cells []model.AvailabilityCell
	err := r.db.WithContext(ctx).
		Where("instructor_id = ? AND available_date = ? AND time_slot = ?", instructorID, datatypes.Date(day), timeSlot).
		Find(&cells).Error
	if err != nil {
		return nil, err
	}
	return cells, nil
}

func (r *GormAvailabilityRepository) Create(ctx context.Context, cell *model.AvailabilityCell) error {
	return r.db.WithContext(ctx).Create(cell).Error
}

func (r *GormAvailabilityRepository) BulkCreate(ctx context.Context, cells []model.AvailabilityCell) error {
	if len(cells) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&cells).Error
}

func (r *GormAvailabilityRepository) DeleteByInstructorMonth(ctx context.Context, instructorID uuid.UUID, month string) error {
	return r.db.WithContext(ctx).
		Where("instructor_id = ? AND availability_month = ?", instructorID, month).
		Delete(&model.AvailabilityCell{}).Error
}

func (r *GormAvailabilityRepository) DeleteByInstructorDay(ctx context.Context, instructorID uuid.UUID, day time.Time) error {
	return r.db.WithContext(ctx).
		Where("instructor_id = ? AND available_date = ?", instructorID, datatypes.Date(day)).
		Delete(&model.AvailabilityCell{}).Error
}

func (r *GormAvailabilityRepository) DeleteByInstructor(ctx context.Context, instructorID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Delete(&model.AvailabilityCell{}).Error
}

func (r *GormAvailabilityRepository) UpdateStatusByDayTimeSlot(ctx context.Context, instructorID uuid.UUID, day time.Time, timeSlot string, status model.CellStatus, clearDayOff bool) (int64, error) {
	updates := map[string]any{"status": status}
	if clearDayOff {
		updates["is_unavailable_day"] = false
	}
	tx := r.db.WithContext(ctx).
		Model(&model.AvailabilityCell{}).
		Where("instructor_id = ? AND available_date = ? AND time_slot = ?", instructorID, datatypes.Date(day), timeSlot).
		Updates(updates)
	return tx.RowsAffected, tx.Error
}

func (r *GormAvailabilityRepository) ReserveCells(ctx context.Context, instructorID uuid.UUID, day time.Time, timeSlot string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.AvailabilityCell{}).
		Where("instructor_id = ? AND available_date = ? AND time_slot = ?", instructorID, datatypes.Date(day), timeSlot).
		Where("status = ? AND is_unavailable_day = ?", model.CellStatusAvailable, false).
		Update("status", model.CellStatusBooked)
	return tx.RowsAffected, tx.Error
}
