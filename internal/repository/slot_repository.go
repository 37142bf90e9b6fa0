package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openroad/driveschool/internal/model"
)

type SlotRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.LessonSlot, error)
	// All slots of an instructor.
	ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]model.LessonSlot, error)
	// Slots starting after a point in time.
	ListUpcomingByInstructor(ctx context.Context, instructorID uuid.UUID, after time.Time) ([]model.LessonSlot, error)
	// Exact lookup used by slot materialization.
	FindByInstructorAndStart(ctx context.Context, instructorID uuid.UUID, start time.Time) (*model.LessonSlot, error)
	Create(ctx context.Context, slot *model.LessonSlot) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByInstructor(ctx context.Context, instructorID uuid.UUID) error
	// Unconditional availability flip (release / reaffirm).
	SetAvailable(ctx context.Context, id uuid.UUID, available bool) error
	// Reserve flips an available slot to unavailable and reports whether
	// this caller won the row. Zero rows means the slot was already taken.
	Reserve(ctx context.Context, id uuid.UUID) (int64, error)
}

type GormSlotRepository struct {
	db *gorm.DB
}

func NewGormSlotRepository(db *gorm.DB) *GormSlotRepository {
	return &GormSlotRepository{db: db}
}

func (r *GormSlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.LessonSlot, error) {
	var slot model.LessonSlot
	if err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *GormSlotRepository) ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]model.LessonSlot, error) {
	var slots []model.LessonSlot
	err := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *GormSlotRepository) ListUpcomingByInstructor(ctx context.Context, instructorID uuid.UUID, after time.Time) ([]model.LessonSlot, error) {
	var slots []model.LessonSlot
	err := r.db.WithContext(ctx).
		Where("instructor_id = ? AND start_time > ?", instructorID, after).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *GormSlotRepository) FindByInstructorAndStart(ctx context.Context, instructorID uuid.UUID, start time.Time) (*model.LessonSlot, error) {
	var slot model.LessonSlot
	err := r.db.WithContext(ctx).
		Where("instructor_id = ? AND start_time = ?", instructorID, start).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *GormSlotRepository) Create(ctx context.Context, slot *model.LessonSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *GormSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.LessonSlot{}, "id = ?", id).Error
}

func (r *GormSlotRepository) DeleteByInstructor(ctx context.Context, instructorID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Delete(&model.LessonSlot{}).Error
}

func (r *GormSlotRepository) SetAvailable(ctx context.Context, id uuid.UUID, available bool) error {
	return r.db.WithContext(ctx).
		Model(&model.LessonSlot{}).
		Where("id = ?", id).
		Update("available", available).
		Error
}

func (r *GormSlotRepository) Reserve(ctx context.Context, id uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.LessonSlot{}).
		Where("id = ? AND available = ?", id, true).
		Update("available", false)
	return tx.RowsAffected, tx.Error
}
