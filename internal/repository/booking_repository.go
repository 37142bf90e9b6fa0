package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openroad/driveschool/internal/model"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error
	ListAll(ctx context.Context) ([]model.Booking, error)
	ListByLearner(ctx context.Context, learnerID uuid.UUID) ([]model.Booking, error)
	// Bookings whose slot belongs to the instructor. Indexed join, the
	// store never loads the full booking table to filter in memory.
	ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]model.Booking, error)
	// Same, restricted to slots starting within [from, to).
	ListByInstructorAndRange(ctx context.Context, instructorID uuid.UUID, from, to time.Time) ([]model.Booking, error)
	DeleteBySlot(ctx context.Context, slotID uuid.UUID) error
	// Number of PENDING/CONFIRMED bookings referencing any of the slots.
	CountActiveBySlotIDs(ctx context.Context, slotIDs []uuid.UUID) (int64, error)
}

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).Preload("Slot").First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

func (r *GormBookingRepository) ListAll(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Slot").Preload("Learner").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingRepository) ListByLearner(ctx context.Context, learnerID uuid.UUID) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Slot").
		Where("learner_id = ?", learnerID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingRepository) ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Slot").Preload("Learner").
		Joins("JOIN lesson_slots ON lesson_slots.id = bookings.slot_id").
		Where("lesson_slots.instructor_id = ?", instructorID).
		Order("bookings.created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingRepository) ListByInstructorAndRange(ctx context.Context, instructorID uuid.UUID, from, to time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Slot").Preload("Learner").
		Joins("JOIN lesson_slots ON lesson_slots.id = bookings.slot_id").
		Where("lesson_slots.instructor_id = ?", instructorID).
		Where("lesson_slots.start_time >= ? AND lesson_slots.start_time < ?", from, to).
		Order("lesson_slots.start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingRepository) DeleteBySlot(ctx context.Context, slotID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Delete(&model.Booking{}).Error
}

func (r *GormBookingRepository) CountActiveBySlotIDs(ctx context.Context, slotIDs []uuid.UUID) (int64, error) {
	if len(slotIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("slot_id IN ?", slotIDs).
		Where("status IN ?", []model.BookingStatus{model.BookingStatusPending, model.BookingStatusConfirmed}).
		Count(&count).Error
	return count, err
}
