package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openroad/driveschool/internal/model"
)

type InstructorRepository interface {
	// GetByID preloads the school so materialization defaults are at hand.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Instructor, error)
	ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.Instructor, error)
	Create(ctx context.Context, instructor *model.Instructor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormInstructorRepository struct {
	db *gorm.DB
}

func NewGormInstructorRepository(db *gorm.DB) *GormInstructorRepository {
	return &GormInstructorRepository{db: db}
}

func (r *GormInstructorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Instructor, error) {
	var inst model.Instructor
	if err := r.db.WithContext(ctx).Preload("School").First(&inst, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *GormInstructorRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.Instructor, error) {
	var instructors []model.Instructor
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("name ASC").
		Find(&instructors).Error
	if err != nil {
		return nil, err
	}
	return instructors, nil
}

func (r *GormInstructorRepository) Create(ctx context.Context, instructor *model.Instructor) error {
	return r.db.WithContext(ctx).Create(instructor).Error
}

func (r *GormInstructorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Instructor{}, "id = ?", id).Error
}
