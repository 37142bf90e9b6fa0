package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openroad/driveschool/internal/model"
)

type SchoolRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.School, error)
	List(ctx context.Context) ([]model.School, error)
	SearchByCity(ctx context.Context, city string) ([]model.School, error)
	SearchByName(ctx context.Context, name string) ([]model.School, error)
	Create(ctx context.Context, school *model.School) error
	Update(ctx context.Context, school *model.School) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormSchoolRepository struct {
	db *gorm.DB
}

func NewGormSchoolRepository(db *gorm.DB) *GormSchoolRepository {
	return &GormSchoolRepository{db: db}
}

func (r *GormSchoolRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.School, error) {
	var s model.School
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormSchoolRepository) List(ctx context.Context) ([]model.School, error) {
	var schools []model.School
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&schools).Error; err != nil {
		return nil, err
	}
	return schools, nil
}

func (r *GormSchoolRepository) SearchByCity(ctx context.Context, city string) ([]model.School, error) {
	var schools []model.School
	err := r.db.WithContext(ctx).
		Where("LOWER(city) = LOWER(?)", city).
		Order("name ASC").
		Find(&schools).Error
	if err != nil {
		return nil, err
	}
	return schools, nil
}

func (r *GormSchoolRepository) SearchByName(ctx context.Context, name string) ([]model.School, error) {
	var schools []model.School
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Order("name ASC").
		Find(&schools).Error
	if err != nil {
		return nil, err
	}
	return schools, nil
}

func (r *GormSchoolRepository) Create(ctx context.Context, school *model.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

func (r *GormSchoolRepository) Update(ctx context.Context, school *model.School) error {
	return r.db.WithContext(ctx).Save(school).Error
}

func (r *GormSchoolRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.School{}, "id = ?", id).Error
}
