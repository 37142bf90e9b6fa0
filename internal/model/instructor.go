package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// instructors
type Instructor struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	SchoolID uuid.UUID `gorm:"type:uuid;not null;index" json:"schoolId"`

	Name   string   `gorm:"type:varchar(255);not null" json:"name"`
	Bio    string   `gorm:"type:text" json:"bio"`
	Rating *float64 `json:"rating"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`

	School *School `gorm:"foreignKey:SchoolID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"school,omitempty"`
}

func (i *Instructor) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
