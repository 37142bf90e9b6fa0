package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// schools
type School struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	City         string `gorm:"type:varchar(128);index" json:"city"`
	Address      string `gorm:"type:varchar(255)" json:"address"`
	ContactPhone string `gorm:"type:varchar(32)" json:"contactPhone"`

	Rating *float64 `json:"rating"`

	// Defaults applied when a lesson slot is materialized from the calendar.
	PricePerLesson       *float64 `gorm:"type:numeric(10,2)" json:"pricePerLesson"`
	DefaultLessonMinutes *int     `json:"defaultLessonMinutes"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (s *School) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
