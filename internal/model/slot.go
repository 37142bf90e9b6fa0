package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// lesson_slots
//
// A slot is the priced, timed reservation unit a learner actually books.
// It can be created by an admin directly or materialized on demand when a
// calendar cell is booked for the first time.
type LessonSlot struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	InstructorID uuid.UUID `gorm:"type:uuid;not null;index" json:"instructorId"`

	StartTime       time.Time `gorm:"type:timestamp with time zone;not null;index" json:"startTime"`
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`
	Price           float64   `gorm:"type:numeric(10,2);not null" json:"price"`

	// Available=false while any non-cancelled booking references the slot.
	Available bool `gorm:"not null;default:true;index" json:"available"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`

	Instructor *Instructor `gorm:"foreignKey:InstructorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"instructor,omitempty"`
}

func (s *LessonSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
