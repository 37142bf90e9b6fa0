package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// bookings
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	LearnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"learnerId"`
	SlotID    uuid.UUID `gorm:"type:uuid;not null;index" json:"slotId"`

	Status BookingStatus `gorm:"type:varchar(16);not null;index" json:"status"`

	// "CASH" or "CARD", stored uppercase.
	PaymentMethod string `gorm:"type:varchar(16)" json:"paymentMethod"`
	CardLast4     string `gorm:"type:varchar(4)" json:"cardLast4"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`

	Learner *User       `gorm:"foreignKey:LearnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"learner,omitempty"`
	Slot    *LessonSlot `gorm:"foreignKey:SlotID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"slot,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Active reports whether the booking still reserves its slot.
func (b *Booking) Active() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
