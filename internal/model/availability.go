package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status of one calendar cell.
type CellStatus string

const (
	CellStatusAvailable   CellStatus = "available"
	CellStatusBooked      CellStatus = "booked"
	CellStatusLocked      CellStatus = "locked"
	CellStatusUnavailable CellStatus = "unavailable"
)

// driver_availability
//
// One cell per (instructor, day, time slot) of the published calendar grid.
// A day-off is collapsed into a single sentinel cell with TimeSlot "00:00"
// and IsUnavailableDay set.
type AvailabilityCell struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	InstructorID uuid.UUID `gorm:"type:uuid;not null;index" json:"instructorId"`

	// "2006-01", derived from Day.
	Month string `gorm:"column:availability_month;type:varchar(7);not null;index" json:"month"`

	Day      datatypes.Date `gorm:"column:available_date;type:date;not null;index" json:"day"`
	TimeSlot string         `gorm:"column:time_slot;type:varchar(5);not null" json:"timeSlot"`

	Status CellStatus `gorm:"type:varchar(16);not null;default:'available';index" json:"status"`

	IsUnavailableDay bool `gorm:"column:is_unavailable_day;not null;default:false" json:"isUnavailableDay"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`

	Instructor *Instructor `gorm:"foreignKey:InstructorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (AvailabilityCell) TableName() string { return "driver_availability" }

func (c *AvailabilityCell) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Bookable reports whether the cell can accept a new booking.
func (c *AvailabilityCell) Bookable() bool {
	return c.Status == CellStatusAvailable && !c.IsUnavailableDay
}
