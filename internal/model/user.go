package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleLearner UserRole = "LEARNER"
	UserRoleAdmin   UserRole = "ADMIN"
)

// users
type User struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	FullName string `gorm:"type:varchar(255)" json:"fullName"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone    string `gorm:"type:varchar(32)" json:"phone"`

	// Demo credentials only, never returned in responses.
	Password string `gorm:"type:varchar(255)" json:"-"`

	Role UserRole `gorm:"type:varchar(16);not null;default:'LEARNER'" json:"role"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
