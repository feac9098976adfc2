package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GoogleID       string    `gorm:"unique;not null" json:"-"`
	Email          string    `gorm:"unique;not null" json:"email"`
	Name           string    `json:"name"`
	ProfilePicture string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"-"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
