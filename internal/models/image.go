package models

import (
	"time"

	"github.com/google/uuid"
)

// Image is one uploaded photograph. The owning user never changes after
// creation; deleting an image removes the stored file but leaves any
// analysis record behind.
type Image struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Filename     string    `gorm:"not null" json:"filename"`
	OriginalName string    `gorm:"not null" json:"originalName"`
	Path         string    `gorm:"not null" json:"path"`
	Size         int64     `gorm:"not null" json:"size"`
	Mimetype     string    `gorm:"not null" json:"mimetype"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploadedAt"`
}
