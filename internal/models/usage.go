package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisUsage counts analysis calls for one user on one calendar day.
// Date is truncated to local midnight and forms a unique pair with UserID.
// Rows are created lazily on the first reservation of a day and never
// deleted.
type AnalysisUsage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usage_user_date" json:"userId"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_usage_user_date" json:"date"`
	Count     int       `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
