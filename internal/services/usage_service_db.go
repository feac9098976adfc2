package services

import (
	"time"

	"github.com/kritika0598/AiFace/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsageStoreDB interface {
	GetUsageDB(userID uuid.UUID, day time.Time) (*models.AnalysisUsage, error)
	EnsureUsageDB(userID uuid.UUID, day time.Time) error
	IncrementUsageDB(userID uuid.UUID, day time.Time) (*models.AnalysisUsage, error)
}

type DefaultUsageStore struct {
	db *gorm.DB
}

func NewUsageStoreDB(db *gorm.DB) UsageStoreDB {
	return &DefaultUsageStore{db: db}
}

func (s *DefaultUsageStore) GetUsageDB(userID uuid.UUID, day time.Time) (*models.AnalysisUsage, error) {
	var usage models.AnalysisUsage
	err := s.db.Where("user_id = ? AND date = ?", userID, day).First(&usage).Error
	if err != nil {
		return nil, err
	}
	return &usage, nil
}

// EnsureUsageDB lazily creates the (user, day) record with a zero count.
// The insert rides on the unique index, so two concurrent callers cannot
// produce a second row for the same day.
func (s *DefaultUsageStore) EnsureUsageDB(userID uuid.UUID, day time.Time) error {
	usage := models.AnalysisUsage{
		UserID: userID,
		Date:   day,
		Count:  0,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&usage).Error
}

// IncrementUsageDB bumps the day's count by one in a single UPDATE, so
// concurrent commits for the same user do not lose increments.
func (s *DefaultUsageStore) IncrementUsageDB(userID uuid.UUID, day time.Time) (*models.AnalysisUsage, error) {
	err := s.db.Model(&models.AnalysisUsage{}).
		Where("user_id = ? AND date = ?", userID, day).
		UpdateColumn("count", gorm.Expr("count + 1")).Error
	if err != nil {
		return nil, err
	}
	return s.GetUsageDB(userID, day)
}
