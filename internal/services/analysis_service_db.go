package services

import (
	"github.com/kritika0598/AiFace/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnalysisStoreDB interface {
	GetAnalysisDB(imageID, userID uuid.UUID) (*models.Analysis, error)
	UpsertAnalysisDB(analysis *models.Analysis) error
}

type DefaultAnalysisStore struct {
	db *gorm.DB
}

func NewAnalysisStoreDB(db *gorm.DB) AnalysisStoreDB {
	return &DefaultAnalysisStore{db: db}
}

func (s *DefaultAnalysisStore) GetAnalysisDB(imageID, userID uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	err := s.db.Where("image_id = ? AND user_id = ?", imageID, userID).First(&analysis).Error
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

// UpsertAnalysisDB replaces the record for the (image, user) pair in full.
// The conflict target is the unique index on the pair, so a concurrent
// writer resolves to last-write-wins instead of a duplicate row.
func (s *DefaultAnalysisStore) UpsertAnalysisDB(analysis *models.Analysis) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "image_id"}, {Name: "user_id"}},
		UpdateAll: true,
	}).Create(analysis).Error
}
