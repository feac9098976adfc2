package services

import (
	"mime/multipart"

	"github.com/kritika0598/AiFace/internal/models"

	"github.com/google/uuid"
)

type UsageLedger interface {
	GetStatus(userID uuid.UUID) (UsageStatus, error)
	Reserve(userID uuid.UUID) (*Reservation, error)
	Commit(res *Reservation) (UsageStatus, error)
}

type AnalysisCache interface {
	Fetch(imageID, userID uuid.UUID) (*models.Analysis, error)
	Store(imageID, userID uuid.UUID, payload *FacePayload, matches []models.CelebrityMatch) (*models.Analysis, error)
}

type ImageManager interface {
	SaveUpload(userID uuid.UUID, fileHeader *multipart.FileHeader) (*models.Image, error)
	GetByIDAndUser(imageID, userID uuid.UUID) (*models.Image, error)
	ListByUser(userID uuid.UUID) ([]models.Image, error)
	Delete(imageID, userID uuid.UUID) error
	ReadFile(image *models.Image) ([]byte, error)
}
