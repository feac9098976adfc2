package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kritika0598/AiFace/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrImageNotFound = errors.New("image not found")

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

type ImageService struct {
	db        *gorm.DB
	uploadDir string
	maxSize   int64
}

func NewImageService(db *gorm.DB, uploadDir string, maxSize int64) *ImageService {
	return &ImageService{db: db, uploadDir: uploadDir, maxSize: maxSize}
}

// SaveUpload validates the uploaded file, writes it under the upload
// directory with a timestamp-prefixed name and records it for the user.
// The type check sniffs the first 512 bytes rather than trusting the
// client-supplied extension alone.
func (s *ImageService) SaveUpload(userID uuid.UUID, fileHeader *multipart.FileHeader) (*models.Image, error) {
	if fileHeader.Size > s.maxSize {
		return nil, fmt.Errorf("file too large: %d bytes", fileHeader.Size)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	buffer := make([]byte, 512)
	if _, err := file.Read(buffer); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	contentType := http.DetectContentType(buffer)
	if !allowedImageTypes[contentType] {
		return nil, fmt.Errorf("only image files are allowed, got %s", contentType)
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(fileHeader.Filename))
	path := filepath.Join(s.uploadDir, filename)

	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	size, err := io.Copy(out, file)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	image := &models.Image{
		UserID:       userID,
		Filename:     filename,
		OriginalName: fileHeader.Filename,
		Path:         path,
		Size:         size,
		Mimetype:     contentType,
	}
	if err := s.db.Create(image).Error; err != nil {
		os.Remove(path)
		return nil, err
	}
	return image, nil
}

func (s *ImageService) GetByIDAndUser(imageID, userID uuid.UUID) (*models.Image, error) {
	var image models.Image
	err := s.db.Where("id = ? AND user_id = ?", imageID, userID).First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (s *ImageService) ListByUser(userID uuid.UUID) ([]models.Image, error) {
	var images []models.Image
	err := s.db.Where("user_id = ?", userID).Order("uploaded_at desc").Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// Delete removes the stored file and the record. Analysis records for the
// image are intentionally left behind as history.
func (s *ImageService) Delete(imageID, userID uuid.UUID) error {
	image, err := s.GetByIDAndUser(imageID, userID)
	if err != nil {
		return err
	}

	if err := os.Remove(image.Path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", image.Path).Msg("Failed to remove image file")
	}

	return s.db.Delete(&models.Image{}, "id = ?", image.ID).Error
}

// ReadFile loads the stored binary for the provider call.
func (s *ImageService) ReadFile(image *models.Image) ([]byte, error) {
	return os.ReadFile(image.Path)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.ReplaceAll(name, " ", "_")
}
