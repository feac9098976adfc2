package services

import (
	"github.com/kritika0598/AiFace/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) CreateOrUpdateUser(googleID, email, name, profilePicture string) (*models.User, error) {
	user := models.User{
		GoogleID:       googleID,
		Email:          email,
		Name:           name,
		ProfilePicture: profilePicture,
	}
	result := s.db.Where(models.User{GoogleID: googleID}).FirstOrCreate(&user)

	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

func (s *UserService) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	result := s.db.Where("id = ?", id).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}
