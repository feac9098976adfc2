package api

import (
	"errors"
	"net/http"

	apperrors "github.com/kritika0598/AiFace/internal/errors"
	"github.com/kritika0598/AiFace/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ImageHandler struct {
	images services.ImageManager
}

func NewImageHandler(images services.ImageManager) *ImageHandler {
	return &ImageHandler{images: images}
}

func (h *ImageHandler) Upload(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		apperrors.HandleError(c, apperrors.New400Error("No file uploaded"))
		return
	}

	image, err := h.images.SaveUpload(user.ID, fileHeader)
	if err != nil {
		apperrors.HandleError(c, apperrors.New500Error("Error uploading file", err))
		return
	}

	c.JSON(http.StatusCreated, image)
}

func (h *ImageHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
		return
	}

	images, err := h.images.ListByUser(user.ID)
	if err != nil {
		apperrors.HandleError(c, apperrors.New500Error("Error fetching images", err))
		return
	}

	c.JSON(http.StatusOK, images)
}

func (h *ImageHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
		return
	}

	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, apperrors.New400Error("Invalid image id"))
		return
	}

	if err := h.images.Delete(imageID, user.ID); err != nil {
		if errors.Is(err, services.ErrImageNotFound) {
			apperrors.HandleError(c, apperrors.New404Error("Image not found"))
			return
		}
		apperrors.HandleError(c, apperrors.New500Error("Error deleting image", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}
