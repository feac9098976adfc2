package api

import (
	"context"
	"errors"
	"net/http"
	"sync"

	apperrors "github.com/kritika0598/AiFace/internal/errors"
	"github.com/kritika0598/AiFace/internal/models"
	"github.com/kritika0598/AiFace/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type AnalysisHandler struct {
	usage  services.UsageLedger
	cache  services.AnalysisCache
	vision services.FaceAnalyzer
	images services.ImageManager
}

func NewAnalysisHandler(usage services.UsageLedger, cache services.AnalysisCache, vision services.FaceAnalyzer, images services.ImageManager) *AnalysisHandler {
	return &AnalysisHandler{usage: usage, cache: cache, vision: vision, images: images}
}

// GetAnalysis returns the cached analysis for one of the caller's images.
// Absence is a 404 the frontend reads as "not analyzed yet".
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
		return
	}

	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		apperrors.HandleError(c, apperrors.New400Error("Invalid image id"))
		return
	}

	analysis, err := h.cache.Fetch(imageID, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrAnalysisNotFound) {
			apperrors.HandleError(c, apperrors.New404Error("No analysis found for this image"))
			return
		}
		apperrors.HandleError(c, apperrors.New500Error("Error fetching analysis", err))
		return
	}

	c.JSON(http.StatusOK, analysis)
}

func (h *AnalysisHandler) GetUsageStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
		return
	}

	status, err := h.usage.GetStatus(user.ID)
	if err != nil {
		apperrors.HandleError(c, apperrors.New500Error("Error fetching usage status", err))
		return
	}

	c.JSON(http.StatusOK, status)
}

type analyzeResponse struct {
	*models.Analysis
	Usage services.UsageStatus `json:"usage"`
}

// AnalyzeImage runs a fresh analysis for one of the caller's images. The
// quota slot is reserved up front but only committed once the provider call
// and the cache write have succeeded, so a failed analysis does not burn
// the user's daily allowance.
func (h *AnalysisHandler) AnalyzeImage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
		return
	}

	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		apperrors.HandleError(c, apperrors.New400Error("Invalid image id"))
		return
	}

	reservation, err := h.usage.Reserve(user.ID)
	if err != nil {
		var quotaErr *services.QuotaExceededError
		if errors.As(err, &quotaErr) {
			apperrors.HandleError(c, apperrors.New429Error(quotaErr.Error(), quotaErr.Limit, quotaErr.Count))
			return
		}
		apperrors.HandleError(c, apperrors.New500Error("Error analyzing face", err))
		return
	}

	image, err := h.images.GetByIDAndUser(imageID, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrImageNotFound) {
			apperrors.HandleError(c, apperrors.New404Error("Image not found"))
			return
		}
		apperrors.HandleError(c, apperrors.New500Error("Error analyzing face", err))
		return
	}

	data, err := h.images.ReadFile(image)
	if err != nil {
		apperrors.HandleError(c, apperrors.New500Error("Error analyzing face", err))
		return
	}

	// The two provider calls are independent. They run detached from the
	// request context so a client disconnect does not abort them mid-flight,
	// and a celebrity-match failure degrades to an empty list instead of
	// failing the analysis.
	ctx := context.Background()
	var wg sync.WaitGroup

	var payload *services.FacePayload
	var analyzeErr error
	var matches []models.CelebrityMatch

	wg.Add(2)
	go func() {
		defer wg.Done()
		payload, analyzeErr = h.vision.AnalyzeFace(ctx, data, image.Mimetype)
	}()
	go func() {
		defer wg.Done()
		var matchErr error
		matches, matchErr = h.vision.MatchCelebrities(ctx, data, image.Mimetype)
		if matchErr != nil {
			log.Warn().Err(matchErr).Msg("Celebrity match call failed")
			matches = []models.CelebrityMatch{}
		}
	}()
	wg.Wait()

	if analyzeErr != nil {
		apperrors.HandleError(c, apperrors.New500Error("Error analyzing face", analyzeErr))
		return
	}

	analysis, err := h.cache.Store(imageID, user.ID, payload, matches)
	if err != nil {
		apperrors.HandleError(c, apperrors.New500Error("Error analyzing face", err))
		return
	}

	status, err := h.usage.Commit(reservation)
	if err != nil {
		apperrors.HandleError(c, apperrors.New500Error("Error analyzing face", err))
		return
	}

	c.JSON(http.StatusOK, analyzeResponse{Analysis: analysis, Usage: status})
}

func currentUser(c *gin.Context) (*models.User, bool) {
	user, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	userModel, ok := user.(*models.User)
	return userModel, ok
}
