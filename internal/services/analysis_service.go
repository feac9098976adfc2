package services

import (
	"errors"
	"strings"

	"github.com/kritika0598/AiFace/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrAnalysisNotFound means no analysis has been stored for the pair yet.
// Callers treat it as "trigger a computation", not as a hard failure.
var ErrAnalysisNotFound = errors.New("no analysis found for this image")

// Traits longer than this are assumed to be full sentences the model
// produced instead of short labels, and are dropped.
const maxTraitLength = 50

const defaultConfidence = 0.95

// AnalysisService is the cache of normalized analysis results, keyed by the
// (image, user) pair.
type AnalysisService struct {
	store AnalysisStoreDB
}

func NewAnalysisService(store AnalysisStoreDB) *AnalysisService {
	return &AnalysisService{store: store}
}

func (s *AnalysisService) Fetch(imageID, userID uuid.UUID) (*models.Analysis, error) {
	analysis, err := s.store.GetAnalysisDB(imageID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return analysis, nil
}

// Store normalizes the provider payload, merges the celebrity matches into
// the beauty section and upserts the record for the (image, user) pair,
// replacing any prior value in full.
func (s *AnalysisService) Store(imageID, userID uuid.UUID, payload *FacePayload, matches []models.CelebrityMatch) (*models.Analysis, error) {
	analysis := buildAnalysis(imageID, userID, payload, matches)
	if err := s.store.UpsertAnalysisDB(analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

// NormalizeTraits trims each trait, drops empty strings and anything longer
// than maxTraitLength, and removes duplicates keeping first-seen order.
// Running it over its own output changes nothing.
func NormalizeTraits(traits []string) []string {
	cleaned := make([]string, 0, len(traits))
	seen := make(map[string]bool, len(traits))
	for _, trait := range traits {
		trait = strings.TrimSpace(trait)
		if trait == "" || len(trait) > maxTraitLength {
			continue
		}
		if seen[trait] {
			continue
		}
		seen[trait] = true
		cleaned = append(cleaned, trait)
	}
	return cleaned
}

// buildAnalysis maps the provider payload onto the canonical record. Missing
// nested sections come out as empty structures rather than nulls, so
// consumers never have to null-check nested paths. Numeric sub-scores are
// stored as received; clamping for display is the consumer's job.
func buildAnalysis(imageID, userID uuid.UUID, payload *FacePayload, matches []models.CelebrityMatch) *models.Analysis {
	features := make([]models.FacialFeature, 0, len(payload.PersonalityAnalysis.FacialFeatures))
	for _, f := range payload.PersonalityAnalysis.FacialFeatures {
		features = append(features, models.FacialFeature{
			Feature:        f.Feature,
			Interpretation: f.Interpretation,
		})
	}

	indicators := make([]models.HealthIndicator, 0, len(payload.AgeHealthAnalysis.HealthIndicators))
	for _, ind := range payload.AgeHealthAnalysis.HealthIndicators {
		indicators = append(indicators, models.HealthIndicator{
			Indicator: ind.Indicator,
			Status:    ind.Status,
		})
	}

	celebrityMatches := make([]models.CelebrityMatch, 0, len(matches))
	for _, m := range matches {
		if m.Features == nil {
			m.Features = []string{}
		}
		celebrityMatches = append(celebrityMatches, m)
	}

	return &models.Analysis{
		ImageID:        imageID,
		UserID:         userID,
		Message:        payload.Analysis,
		PositiveTraits: NormalizeTraits(payload.PositiveTraits),
		NegativeTraits: NormalizeTraits(payload.NegativeTraits),
		PersonalityAnalysis: models.PersonalityAnalysis{
			FacialFeatures: features,
			MianXiang: models.MianXiang{
				Elements:       emptyIfNil(payload.PersonalityAnalysis.MianXiang.Elements),
				Interpretation: payload.PersonalityAnalysis.MianXiang.Interpretation,
			},
			Physiognomy: models.Physiognomy{
				Traits:         emptyIfNil(payload.PersonalityAnalysis.Physiognomy.Traits),
				Interpretation: payload.PersonalityAnalysis.Physiognomy.Interpretation,
			},
		},
		AgeHealthAnalysis: models.AgeHealthAnalysis{
			EstimatedAge:     payload.AgeHealthAnalysis.EstimatedAge,
			BiologicalAge:    payload.AgeHealthAnalysis.BiologicalAge,
			HealthIndicators: indicators,
			StressLevel:      levelReading(payload.AgeHealthAnalysis.StressLevel),
			FatigueLevel:     levelReading(payload.AgeHealthAnalysis.FatigueLevel),
			HydrationLevel:   levelReading(payload.AgeHealthAnalysis.HydrationLevel),
		},
		BeautyAnalysis: models.BeautyAnalysis{
			SymmetryScore:    payload.BeautyAnalysis.SymmetryScore,
			GoldenRatioScore: payload.BeautyAnalysis.GoldenRatioScore,
			AestheticBalance: models.AestheticBalance{
				Score:          payload.BeautyAnalysis.AestheticBalance.Score,
				Interpretation: payload.BeautyAnalysis.AestheticBalance.Interpretation,
			},
			CelebrityMatches: celebrityMatches,
		},
		Confidence: defaultConfidence,
	}
}

func levelReading(raw RawLevel) models.LevelReading {
	return models.LevelReading{
		Value:          raw.Value,
		Interpretation: raw.Interpretation,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
