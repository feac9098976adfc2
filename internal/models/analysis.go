package models

import (
	"time"

	"github.com/google/uuid"
)

// Analysis holds the normalized result of analyzing one image. At most one
// record exists per (image, user) pair; a repeat analysis replaces the row
// in full rather than adding a second one.
type Analysis struct {
	ID                  uuid.UUID           `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ImageID             uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_analyses_image_user" json:"imageId"`
	UserID              uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_analyses_image_user" json:"userId"`
	Message             string              `gorm:"not null" json:"message"`
	PositiveTraits      []string            `gorm:"serializer:json" json:"positiveTraits"`
	NegativeTraits      []string            `gorm:"serializer:json" json:"negativeTraits"`
	PersonalityAnalysis PersonalityAnalysis `gorm:"serializer:json" json:"personalityAnalysis"`
	AgeHealthAnalysis   AgeHealthAnalysis   `gorm:"serializer:json" json:"ageHealthAnalysis"`
	BeautyAnalysis      BeautyAnalysis      `gorm:"serializer:json" json:"beautyAnalysis"`
	Confidence          float64             `gorm:"default:0.95" json:"confidence"`
	CreatedAt           time.Time           `json:"createdAt"`
}

type FacialFeature struct {
	Feature        string `json:"feature"`
	Interpretation string `json:"interpretation"`
}

type MianXiang struct {
	Elements       []string `json:"elements"`
	Interpretation string   `json:"interpretation"`
}

type Physiognomy struct {
	Traits         []string `json:"traits"`
	Interpretation string   `json:"interpretation"`
}

type PersonalityAnalysis struct {
	FacialFeatures []FacialFeature `json:"facialFeatures"`
	MianXiang      MianXiang       `json:"mianXiang"`
	Physiognomy    Physiognomy     `json:"physiognomy"`
}

type HealthIndicator struct {
	Indicator string `json:"indicator"`
	Status    string `json:"status"`
}

// LevelReading is a score in [0,1] with interpretive text. The raw provider
// value is stored as-is; clamping for display is the consumer's job.
type LevelReading struct {
	Value          float64 `json:"value"`
	Interpretation string  `json:"interpretation"`
}

type AgeHealthAnalysis struct {
	EstimatedAge     float64           `json:"estimatedAge"`
	BiologicalAge    float64           `json:"biologicalAge"`
	HealthIndicators []HealthIndicator `json:"healthIndicators"`
	StressLevel      LevelReading      `json:"stressLevel"`
	FatigueLevel     LevelReading      `json:"fatigueLevel"`
	HydrationLevel   LevelReading      `json:"hydrationLevel"`
}

type AestheticBalance struct {
	Score          float64 `json:"score"`
	Interpretation string  `json:"interpretation"`
}

type CelebrityMatch struct {
	Name       string   `json:"name"`
	Similarity float64  `json:"similarity"`
	Features   []string `json:"features"`
}

type BeautyAnalysis struct {
	SymmetryScore    float64          `json:"symmetryScore"`
	GoldenRatioScore float64          `json:"goldenRatioScore"`
	AestheticBalance AestheticBalance `json:"aestheticBalance"`
	CelebrityMatches []CelebrityMatch `json:"celebrityMatches"`
}
