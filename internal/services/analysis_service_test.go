package services

import (
	"fmt"
	"testing"

	"github.com/kritika0598/AiFace/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memAnalysisStore keeps at most one record per (image, user) pair, like
// the unique index on the real table.
type memAnalysisStore struct {
	records map[string]*models.Analysis
	writes  int
}

func newMemAnalysisStore() *memAnalysisStore {
	return &memAnalysisStore{records: make(map[string]*models.Analysis)}
}

func analysisKey(imageID, userID uuid.UUID) string {
	return fmt.Sprintf("%s/%s", imageID, userID)
}

func (s *memAnalysisStore) GetAnalysisDB(imageID, userID uuid.UUID) (*models.Analysis, error) {
	record, ok := s.records[analysisKey(imageID, userID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *memAnalysisStore) UpsertAnalysisDB(analysis *models.Analysis) error {
	s.writes++
	copied := *analysis
	s.records[analysisKey(analysis.ImageID, analysis.UserID)] = &copied
	return nil
}

func TestNormalizeTraits(t *testing.T) {
	t.Run("dedup and trim", func(t *testing.T) {
		got := NormalizeTraits([]string{"kind", "kind", " generous "})
		assert.Equal(t, []string{"kind", "generous"}, got)
	})

	t.Run("empty strings dropped", func(t *testing.T) {
		got := NormalizeTraits([]string{"", "   ", "calm"})
		assert.Equal(t, []string{"calm"}, got)
	})

	t.Run("long sentences dropped", func(t *testing.T) {
		long := "this is a 60-character-long sentence that exceeds the limit xx"
		got := NormalizeTraits([]string{long, "thoughtful"})
		assert.Equal(t, []string{"thoughtful"}, got)
	})

	t.Run("case sensitive dedup", func(t *testing.T) {
		got := NormalizeTraits([]string{"Kind", "kind"})
		assert.Equal(t, []string{"Kind", "kind"}, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		once := NormalizeTraits([]string{" warm ", "warm", "direct", ""})
		twice := NormalizeTraits(once)
		assert.Equal(t, once, twice)
	})

	t.Run("empty input yields empty non-nil list", func(t *testing.T) {
		got := NormalizeTraits(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func samplePayload() *FacePayload {
	return &FacePayload{
		Analysis:       "A composed and balanced face.",
		PositiveTraits: []string{"kind", "kind", " generous "},
		NegativeTraits: []string{},
		PersonalityAnalysis: RawPersonality{
			FacialFeatures: []RawFacialFeature{
				{Feature: "jawline", Interpretation: "decisive"},
			},
			MianXiang:   RawMianXiang{Elements: []string{"wood"}, Interpretation: "steady"},
			Physiognomy: RawPhysiognomy{Traits: []string{"broad forehead"}, Interpretation: "analytical"},
		},
		AgeHealthAnalysis: RawAgeHealth{
			EstimatedAge:  31,
			BiologicalAge: 29,
			HealthIndicators: []RawHealthIndicator{
				{Indicator: "skin tone", Status: "good"},
			},
			StressLevel:    RawLevel{Value: 0.3, Interpretation: "low"},
			FatigueLevel:   RawLevel{Value: 0.2, Interpretation: "rested"},
			HydrationLevel: RawLevel{Value: 0.8, Interpretation: "well hydrated"},
		},
		BeautyAnalysis: RawBeauty{
			SymmetryScore:    0.87,
			GoldenRatioScore: 0.74,
			AestheticBalance: RawAestheticBalance{Score: 0.81, Interpretation: "harmonious"},
		},
	}
}

func TestStoreNormalizesTraits(t *testing.T) {
	store := newMemAnalysisStore()
	service := NewAnalysisService(store)

	analysis, err := service.Store(uuid.New(), uuid.New(), samplePayload(), nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"kind", "generous"}, analysis.PositiveTraits)
	assert.Equal(t, []string{}, analysis.NegativeTraits)
}

func TestStoreThenFetchRoundTrip(t *testing.T) {
	store := newMemAnalysisStore()
	service := NewAnalysisService(store)
	imageID, userID := uuid.New(), uuid.New()

	stored, err := service.Store(imageID, userID, samplePayload(), []models.CelebrityMatch{
		{Name: "Some Actor", Similarity: 0.85, Features: []string{"jawline"}},
	})
	require.NoError(t, err)

	fetched, err := service.Fetch(imageID, userID)
	require.NoError(t, err)

	assert.Equal(t, stored.Message, fetched.Message)
	assert.Equal(t, stored.PositiveTraits, fetched.PositiveTraits)
	assert.Equal(t, stored.PersonalityAnalysis, fetched.PersonalityAnalysis)
	assert.Equal(t, stored.AgeHealthAnalysis, fetched.AgeHealthAnalysis)
	assert.Equal(t, stored.BeautyAnalysis, fetched.BeautyAnalysis)
	assert.Equal(t, 0.87, fetched.BeautyAnalysis.SymmetryScore)
	assert.Len(t, fetched.BeautyAnalysis.CelebrityMatches, 1)
	assert.Equal(t, 0.95, fetched.Confidence)
}

func TestStoreTwiceOverwrites(t *testing.T) {
	store := newMemAnalysisStore()
	service := NewAnalysisService(store)
	imageID, userID := uuid.New(), uuid.New()

	first := samplePayload()
	first.Analysis = "first reading"
	_, err := service.Store(imageID, userID, first, nil)
	require.NoError(t, err)

	second := samplePayload()
	second.Analysis = "second reading"
	second.PositiveTraits = []string{"patient"}
	_, err = service.Store(imageID, userID, second, nil)
	require.NoError(t, err)

	fetched, err := service.Fetch(imageID, userID)
	require.NoError(t, err)
	assert.Equal(t, "second reading", fetched.Message)
	assert.Equal(t, []string{"patient"}, fetched.PositiveTraits)
	assert.Len(t, store.records, 1)
	assert.Equal(t, 2, store.writes)
}

func TestStoreDegeneratePayload(t *testing.T) {
	store := newMemAnalysisStore()
	service := NewAnalysisService(store)

	raw := "The model replied with prose instead of JSON."
	payload := ParseFacePayload(raw)

	analysis, err := service.Store(uuid.New(), uuid.New(), payload, nil)
	require.NoError(t, err)

	assert.Equal(t, raw, analysis.Message)
	assert.Equal(t, []string{}, analysis.PositiveTraits)
	assert.Equal(t, []string{}, analysis.NegativeTraits)
	assert.Equal(t, 0.95, analysis.Confidence)
	assert.Empty(t, analysis.PersonalityAnalysis.FacialFeatures)
	assert.Empty(t, analysis.AgeHealthAnalysis.HealthIndicators)
	assert.Zero(t, analysis.BeautyAnalysis.SymmetryScore)
}

func TestStoreDefaultsMissingSections(t *testing.T) {
	store := newMemAnalysisStore()
	service := NewAnalysisService(store)

	analysis, err := service.Store(uuid.New(), uuid.New(), &FacePayload{Analysis: "sparse"}, nil)
	require.NoError(t, err)

	// No nested path may come out nil; consumers never null-check.
	assert.NotNil(t, analysis.PersonalityAnalysis.FacialFeatures)
	assert.NotNil(t, analysis.PersonalityAnalysis.MianXiang.Elements)
	assert.NotNil(t, analysis.PersonalityAnalysis.Physiognomy.Traits)
	assert.NotNil(t, analysis.AgeHealthAnalysis.HealthIndicators)
	assert.NotNil(t, analysis.BeautyAnalysis.CelebrityMatches)
}

func TestStoreMergesCelebrityMatches(t *testing.T) {
	store := newMemAnalysisStore()
	service := NewAnalysisService(store)

	matches := []models.CelebrityMatch{
		{Name: "Actor One", Similarity: 0.9, Features: []string{"eyes", "nose"}},
		{Name: "Actor Two", Similarity: 0.7, Features: nil},
	}

	analysis, err := service.Store(uuid.New(), uuid.New(), samplePayload(), matches)
	require.NoError(t, err)

	require.Len(t, analysis.BeautyAnalysis.CelebrityMatches, 2)
	assert.Equal(t, "Actor One", analysis.BeautyAnalysis.CelebrityMatches[0].Name)
	assert.NotNil(t, analysis.BeautyAnalysis.CelebrityMatches[1].Features)
}

func TestFetchNotFound(t *testing.T) {
	service := NewAnalysisService(newMemAnalysisStore())

	_, err := service.Fetch(uuid.New(), uuid.New())

	assert.ErrorIs(t, err, ErrAnalysisNotFound)
}
