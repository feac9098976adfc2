package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFacePayloadStructured(t *testing.T) {
	raw, err := json.Marshal(samplePayload())
	require.NoError(t, err)

	payload := ParseFacePayload(string(raw))

	assert.Equal(t, "A composed and balanced face.", payload.Analysis)
	assert.Equal(t, 0.87, payload.BeautyAnalysis.SymmetryScore)
	assert.Equal(t, []string{"wood"}, payload.PersonalityAnalysis.MianXiang.Elements)
}

func TestParseFacePayloadFallsBackToRawText(t *testing.T) {
	raw := "I am sorry, I cannot produce JSON today."

	payload := ParseFacePayload(raw)

	assert.Equal(t, raw, payload.Analysis)
	assert.Empty(t, payload.PositiveTraits)
	assert.Empty(t, payload.NegativeTraits)
	assert.Zero(t, payload.AgeHealthAnalysis.EstimatedAge)
	assert.Zero(t, payload.BeautyAnalysis.GoldenRatioScore)
}

func TestDataURI(t *testing.T) {
	uri := dataURI([]byte{0x1, 0x2}, "image/png")
	assert.Equal(t, "data:image/png;base64,AQI=", uri)
}

func TestAnalyzeFaceFunctionSchema(t *testing.T) {
	def := analyzeFaceFunction()

	assert.Equal(t, "analyze_face", def.Name)

	// The schema must serialize cleanly; the provider rejects anything else.
	raw, err := json.Marshal(def.Parameters)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	props, ok := decoded["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, field := range []string{"analysis", "positive_traits", "negative_traits", "personality_analysis", "age_health_analysis", "beauty_analysis"} {
		assert.Contains(t, props, field)
	}
}
