package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/kritika0598/AiFace/internal/models"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const faceAnalysisPrompt = `Analyze this high-resolution image of a human face. Identify the person's face shape, symmetry, eyebrow position, eye spacing, nose shape, and jawline. Based on this information, provide insights aligned with traditional Chinese face reading and modern personality theories. Provide a detailed analysis in JSON format. Include personality traits, age, health indicators, and beauty features.

For beauty and symmetry scores, ensure all values are between 0 and 1 (will be converted to percentages 0-100%). This includes:
- symmetry_score (0-1)
- golden_ratio_score (0-1)
- aesthetic_balance.score (0-1)`

const celebrityMatchPrompt = `Based on this person's facial features, find 3-5 celebrities who share similar facial characteristics. Consider:
1. Overall facial structure and shape
2. Eye shape and spacing
3. Nose shape and size
4. Jawline and chin structure
5. Facial proportions

Return the results in this JSON format:
{
  "celebrity_matches": [
    {
      "name": "Celebrity name",
      "similarity": 0.85,
      "features": ["List of specific facial features that match"]
    }
  ]
}`

// FacePayload mirrors the JSON the model is asked to produce through the
// analyze_face function schema. Field absence decodes to zero values; the
// cache's normalization turns those into empty structures.
type FacePayload struct {
	Analysis            string         `json:"analysis"`
	PositiveTraits      []string       `json:"positive_traits"`
	NegativeTraits      []string       `json:"negative_traits"`
	PersonalityAnalysis RawPersonality `json:"personality_analysis"`
	AgeHealthAnalysis   RawAgeHealth   `json:"age_health_analysis"`
	BeautyAnalysis      RawBeauty      `json:"beauty_analysis"`
}

type RawFacialFeature struct {
	Feature        string `json:"feature"`
	Interpretation string `json:"interpretation"`
}

type RawMianXiang struct {
	Elements       []string `json:"elements"`
	Interpretation string   `json:"interpretation"`
}

type RawPhysiognomy struct {
	Traits         []string `json:"traits"`
	Interpretation string   `json:"interpretation"`
}

type RawPersonality struct {
	FacialFeatures []RawFacialFeature `json:"facial_features"`
	MianXiang      RawMianXiang       `json:"mian_xiang"`
	Physiognomy    RawPhysiognomy     `json:"physiognomy"`
}

type RawHealthIndicator struct {
	Indicator string `json:"indicator"`
	Status    string `json:"status"`
}

type RawLevel struct {
	Value          float64 `json:"value"`
	Interpretation string  `json:"interpretation"`
}

type RawAgeHealth struct {
	EstimatedAge     float64              `json:"estimated_age"`
	BiologicalAge    float64              `json:"biological_age"`
	HealthIndicators []RawHealthIndicator `json:"health_indicators"`
	StressLevel      RawLevel             `json:"stress_level"`
	FatigueLevel     RawLevel             `json:"fatigue_level"`
	HydrationLevel   RawLevel             `json:"hydration_level"`
}

type RawAestheticBalance struct {
	Score          float64 `json:"score"`
	Interpretation string  `json:"interpretation"`
}

type RawBeauty struct {
	SymmetryScore    float64             `json:"symmetry_score"`
	GoldenRatioScore float64             `json:"golden_ratio_score"`
	AestheticBalance RawAestheticBalance `json:"aesthetic_balance"`
}

type celebrityMatchResponse struct {
	CelebrityMatches []models.CelebrityMatch `json:"celebrity_matches"`
}

// FaceAnalyzer is the external vision provider seen by the analyze flow.
type FaceAnalyzer interface {
	AnalyzeFace(ctx context.Context, image []byte, mimetype string) (*FacePayload, error)
	MatchCelebrities(ctx context.Context, image []byte, mimetype string) ([]models.CelebrityMatch, error)
}

type VisionService struct {
	client *openai.Client
	model  string
}

func NewVisionService(client *openai.Client, model string) *VisionService {
	return &VisionService{client: client, model: model}
}

// AnalyzeFace runs the structured face analysis call. The model is forced
// into the analyze_face function call; its arguments are parsed with a
// degenerate-payload fallback, so a malformed response still yields a
// storable result instead of an error.
func (s *VisionService) AnalyzeFace(ctx context.Context, image []byte, mimetype string) (*FacePayload, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: faceAnalysisPrompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURI(image, mimetype),
						},
					},
				},
			},
		},
		Functions:    []openai.FunctionDefinition{analyzeFaceFunction()},
		FunctionCall: openai.FunctionCall{Name: "analyze_face"},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.FunctionCall == nil {
		return nil, fmt.Errorf("no function call in model response")
	}
	return ParseFacePayload(resp.Choices[0].Message.FunctionCall.Arguments), nil
}

// MatchCelebrities runs the independent celebrity-likeness call. A response
// that does not parse yields an empty match list; only transport failures
// are returned, and the caller degrades those to an empty list too.
func (s *VisionService) MatchCelebrities(ctx context.Context, image []byte, mimetype string) ([]models.CelebrityMatch, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: celebrityMatchPrompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURI(image, mimetype),
						},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in model response")
	}

	var parsed celebrityMatchResponse
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		log.Warn().Err(err).Msg("Failed to parse celebrity match response")
		return []models.CelebrityMatch{}, nil
	}
	if parsed.CelebrityMatches == nil {
		return []models.CelebrityMatch{}, nil
	}
	return parsed.CelebrityMatches, nil
}

// ParseFacePayload decodes the raw provider output. When the output is not
// valid JSON the whole text becomes the narrative message of a degenerate
// payload, so the caller still gets a storable analysis.
func ParseFacePayload(raw string) *FacePayload {
	var payload FacePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Warn().Err(err).Msg("Failed to parse analysis response, falling back to raw text")
		return &FacePayload{Analysis: raw}
	}
	return &payload
}

func dataURI(image []byte, mimetype string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimetype, base64.StdEncoding.EncodeToString(image))
}

func analyzeFaceFunction() openai.FunctionDefinition {
	interpretation := jsonschema.Definition{Type: jsonschema.String}
	stringList := jsonschema.Definition{
		Type:  jsonschema.Array,
		Items: &jsonschema.Definition{Type: jsonschema.String},
	}
	level := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"value":          {Type: jsonschema.Number, Description: "Level between 0 and 1"},
			"interpretation": interpretation,
		},
	}

	return openai.FunctionDefinition{
		Name:        "analyze_face",
		Description: "Analyze facial features and provide detailed insights",
		Parameters: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"analysis": {
					Type:        jsonschema.String,
					Description: "A detailed analysis of the face",
				},
				"positive_traits": {
					Type:        jsonschema.Array,
					Items:       &jsonschema.Definition{Type: jsonschema.String},
					Description: "List of positive personality traits",
				},
				"negative_traits": {
					Type:        jsonschema.Array,
					Items:       &jsonschema.Definition{Type: jsonschema.String},
					Description: "List of negative personality traits",
				},
				"personality_analysis": {
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"facial_features": {
							Type: jsonschema.Array,
							Items: &jsonschema.Definition{
								Type: jsonschema.Object,
								Properties: map[string]jsonschema.Definition{
									"feature":        {Type: jsonschema.String},
									"interpretation": interpretation,
								},
							},
						},
						"mian_xiang": {
							Type: jsonschema.Object,
							Properties: map[string]jsonschema.Definition{
								"elements":       stringList,
								"interpretation": interpretation,
							},
						},
						"physiognomy": {
							Type: jsonschema.Object,
							Properties: map[string]jsonschema.Definition{
								"traits":         stringList,
								"interpretation": interpretation,
							},
						},
					},
				},
				"age_health_analysis": {
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"estimated_age": {
							Type:        jsonschema.Number,
							Description: "Estimated chronological age",
						},
						"biological_age": {
							Type:        jsonschema.Number,
							Description: "Estimated biological age based on facial features",
						},
						"health_indicators": {
							Type: jsonschema.Array,
							Items: &jsonschema.Definition{
								Type: jsonschema.Object,
								Properties: map[string]jsonschema.Definition{
									"indicator": {Type: jsonschema.String},
									"status":    {Type: jsonschema.String},
								},
							},
						},
						"stress_level":    level,
						"fatigue_level":   level,
						"hydration_level": level,
					},
				},
				"beauty_analysis": {
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"symmetry_score": {
							Type:        jsonschema.Number,
							Description: "Score between 0 and 1 representing facial symmetry",
						},
						"golden_ratio_score": {
							Type:        jsonschema.Number,
							Description: "Score between 0 and 1 representing match with golden ratio",
						},
						"aesthetic_balance": {
							Type: jsonschema.Object,
							Properties: map[string]jsonschema.Definition{
								"score": {
									Type:        jsonschema.Number,
									Description: "Score between 0 and 1 representing aesthetic balance",
								},
								"interpretation": interpretation,
							},
						},
					},
				},
			},
			Required: []string{
				"analysis",
				"positive_traits",
				"negative_traits",
				"personality_analysis",
				"age_health_analysis",
				"beauty_analysis",
			},
		},
	}
}
