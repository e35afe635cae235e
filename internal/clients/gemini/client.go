// Package gemini provides a narrative sentiment client backed by the Google Gemini API
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"google.golang.org/genai"

	"github.com/intellinez-com/GoldTrack-sub000/internal/common"
	"github.com/intellinez-com/GoldTrack-sub000/internal/interfaces"
	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

const DefaultModel = "gemini-3-flash-preview"

var metalNames = map[string]string{
	models.MetalGold:      "gold",
	models.MetalSilver:    "silver",
	models.MetalPlatinum:  "platinum",
	models.MetalPalladium: "palladium",
}

// Client implements the NarrativeClient interface
type Client struct {
	client   *genai.Client
	model    string
	logger   *common.Logger
	validate *validator.Validate
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini narrative client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client:   genaiClient,
		model:    DefaultModel,
		logger:   common.NewSilentLogger(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// narrativeResponse is the strict JSON shape the model is asked to produce.
type narrativeResponse struct {
	SentimentScore *float64 `json:"sentiment_score" validate:"required,gte=0,lte=100"`
	Tone           string   `json:"tone" validate:"required,oneof=bullish bearish neutral"`
	GeoModifier    int      `json:"geo_modifier" validate:"gte=-10,lte=10"`
}

// GetNarrative asks the model for a current sentiment reading on the metal.
// A malformed reply is an error; the reading is never partially populated.
func (c *Client) GetNarrative(ctx context.Context, metal string) (*models.NarrativeInput, error) {
	prompt := buildNarrativePrompt(metal)

	c.logger.Debug().Str("model", c.model).Str("metal", metal).Msg("Requesting narrative sentiment")

	contents := genai.Text(prompt)
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate narrative: %w", err)
	}

	text, err := extractTextFromResponse(result)
	if err != nil {
		return nil, err
	}

	return parseNarrative(c.validate, text)
}

// parseNarrative decodes the model reply into a sentiment reading.
func parseNarrative(validate *validator.Validate, text string) (*models.NarrativeInput, error) {
	text = stripCodeFences(text)

	var resp narrativeResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse narrative response: %w", err)
	}
	if err := validate.Struct(&resp); err != nil {
		return nil, fmt.Errorf("invalid narrative response: %w", err)
	}

	return &models.NarrativeInput{
		SentimentScore: *resp.SentimentScore,
		Tone:           resp.Tone,
		GeoModifier:    resp.GeoModifier,
		LastUpdated:    time.Now().UTC(),
	}, nil
}

// stripCodeFences removes a surrounding markdown code block, if present.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func buildNarrativePrompt(metal string) string {
	name := metalNames[metal]
	if name == "" {
		name = metal
	}

	return fmt.Sprintf(`You are a precious metals market analyst. Assess the current market narrative for %s based on macro conditions, central bank activity, inflation expectations, and geopolitical risk.

Respond with ONLY a JSON object in exactly this shape, no prose:
{
  "sentiment_score": <number 0-100, where 0 is maximally bearish and 100 maximally bullish>,
  "tone": "<bullish|bearish|neutral>",
  "geo_modifier": <integer -10 to 10 capturing geopolitical risk premium>
}`, name)
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

// Ensure Client implements NarrativeClient
var _ interfaces.NarrativeClient = (*Client)(nil)
