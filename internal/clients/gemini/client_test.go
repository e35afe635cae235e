package gemini

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNarrative(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())

	input, err := parseNarrative(v, `{"sentiment_score": 72.5, "tone": "bullish", "geo_modifier": 3}`)
	require.NoError(t, err)
	assert.Equal(t, 72.5, input.SentimentScore)
	assert.Equal(t, "bullish", input.Tone)
	assert.Equal(t, 3, input.GeoModifier)
	assert.False(t, input.LastUpdated.IsZero())
}

func TestParseNarrative_StripsCodeFences(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())

	raw := "```json\n{\"sentiment_score\": 40, \"tone\": \"bearish\", \"geo_modifier\": -2}\n```"
	input, err := parseNarrative(v, raw)
	require.NoError(t, err)
	assert.Equal(t, 40.0, input.SentimentScore)
	assert.Equal(t, "bearish", input.Tone)
}

func TestParseNarrative_RejectsMalformed(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())

	cases := map[string]string{
		"prose":         "Gold looks strong this quarter.",
		"missing score": `{"tone": "bullish", "geo_modifier": 0}`,
		"bad tone":      `{"sentiment_score": 50, "tone": "euphoric", "geo_modifier": 0}`,
		"score range":   `{"sentiment_score": 140, "tone": "bullish", "geo_modifier": 0}`,
		"geo range":     `{"sentiment_score": 50, "tone": "neutral", "geo_modifier": 25}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseNarrative(v, raw)
			assert.Error(t, err)
		})
	}
}

func TestParseNarrative_ZeroScoreIsValid(t *testing.T) {
	// A pointer field distinguishes an explicit 0 from an absent value.
	v := validator.New(validator.WithRequiredStructEnabled())

	input, err := parseNarrative(v, `{"sentiment_score": 0, "tone": "bearish", "geo_modifier": 0}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, input.SentimentScore)
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences(`{"a":1}`))
}
