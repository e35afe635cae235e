package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlend_Weighting(t *testing.T) {
	hs := Blend(80, 60)

	assert.InDelta(t, 0.85*80+0.15*60, hs.Score, 1e-9)
	assert.Equal(t, "Optimal", hs.Label)
	assert.False(t, hs.Damped)
}

func TestBlend_DampsBullishNarrativeOnWeakTechnicals(t *testing.T) {
	// A euphoric narrative cannot rescue a broken trend: the narrative leg
	// is clamped to 55 when technicals are under 40.
	hs := Blend(20, 95)

	assert.True(t, hs.Damped)
	assert.InDelta(t, 0.85*20+0.15*55, hs.Score, 1e-9)
	assert.Equal(t, "Critical", hs.Label)
}

func TestBlend_DampsBearishNarrativeOnWeakTechnicals(t *testing.T) {
	hs := Blend(20, 5)

	assert.True(t, hs.Damped)
	assert.InDelta(t, 0.85*20+0.15*45, hs.Score, 1e-9)
}

func TestBlend_NoDampingInsideBand(t *testing.T) {
	hs := Blend(20, 52)

	assert.False(t, hs.Damped)
	assert.InDelta(t, 0.85*20+0.15*52, hs.Score, 1e-9)
}

func TestBlend_NoDampingOnHealthyTechnicals(t *testing.T) {
	hs := Blend(40, 95)

	assert.False(t, hs.Damped)
	assert.InDelta(t, 0.85*40+0.15*95, hs.Score, 1e-9)
}

func TestBlend_Labels(t *testing.T) {
	assert.Equal(t, "Optimal", Blend(90, 50).Label)  // 84.0
	assert.Equal(t, "Neutral", Blend(60, 50).Label)  // 58.5
	assert.Equal(t, "Critical", Blend(40, 50).Label) // 41.5
	assert.Equal(t, "Critical", Blend(0, 50).Label)
}
