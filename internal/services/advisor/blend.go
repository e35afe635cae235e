package advisor

import "github.com/intellinez-com/GoldTrack-sub000/internal/models"

const (
	technicalWeight = 0.85
	narrativeWeight = 0.15

	// Below this technical score the narrative contribution is damped so a
	// bullish headline cycle cannot mask a broken trend.
	dampBelowTechnical = 40.0
	dampCenter         = 50.0
	dampBand           = 5.0
)

// Blend combines a technical score with a narrative sentiment score into a
// single portfolio health score. The technical leg dominates; the narrative
// leg is clamped to near-neutral whenever the technicals are weak.
func Blend(technicalScore, narrativeScore float64) *models.HealthScore {
	hs := &models.HealthScore{
		TechnicalScore: technicalScore,
	}

	narr := narrativeScore
	if technicalScore < dampBelowTechnical {
		if narr > dampCenter+dampBand {
			narr = dampCenter + dampBand
			hs.Damped = true
		} else if narr < dampCenter-dampBand {
			narr = dampCenter - dampBand
			hs.Damped = true
		}
	}

	hs.NarrativeScore = narr
	hs.Score = technicalWeight*technicalScore + narrativeWeight*narr

	switch {
	case hs.Score > 75:
		hs.Label = "Optimal"
	case hs.Score > 55:
		hs.Label = "Neutral"
	default:
		hs.Label = "Critical"
	}

	return hs
}
