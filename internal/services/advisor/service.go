package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/intellinez-com/GoldTrack-sub000/internal/common"
	"github.com/intellinez-com/GoldTrack-sub000/internal/interfaces"
	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

// neutralNarrativeScore is used whenever no narrative reading is available.
const neutralNarrativeScore = 50.0

// Service produces blended health scores from technical metrics and cached
// narrative sentiment readings.
type Service struct {
	narrative interfaces.NarrativeClient
	kv        interfaces.KeyValueStore
	logger    *common.Logger
}

// NewService creates an advisor service. The narrative client may be nil, in
// which case the narrative leg stays neutral.
func NewService(narrative interfaces.NarrativeClient, kv interfaces.KeyValueStore, logger *common.Logger) *Service {
	return &Service{
		narrative: narrative,
		kv:        kv,
		logger:    logger,
	}
}

// Compile-time interface check
var _ interfaces.AdvisorService = (*Service)(nil)

// HealthScore blends the given technical score with the latest narrative
// sentiment for the metal. Narrative failures never propagate; the score
// degrades to a neutral narrative leg instead.
func (s *Service) HealthScore(ctx context.Context, metal string, technicalScore float64) *models.HealthScore {
	narr := s.narrativeScore(ctx, metal)
	return Blend(technicalScore, narr)
}

func narrativeCacheKey(metal string) string {
	return fmt.Sprintf("narrative:%s", metal)
}

// narrativeScore returns the cached sentiment score for the metal, refreshing
// it from the narrative provider when stale. Any failure yields neutral.
func (s *Service) narrativeScore(ctx context.Context, metal string) float64 {
	if cached := s.cachedNarrative(ctx, metal); cached != nil {
		if common.IsFresh(cached.LastUpdated, common.FreshnessNarrative) {
			return cached.SentimentScore
		}
	}

	if s.narrative == nil {
		return neutralNarrativeScore
	}

	input, err := s.narrative.GetNarrative(ctx, metal)
	if err != nil {
		s.logger.Warn().Err(err).Str("metal", metal).Msg("Narrative refresh failed, using neutral score")
		return neutralNarrativeScore
	}

	if input.LastUpdated.IsZero() {
		input.LastUpdated = time.Now().UTC()
	}
	s.storeNarrative(ctx, metal, input)
	return input.SentimentScore
}

func (s *Service) cachedNarrative(ctx context.Context, metal string) *models.NarrativeInput {
	if s.kv == nil {
		return nil
	}
	raw, err := s.kv.Get(ctx, narrativeCacheKey(metal))
	if err != nil || raw == "" {
		return nil
	}
	var input models.NarrativeInput
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		s.logger.Warn().Err(err).Str("metal", metal).Msg("Discarding unreadable cached narrative")
		return nil
	}
	return &input
}

func (s *Service) storeNarrative(ctx context.Context, metal string, input *models.NarrativeInput) {
	if s.kv == nil {
		return
	}
	raw, err := json.Marshal(input)
	if err != nil {
		return
	}
	if err := s.kv.Set(ctx, narrativeCacheKey(metal), string(raw)); err != nil {
		s.logger.Warn().Err(err).Str("metal", metal).Msg("Failed to cache narrative reading")
	}
}
