package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/intellinez-com/GoldTrack-sub000/internal/common"
	"github.com/intellinez-com/GoldTrack-sub000/internal/interfaces"
)

// refreshTimeout bounds one full sweep across all configured metals.
const refreshTimeout = 5 * time.Minute

// scheduler runs the daily series top-up on a cron spec.
type scheduler struct {
	cron   *cron.Cron
	config *common.Config
	series interfaces.SeriesService
	logger *common.Logger
}

func newScheduler(config *common.Config, seriesService interfaces.SeriesService, logger *common.Logger) (*scheduler, error) {
	s := &scheduler{
		cron:   cron.New(),
		config: config,
		series: seriesService,
		logger: logger,
	}

	spec := config.Schedule.DailyUpdateCron
	if spec == "" {
		spec = "15 6 * * *"
	}

	if _, err := s.cron.AddFunc(spec, s.refreshAll); err != nil {
		return nil, fmt.Errorf("invalid daily update cron spec %q: %w", spec, err)
	}

	return s, nil
}

func (s *scheduler) Start() {
	s.cron.Start()
	s.logger.Info().
		Str("cron", s.config.Schedule.DailyUpdateCron).
		Strs("metals", s.config.Metals).
		Msg("Daily series refresh scheduled")

	// Warm the cache immediately so the first request after startup is served
	// from local data.
	go s.refreshAll()
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// refreshAll tops up the cached series for every configured metal. Failures
// are per-metal; one bad metal does not stop the sweep.
func (s *scheduler) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	for _, metal := range s.config.Metals {
		points := s.series.GetSeries(ctx, metal, s.config.Currency, s.config.HistoryDays, false)
		s.logger.Info().
			Str("metal", metal).
			Int("points", len(points)).
			Msg("Scheduled series refresh completed")
	}
}
