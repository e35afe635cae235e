package returns

import (
	"context"
	"fmt"
	"time"

	"github.com/intellinez-com/GoldTrack-sub000/internal/common"
	"github.com/intellinez-com/GoldTrack-sub000/internal/interfaces"
	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

// Service values the held lots at current spot and derives return metrics.
type Service struct {
	lots   interfaces.LotStore
	series interfaces.SeriesService
	logger *common.Logger
}

// NewService creates a returns service.
func NewService(lots interfaces.LotStore, series interfaces.SeriesService, logger *common.Logger) *Service {
	return &Service{
		lots:   lots,
		series: series,
		logger: logger,
	}
}

// Compile-time interface check
var _ interfaces.ReturnsService = (*Service)(nil)

// PortfolioReturns computes absolute ROI, CAGR and XIRR over all held lots,
// valued at the latest cached per-gram price in the given currency. All
// rates are percentages (10.0 means 10 percent).
func (s *Service) PortfolioReturns(ctx context.Context, currency string) (*models.ReturnsResult, error) {
	held, err := s.lots.ListByStatus(ctx, models.LotStatusHold)
	if err != nil {
		return nil, fmt.Errorf("failed to load held lots: %w", err)
	}

	now := time.Now().UTC()
	result := &models.ReturnsResult{
		LotCount:   len(held),
		ComputedAt: now,
	}
	if len(held) == 0 {
		return result, nil
	}

	prices := make(map[string]float64)
	var earliest time.Time
	flows := make([]models.CashFlow, 0, len(held)+1)

	for _, lot := range held {
		price, ok := prices[lot.Metal]
		if !ok {
			price = s.series.LatestPrice(ctx, lot.Metal, currency)
			prices[lot.Metal] = price
		}

		result.TotalInvested += lot.TotalPaid
		result.CurrentValue += lot.FineWeightGrams() * price

		if earliest.IsZero() || lot.PurchaseDate.Before(earliest) {
			earliest = lot.PurchaseDate
		}
		flows = append(flows, models.CashFlow{Date: lot.PurchaseDate, Amount: -lot.TotalPaid})
	}

	if result.TotalInvested > 0 {
		result.AbsoluteROI = (result.CurrentValue - result.TotalInvested) / result.TotalInvested * 100
	}
	result.CAGR = CAGR(result.TotalInvested, result.CurrentValue, earliest, now) * 100

	flows = append(flows, models.CashFlow{Date: now, Amount: result.CurrentValue})
	result.XIRR = XIRR(flows) * 100

	s.logger.Debug().
		Int("lots", result.LotCount).
		Float64("invested", result.TotalInvested).
		Float64("value", result.CurrentValue).
		Msg("Portfolio returns computed")

	return result, nil
}
