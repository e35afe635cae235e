package badger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/intellinez-com/GoldTrack-sub000/internal/common"
	"github.com/intellinez-com/GoldTrack-sub000/internal/interfaces"
	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

type lotStorage struct {
	store  *Store
	logger *common.Logger
}

// NewLotStorage creates a new LotStore backed by BadgerHold.
func NewLotStorage(store *Store, logger *common.Logger) interfaces.LotStore {
	return &lotStorage{store: store, logger: logger}
}

func (s *lotStorage) Save(_ context.Context, lot *models.Lot) error {
	if lot.ID == "" {
		lot.ID = uuid.NewString()
	}
	if lot.Status == "" {
		lot.Status = models.LotStatusHold
	}
	now := time.Now().UTC()
	if lot.CreatedAt.IsZero() {
		lot.CreatedAt = now
	}
	lot.UpdatedAt = now

	if err := s.store.db.Upsert(lot.ID, lot); err != nil {
		return fmt.Errorf("failed to save lot '%s': %w", lot.ID, err)
	}

	s.logger.Debug().
		Str("id", lot.ID).
		Str("metal", lot.Metal).
		Float64("grams", lot.WeightGrams).
		Msg("Lot saved")
	return nil
}

func (s *lotStorage) Get(_ context.Context, id string) (*models.Lot, error) {
	var lot models.Lot
	err := s.store.db.Get(id, &lot)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("lot '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get lot '%s': %w", id, err)
	}
	return &lot, nil
}

func (s *lotStorage) List(_ context.Context) ([]models.Lot, error) {
	var lots []models.Lot
	if err := s.store.db.Find(&lots, nil); err != nil {
		return nil, fmt.Errorf("failed to list lots: %w", err)
	}
	sortLots(lots)
	return lots, nil
}

func (s *lotStorage) ListByStatus(_ context.Context, status models.LotStatus) ([]models.Lot, error) {
	var lots []models.Lot
	if err := s.store.db.Find(&lots, badgerhold.Where("Status").Eq(status)); err != nil {
		return nil, fmt.Errorf("failed to list lots by status '%s': %w", status, err)
	}
	sortLots(lots)
	return lots, nil
}

func (s *lotStorage) Delete(_ context.Context, id string) error {
	err := s.store.db.Delete(id, models.Lot{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete lot '%s': %w", id, err)
	}
	s.logger.Debug().Str("id", id).Msg("Lot deleted")
	return nil
}

// sortLots orders by purchase date ascending so portfolio math walks lots
// oldest first.
func sortLots(lots []models.Lot) {
	sort.Slice(lots, func(i, j int) bool {
		return lots[i].PurchaseDate.Before(lots[j].PurchaseDate)
	})
}
