package badger

import (
	"github.com/intellinez-com/GoldTrack-sub000/internal/common"
	"github.com/intellinez-com/GoldTrack-sub000/internal/interfaces"
)

// Manager bundles all BadgerHold-backed stores behind a single handle.
type Manager struct {
	store  *Store
	series interfaces.SeriesRepository
	lots   interfaces.LotStore
	kv     interfaces.KeyValueStore
}

// NewManager opens the database at path and wires up all repositories.
func NewManager(logger *common.Logger, path string) (*Manager, error) {
	store, err := NewStore(logger, path)
	if err != nil {
		return nil, err
	}

	return &Manager{
		store:  store,
		series: NewSeriesStorage(store, logger),
		lots:   NewLotStorage(store, logger),
		kv:     NewKVStorage(store, logger),
	}, nil
}

func (m *Manager) SeriesRepository() interfaces.SeriesRepository { return m.series }
func (m *Manager) LotStore() interfaces.LotStore                 { return m.lots }
func (m *Manager) KeyValueStore() interfaces.KeyValueStore       { return m.kv }

// Close closes the underlying database.
func (m *Manager) Close() error {
	return m.store.Close()
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
