package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	contracts "github.com/murkotick/catalog-sale-console/internal/app/sale/contracts"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
	"github.com/murkotick/catalog-sale-console/internal/pkg/clock"
	"github.com/murkotick/catalog-sale-console/internal/pkg/logging"
)

// PresetRepo owns the collection of saved presets. The collection is loaded from
// the store once and written back on every mutating call; a failed write leaves
// the in-memory collection unchanged.
type PresetRepo struct {
	store  contracts.PresetStore
	clock  clock.Clock
	newID  func() string
	logger log.Logger

	mu      sync.RWMutex
	presets []*domain.Preset
}

// NewPresetRepo loads the persisted collection. A store with nothing saved yields
// an empty collection.
func NewPresetRepo(ctx context.Context, store contracts.PresetStore, clk clock.Clock, logger log.Logger) (*PresetRepo, error) {
	r := &PresetRepo{
		store:  store,
		clock:  clk,
		newID:  func() string { return uuid.New().String() },
		logger: logging.With(logger, "preset_repo"),
	}

	payload, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}
	if payload != nil {
		presets, err := DecodePresets(payload)
		if err != nil {
			return nil, fmt.Errorf("decode stored presets: %w", err)
		}
		r.presets = presets
	}

	_ = level.Debug(r.logger).Log("msg", "presets loaded", "count", len(r.presets))
	return r, nil
}

// List returns the presets in insertion order.
func (r *PresetRepo) List() []*domain.Preset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Preset, len(r.presets))
	copy(out, r.presets)
	return out
}

// Get returns the first preset with the given id.
func (r *PresetRepo) Get(id string) (*domain.Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.presets {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, domain.ErrPresetNotFound
}

// Save snapshots the on-sale items of sourceItems under name and appends the preset.
func (r *PresetRepo) Save(ctx context.Context, name string, sourceItems []domain.Item) (*domain.Preset, error) {
	p, err := domain.NewPreset(r.newID(), name, domain.SnapshotOnSale(sourceItems), r.clock.Now())
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := append(r.snapshotLocked(), p)
	if err := r.persistLocked(ctx, next); err != nil {
		return nil, err
	}

	_ = level.Info(r.logger).Log("msg", "preset saved", "preset_id", p.ID(), "name", p.Name(), "items", p.ItemCount())
	return p, nil
}

// Delete removes every preset with the given id. Unknown ids are a no-op.
func (r *PresetRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*domain.Preset, 0, len(r.presets))
	for _, p := range r.presets {
		if p.ID() != id {
			next = append(next, p)
		}
	}
	if len(next) == len(r.presets) {
		return nil
	}
	if err := r.persistLocked(ctx, next); err != nil {
		return err
	}

	_ = level.Info(r.logger).Log("msg", "preset deleted", "preset_id", id)
	return nil
}

// Apply returns the per-item updates that replay p.
func (r *PresetRepo) Apply(p *domain.Preset) []domain.ItemUpdate {
	return p.Updates()
}

// Export serializes the whole collection as pretty-printed JSON.
func (r *PresetRepo) Export() ([]byte, error) {
	return EncodePresets(r.List(), true)
}

// Parse validates an import payload without touching the collection.
func (r *PresetRepo) Parse(blob []byte) ([]*domain.Preset, error) {
	return DecodePresets(blob)
}

// Import parses blob and appends its presets. Ids are not de-duplicated.
func (r *PresetRepo) Import(ctx context.Context, blob []byte) (int, error) {
	presets, err := r.Parse(blob)
	if err != nil {
		return 0, err
	}
	if err := r.Merge(ctx, presets); err != nil {
		return 0, err
	}
	return len(presets), nil
}

// Merge appends already parsed presets to the collection.
func (r *PresetRepo) Merge(ctx context.Context, presets []*domain.Preset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := append(r.snapshotLocked(), presets...)
	if err := r.persistLocked(ctx, next); err != nil {
		return err
	}

	_ = level.Info(r.logger).Log("msg", "presets imported", "count", len(presets), "total", len(next))
	return nil
}

func (r *PresetRepo) snapshotLocked() []*domain.Preset {
	out := make([]*domain.Preset, len(r.presets), len(r.presets)+1)
	copy(out, r.presets)
	return out
}

func (r *PresetRepo) persistLocked(ctx context.Context, next []*domain.Preset) error {
	payload, err := EncodePresets(next, false)
	if err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}
	if err := r.store.Save(ctx, payload); err != nil {
		_ = level.Error(r.logger).Log("msg", "preset store write failed", "err", err)
		return fmt.Errorf("save presets: %w", err)
	}
	r.presets = next
	return nil
}
