package domain

import (
	"strings"
	"time"
)

// PresetItem is one entry of a preset: an item reference captured by value.
type PresetItem struct {
	ItemID string
	Title  string
	Sale   SaleConfig
}

// Preset is a named, immutable snapshot of sale configurations.
type Preset struct {
	id        string
	name      string
	createdAt time.Time
	items     []PresetItem
}

// NewPreset creates a preset from already snapshotted entries.
// The name is trimmed and must not be blank; an empty item list is allowed.
func NewPreset(id, name string, items []PresetItem, now time.Time) (*Preset, error) {
	if err := validatePresetName(name); err != nil {
		return nil, err
	}
	return &Preset{
		id:        id,
		name:      strings.TrimSpace(name),
		createdAt: now,
		items:     copyPresetItems(items),
	}, nil
}

// ReconstructPreset rebuilds a Preset from persisted or imported state.
// Imported rows are kept as they are, so the name is not validated.
func ReconstructPreset(id, name string, createdAt time.Time, items []PresetItem) *Preset {
	return &Preset{
		id:        id,
		name:      name,
		createdAt: createdAt,
		items:     copyPresetItems(items),
	}
}

// SnapshotOnSale captures the configuration of every item currently on sale, in catalog order.
func SnapshotOnSale(items []Item) []PresetItem {
	out := make([]PresetItem, 0)
	for _, it := range items {
		if !it.Sale.OnSale() {
			continue
		}
		out = append(out, PresetItem{ItemID: it.ID, Title: it.Title, Sale: it.Sale})
	}
	return out
}

func (p *Preset) ID() string {
	return p.id
}

func (p *Preset) Name() string {
	return p.name
}

func (p *Preset) CreatedAt() time.Time {
	return p.createdAt
}

// Items returns a copy of the preset entries.
func (p *Preset) Items() []PresetItem {
	return copyPresetItems(p.items)
}

func (p *Preset) ItemCount() int {
	return len(p.items)
}

// Updates returns the per-item configuration list used to replay the preset.
func (p *Preset) Updates() []ItemUpdate {
	out := make([]ItemUpdate, 0, len(p.items))
	for _, it := range p.items {
		out = append(out, ItemUpdate{ItemID: it.ItemID, Sale: it.Sale})
	}
	return out
}

func copyPresetItems(in []PresetItem) []PresetItem {
	out := make([]PresetItem, len(in))
	copy(out, in)
	return out
}

func validatePresetName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyPresetName
	}
	return nil
}
