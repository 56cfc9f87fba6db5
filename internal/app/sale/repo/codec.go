package repo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
)

// ExportFileName is the suggested file name for exported presets.
const ExportFileName = "sale-presets.json"

// The serialized form keeps the field names used by earlier exports of the dashboard
// so those files import unchanged.
type presetRecord struct {
	ID        presetID           `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Products  []presetItemRecord `json:"products"`
}

type presetItemRecord struct {
	ID               string  `json:"id"`
	Title            string  `json:"title,omitempty"`
	OnSale           bool    `json:"onSale"`
	OnSalePercentOff int     `json:"onSalePercentOff"`
	OnSaleImage      *string `json:"onSaleImage"`
}

// presetID accepts both string ids and the numeric (epoch millis) ids of older exports.
type presetID string

func (id *presetID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = presetID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("preset id must be a string or number: %w", err)
	}
	*id = presetID(n.String())
	return nil
}

func toRecord(p *domain.Preset) presetRecord {
	items := p.Items()
	products := make([]presetItemRecord, 0, len(items))
	for _, it := range items {
		products = append(products, presetItemRecord{
			ID:               it.ItemID,
			Title:            it.Title,
			OnSale:           it.Sale.OnSale(),
			OnSalePercentOff: it.Sale.PercentOff(),
			OnSaleImage:      it.Sale.ImageURLPtr(),
		})
	}
	return presetRecord{
		ID:        presetID(p.ID()),
		Name:      p.Name(),
		Timestamp: p.CreatedAt().UTC(),
		Products:  products,
	}
}

func fromRecord(r presetRecord) (*domain.Preset, error) {
	items := make([]domain.PresetItem, 0, len(r.Products))
	for i, pr := range r.Products {
		if pr.OnSalePercentOff < 0 || pr.OnSalePercentOff > 100 {
			return nil, fmt.Errorf("product %d of preset %q: %w", i, r.Name, domain.ErrInvalidPercentOff)
		}
		items = append(items, domain.PresetItem{
			ItemID: pr.ID,
			Title:  pr.Title,
			Sale:   domain.ReconstructSaleConfig(pr.OnSale, pr.OnSalePercentOff, pr.OnSaleImage),
		})
	}
	return domain.ReconstructPreset(string(r.ID), r.Name, r.Timestamp, items), nil
}

// EncodePresets serializes presets. With indent set the output is pretty-printed
// for export files.
func EncodePresets(presets []*domain.Preset, indent bool) ([]byte, error) {
	records := make([]presetRecord, 0, len(presets))
	for _, p := range presets {
		records = append(records, toRecord(p))
	}
	if indent {
		return json.MarshalIndent(records, "", "  ")
	}
	return json.Marshal(records)
}

// DecodePresets parses a serialized preset sequence. Any payload that is not a
// JSON array of presets yields an error wrapping domain.ErrInvalidPresetFormat.
func DecodePresets(data []byte) ([]*domain.Preset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: top-level value is not a list", domain.ErrInvalidPresetFormat)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPresetFormat, err)
	}

	out := make([]*domain.Preset, 0, len(raw))
	for i, elem := range raw {
		if !strings.HasPrefix(string(bytes.TrimSpace(elem)), "{") {
			return nil, fmt.Errorf("%w: entry %d is not an object", domain.ErrInvalidPresetFormat, i)
		}
		var rec presetRecord
		if err := json.Unmarshal(elem, &rec); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", domain.ErrInvalidPresetFormat, i, err)
		}
		p, err := fromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", domain.ErrInvalidPresetFormat, i, err)
		}
		out = append(out, p)
	}
	return out, nil
}
