package sale

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/dto"
)

func toStruct(m map[string]any) (*structpb.Struct, error) {
	return structpb.NewStruct(m)
}

func stringList(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}

func optString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func itemRow(it *dto.ItemDTO) map[string]any {
	row := map[string]any{
		"item_id":       it.ItemID,
		"title":         it.Title,
		"handle":        it.Handle,
		"status":        it.Status,
		"image_url":     it.ImageURL,
		"regular_price": it.RegularPrice,
		"on_sale":       it.OnSale,
		"selected":      it.Selected,
	}
	if it.PercentOff != nil {
		row["percent_off"] = *it.PercentOff
	}
	if it.SalePrice != nil {
		row["sale_price"] = *it.SalePrice
	}
	if it.SaleImageURL != nil {
		row["sale_image_url"] = *it.SaleImageURL
	}
	return row
}

func itemRows(items []*dto.ItemDTO) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, itemRow(it))
	}
	return out
}

// updatedItem maps the catalog's reply to a single-item update.
func updatedItem(it *domain.Item) map[string]any {
	row := map[string]any{
		"item_id":     it.ID,
		"title":       it.Title,
		"on_sale":     it.Sale.OnSale(),
		"percent_off": it.Sale.PercentOff(),
		"image_url":   optString(it.Sale.ImageURLPtr()),
	}
	if price, ok := it.SalePrice(); ok {
		row["sale_price"] = price.String()
	}
	return row
}

func presetSummary(p *dto.PresetSummaryDTO) map[string]any {
	return map[string]any{
		"preset_id":  p.PresetID,
		"name":       p.Name,
		"created_at": p.CreatedAt,
		"item_count": p.ItemCount,
	}
}

func presetSummaries(list []*dto.PresetSummaryDTO) []any {
	out := make([]any, 0, len(list))
	for _, p := range list {
		out = append(out, presetSummary(p))
	}
	return out
}

func presetDetail(p *dto.PresetDTO) map[string]any {
	m := presetSummary(&p.PresetSummaryDTO)
	items := make([]any, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, map[string]any{
			"item_id":     it.ItemID,
			"title":       it.Title,
			"on_sale":     it.OnSale,
			"percent_off": it.PercentOff,
			"image_url":   optString(it.ImageURL),
		})
	}
	m["items"] = items
	return m
}

func prompt(p *dto.PromptDTO) any {
	if p == nil {
		return nil
	}
	return map[string]any{"title": p.Title, "message": p.Message}
}

func statusFields(st dto.StatusDTO) map[string]any {
	m := map[string]any{
		"selected_count": st.SelectedCount,
		"selected_ids":   stringList(st.SelectedIDs),
		"updating":       st.Updating,
		"pending":        prompt(st.Pending),
		"last_bulk":      nil,
	}
	if b := st.LastBulk; b != nil {
		failed := make([]any, 0, len(b.Failed))
		for _, f := range b.Failed {
			failed = append(failed, map[string]any{"item_id": f.ItemID, "message": f.Message})
		}
		m["last_bulk"] = map[string]any{
			"mode":              b.Mode,
			"succeeded":         stringList(b.Succeeded),
			"failed":            failed,
			"selection_cleared": b.SelectionCleared,
			"refreshed":         b.Refreshed,
			"message":           b.Message,
		}
	}
	return m
}
