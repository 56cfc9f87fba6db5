package sale

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/console"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/usecases/update_item"
)

// Handler is a thin gRPC transport adapter over the console.
// It validates input, maps Struct fields to application calls and delegates.
type Handler struct {
	console *console.Console
}

var _ ConsoleServer = (*Handler)(nil)

func NewHandler(c *console.Console) *Handler {
	return &Handler{console: c}
}

func invalid(err error) error {
	return status.Error(codes.InvalidArgument, err.Error())
}

func reply(m map[string]any) (*structpb.Struct, error) {
	out, err := toStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (h *Handler) pendingReply(extra map[string]any) (*structpb.Struct, error) {
	m := map[string]any{"pending": prompt(h.console.Pending())}
	for k, v := range extra {
		m[k] = v
	}
	return reply(m)
}

func (h *Handler) ListItems(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	items, err := h.console.Items(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return reply(map[string]any{"items": itemRows(items)})
}

func (h *Handler) RefreshItems(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := h.console.Refresh(ctx); err != nil {
		return nil, mapError(err)
	}
	return h.ListItems(ctx, req)
}

func (h *Handler) ToggleSelection(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireString(req, "item_id")
	if err != nil {
		return nil, invalid(err)
	}
	selected, err := h.console.ToggleSelection(id)
	if err != nil {
		return nil, mapError(err)
	}
	return reply(map[string]any{
		"item_id":        id,
		"selected":       selected,
		"selected_count": h.console.Status().SelectedCount,
	})
}

func (h *Handler) SelectAll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ids, err := optionalStrings(req, "item_ids")
	if err != nil {
		return nil, invalid(err)
	}
	n, err := h.console.SelectAll(ctx, ids)
	if err != nil {
		return nil, mapError(err)
	}
	return reply(map[string]any{"selected_count": n})
}

func (h *Handler) ClearSelection(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	h.console.ClearSelection()
	return reply(map[string]any{"selected_count": 0})
}

func (h *Handler) RequestAddToSale(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := h.console.RequestAddToSale(); err != nil {
		return nil, mapError(err)
	}
	return h.pendingReply(nil)
}

func (h *Handler) RequestRemoveFromSale(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := h.console.RequestRemoveFromSale(); err != nil {
		return nil, mapError(err)
	}
	return h.pendingReply(nil)
}

func (h *Handler) RequestBulkUpdate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f, err := validateSaleFields(req, false)
	if err != nil {
		return nil, invalid(err)
	}
	cfg, err := domain.NewSaleConfig(f.onSale, f.percentOff, f.imageURL)
	if err != nil {
		return nil, mapError(err)
	}
	if err := h.console.RequestBulkConfig(cfg); err != nil {
		return nil, mapError(err)
	}
	return h.pendingReply(nil)
}

func (h *Handler) UpdateItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f, err := validateSaleFields(req, true)
	if err != nil {
		return nil, invalid(err)
	}
	it, err := h.console.UpdateItem(ctx, update_item.Request{
		ItemID:     f.itemID,
		OnSale:     f.onSale,
		PercentOff: f.percentOff,
		ImageURL:   f.imageURL,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return reply(updatedItem(it))
}

func (h *Handler) ToggleItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireString(req, "item_id")
	if err != nil {
		return nil, invalid(err)
	}
	it, err := h.console.ToggleItem(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return reply(updatedItem(it))
}

func (h *Handler) ListPresets(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return reply(map[string]any{"presets": presetSummaries(h.console.Presets())})
}

func (h *Handler) GetPreset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireString(req, "preset_id")
	if err != nil {
		return nil, invalid(err)
	}
	p, err := h.console.Preset(id)
	if err != nil {
		return nil, mapError(err)
	}
	return reply(presetDetail(p))
}

func (h *Handler) SavePreset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := optionalString(req, "name")
	if err != nil {
		return nil, invalid(err)
	}
	p, err := h.console.SavePreset(ctx, name)
	if err != nil {
		return nil, mapError(err)
	}
	return reply(presetSummary(p))
}

func (h *Handler) RequestApplyPreset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireString(req, "preset_id")
	if err != nil {
		return nil, invalid(err)
	}
	if err := h.console.RequestApplyPreset(id); err != nil {
		return nil, mapError(err)
	}
	return h.pendingReply(nil)
}

func (h *Handler) RequestDeletePreset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireString(req, "preset_id")
	if err != nil {
		return nil, invalid(err)
	}
	h.console.RequestDeletePreset(id)
	return h.pendingReply(nil)
}

func (h *Handler) ExportPresets(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	blob, name, err := h.console.ExportPresets()
	if err != nil {
		return nil, mapError(err)
	}
	return reply(map[string]any{"file_name": name, "payload": string(blob)})
}

func (h *Handler) RequestImportPresets(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	payload, err := optionalString(req, "payload")
	if err != nil {
		return nil, invalid(err)
	}
	n, err := h.console.RequestImport([]byte(payload))
	if err != nil {
		return nil, mapError(err)
	}
	return h.pendingReply(map[string]any{"count": n})
}

func (h *Handler) GetStatus(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return reply(statusFields(h.console.Status()))
}

// Confirm runs the pending request. A failed bulk update still records its
// outcome, which GetStatus reports.
func (h *Handler) Confirm(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := h.console.Confirm(ctx); err != nil {
		return nil, mapError(err)
	}
	return reply(statusFields(h.console.Status()))
}

func (h *Handler) Cancel(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	h.console.Cancel()
	return reply(statusFields(h.console.Status()))
}
