package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/confirm"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/dto"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/queries/list_items"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/repo"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/selection"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/usecases/bulk_update"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/usecases/update_item"
	"github.com/murkotick/catalog-sale-console/internal/pkg/logging"
)

// Defaults is the configuration "Add to Sale" applies.
type Defaults struct {
	PercentOff int
	ImageURL   string
}

// Deps wires a Console.
type Deps struct {
	Gate      *confirm.Gate
	Selection *selection.Store
	Catalog   *list_items.Handler
	Bulk      *bulk_update.Interactor
	Items     *update_item.Interactor
	Presets   *repo.PresetRepo
	Defaults  Defaults
	Logger    log.Logger
}

// Console composes the sale operations behind a single confirmation gate.
// Bulk updates and preset delete, apply and import only run from Confirm.
type Console struct {
	gate      *confirm.Gate
	selection *selection.Store
	catalog   *list_items.Handler
	bulk      *bulk_update.Interactor
	items     *update_item.Interactor
	presets   *repo.PresetRepo
	defaults  Defaults
	logger    log.Logger

	mu      sync.Mutex
	last    *bulk_update.Result
	lastErr error
}

func New(d Deps) *Console {
	gate := d.Gate
	if gate == nil {
		gate = confirm.NewGate()
	}
	return &Console{
		gate:      gate,
		selection: d.Selection,
		catalog:   d.Catalog,
		bulk:      d.Bulk,
		items:     d.Items,
		presets:   d.Presets,
		defaults:  d.Defaults,
		logger:    logging.With(d.Logger, "console"),
	}
}

// Items returns the catalog rows with their selection state.
func (c *Console) Items(ctx context.Context) ([]*dto.ItemDTO, error) {
	return c.catalog.Execute(ctx, c.selection.IsSelected)
}

func (c *Console) Refresh(ctx context.Context) error {
	return c.catalog.Refresh(ctx)
}

// ToggleSelection flips id in the selection and reports whether it is selected.
func (c *Console) ToggleSelection(id string) (bool, error) {
	if id == "" {
		return false, domain.ErrEmptyItemID
	}
	return c.selection.Toggle(id), nil
}

// SelectAll selects exactly ids, or every item of the catalog view when ids is empty.
// The view is loaded first if it never was.
func (c *Console) SelectAll(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		items, err := c.catalog.Loaded(ctx)
		if err != nil {
			return 0, err
		}
		ids = make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
	}
	c.selection.SelectAll(ids)
	return c.selection.Count(), nil
}

func (c *Console) ClearSelection() {
	c.selection.Clear()
}

// DefaultSaleConfig is what "Add to Sale" applies.
func (c *Console) DefaultSaleConfig() (domain.SaleConfig, error) {
	return domain.NewSaleConfig(true, c.defaults.PercentOff, c.defaults.ImageURL)
}

// RequestAddToSale asks to put the selection on sale with the default configuration.
func (c *Console) RequestAddToSale() error {
	cfg, err := c.DefaultSaleConfig()
	if err != nil {
		return err
	}
	return c.RequestBulkConfig(cfg)
}

// RequestRemoveFromSale asks to take the selection off sale.
func (c *Console) RequestRemoveFromSale() error {
	return c.RequestBulkConfig(domain.NotOnSale())
}

// RequestBulkConfig asks to apply cfg to every selected item. The selection is
// read again when the request is confirmed.
func (c *Console) RequestBulkConfig(cfg domain.SaleConfig) error {
	n := c.selection.Count()
	if n == 0 {
		return domain.ErrNoItemsSelected
	}
	if c.bulk.Updating() {
		return domain.ErrBulkInProgress
	}

	title, msg := "Remove from Sale", fmt.Sprintf("Take %d selected products off sale?", n)
	if cfg.OnSale() {
		title, msg = "Add to Sale", fmt.Sprintf("Put %d selected products on sale at %d%% off?", n, cfg.PercentOff())
	}
	c.gate.Request(title, msg, func(ctx context.Context) error {
		return c.runBulk(ctx, bulk_update.UniformRequest(c.selection.IDs(), cfg))
	})
	return nil
}

// RequestApplyPreset asks to replay the preset with id.
func (c *Console) RequestApplyPreset(id string) error {
	p, err := c.presets.Get(id)
	if err != nil {
		return err
	}
	if c.bulk.Updating() {
		return domain.ErrBulkInProgress
	}

	c.gate.Request("Apply Preset",
		fmt.Sprintf("Apply preset %q? This will update %d products according to the saved configuration.", p.Name(), p.ItemCount()),
		func(ctx context.Context) error {
			updates := c.presets.Apply(p)
			if len(updates) == 0 {
				_ = level.Info(c.logger).Log("msg", "preset has no items", "preset_id", p.ID())
				return c.catalog.Refresh(ctx)
			}
			return c.runBulk(ctx, bulk_update.PresetRequest(updates))
		})
	return nil
}

// RequestDeletePreset asks to delete the preset with id. Unknown ids are accepted
// and deleting them is a no-op.
func (c *Console) RequestDeletePreset(id string) {
	c.gate.Request("Delete Preset",
		"Are you sure you want to delete this preset? This action cannot be undone.",
		func(ctx context.Context) error {
			return c.presets.Delete(ctx, id)
		})
}

// RequestImport parses blob and asks to append its presets. A malformed payload
// is rejected here and nothing is queued.
func (c *Console) RequestImport(blob []byte) (int, error) {
	parsed, err := c.presets.Parse(blob)
	if err != nil {
		return 0, err
	}
	c.gate.Request("Import Presets",
		fmt.Sprintf("This will add %d imported presets to your existing ones. Continue?", len(parsed)),
		func(ctx context.Context) error {
			return c.presets.Merge(ctx, parsed)
		})
	return len(parsed), nil
}

// SavePreset snapshots the on-sale items of the current catalog view. A view
// that was never loaded is fetched first; if that fails nothing is saved.
func (c *Console) SavePreset(ctx context.Context, name string) (*dto.PresetSummaryDTO, error) {
	items, err := c.catalog.Loaded(ctx)
	if err != nil {
		return nil, err
	}
	p, err := c.presets.Save(ctx, name, items)
	if err != nil {
		return nil, err
	}
	s := presetSummary(p)
	return &s, nil
}

// ExportPresets returns the collection as a pretty-printed file and its suggested name.
func (c *Console) ExportPresets() ([]byte, string, error) {
	blob, err := c.presets.Export()
	if err != nil {
		return nil, "", err
	}
	return blob, repo.ExportFileName, nil
}

func (c *Console) Presets() []*dto.PresetSummaryDTO {
	list := c.presets.List()
	out := make([]*dto.PresetSummaryDTO, 0, len(list))
	for _, p := range list {
		s := presetSummary(p)
		out = append(out, &s)
	}
	return out
}

func (c *Console) Preset(id string) (*dto.PresetDTO, error) {
	p, err := c.presets.Get(id)
	if err != nil {
		return nil, err
	}
	out := &dto.PresetDTO{PresetSummaryDTO: presetSummary(p)}
	for _, it := range p.Items() {
		out.Items = append(out.Items, dto.PresetItemDTO{
			ItemID:     it.ItemID,
			Title:      it.Title,
			OnSale:     it.Sale.OnSale(),
			PercentOff: it.Sale.PercentOff(),
			ImageURL:   it.Sale.ImageURLPtr(),
		})
	}
	return out, nil
}

func (c *Console) Pending() *dto.PromptDTO {
	p, ok := c.gate.Pending()
	if !ok {
		return nil
	}
	return &dto.PromptDTO{Title: p.Title, Message: p.Message}
}

// Confirm runs the pending request and returns its error.
func (c *Console) Confirm(ctx context.Context) error {
	return c.gate.Confirm(ctx)
}

func (c *Console) Cancel() {
	c.gate.Cancel()
}

// UpdateItem edits the sale settings of one item. It is refused while a bulk update runs.
func (c *Console) UpdateItem(ctx context.Context, req update_item.Request) (*domain.Item, error) {
	if c.bulk.Updating() {
		return nil, domain.ErrBulkInProgress
	}
	return c.items.Execute(ctx, req)
}

// ToggleItem flips the on-sale flag of one item from the catalog view.
func (c *Console) ToggleItem(ctx context.Context, id string) (*domain.Item, error) {
	if c.bulk.Updating() {
		return nil, domain.ErrBulkInProgress
	}
	it, ok := c.catalog.Find(id)
	if !ok {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrItemNotFound)
	}
	return c.items.Toggle(ctx, it)
}

// Status reports selection, the updating flag, the pending prompt and the last bulk outcome.
func (c *Console) Status() dto.StatusDTO {
	st := dto.StatusDTO{
		SelectedCount: c.selection.Count(),
		SelectedIDs:   c.selection.IDs(),
		Updating:      c.bulk.Updating(),
		Pending:       c.Pending(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last != nil {
		st.LastBulk = bulkOutcome(c.last, c.lastErr)
	}
	return st
}

func (c *Console) runBulk(ctx context.Context, req bulk_update.Request) error {
	res, err := c.bulk.Execute(ctx, req)
	if res != nil {
		c.mu.Lock()
		c.last, c.lastErr = res, err
		c.mu.Unlock()
	}
	if err != nil {
		_ = level.Warn(c.logger).Log("msg", "bulk update finished with errors", "mode", req.Mode, "err", err)
	}
	return err
}

func presetSummary(p *domain.Preset) dto.PresetSummaryDTO {
	return dto.PresetSummaryDTO{
		PresetID:  p.ID(),
		Name:      p.Name(),
		CreatedAt: p.CreatedAt().UTC().Format(time.RFC3339),
		ItemCount: p.ItemCount(),
	}
}

func bulkOutcome(res *bulk_update.Result, err error) *dto.BulkOutcomeDTO {
	out := &dto.BulkOutcomeDTO{
		Mode:             res.Mode.String(),
		Succeeded:        append([]string(nil), res.Succeeded...),
		SelectionCleared: res.SelectionCleared,
		Refreshed:        res.Refreshed,
	}
	for _, f := range res.Failed {
		out.Failed = append(out.Failed, dto.ItemFailureDTO{ItemID: f.ItemID, Message: f.Err.Error()})
	}
	switch {
	case err != nil:
		out.Message = fmt.Sprintf("%d of %d updates failed", len(res.Failed), len(res.Failed)+len(res.Succeeded))
	default:
		out.Message = fmt.Sprintf("%d products updated", len(res.Succeeded))
	}
	if res.RefreshErr != nil {
		out.Message += "; refresh failed: " + res.RefreshErr.Error()
	}
	return out
}
