package bulk_update

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	contracts "github.com/murkotick/catalog-sale-console/internal/app/sale/contracts"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
	"github.com/murkotick/catalog-sale-console/internal/pkg/logging"
)

// Mode tells the interactor where the updates came from.
type Mode int

const (
	// ModeSelection applies one configuration to the selected items and clears
	// the selection when every update succeeds.
	ModeSelection Mode = iota

	// ModePreset replays per-item configurations and never touches the selection.
	ModePreset
)

func (m Mode) String() string {
	if m == ModePreset {
		return "preset"
	}
	return "selection"
}

// Request describes one bulk operation.
type Request struct {
	Mode    Mode
	Updates []domain.ItemUpdate
}

// UniformRequest applies cfg to every id (selection mode).
func UniformRequest(ids []string, cfg domain.SaleConfig) Request {
	return Request{Mode: ModeSelection, Updates: domain.UniformUpdates(ids, cfg)}
}

// PresetRequest replays heterogeneous per-item configurations.
func PresetRequest(updates []domain.ItemUpdate) Request {
	return Request{Mode: ModePreset, Updates: updates}
}

// ItemFailure records why a single item update failed.
type ItemFailure struct {
	ItemID string
	Err    error
}

// Result is the aggregate outcome of a bulk operation, available after every
// dispatched update has settled.
type Result struct {
	Mode             Mode
	Succeeded        []string
	Failed           []ItemFailure
	SelectionCleared bool
	Refreshed        bool
	RefreshErr       error
}

// OK reports whether every item update succeeded.
func (r *Result) OK() bool {
	return r != nil && len(r.Failed) == 0
}

// Interactor fans out one catalog update per item and joins on all of them.
//
// Concurrency caps the number of in-flight calls; zero means every call is
// dispatched at once.
type Interactor struct {
	Catalog     contracts.CatalogService
	Selection   contracts.Selection
	Refresher   contracts.Refresher
	Concurrency int
	Logger      log.Logger

	updating atomic.Bool
}

func NewInteractor(catalog contracts.CatalogService, sel contracts.Selection, refresher contracts.Refresher, concurrency int, logger log.Logger) *Interactor {
	return &Interactor{
		Catalog:     catalog,
		Selection:   sel,
		Refresher:   refresher,
		Concurrency: concurrency,
		Logger:      logging.With(logger, "bulk_update"),
	}
}

// Updating reports whether a bulk operation is in flight.
func (it *Interactor) Updating() bool {
	return it.updating.Load()
}

// Execute runs the bulk operation. It returns ErrNoItemsSelected or ErrBulkInProgress
// without dispatching anything; otherwise it always returns a Result, together with
// an error wrapping ErrBulkUpdateFailed when at least one item failed.
func (it *Interactor) Execute(ctx context.Context, req Request) (*Result, error) {
	if len(req.Updates) == 0 {
		return nil, domain.ErrNoItemsSelected
	}
	if !it.updating.CompareAndSwap(false, true) {
		return nil, domain.ErrBulkInProgress
	}
	defer it.updating.Store(false)

	logger := logging.OrNop(it.Logger)

	// Dispatched calls run to completion even if the caller goes away.
	callCtx := context.WithoutCancel(ctx)
	errs := make([]error, len(req.Updates))

	var g errgroup.Group
	if it.Concurrency > 0 {
		g.SetLimit(it.Concurrency)
	}
	for i, u := range req.Updates {
		if u.ItemID == "" {
			errs[i] = domain.ErrEmptyItemID
			continue
		}
		g.Go(func() error {
			_, err := it.Catalog.UpdateItemSaleConfig(callCtx, u.ItemID, u.Sale)
			errs[i] = err
			return nil
		})
	}
	_ = g.Wait()

	res := &Result{Mode: req.Mode}
	var combined error
	for i, u := range req.Updates {
		if errs[i] == nil {
			res.Succeeded = append(res.Succeeded, u.ItemID)
			continue
		}
		res.Failed = append(res.Failed, ItemFailure{ItemID: u.ItemID, Err: errs[i]})
		combined = multierr.Append(combined, fmt.Errorf("item %s: %w", u.ItemID, errs[i]))
		_ = level.Warn(logger).Log("msg", "item update failed", "mode", req.Mode, "item_id", u.ItemID, "err", errs[i])
	}

	if res.OK() && req.Mode == ModeSelection && it.Selection != nil {
		it.Selection.Clear()
		res.SelectionCleared = true
	}

	if it.Refresher != nil {
		if err := it.Refresher.Refresh(callCtx); err != nil {
			res.RefreshErr = err
			_ = level.Error(logger).Log("msg", "catalog refresh failed", "err", err)
		} else {
			res.Refreshed = true
		}
	}

	_ = level.Info(logger).Log("msg", "bulk update settled", "mode", req.Mode,
		"succeeded", len(res.Succeeded), "failed", len(res.Failed))

	if combined != nil {
		return res, fmt.Errorf("%w (%d of %d): %w", domain.ErrBulkUpdateFailed, len(res.Failed), len(req.Updates), combined)
	}
	return res, nil
}
