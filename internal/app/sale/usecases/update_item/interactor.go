package update_item

import (
	"context"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	contracts "github.com/murkotick/catalog-sale-console/internal/app/sale/contracts"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
	"github.com/murkotick/catalog-sale-console/internal/pkg/logging"
)

// Request edits the sale settings of one item.
type Request struct {
	ItemID     string
	OnSale     bool
	PercentOff int
	ImageURL   string
}

// Interactor updates a single item outside of any bulk operation.
type Interactor struct {
	Catalog   contracts.CatalogService
	Refresher contracts.Refresher
	Logger    log.Logger
}

func NewInteractor(catalog contracts.CatalogService, refresher contracts.Refresher, logger log.Logger) *Interactor {
	return &Interactor{
		Catalog:   catalog,
		Refresher: refresher,
		Logger:    logging.With(logger, "update_item"),
	}
}

// Execute validates the settings, writes them and refreshes the catalog on success.
func (it *Interactor) Execute(ctx context.Context, req Request) (*domain.Item, error) {
	if req.ItemID == "" {
		return nil, domain.ErrEmptyItemID
	}
	cfg, err := domain.NewSaleConfig(req.OnSale, req.PercentOff, req.ImageURL)
	if err != nil {
		return nil, err
	}
	return it.apply(ctx, req.ItemID, cfg)
}

// Toggle flips the on-sale flag of item, keeping its percentage and image.
func (it *Interactor) Toggle(ctx context.Context, item domain.Item) (*domain.Item, error) {
	if item.ID == "" {
		return nil, domain.ErrEmptyItemID
	}
	return it.apply(ctx, item.ID, item.Sale.WithOnSale(!item.Sale.OnSale()))
}

func (it *Interactor) apply(ctx context.Context, itemID string, cfg domain.SaleConfig) (*domain.Item, error) {
	logger := logging.OrNop(it.Logger)

	updated, err := it.Catalog.UpdateItemSaleConfig(ctx, itemID, cfg)
	if err != nil {
		_ = level.Warn(logger).Log("msg", "item update failed", "item_id", itemID, "err", err)
		return nil, fmt.Errorf("update sale settings of %s: %w", itemID, err)
	}

	if it.Refresher != nil {
		if err := it.Refresher.Refresh(ctx); err != nil {
			_ = level.Error(logger).Log("msg", "catalog refresh failed", "err", err)
		}
	}
	return updated, nil
}
