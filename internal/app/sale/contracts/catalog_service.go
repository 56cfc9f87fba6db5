package contracts

import (
	"context"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
)

// CatalogService is the remote catalog the console reads from and writes sale settings to.
//
// Both transport failures and server-reported validation errors are returned as errors;
// callers treat any error from UpdateItemSaleConfig as "this item's update failed".
type CatalogService interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
	UpdateItemSaleConfig(ctx context.Context, itemID string, cfg domain.SaleConfig) (*domain.Item, error)
}
