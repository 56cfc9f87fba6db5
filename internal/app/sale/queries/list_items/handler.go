package list_items

import (
	"context"
	"fmt"
	"sync"

	contracts "github.com/murkotick/catalog-sale-console/internal/app/sale/contracts"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain/services"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/dto"
)

// Handler keeps the last catalog snapshot fetched from the catalog service.
// Refresh replaces the snapshot; a failed refresh keeps the previous one.
type Handler struct {
	catalog contracts.CatalogService
	pricing *services.PricingCalculator

	mu    sync.RWMutex
	items []domain.Item
	ready bool
}

func NewHandler(catalog contracts.CatalogService) *Handler {
	return &Handler{catalog: catalog, pricing: services.NewPricingCalculator()}
}

// Refresh re-reads the catalog.
func (h *Handler) Refresh(ctx context.Context) error {
	items, err := h.catalog.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("list catalog items: %w", err)
	}

	h.mu.Lock()
	h.items = items
	h.ready = true
	h.mu.Unlock()
	return nil
}

// Items returns a copy of the current snapshot.
func (h *Handler) Items() []domain.Item {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]domain.Item, len(h.items))
	copy(out, h.items)
	return out
}

// IDs returns the ids of the current snapshot in catalog order.
func (h *Handler) IDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, 0, len(h.items))
	for _, it := range h.items {
		out = append(out, it.ID)
	}
	return out
}

// Find returns the item with id from the current snapshot.
func (h *Handler) Find(id string) (domain.Item, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, it := range h.items {
		if it.ID == id {
			return it, true
		}
	}
	return domain.Item{}, false
}

// Loaded returns the snapshot, fetching it first if it was never loaded.
func (h *Handler) Loaded(ctx context.Context) ([]domain.Item, error) {
	h.mu.RLock()
	ready := h.ready
	h.mu.RUnlock()
	if !ready {
		if err := h.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return h.Items(), nil
}

// Execute returns the snapshot as display rows, fetching it first if it was never loaded.
// isSelected may be nil.
func (h *Handler) Execute(ctx context.Context, isSelected func(string) bool) ([]*dto.ItemDTO, error) {
	items, err := h.Loaded(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ItemDTO, 0, len(items))
	for _, it := range items {
		row := h.toDTO(it)
		if isSelected != nil {
			row.Selected = isSelected(it.ID)
		}
		out = append(out, row)
	}
	return out, nil
}

func (h *Handler) toDTO(it domain.Item) *dto.ItemDTO {
	row := &dto.ItemDTO{
		ItemID:   it.ID,
		Title:    it.Title,
		Handle:   it.Handle,
		Status:   string(it.Status),
		ImageURL: it.ImageURL,
		OnSale:   it.Sale.OnSale(),
	}
	if it.BasePrice != nil {
		row.RegularPrice = it.BasePrice.String()
	}
	if !it.Sale.OnSale() {
		return row
	}

	pct := it.Sale.PercentOff()
	row.PercentOff = &pct
	if price, ok := h.pricing.SalePrice(it.BasePrice, it.Sale); ok {
		s := price.String()
		row.SalePrice = &s
	}
	row.SaleImageURL = it.Sale.ImageURLPtr()
	return row
}
