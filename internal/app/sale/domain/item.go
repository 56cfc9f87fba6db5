package domain

// ItemStatus is the catalog lifecycle state reported by the catalog service.
type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "ACTIVE"
	ItemStatusArchived ItemStatus = "ARCHIVED"
	ItemStatusDraft    ItemStatus = "DRAFT"
)

// Item is a catalog product as seen by the sale console. It is owned by the
// catalog service and never mutated locally.
type Item struct {
	ID        string
	Title     string
	Handle    string
	Status    ItemStatus
	BasePrice *Money
	ImageURL  string
	Sale      SaleConfig
}

// SalePrice derives the item's sale price; see SaleConfig.SalePrice.
func (i Item) SalePrice() (*Money, bool) {
	return i.Sale.SalePrice(i.BasePrice)
}

// ItemUpdate pairs an item identifier with the configuration to apply to it.
type ItemUpdate struct {
	ItemID string
	Sale   SaleConfig
}

// UniformUpdates pairs every id with the same configuration, preserving order.
func UniformUpdates(ids []string, cfg SaleConfig) []ItemUpdate {
	out := make([]ItemUpdate, 0, len(ids))
	for _, id := range ids {
		out = append(out, ItemUpdate{ItemID: id, Sale: cfg})
	}
	return out
}
