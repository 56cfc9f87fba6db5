package dto

// ItemDTO is a catalog row with its derived display values.
// PercentOff, SalePrice and SaleImageURL are set only while the item is on sale.
type ItemDTO struct {
	ItemID   string
	Title    string
	Handle   string
	Status   string
	ImageURL string

	// RegularPrice is the base price as a two-decimal string.
	RegularPrice string

	OnSale       bool
	PercentOff   *int
	SalePrice    *string
	SaleImageURL *string

	Selected bool
}

// PresetSummaryDTO is a compact DTO for the preset list.
type PresetSummaryDTO struct {
	PresetID  string
	Name      string
	CreatedAt string // RFC3339
	ItemCount int
}

// PresetItemDTO is one entry of a preset snapshot.
type PresetItemDTO struct {
	ItemID     string
	Title      string
	OnSale     bool
	PercentOff int
	ImageURL   *string
}

// PresetDTO is the full content of a preset.
type PresetDTO struct {
	PresetSummaryDTO
	Items []PresetItemDTO
}

// ItemFailureDTO names an item whose update failed and why.
type ItemFailureDTO struct {
	ItemID  string
	Message string
}

// BulkOutcomeDTO is the last settled bulk operation.
type BulkOutcomeDTO struct {
	Mode             string
	Succeeded        []string
	Failed           []ItemFailureDTO
	SelectionCleared bool
	Refreshed        bool
	Message          string
}

// PromptDTO is the pending confirmation, if any.
type PromptDTO struct {
	Title   string
	Message string
}

// StatusDTO is the console state shown next to the catalog.
type StatusDTO struct {
	SelectedCount int
	SelectedIDs   []string
	Updating      bool
	Pending       *PromptDTO
	LastBulk      *BulkOutcomeDTO
}
