package contracts

import "context"

// Refresher re-reads the catalog after a mutation so the view reflects remote state.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Selection is the narrow view of the selection store the bulk orchestrator needs.
type Selection interface {
	IDs() []string
	Clear()
}
