package contracts

import (
	"context"

	commitplan "github.com/murkotick/catalog-sale-console/internal/pkg/committer"
)

// Committer applies a collection of Spanner mutations atomically.
// The Spanner preset store depends on it instead of on the client directly.
type Committer interface {
	Apply(ctx context.Context, plan *commitplan.Plan) error
}
