package confirm

import (
	"context"
	"sync"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
)

// Action runs once the operator confirms a pending request.
type Action func(ctx context.Context) error

// Prompt is what the operator is asked to confirm.
type Prompt struct {
	Title   string
	Message string
}

// Gate holds at most one pending confirmation. A new request replaces any
// unconfirmed one; nothing is queued.
type Gate struct {
	mu      sync.Mutex
	pending *request
	seq     uint64
}

type request struct {
	prompt    Prompt
	onConfirm Action
	seq       uint64
	running   bool
}

func NewGate() *Gate {
	return &Gate{}
}

// Request sets the pending confirmation, overwriting any previous one.
func (g *Gate) Request(title, message string, onConfirm Action) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	g.pending = &request{
		prompt:    Prompt{Title: title, Message: message},
		onConfirm: onConfirm,
		seq:       g.seq,
	}
}

// Pending returns the current prompt, if any.
func (g *Gate) Pending() (Prompt, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending == nil {
		return Prompt{}, false
	}
	return g.pending.prompt, true
}

// Confirm runs the pending action and then clears the slot. If the action itself
// placed a new request, that newer request is left pending. A request already
// being confirmed cannot be confirmed again.
func (g *Gate) Confirm(ctx context.Context) error {
	g.mu.Lock()
	req := g.pending
	if req == nil || req.running {
		g.mu.Unlock()
		return domain.ErrNothingToConfirm
	}
	req.running = true
	g.mu.Unlock()

	var err error
	if req.onConfirm != nil {
		err = req.onConfirm(ctx)
	}

	g.mu.Lock()
	if g.pending != nil && g.pending.seq == req.seq {
		g.pending = nil
	}
	g.mu.Unlock()

	return err
}

// Cancel clears the slot without running the action.
func (g *Gate) Cancel() {
	g.mu.Lock()
	g.pending = nil
	g.mu.Unlock()
}
