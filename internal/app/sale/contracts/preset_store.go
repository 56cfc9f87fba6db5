package contracts

import "context"

// PresetStore is durable storage for the serialized preset collection under a single key.
type PresetStore interface {
	// Load returns the stored payload, or (nil, nil) when nothing has been saved yet.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored payload.
	Save(ctx context.Context, payload []byte) error
}
