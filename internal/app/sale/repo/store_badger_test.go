package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-sale-console/internal/pkg/clock"
)

func TestBadgerStore_LoadSave(t *testing.T) {
	db, err := OpenBadger("")
	require.NoError(t, err)
	defer db.Close()

	s := NewBadgerStore(db, "salePresets")
	ctx := context.Background()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "absent key loads as nil")

	require.NoError(t, s.Save(ctx, []byte(`[]`)))
	require.NoError(t, s.Save(ctx, []byte(`[{"id":"a"}]`)))

	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))
}

func TestBadgerStore_BacksPresetRepo(t *testing.T) {
	db, err := OpenBadger("")
	require.NoError(t, err)
	defer db.Close()

	store := NewBadgerStore(db, "salePresets")
	ctx := context.Background()

	r, err := NewPresetRepo(ctx, store, clock.NewFake(testNow), nil)
	require.NoError(t, err)
	p, err := r.Save(ctx, "Summer", catalogItems(t))
	require.NoError(t, err)

	reloaded, err := NewPresetRepo(ctx, store, clock.NewFake(testNow), nil)
	require.NoError(t, err)
	got, err := reloaded.Get(p.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, got.ItemCount())
}
