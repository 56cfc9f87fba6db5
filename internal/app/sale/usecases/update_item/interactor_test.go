package update_item

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
)

type recordingCatalog struct {
	got map[string]domain.SaleConfig
	err error
}

func (c *recordingCatalog) ListItems(ctx context.Context) ([]domain.Item, error) {
	return nil, nil
}

func (c *recordingCatalog) UpdateItemSaleConfig(ctx context.Context, itemID string, cfg domain.SaleConfig) (*domain.Item, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.got == nil {
		c.got = map[string]domain.SaleConfig{}
	}
	c.got[itemID] = cfg
	return &domain.Item{ID: itemID, Sale: cfg}, nil
}

type countingRefresher struct{ n int }

func (r *countingRefresher) Refresh(ctx context.Context) error {
	r.n++
	return nil
}

func TestExecute_UpdatesAndRefreshes(t *testing.T) {
	cat := &recordingCatalog{}
	ref := &countingRefresher{}
	it := NewInteractor(cat, ref, nil)

	item, err := it.Execute(context.Background(), Request{ItemID: "p1", OnSale: true, PercentOff: 15, ImageURL: "https://img/s.png"})
	require.NoError(t, err)
	assert.Equal(t, "p1", item.ID)
	assert.Equal(t, 15, cat.got["p1"].PercentOff())
	assert.Equal(t, 1, ref.n)
}

func TestExecute_ValidationStopsBeforeRemoteCall(t *testing.T) {
	cat := &recordingCatalog{}
	ref := &countingRefresher{}
	it := NewInteractor(cat, ref, nil)

	_, err := it.Execute(context.Background(), Request{ItemID: "p1", OnSale: true, PercentOff: 120})
	assert.ErrorIs(t, err, domain.ErrInvalidPercentOff)

	_, err = it.Execute(context.Background(), Request{OnSale: true, PercentOff: 10})
	assert.ErrorIs(t, err, domain.ErrEmptyItemID)

	assert.Empty(t, cat.got)
	assert.Equal(t, 0, ref.n)
}

func TestExecute_RemoteFailureSkipsRefresh(t *testing.T) {
	cat := &recordingCatalog{err: domain.ErrCatalogUserErrors}
	ref := &countingRefresher{}
	it := NewInteractor(cat, ref, nil)

	_, err := it.Execute(context.Background(), Request{ItemID: "p1", OnSale: true, PercentOff: 10})
	assert.ErrorIs(t, err, domain.ErrCatalogUserErrors)
	assert.Equal(t, 0, ref.n)
}

func TestToggle_KeepsPercentAndImage(t *testing.T) {
	cat := &recordingCatalog{}
	it := NewInteractor(cat, nil, nil)

	cfg, err := domain.NewSaleConfig(true, 25, "https://img/a.png")
	require.NoError(t, err)

	_, err = it.Toggle(context.Background(), domain.Item{ID: "p9", Sale: cfg})
	require.NoError(t, err)

	got := cat.got["p9"]
	assert.False(t, got.OnSale())
	assert.Equal(t, 25, got.PercentOff())
	img, ok := got.ImageURL()
	assert.True(t, ok)
	assert.Equal(t, "https://img/a.png", img)
}
