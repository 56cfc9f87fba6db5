package list_items

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
)

type stubCatalog struct {
	items []domain.Item
	err   error
	calls int
}

func (s *stubCatalog) ListItems(ctx context.Context) ([]domain.Item, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func (s *stubCatalog) UpdateItemSaleConfig(ctx context.Context, id string, cfg domain.SaleConfig) (*domain.Item, error) {
	return nil, errors.New("not used")
}

func sampleItems(t *testing.T) []domain.Item {
	t.Helper()
	onSale, err := domain.NewSaleConfig(true, 25, "https://cdn/sale.png")
	require.NoError(t, err)
	return []domain.Item{
		{ID: "a", Title: "Lamp", Status: domain.ItemStatusActive, BasePrice: domain.NewMoney(100, 1), Sale: onSale},
		{ID: "b", Title: "Chair", Status: domain.ItemStatusDraft, BasePrice: domain.NewMoney(4999, 100), Sale: domain.ReconstructSaleConfig(false, 30, nil)},
	}
}

func TestExecute_LoadsOnFirstCallAndDerivesPrices(t *testing.T) {
	cat := &stubCatalog{items: sampleItems(t)}
	h := NewHandler(cat)

	rows, err := h.Execute(context.Background(), func(id string) bool { return id == "b" })
	require.NoError(t, err)
	require.Len(t, rows, 2)

	lamp := rows[0]
	assert.Equal(t, "100.00", lamp.RegularPrice)
	require.NotNil(t, lamp.SalePrice)
	assert.Equal(t, "75.00", *lamp.SalePrice)
	require.NotNil(t, lamp.PercentOff)
	assert.Equal(t, 25, *lamp.PercentOff)
	require.NotNil(t, lamp.SaleImageURL)
	assert.False(t, lamp.Selected)

	chair := rows[1]
	assert.Equal(t, "49.99", chair.RegularPrice)
	assert.Nil(t, chair.SalePrice, "no sale price while not on sale")
	assert.Nil(t, chair.PercentOff)
	assert.True(t, chair.Selected)
	assert.Equal(t, "DRAFT", chair.Status)

	_, err = h.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.calls, "snapshot is reused until refreshed")
}

func TestRefresh_FailureKeepsSnapshot(t *testing.T) {
	cat := &stubCatalog{items: sampleItems(t)}
	h := NewHandler(cat)
	require.NoError(t, h.Refresh(context.Background()))

	cat.err = domain.ErrCatalogTransport
	err := h.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogTransport)
	assert.Equal(t, []string{"a", "b"}, h.IDs())

	it, ok := h.Find("a")
	assert.True(t, ok)
	assert.Equal(t, "Lamp", it.Title)
	_, ok = h.Find("zzz")
	assert.False(t, ok)
}

func TestExecute_InitialFetchError(t *testing.T) {
	h := NewHandler(&stubCatalog{err: domain.ErrCatalogTransport})
	_, err := h.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrCatalogTransport)
}

func TestLoaded_RetriesUntilFirstSuccess(t *testing.T) {
	cat := &stubCatalog{items: sampleItems(t), err: domain.ErrCatalogTransport}
	h := NewHandler(cat)

	_, err := h.Loaded(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogTransport)

	cat.err = nil
	items, err := h.Loaded(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = h.Loaded(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, cat.calls)
}
