package sale

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/confirm"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/console"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/queries/list_items"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/repo"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/selection"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/usecases/bulk_update"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/usecases/update_item"
	"github.com/murkotick/catalog-sale-console/internal/pkg/clock"
)

type stubCatalog struct {
	mu    sync.Mutex
	items []domain.Item
	fail  map[string]bool
}

func (s *stubCatalog) ListItems(ctx context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *stubCatalog) UpdateItemSaleConfig(ctx context.Context, id string, cfg domain.SaleConfig) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[id] {
		return nil, domain.ErrCatalogTransport
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Sale = cfg
			it := s.items[i]
			return &it, nil
		}
	}
	return nil, domain.ErrCatalogUserErrors
}

type memStore struct {
	mu      sync.Mutex
	payload []byte
}

func (m *memStore) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payload, nil
}

func (m *memStore) Save(ctx context.Context, p []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = p
	return nil
}

func startServer(t *testing.T) (*Client, *stubCatalog) {
	t.Helper()
	ctx := context.Background()

	onSale, err := domain.NewSaleConfig(true, 25, "")
	require.NoError(t, err)
	cat := &stubCatalog{
		fail: map[string]bool{},
		items: []domain.Item{
			{ID: "p1", Title: "Lamp", BasePrice: domain.NewMoney(100, 1), Sale: onSale},
			{ID: "p2", Title: "Chair", BasePrice: domain.NewMoney(80, 1), Sale: domain.NotOnSale()},
			{ID: "p3", Title: "Desk", BasePrice: domain.NewMoney(300, 1), Sale: domain.NotOnSale()},
		},
	}

	view := list_items.NewHandler(cat)
	require.NoError(t, view.Refresh(ctx))
	sel := selection.NewStore()
	presets, err := repo.NewPresetRepo(ctx, &memStore{}, clock.NewFake(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), nil)
	require.NoError(t, err)

	c := console.New(console.Deps{
		Gate:      confirm.NewGate(),
		Selection: sel,
		Catalog:   view,
		Bulk:      bulk_update.NewInteractor(cat, sel, view, 2, nil),
		Items:     update_item.NewInteractor(cat, view, nil),
		Presets:   presets,
		Defaults:  console.Defaults{PercentOff: 39},
	})

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	RegisterConsoleServer(srv, NewHandler(c))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn), cat
}

func TestListItems(t *testing.T) {
	client, _ := startServer(t)
	out, err := client.Call(context.Background(), "ListItems", nil)
	require.NoError(t, err)

	items := out.GetFields()["items"].GetListValue().GetValues()
	require.Len(t, items, 3)

	lamp := items[0].GetStructValue().GetFields()
	assert.Equal(t, "p1", lamp["item_id"].GetStringValue())
	assert.Equal(t, "100.00", lamp["regular_price"].GetStringValue())
	assert.Equal(t, "75.00", lamp["sale_price"].GetStringValue())
	assert.EqualValues(t, 25, lamp["percent_off"].GetNumberValue())

	chair := items[1].GetStructValue().GetFields()
	_, hasSalePrice := chair["sale_price"]
	assert.False(t, hasSalePrice)
}

func TestBulkFlow_ConfirmRequired(t *testing.T) {
	client, cat := startServer(t)
	ctx := context.Background()

	_, err := client.Call(ctx, "RequestAddToSale", nil)
	assert.Equal(t, codes.InvalidArgument, status.Code(err), "empty selection")

	_, err = client.Call(ctx, "SelectAll", map[string]any{"item_ids": []any{"p2", "p3"}})
	require.NoError(t, err)

	out, err := client.Call(ctx, "RequestAddToSale", nil)
	require.NoError(t, err)
	assert.Equal(t, "Add to Sale", out.GetFields()["pending"].GetStructValue().GetFields()["title"].GetStringValue())

	out, err = client.Call(ctx, "Confirm", nil)
	require.NoError(t, err)
	f := out.GetFields()
	assert.EqualValues(t, 0, f["selected_count"].GetNumberValue())
	last := f["last_bulk"].GetStructValue().GetFields()
	assert.Len(t, last["succeeded"].GetListValue().GetValues(), 2)
	assert.True(t, last["selection_cleared"].GetBoolValue())

	cat.mu.Lock()
	assert.Equal(t, 39, cat.items[2].Sale.PercentOff())
	cat.mu.Unlock()

	_, err = client.Call(ctx, "Confirm", nil)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestBulkFlow_PartialFailure(t *testing.T) {
	client, cat := startServer(t)
	ctx := context.Background()
	cat.fail["p2"] = true

	_, err := client.Call(ctx, "SelectAll", nil)
	require.NoError(t, err)
	_, err = client.Call(ctx, "RequestBulkUpdate", map[string]any{"on_sale": true, "percent_off": 10})
	require.NoError(t, err)

	_, err = client.Call(ctx, "Confirm", nil)
	assert.Equal(t, codes.Aborted, status.Code(err))

	st, err := client.Call(ctx, "GetStatus", nil)
	require.NoError(t, err)
	f := st.GetFields()
	assert.EqualValues(t, 3, f["selected_count"].GetNumberValue())
	last := f["last_bulk"].GetStructValue().GetFields()
	failed := last["failed"].GetListValue().GetValues()
	require.Len(t, failed, 1)
	assert.Equal(t, "p2", failed[0].GetStructValue().GetFields()["item_id"].GetStringValue())
	assert.True(t, last["refreshed"].GetBoolValue())
}

func TestPresetFlow(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	_, err := client.Call(ctx, "SavePreset", map[string]any{"name": ""})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	saved, err := client.Call(ctx, "SavePreset", map[string]any{"name": "Spring"})
	require.NoError(t, err)
	id := saved.GetFields()["preset_id"].GetStringValue()
	assert.EqualValues(t, 1, saved.GetFields()["item_count"].GetNumberValue())

	detail, err := client.Call(ctx, "GetPreset", map[string]any{"preset_id": id})
	require.NoError(t, err)
	assert.Len(t, detail.GetFields()["items"].GetListValue().GetValues(), 1)

	_, err = client.Call(ctx, "GetPreset", map[string]any{"preset_id": "nope"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	exported, err := client.Call(ctx, "ExportPresets", nil)
	require.NoError(t, err)
	assert.Equal(t, "sale-presets.json", exported.GetFields()["file_name"].GetStringValue())
	payload := exported.GetFields()["payload"].GetStringValue()

	_, err = client.Call(ctx, "RequestImportPresets", map[string]any{"payload": `{"x":1}`})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	imp, err := client.Call(ctx, "RequestImportPresets", map[string]any{"payload": payload})
	require.NoError(t, err)
	assert.EqualValues(t, 1, imp.GetFields()["count"].GetNumberValue())
	_, err = client.Call(ctx, "Confirm", nil)
	require.NoError(t, err)

	list, err := client.Call(ctx, "ListPresets", nil)
	require.NoError(t, err)
	assert.Len(t, list.GetFields()["presets"].GetListValue().GetValues(), 2)

	_, err = client.Call(ctx, "RequestDeletePreset", map[string]any{"preset_id": id})
	require.NoError(t, err)
	_, err = client.Call(ctx, "Cancel", nil)
	require.NoError(t, err)

	_, err = client.Call(ctx, "RequestApplyPreset", map[string]any{"preset_id": id})
	require.NoError(t, err)
	out, err := client.Call(ctx, "Confirm", nil)
	require.NoError(t, err)
	assert.Equal(t, "preset", out.GetFields()["last_bulk"].GetStructValue().GetFields()["mode"].GetStringValue())
}

func TestUpdateItem_Validation(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	cases := []map[string]any{
		{"on_sale": true, "percent_off": 10},
		{"item_id": "p1", "percent_off": 10},
		{"item_id": "p1", "on_sale": true, "percent_off": 12.5},
		{"item_id": "p1", "on_sale": true, "percent_off": 150},
		{"item_id": "p1", "on_sale": "yes"},
	}
	for _, in := range cases {
		_, err := client.Call(ctx, "UpdateItem", in)
		assert.Equal(t, codes.InvalidArgument, status.Code(err), in)
	}

	out, err := client.Call(ctx, "UpdateItem", map[string]any{"item_id": "p2", "on_sale": true, "percent_off": 50, "image_url": "https://cdn/x.png"})
	require.NoError(t, err)
	assert.Equal(t, "40.00", out.GetFields()["sale_price"].GetStringValue())

	out, err = client.Call(ctx, "ToggleItem", map[string]any{"item_id": "p2"})
	require.NoError(t, err)
	assert.False(t, out.GetFields()["on_sale"].GetBoolValue())

	_, err = client.Call(ctx, "ToggleItem", map[string]any{"item_id": "ghost"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestToggleSelection(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	out, err := client.Call(ctx, "ToggleSelection", map[string]any{"item_id": "p1"})
	require.NoError(t, err)
	assert.True(t, out.GetFields()["selected"].GetBoolValue())
	assert.EqualValues(t, 1, out.GetFields()["selected_count"].GetNumberValue())

	_, err = client.Call(ctx, "ToggleSelection", nil)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	out, err = client.Call(ctx, "ClearSelection", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, out.GetFields()["selected_count"].GetNumberValue())
}
