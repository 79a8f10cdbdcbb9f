package cart

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
)

const testKey = "cart:session-1"

type fakeStorage struct {
	mu      sync.Mutex
	items   map[string]string
	getErr  error
	setErr  error
	rmErr   error
	writes  int
	removes int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{items: make(map[string]string)}
}

func (f *fakeStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.items[key]
	return v, ok, nil
}

func (f *fakeStorage) SetItem(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.items[key] = value
	f.writes++
	return nil
}

func (f *fakeStorage) RemoveItem(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rmErr != nil {
		return f.rmErr
	}
	delete(f.items, key)
	f.removes++
	return nil
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func product(id int, price string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "Product " + strconv.Itoa(id),
		Price:    decimal.RequireFromString(price),
		Category: domain.CategoryRoses,
		InStock:  true,
	}
}

// assertSameLines compares lines by value; decimals are compared numerically
// because "35.50" comes back from JSON as "35.5".
func assertSameLines(t *testing.T, want, got []domain.CartLine) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Quantity, got[i].Quantity, "line %d quantity", i)
		assert.True(t, want[i].Product.Price.Equal(got[i].Product.Price), "line %d price", i)
		wp, gp := want[i].Product, got[i].Product
		wp.Price, gp.Price = decimal.Zero, decimal.Zero
		assert.Equal(t, wp, gp, "line %d product", i)
	}
}

func openStore(t *testing.T, storage Storage, notifier Notifier) *Store {
	t.Helper()
	s, err := Open(context.Background(), storage, testKey, notifier, testLogger(&bytes.Buffer{}))
	require.NoError(t, err)
	return s
}

func TestStore_DistinctAddsCountLines(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newFakeStorage(), nil)

	for id := 1; id <= 4; id++ {
		require.NoError(t, s.AddToCart(ctx, product(id, "10.00"), 300))
	}
	assert.Equal(t, 4, s.ItemCount())
}

func TestStore_SameProductAddsAccumulate(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newFakeStorage(), nil)
	p := product(1, "10.00")

	for _, q := range []int{300, 500, 29999} {
		require.NoError(t, s.AddToCart(ctx, p, q))
	}

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 30799, lines[0].Quantity)
	assert.Equal(t, 1, s.ItemCount())
}

func TestStore_UpdateQuantityNonPositiveRemoves(t *testing.T) {
	for _, q := range []int{0, -1} {
		ctx := context.Background()
		s := openStore(t, newFakeStorage(), nil)
		require.NoError(t, s.AddToCart(ctx, product(1, "10.00"), 300))
		require.NoError(t, s.AddToCart(ctx, product(2, "10.00"), 300))

		require.NoError(t, s.UpdateQuantity(ctx, 1, q))

		lines := s.Lines()
		require.Len(t, lines, 1, "quantity %d", q)
		assert.Equal(t, 2, lines[0].Product.ID)
	}
}

func TestStore_UpdateQuantityInPlace(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newFakeStorage(), nil)
	for id := 1; id <= 3; id++ {
		require.NoError(t, s.AddToCart(ctx, product(id, "1.00"), 300))
	}

	require.NoError(t, s.UpdateQuantity(ctx, 2, 750))
	require.NoError(t, s.UpdateQuantity(ctx, 99, 750))

	lines := s.Lines()
	assert.Equal(t, []int{1, 2, 3}, []int{lines[0].Product.ID, lines[1].Product.ID, lines[2].Product.ID})
	assert.Equal(t, []int{300, 750, 300}, []int{lines[0].Quantity, lines[1].Quantity, lines[2].Quantity})
}

func TestStore_TotalAndClear(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	s := openStore(t, storage, nil)

	require.NoError(t, s.AddToCart(ctx, product(2, "49.99"), 2))
	require.NoError(t, s.AddToCart(ctx, product(10, "79.99"), 1))

	assert.True(t, decimal.RequireFromString("179.97").Equal(s.Total()), s.Total().String())
	assert.Equal(t, 2, s.ItemCount())

	require.NoError(t, s.ClearCart(ctx))
	assert.True(t, s.Total().IsZero())
	assert.Equal(t, 0, s.ItemCount())

	_, found, _ := storage.GetItem(ctx, testKey)
	assert.False(t, found, "empty cart should not keep a storage entry")
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	s := openStore(t, storage, nil)

	require.NoError(t, s.AddToCart(ctx, product(7, "35.50"), 400))
	require.NoError(t, s.AddToCart(ctx, product(3, "42.50"), 300))
	require.NoError(t, s.AddToCart(ctx, product(12, "62.25"), 1200))
	require.NoError(t, s.UpdateQuantity(ctx, 3, 900))

	reloaded := openStore(t, storage, nil)
	assertSameLines(t, s.Lines(), reloaded.Lines())
	assert.True(t, s.Total().Equal(reloaded.Total()))
}

func TestOpen_MalformedDataYieldsEmptyCart(t *testing.T) {
	tests := map[string]string{
		"not json":          "{{{",
		"empty string":      "",
		"scalar":            "42",
		"unknown version":   `{"version":9,"items":[]}`,
		"missing product":   `[{"quantity":3}]`,
		"zero quantity":     `[{"product":{"id":1},"quantity":0}]`,
		"duplicate product": `[{"product":{"id":1},"quantity":1},{"product":{"id":1},"quantity":2}]`,
		"wrong shape":       `{"version":1,"items":{"id":1}}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			storage := newFakeStorage()
			storage.items[testKey] = raw
			var logs bytes.Buffer

			s, err := Open(context.Background(), storage, testKey, nil, testLogger(&logs))

			require.NoError(t, err)
			assert.Equal(t, 0, s.ItemCount())
			assert.Contains(t, logs.String(), "discarding unreadable saved cart")
		})
	}
}

func TestOpen_MigratesLegacyArray(t *testing.T) {
	storage := newFakeStorage()
	storage.items[testKey] = `[{"product":{"id":2,"name":"Sweet Avalanche Rose","price":"49.99","category":"roses","in_stock":true},"quantity":2}]`

	s := openStore(t, storage, nil)

	require.Equal(t, 1, s.ItemCount())
	assert.Equal(t, 1, storage.writes)

	lines, version, err := Decode(storage.items[testKey])
	require.NoError(t, err)
	assert.Equal(t, PayloadVersion, version)
	assert.Equal(t, "Sweet Avalanche Rose", lines[0].Product.Name)
}

func TestOpen_EmptyOrMissingIsNotRewritten(t *testing.T) {
	storage := newFakeStorage()
	openStore(t, storage, nil)
	assert.Equal(t, 0, storage.writes)

	storage.items[testKey] = `{"version":1,"items":[]}`
	openStore(t, storage, nil)
	assert.Equal(t, 0, storage.writes)
}

func TestOpen_StorageFailure(t *testing.T) {
	storage := newFakeStorage()
	storage.getErr = errors.New("connection refused")

	_, err := Open(context.Background(), storage, testKey, nil, testLogger(&bytes.Buffer{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestStore_Notices(t *testing.T) {
	ctx := context.Background()
	c := &Collector{}
	s := openStore(t, newFakeStorage(), c)
	p := product(1, "5.00")

	require.NoError(t, s.AddToCart(ctx, p, 300))
	require.NoError(t, s.AddToCart(ctx, p, 300))
	require.NoError(t, s.UpdateQuantity(ctx, 1, 500))
	require.NoError(t, s.RemoveFromCart(ctx, 42))
	require.NoError(t, s.RemoveFromCart(ctx, 1))
	require.NoError(t, s.ClearCart(ctx))

	var kinds []domain.NoticeKind
	for _, n := range c.Notices() {
		kinds = append(kinds, n.Kind)
	}
	assert.Equal(t, []domain.NoticeKind{
		domain.NoticeAdded,
		domain.NoticeUpdated,
		domain.NoticeRemoved,
		domain.NoticeCleared,
	}, kinds)
	assert.Equal(t, "Product 1 has been removed from your cart.", c.Notices()[2].Message)
}

func TestStore_WriteFailureIsReturnedWithoutNotice(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	c := &Collector{}
	s := openStore(t, storage, c)
	storage.setErr = errors.New("READONLY")

	err := s.AddToCart(ctx, product(1, "5.00"), 300)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write cart")
	assert.Empty(t, c.Notices())
}

func TestStore_FailedWriteLeavesCartUnchanged(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	s := openStore(t, storage, nil)
	require.NoError(t, s.AddToCart(ctx, product(1, "10.00"), 300))
	before := s.Lines()
	storage.setErr = errors.New("READONLY")

	require.Error(t, s.AddToCart(ctx, product(2, "10.00"), 300))
	require.Error(t, s.AddToCart(ctx, product(1, "10.00"), 300))
	require.Error(t, s.UpdateQuantity(ctx, 1, 900))

	assert.Equal(t, 1, s.ItemCount())
	assertSameLines(t, before, s.Lines())
	assert.True(t, decimal.RequireFromString("3000").Equal(s.Total()))

	storage.setErr = nil
	reopened := openStore(t, storage, nil)
	assertSameLines(t, s.Lines(), reopened.Lines())
}

func TestStore_FailedRemoveLeavesCartUnchanged(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	c := &Collector{}
	s := openStore(t, storage, c)
	require.NoError(t, s.AddToCart(ctx, product(1, "10.00"), 300))
	storage.rmErr = errors.New("connection refused")

	require.Error(t, s.RemoveFromCart(ctx, 1))
	require.Error(t, s.UpdateQuantity(ctx, 1, 0))
	require.Error(t, s.ClearCart(ctx))

	assert.Equal(t, 1, s.ItemCount())
	assert.Equal(t, 300, s.Lines()[0].Quantity)
	assert.Len(t, c.Notices(), 1)
}

func TestOpen_NilLoggerDiscardsMalformedData(t *testing.T) {
	storage := newFakeStorage()
	storage.items[testKey] = "{{{"

	s, err := Open(context.Background(), storage, testKey, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, s.ItemCount())
}

func TestStore_LinesIsACopy(t *testing.T) {
	s := openStore(t, newFakeStorage(), nil)
	require.NoError(t, s.AddToCart(context.Background(), product(1, "5.00"), 300))

	lines := s.Lines()
	lines[0].Quantity = 1

	assert.Equal(t, 300, s.Lines()[0].Quantity)
}
