package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, storage Storage) *Store {
	t.Helper()
	return NewStore(context.Background(), StorageKey("test"), storage, zerolog.Nop())
}

func itemA() Item {
	return Item{ID: "A", Name: "Vitamin C", Price: decimal.NewFromInt(100), Image: "/img/a.png"}
}

func TestAddItem_QuantityIsMinOfCallsAndMax(t *testing.T) {
	ctx := context.Background()
	for max := 1; max <= 4; max++ {
		for calls := 1; calls <= 6; calls++ {
			s := newTestStore(t, NewMemoryStorage())
			for i := 0; i < calls; i++ {
				s.AddItem(ctx, itemA(), Max(max))
			}
			items := s.Items()
			require.Len(t, items, 1)
			assert.Equal(t, min(calls, max), items[0].Quantity, "max=%d calls=%d", max, calls)
		}
	}
}

func TestAddItem_Unbounded(t *testing.T) {
	s := newTestStore(t, NewMemoryStorage())
	for i := 0; i < 25; i++ {
		s.AddItem(context.Background(), itemA(), nil)
	}
	assert.Equal(t, 25, s.TotalItems())
}

func TestAddItem_ExistingLineKeepsItsOwnMax(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryStorage())
	s.AddItem(ctx, itemA(), Max(2))
	s.AddItem(ctx, itemA(), Max(10))
	s.AddItem(ctx, itemA(), Max(10))
	assert.Equal(t, 2, s.Items()[0].Quantity)
}

func TestUpdateQuantity_Clamps(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryStorage())
	s.AddItem(ctx, itemA(), Max(5))

	cases := map[int]int{-3: 0, 0: 0, 1: 1, 5: 5, 10: 5}
	for q, want := range cases {
		s.UpdateQuantity(ctx, "A", q)
		items := s.Items()
		require.Len(t, items, 1, "zero quantity must not remove the line")
		assert.Equal(t, want, items[0].Quantity, "update to %d", q)
	}

	s.UpdateQuantity(ctx, "missing", 3)
	assert.Len(t, s.Items(), 1)
}

func TestRemoveThenAdd_ResetsToOne(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryStorage())
	s.AddItem(ctx, itemA(), nil)
	s.AddItem(ctx, itemA(), nil)
	s.AddItem(ctx, itemA(), nil)

	s.RemoveItem(ctx, "A")
	s.RemoveItem(ctx, "A")
	s.AddItem(ctx, itemA(), nil)

	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestTotals_FollowLines(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryStorage())
	b := Item{ID: "B", Name: "Bandage", Price: decimal.RequireFromString("19.99")}

	s.AddItem(ctx, itemA(), Max(5))
	s.AddItem(ctx, b, nil)
	s.AddItem(ctx, b, nil)
	s.UpdateQuantity(ctx, "A", 3)
	s.AddItem(ctx, b, nil)
	s.RemoveItem(ctx, "A")
	s.AddItem(ctx, itemA(), Max(5))

	want := decimal.Zero
	n := 0
	for _, l := range s.Items() {
		want = want.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		n += l.Quantity
	}
	assert.True(t, want.Equal(s.TotalPrice()), "want %s got %s", want, s.TotalPrice())
	assert.True(t, decimal.RequireFromString("159.97").Equal(s.TotalPrice()))
	assert.Equal(t, n, s.TotalItems())
}

func TestWorkedExample(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryStorage())
	s.AddItem(ctx, itemA(), Max(5))
	s.AddItem(ctx, itemA(), Max(5))
	assert.True(t, decimal.NewFromInt(200).Equal(s.TotalPrice()))

	s.UpdateQuantity(ctx, "A", 10)
	assert.Equal(t, 5, s.Items()[0].Quantity)
	assert.True(t, decimal.NewFromInt(500).Equal(s.TotalPrice()))

	s.RemoveItem(ctx, "A")
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.TotalItems())
}

func TestPersistence_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	s := newTestStore(t, storage)
	s.AddItem(ctx, itemA(), Max(5))
	s.UpdateQuantity(ctx, "A", 4)
	s.Open()

	restored := newTestStore(t, storage)
	items := restored.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
	require.NotNil(t, items[0].MaxQuantity)
	assert.Equal(t, 5, *items[0].MaxQuantity)
	assert.False(t, restored.IsOpen(), "open flag is not persisted")

	raw, err := storage.Load(ctx, "mitrro-cart:test")
	require.NoError(t, err)
	var lines []map[string]any
	require.NoError(t, json.Unmarshal(raw, &lines))
	assert.Equal(t, "A", lines[0]["id"])
}

func TestPersistence_CorruptStateIgnored(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(ctx, StorageKey("test"), []byte("{not json")))

	s := newTestStore(t, storage)
	assert.Empty(t, s.Items())

	s.AddItem(ctx, itemA(), nil)
	assert.Equal(t, 1, s.TotalItems())
}

func TestPersistence_NumericPricesAccepted(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	raw := `[{"id":"A","name":"Vitamin C","price":100,"image":"","quantity":2,"maxQuantity":5}]`
	require.NoError(t, storage.Save(ctx, StorageKey("test"), []byte(raw)))

	s := newTestStore(t, storage)
	assert.True(t, decimal.NewFromInt(200).Equal(s.TotalPrice()))
}

type failingStorage struct{ *MemoryStorage }

func (f *failingStorage) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestPersistence_SaveFailureKeepsMutation(t *testing.T) {
	s := newTestStore(t, &failingStorage{MemoryStorage: NewMemoryStorage()})
	s.AddItem(context.Background(), itemA(), nil)
	assert.Equal(t, 1, s.TotalItems())
}

func TestOpenClose(t *testing.T) {
	s := newTestStore(t, NewMemoryStorage())
	assert.False(t, s.IsOpen())
	s.Open()
	assert.True(t, s.IsOpen())
	s.Close()
	assert.False(t, s.IsOpen())
}
