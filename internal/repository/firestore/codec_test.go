package firestore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ximianer/lightwave-erp/internal/domain"
)

func TestDecodeItemDefaults(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
		want domain.InventoryItem
	}{
		{
			name: "complete document",
			doc:  map[string]any{"name": "PA-SPEAKER", "rentPrice": 50.0, "stock": int64(3)},
			want: domain.InventoryItem{ID: "i-1", Name: "PA-SPEAKER", RentPrice: 50, Stock: 3},
		},
		{
			name: "empty document",
			doc:  map[string]any{},
			want: domain.InventoryItem{ID: "i-1"},
		},
		{
			name: "NaN stock from a broken client",
			doc:  map[string]any{"name": "MIXER", "stock": math.NaN()},
			want: domain.InventoryItem{ID: "i-1", Name: "MIXER"},
		},
		{
			name: "wrong field types",
			doc:  map[string]any{"name": int64(7), "rentPrice": "50", "stock": "many"},
			want: domain.InventoryItem{ID: "i-1"},
		},
		{
			name: "negative values clamp to zero",
			doc:  map[string]any{"name": "MIXER", "rentPrice": -10.0, "stock": int64(-2)},
			want: domain.InventoryItem{ID: "i-1", Name: "MIXER"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeItem("i-1", tt.doc))
		})
	}
}

func TestDecodeEventDefaults(t *testing.T) {
	ev := decodeEvent("ev-1", map[string]any{
		"title": "GALA",
		"bookedItems": []any{
			map[string]any{"name": "MIXER", "quantity": int64(2), "price": 80.0},
			"garbage entry",
			map[string]any{"name": "SPEAKER"},
		},
	})

	assert.Equal(t, "ev-1", ev.ID)
	assert.Equal(t, "GALA", ev.Title)
	assert.Empty(t, ev.EventStart, "absent timestamps decode to unset, not an error")
	require.Len(t, ev.BookedItems, 2)
	assert.Equal(t, domain.BookedItem{Name: "MIXER", Quantity: 2, Price: 80}, ev.BookedItems[0])
	assert.Equal(t, domain.BookedItem{Name: "SPEAKER"}, ev.BookedItems[1])
	assert.NotNil(t, ev.AssignedUsers)
}

func TestDecodeBundleAndUser(t *testing.T) {
	b := decodeBundle("b-1", map[string]any{
		"name":  "BASIC DJ",
		"items": []any{map[string]any{"name": "MIXER", "quantity": int64(1), "price": 80.0}},
	})
	require.Len(t, b.Items, 1)
	assert.Equal(t, "BASIC DJ", b.Name)

	u := decodeUser("u-1", map[string]any{"username": "maria", "password": "pw", "role": "Techniker"})
	assert.Equal(t, domain.RoleTechnician, u.Role)
	assert.True(t, u.Role.Valid())

	broken := decodeUser("u-2", map[string]any{"role": "Praktikant"})
	assert.False(t, broken.Role.Valid())
}

func TestEncodeEventNormalizesNilSlices(t *testing.T) {
	doc := encodeEvent(domain.Event{Title: "GALA"})

	assert.Equal(t, []string{}, doc["assignedUsers"])
	assert.Equal(t, []any{}, doc["bookedItems"])

	// no identity key may leak into the stored document
	_, hasID := doc["id"]
	assert.False(t, hasID)
}
