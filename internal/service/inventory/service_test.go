package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ximianer/lightwave-erp/internal/domain"
)

func TestNormalizeItem(t *testing.T) {
	item, err := normalizeItem("  pa-Speaker ", 50, 3)
	require.NoError(t, err)
	assert.Equal(t, "PA-SPEAKER", item.Name)
	assert.Equal(t, 50.0, item.RentPrice)
	assert.Equal(t, 3, item.Stock)
}

func TestNormalizeItemRefusesBlankName(t *testing.T) {
	_, err := normalizeItem("   ", 10, 1)
	assert.ErrorIs(t, err, ErrEmptyItemName)
}

func TestNormalizeItemClampsNegatives(t *testing.T) {
	item, err := normalizeItem("MIXER", -80, -5)
	require.NoError(t, err)
	assert.Zero(t, item.RentPrice)
	assert.Zero(t, item.Stock)
}

func TestSnapshotLines(t *testing.T) {
	items := []domain.InventoryItem{
		{ID: "i-1", Name: "MIXER", RentPrice: 80, Stock: 2},
		{ID: "i-2", Name: "SPEAKER", RentPrice: 50, Stock: 6},
	}

	lines, err := snapshotLines(items, []Selection{
		{ItemID: "i-1", Quantity: 1},
		{ItemID: "i-2", Quantity: 0}, // clamps to 1
	})

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, domain.BookedItem{Name: "MIXER", Quantity: 1, Price: 80}, lines[0])
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, 50.0, lines[1].Price, "price is snapshotted at authoring time")
}

func TestSnapshotLinesUnknownItem(t *testing.T) {
	_, err := snapshotLines(nil, []Selection{{ItemID: "ghost", Quantity: 1}})
	assert.ErrorIs(t, err, ErrItemNotFound)
}
