package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ximianer/lightwave-erp/internal/booking"
	"github.com/Ximianer/lightwave-erp/internal/domain"
)

var (
	testItems = []domain.InventoryItem{
		{ID: "i-1", Name: "PA-SPEAKER", RentPrice: 50, Stock: 3},
		{ID: "i-2", Name: "MIXER", RentPrice: 80, Stock: 1},
	}
	testBundles = []domain.Bundle{
		{ID: "b-1", Name: "BASIC DJ", Items: []domain.BookedItem{
			{Name: "MIXER", Quantity: 1, Price: 80},
			{Name: "SPEAKER", Quantity: 2, Price: 50},
		}},
	}
)

func TestResolveIncrement(t *testing.T) {
	a, err := resolveAction(testItems, testBundles, LedgerAction{
		Type:   booking.ActionIncrement,
		ItemID: "i-1",
	})

	require.NoError(t, err)
	require.NotNil(t, a.Item)
	assert.Equal(t, "PA-SPEAKER", a.Item.Name)
}

func TestResolveUnknownItem(t *testing.T) {
	_, err := resolveAction(testItems, testBundles, LedgerAction{
		Type:   booking.ActionIncrement,
		ItemID: "missing",
	})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestResolveUnknownBundle(t *testing.T) {
	_, err := resolveAction(testItems, testBundles, LedgerAction{
		Type:     booking.ActionMergeBundle,
		BundleID: "missing",
	})
	assert.ErrorIs(t, err, ErrBundleNotFound)
}

func TestResolveUnknownAction(t *testing.T) {
	_, err := resolveAction(testItems, testBundles, LedgerAction{Type: "explode"})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = resolveAction(testItems, testBundles, LedgerAction{Type: booking.ActionDecrement})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestAtMaxFlags(t *testing.T) {
	l := booking.Ledger{
		{Name: "MIXER", Quantity: 1, Price: 80},      // stock 1 → at max
		{Name: "PA-SPEAKER", Quantity: 1, Price: 50}, // stock 3 → room left
		{Name: "FOREIGN", Quantity: 2, Price: 10},    // no matching item → no flag
	}

	flags := atMaxFlags(l, testItems)

	assert.Equal(t, map[string]bool{
		"MIXER":      true,
		"PA-SPEAKER": false,
	}, flags)
}
