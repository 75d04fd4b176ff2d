package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ximianer/lightwave-erp/internal/domain"
)

var speaker = domain.InventoryItem{ID: "inv-1", Name: "PA-SPEAKER", RentPrice: 50, Stock: 3}

func TestIncrementAppendsAndMerges(t *testing.T) {
	l := Ledger{}
	l = Increment(l, speaker)
	l = Increment(l, speaker)

	require.Len(t, l, 1)
	assert.Equal(t, "PA-SPEAKER", l[0].Name)
	assert.Equal(t, 2, l[0].Quantity)
	assert.Equal(t, 50.0, l[0].Price)
	assert.Equal(t, 100.0, Total(l))
}

func TestIncrementStopsAtStock(t *testing.T) {
	l := Ledger{{Name: "PA-SPEAKER", Quantity: 3, Price: 50}}

	got := Increment(l, speaker)

	assert.Equal(t, l, got, "increment at stock ceiling must be a no-op")
	assert.True(t, AtCapacity(got, speaker))
}

func TestIncrementNeverExceedsStock(t *testing.T) {
	l := Ledger{}
	for i := 0; i < 10; i++ {
		l = Increment(l, speaker)
	}
	assert.Equal(t, 3, Quantity(l, "PA-SPEAKER"))
}

func TestIncrementZeroStockItem(t *testing.T) {
	broken := domain.InventoryItem{Name: "FOG-MACHINE", RentPrice: 20, Stock: 0}
	l := Increment(Ledger{}, broken)
	assert.Empty(t, l)
	assert.True(t, AtCapacity(l, broken))
}

func TestDecrementRemovesEmptyLines(t *testing.T) {
	l := Ledger{{Name: "MIXER", Quantity: 1, Price: 80}}

	l = Decrement(l, "MIXER")

	assert.Empty(t, l)
	assert.Equal(t, 0, Quantity(l, "MIXER"))
}

func TestDecrementUnknownNameIsNoop(t *testing.T) {
	l := Ledger{{Name: "MIXER", Quantity: 2, Price: 80}}
	got := Decrement(l, "SUBWOOFER")
	assert.Equal(t, l, got)
}

func TestDecrementNeverGoesNegative(t *testing.T) {
	l := Ledger{{Name: "MIXER", Quantity: 1, Price: 80}}
	l = Decrement(l, "MIXER")
	l = Decrement(l, "MIXER")
	l = Decrement(l, "MIXER")

	assert.Empty(t, l)
	for _, line := range l {
		assert.Greater(t, line.Quantity, 0)
	}
}

func TestMergeBundleIntoEmptyLedger(t *testing.T) {
	bundle := domain.Bundle{
		ID:   "b-1",
		Name: "BASIC DJ",
		Items: []domain.BookedItem{
			{Name: "MIXER", Quantity: 1, Price: 80},
			{Name: "SPEAKER", Quantity: 2, Price: 50},
		},
	}

	l := MergeBundle(Ledger{}, bundle)

	require.Len(t, l, 2)
	assert.Equal(t, "MIXER", l[0].Name)
	assert.Equal(t, "SPEAKER", l[1].Name)
	assert.Equal(t, 180.0, Total(l))
}

func TestMergeBundleSumsQuantities(t *testing.T) {
	bundle := domain.Bundle{
		ID:    "b-1",
		Name:  "BASIC DJ",
		Items: []domain.BookedItem{{Name: "MIXER", Quantity: 1, Price: 80}},
	}
	l := Ledger{{Name: "MIXER", Quantity: 2, Price: 80}}

	l = MergeBundle(l, bundle)
	l = MergeBundle(l, bundle)

	require.Len(t, l, 1)
	assert.Equal(t, 4, l[0].Quantity, "repeated merges must sum, not overwrite")
}

func TestMergeBundleIgnoresStockCeiling(t *testing.T) {
	// Deliberate asymmetry with Increment: bundles may overbook.
	bundle := domain.Bundle{
		ID:    "b-1",
		Name:  "WALL OF SOUND",
		Items: []domain.BookedItem{{Name: "PA-SPEAKER", Quantity: 99, Price: 50}},
	}
	l := MergeBundle(Ledger{}, bundle)
	assert.Equal(t, 99, Quantity(l, "PA-SPEAKER"))
}

func TestMergeBundleLineIDsAreDeterministic(t *testing.T) {
	bundle := domain.Bundle{
		ID:    "b-1",
		Items: []domain.BookedItem{{Name: "MIXER", Quantity: 1, Price: 80}},
	}

	a := MergeBundle(Ledger{}, bundle)
	b := MergeBundle(Ledger{}, bundle)

	require.Len(t, a, 1)
	assert.NotEmpty(t, a[0].ID)
	assert.Equal(t, a[0].ID, b[0].ID)
	assert.NotEqual(t, a[0].ID, bundle.Items[0].ID, "bundle lines get a synthetic identity")
}

func TestMergeAndIncrementCommuteForDisjointItems(t *testing.T) {
	bundle := domain.Bundle{
		ID:    "b-1",
		Items: []domain.BookedItem{{Name: "MIXER", Quantity: 1, Price: 80}},
	}

	mergeFirst := Increment(MergeBundle(Ledger{}, bundle), speaker)
	incFirst := MergeBundle(Increment(Ledger{}, speaker), bundle)

	assert.Equal(t, Quantity(mergeFirst, "MIXER"), Quantity(incFirst, "MIXER"))
	assert.Equal(t, Quantity(mergeFirst, "PA-SPEAKER"), Quantity(incFirst, "PA-SPEAKER"))
	assert.Equal(t, Total(mergeFirst), Total(incFirst))
}

func TestTotalIsOrderIndependent(t *testing.T) {
	a := Ledger{
		{Name: "MIXER", Quantity: 1, Price: 80},
		{Name: "SPEAKER", Quantity: 2, Price: 50},
		{Name: "CABLE", Quantity: 10, Price: 2.5},
	}
	b := Ledger{a[2], a[0], a[1]}

	assert.Equal(t, Total(a), Total(b))
	assert.Equal(t, 205.0, Total(a))
}

func TestTotalTreatsInvalidValuesAsZero(t *testing.T) {
	l := Ledger{
		{Name: "MIXER", Quantity: -3, Price: 80},
		{Name: "SPEAKER", Quantity: 2, Price: 50},
	}
	assert.Equal(t, 100.0, Total(l))
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	orig := Ledger{{Name: "PA-SPEAKER", Quantity: 1, Price: 50}}
	keep := append(Ledger{}, orig...)

	_ = Increment(orig, speaker)
	_ = Decrement(orig, "PA-SPEAKER")
	_ = MergeBundle(orig, domain.Bundle{ID: "b", Items: []domain.BookedItem{{Name: "PA-SPEAKER", Quantity: 5}}})

	assert.Equal(t, keep, orig)
}

func TestApplyReducer(t *testing.T) {
	bundle := domain.Bundle{
		ID:    "b-1",
		Items: []domain.BookedItem{{Name: "MIXER", Quantity: 1, Price: 80}},
	}

	l := Apply(Ledger{}, Action{Type: ActionIncrement, Item: &speaker})
	l = Apply(l, Action{Type: ActionMergeBundle, Bundle: &bundle})
	l = Apply(l, Action{Type: ActionDecrement, Name: "PA-SPEAKER"})

	require.Len(t, l, 1)
	assert.Equal(t, "MIXER", l[0].Name)

	// unresolved or unknown actions leave state untouched
	assert.Equal(t, l, Apply(l, Action{Type: ActionIncrement}))
	assert.Equal(t, l, Apply(l, Action{Type: "noop"}))
}
