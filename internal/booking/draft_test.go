package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ximianer/lightwave-erp/internal/domain"
)

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft()

	assert.True(t, d.IsNew())
	assert.Equal(t, StepIdentity, d.Step())
	assert.Empty(t, d.Items)
	assert.Empty(t, d.AssignedUsers)
	assert.Zero(t, d.Total())
}

func TestBuildRefusesEmptyTitle(t *testing.T) {
	d := NewDraft()
	d.Title = "   "

	_, err := d.Build()

	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestBuildCanonicalizesTitle(t *testing.T) {
	d := NewDraft()
	d.Title = "  Sommerfest 2026 "

	ev, err := d.Build()

	require.NoError(t, err)
	assert.Equal(t, "SOMMERFEST 2026", ev.Title)
}

func TestBuildWithOnlyTitleIsValid(t *testing.T) {
	// No booked items and unset timestamps are a valid saved state.
	d := NewDraft()
	d.Title = "LOAD-IN TEST"

	ev, err := d.Build()

	require.NoError(t, err)
	assert.Empty(t, ev.BookedItems)
	assert.Empty(t, ev.EventStart)
	assert.Zero(t, ev.TotalPrice)
	assert.NotNil(t, ev.AssignedUsers)
}

func TestBuildRecomputesTotal(t *testing.T) {
	d := NewDraft()
	d.Title = "GALA"
	d.Items = Ledger{
		{Name: "MIXER", Quantity: 1, Price: 80},
		{Name: "SPEAKER", Quantity: 2, Price: 50},
	}

	ev, err := d.Build()

	require.NoError(t, err)
	assert.Equal(t, 180.0, ev.TotalPrice)
}

func TestDraftOfPreservesIdentity(t *testing.T) {
	ev := domain.Event{
		ID:            "ev-42",
		Title:         "GALA",
		AssignedUsers: []string{"u-1"},
		BookedItems:   []domain.BookedItem{{Name: "MIXER", Quantity: 1, Price: 80}},
	}

	d := DraftOf(ev)
	assert.False(t, d.IsNew())

	rebuilt, err := d.Build()
	require.NoError(t, err)
	assert.Equal(t, "ev-42", rebuilt.ID, "re-saving an edited draft must keep its identity")
}

func TestDraftOfCopiesSlices(t *testing.T) {
	ev := domain.Event{
		ID:          "ev-1",
		Title:       "GALA",
		BookedItems: []domain.BookedItem{{Name: "MIXER", Quantity: 1, Price: 80}},
	}

	d := DraftOf(ev)
	d.Items = Decrement(d.Items, "MIXER")

	assert.Len(t, ev.BookedItems, 1, "editing a draft must not touch the loaded event")
}

func TestWizardGate(t *testing.T) {
	d := NewDraft()

	err := d.Advance()
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Equal(t, StepIdentity, d.Step())

	d.Title = "GALA"
	require.NoError(t, d.Advance())
	assert.Equal(t, StepMateriel, d.Step())

	// The gate is flow-only: the title can be emptied after navigating back
	// and Build still re-validates.
	d.Back()
	d.Title = ""
	_, err = d.Build()
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestToggleUser(t *testing.T) {
	d := NewDraft()

	d.ToggleUser("u-1")
	d.ToggleUser("u-2")
	d.ToggleUser("u-1")

	assert.Equal(t, []string{"u-2"}, d.AssignedUsers)
}
