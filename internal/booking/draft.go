package booking

import (
	"errors"
	"strings"

	"github.com/Ximianer/lightwave-erp/internal/domain"
)

var ErrEmptyTitle = errors.New("event title is required")

// Wizard steps. Step 1 covers identity, schedule and crew; step 2 covers
// materiel selection and the final save.
const (
	StepIdentity = 1
	StepMateriel = 2
)

// Draft is an event in progress. A draft with an empty ID is new and gains
// an identity on first save; a draft loaded from an existing event keeps
// that identity so a re-save updates in place instead of duplicating.
type Draft struct {
	ID            string
	Title         string
	Location      string
	SetupStart    string
	EventStart    string
	EventEnd      string
	TeardownEnd   string
	AssignedUsers []string
	Items         Ledger

	step int
}

// NewDraft returns an empty draft: blank identity and schedule, no crew, an
// empty ledger, positioned on the first wizard step.
func NewDraft() *Draft {
	return &Draft{
		AssignedUsers: []string{},
		Items:         Ledger{},
		step:          StepIdentity,
	}
}

// DraftOf reopens a persisted event for editing, preserving its identity.
func DraftOf(ev domain.Event) *Draft {
	d := &Draft{
		ID:            ev.ID,
		Title:         ev.Title,
		Location:      ev.Location,
		SetupStart:    ev.SetupStart,
		EventStart:    ev.EventStart,
		EventEnd:      ev.EventEnd,
		TeardownEnd:   ev.TeardownEnd,
		AssignedUsers: append([]string{}, ev.AssignedUsers...),
		Items:         append(Ledger{}, ev.BookedItems...),
		step:          StepIdentity,
	}
	return d
}

func (d *Draft) IsNew() bool { return d.ID == "" }

func (d *Draft) Step() int { return d.step }

// Advance moves the wizard to the materiel step. It is a flow gate only:
// the title must be non-empty to pass, but Build re-validates independently
// because the title can be emptied again after navigating back.
func (d *Draft) Advance() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	d.step = StepMateriel
	return nil
}

// Back returns to the identity step.
func (d *Draft) Back() {
	d.step = StepIdentity
}

// ToggleUser adds the user id to the assigned crew, or removes it when
// already assigned.
func (d *Draft) ToggleUser(id string) {
	for i, uid := range d.AssignedUsers {
		if uid == id {
			d.AssignedUsers = append(d.AssignedUsers[:i], d.AssignedUsers[i+1:]...)
			return
		}
	}
	d.AssignedUsers = append(d.AssignedUsers, id)
}

// Total recomputes the draft's price from its ledger.
func (d *Draft) Total() float64 {
	return Total(d.Items)
}

// Build assembles the persistable event. The title is required and
// canonicalized to uppercase; every other field may be empty, so an event
// with no booked items and unset timestamps is a valid saved state. TotalPrice
// is always recomputed here, never taken from the caller.
func (d *Draft) Build() (domain.Event, error) {
	title := strings.ToUpper(strings.TrimSpace(d.Title))
	if title == "" {
		return domain.Event{}, ErrEmptyTitle
	}

	users := d.AssignedUsers
	if users == nil {
		users = []string{}
	}
	items := d.Items
	if items == nil {
		items = Ledger{}
	}

	return domain.Event{
		ID:            d.ID,
		Title:         title,
		Location:      d.Location,
		SetupStart:    d.SetupStart,
		EventStart:    d.EventStart,
		EventEnd:      d.EventEnd,
		TeardownEnd:   d.TeardownEnd,
		AssignedUsers: users,
		BookedItems:   items,
		TotalPrice:    Total(items),
	}, nil
}
