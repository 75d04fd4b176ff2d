package domain

// Role is the fixed set of team roles. The wire values match the role
// strings already stored in the users collection.
type Role string

const (
	RoleOwner       Role = "Hauptchef"
	RoleProjectLead Role = "Projektleiter"
	RoleTechnician  Role = "Techniker"
	RoleLogistics   Role = "Lagerist"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleProjectLead, RoleTechnician, RoleLogistics:
		return true
	}
	return false
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
}

// InventoryItem is a rentable piece of hardware. Name is the unique key
// within the inventory and is uppercased by convention.
type InventoryItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	RentPrice float64 `json:"rentPrice"`
	Stock     int     `json:"stock"`
}

// BookedItem is one line of a booking ledger: an item name, a quantity and
// the unit price snapshotted at booking (or bundle-authoring) time. Identity
// within a ledger is the name; two lines never share one.
type BookedItem struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Bundle is a named, reusable kit of booked-item templates. Line quantities
// and prices are fixed at authoring time; expanding a bundle never re-reads
// current inventory prices.
type Bundle struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Items []BookedItem `json:"items"`
}

// Event is a persisted booking. The four timestamps are stored as the
// datetime-local strings the documents already carry; empty means unset and
// their ordering is not validated. TotalPrice is derived from BookedItems
// and recomputed on every save, never edited directly.
type Event struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Location      string       `json:"location"`
	SetupStart    string       `json:"setupStart"`
	EventStart    string       `json:"eventStart"`
	EventEnd      string       `json:"eventEnd"`
	TeardownEnd   string       `json:"teardownEnd"`
	AssignedUsers []string     `json:"assignedUsers"`
	BookedItems   []BookedItem `json:"bookedItems"`
	TotalPrice    float64      `json:"totalPrice"`
}
