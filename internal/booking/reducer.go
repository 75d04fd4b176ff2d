package booking

import "github.com/Ximianer/lightwave-erp/internal/domain"

// ActionType enumerates the ledger mutations a planning client can issue.
type ActionType string

const (
	ActionIncrement   ActionType = "increment"
	ActionDecrement   ActionType = "decrement"
	ActionMergeBundle ActionType = "merge_bundle"
)

// Action is one resolved ledger mutation. Item must be set for increment,
// Name for decrement and Bundle for merge_bundle; the planner service
// resolves store identities into these before calling Apply.
type Action struct {
	Type   ActionType
	Item   *domain.InventoryItem
	Name   string
	Bundle *domain.Bundle
}

// Apply is the reducer step (state, action) → state. Unknown or
// incompletely resolved actions leave the ledger unchanged.
func Apply(l Ledger, a Action) Ledger {
	switch a.Type {
	case ActionIncrement:
		if a.Item != nil {
			return Increment(l, *a.Item)
		}
	case ActionDecrement:
		if a.Name != "" {
			return Decrement(l, a.Name)
		}
	case ActionMergeBundle:
		if a.Bundle != nil {
			return MergeBundle(l, *a.Bundle)
		}
	}
	return l
}
