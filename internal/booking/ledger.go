// Package booking holds the pure in-memory core of event planning: the
// quantity ledger, bundle expansion, draft assembly and total pricing. It
// never touches the store; the services feed it resolved records.
package booking

import (
	"fmt"
	"hash/fnv"

	"github.com/Ximianer/lightwave-erp/internal/domain"
)

// Ledger is the working list of booked lines for one event draft, at most
// one line per distinct item name. All operations are copy-on-write and
// return the new ledger state.
type Ledger []domain.BookedItem

// Quantity returns the booked quantity for name, or 0 when no line matches.
// Negative stored values count as 0.
func Quantity(l Ledger, name string) int {
	for _, line := range l {
		if line.Name == name {
			if line.Quantity < 0 {
				return 0
			}
			return line.Quantity
		}
	}
	return 0
}

// AtCapacity reports whether the ledger already books the item's full stock.
// This is the derived "at max" state the UI renders; Increment silently
// refuses once it is true.
func AtCapacity(l Ledger, item domain.InventoryItem) bool {
	stock := item.Stock
	if stock < 0 {
		stock = 0
	}
	return Quantity(l, item.Name) >= stock
}

// Increment books one more unit of item, snapshotting its current rent price
// on first booking. At the stock ceiling it is a silent no-op; the ledger is
// returned unchanged and no error is raised.
func Increment(l Ledger, item domain.InventoryItem) Ledger {
	if AtCapacity(l, item) {
		return l
	}

	next := clone(l)
	for i := range next {
		if next[i].Name == item.Name {
			next[i].Quantity++
			return next
		}
	}

	return append(next, domain.BookedItem{
		ID:       item.ID,
		Name:     item.Name,
		Quantity: 1,
		Price:    item.RentPrice,
	})
}

// Decrement removes one unit of the named line. A line whose quantity drops
// to 0 or below is removed entirely; a missing name is a no-op.
func Decrement(l Ledger, name string) Ledger {
	next := make(Ledger, 0, len(l))
	for _, line := range l {
		if line.Name == name {
			line.Quantity--
		}
		if line.Quantity > 0 {
			next = append(next, line)
		}
	}
	return next
}

// MergeBundle expands a bundle into the ledger. Quantities sum on name match
// and new lines are appended in bundle-definition order after all existing
// lines. The stock ceiling is deliberately not applied here: bundle merges
// may overbook, matching the behavior the documents were written under.
func MergeBundle(l Ledger, bundle domain.Bundle) Ledger {
	next := clone(l)
	for _, tmpl := range bundle.Items {
		merged := false
		for i := range next {
			if next[i].Name == tmpl.Name {
				next[i].Quantity += tmpl.Quantity
				merged = true
				break
			}
		}
		if merged {
			continue
		}
		next = append(next, domain.BookedItem{
			ID:       bundleLineID(bundle.ID, tmpl.Name),
			Name:     tmpl.Name,
			Quantity: tmpl.Quantity,
			Price:    tmpl.Price,
		})
	}
	return next
}

// Total sums quantity × price over all lines. Pure and order-independent;
// callers recompute it on every ledger read rather than caching it.
func Total(l Ledger) float64 {
	var sum float64
	for _, line := range l {
		q := line.Quantity
		if q < 0 {
			q = 0
		}
		sum += float64(q) * line.Price
	}
	return sum
}

// bundleLineID derives a stable synthetic identity for a bundle-sourced
// line, so it stays distinguishable from directly picked items and tests
// stay reproducible.
func bundleLineID(bundleID, name string) string {
	h := fnv.New32a()
	h.Write([]byte(bundleID))
	h.Write([]byte{'|'})
	h.Write([]byte(name))
	return fmt.Sprintf("bundle-%08x", h.Sum32())
}

func clone(l Ledger) Ledger {
	next := make(Ledger, len(l))
	copy(next, l)
	return next
}
