package firestore

import (
	"math"

	"github.com/Ximianer/lightwave-erp/internal/domain"
)

// The documents were written by several generations of clients and are
// loosely typed: fields may be absent, null, NaN or carry the wrong numeric
// type. Decoding therefore never errors on a bad field; every accessor
// normalizes to the documented default instead (price 0, stock 0, empty
// string, empty list).

func docString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func docFloat(m map[string]any, key string) float64 {
	var f float64
	switch v := m[key].(type) {
	case float64:
		f = v
	case int64:
		f = float64(v)
	case int:
		f = float64(v)
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func docInt(m map[string]any, key string) int {
	return int(docFloat(m, key))
}

func docStrings(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func docLines(m map[string]any, key string) []domain.BookedItem {
	raw, ok := m[key].([]any)
	if !ok {
		return []domain.BookedItem{}
	}
	out := make([]domain.BookedItem, 0, len(raw))
	for _, v := range raw {
		lm, ok := v.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, domain.BookedItem{
			ID:       docString(lm, "id"),
			Name:     docString(lm, "name"),
			Quantity: docInt(lm, "quantity"),
			Price:    docFloat(lm, "price"),
		})
	}
	return out
}

func decodeEvent(id string, m map[string]any) domain.Event {
	return domain.Event{
		ID:            id,
		Title:         docString(m, "title"),
		Location:      docString(m, "location"),
		SetupStart:    docString(m, "setupStart"),
		EventStart:    docString(m, "eventStart"),
		EventEnd:      docString(m, "eventEnd"),
		TeardownEnd:   docString(m, "teardownEnd"),
		AssignedUsers: docStrings(m, "assignedUsers"),
		BookedItems:   docLines(m, "bookedItems"),
		TotalPrice:    docFloat(m, "totalPrice"),
	}
}

func decodeItem(id string, m map[string]any) domain.InventoryItem {
	return domain.InventoryItem{
		ID:        id,
		Name:      docString(m, "name"),
		RentPrice: docFloat(m, "rentPrice"),
		Stock:     docInt(m, "stock"),
	}
}

func decodeUser(id string, m map[string]any) domain.User {
	return domain.User{
		ID:       id,
		Username: docString(m, "username"),
		Password: docString(m, "password"),
		Role:     domain.Role(docString(m, "role")),
	}
}

func decodeBundle(id string, m map[string]any) domain.Bundle {
	return domain.Bundle{
		ID:    id,
		Name:  docString(m, "name"),
		Items: docLines(m, "items"),
	}
}

// Encoding is explicit field-by-field so a write can never carry stray keys
// into the shared documents, and nil slices land as empty arrays.

func encodeLines(lines []domain.BookedItem) []any {
	out := make([]any, 0, len(lines))
	for _, l := range lines {
		out = append(out, map[string]any{
			"id":       l.ID,
			"name":     l.Name,
			"quantity": l.Quantity,
			"price":    l.Price,
		})
	}
	return out
}

func encodeEvent(ev domain.Event) map[string]any {
	users := ev.AssignedUsers
	if users == nil {
		users = []string{}
	}
	return map[string]any{
		"title":         ev.Title,
		"location":      ev.Location,
		"setupStart":    ev.SetupStart,
		"eventStart":    ev.EventStart,
		"eventEnd":      ev.EventEnd,
		"teardownEnd":   ev.TeardownEnd,
		"assignedUsers": users,
		"bookedItems":   encodeLines(ev.BookedItems),
		"totalPrice":    ev.TotalPrice,
	}
}

func encodeItem(item domain.InventoryItem) map[string]any {
	return map[string]any{
		"name":      item.Name,
		"rentPrice": item.RentPrice,
		"stock":     item.Stock,
	}
}

func encodeUser(u domain.User) map[string]any {
	return map[string]any{
		"username": u.Username,
		"password": u.Password,
		"role":     string(u.Role),
	}
}

func encodeBundle(b domain.Bundle) map[string]any {
	return map[string]any{
		"name":  b.Name,
		"items": encodeLines(b.Items),
	}
}
