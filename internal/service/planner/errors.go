package planner

import "errors"

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrEmptyTitle     = errors.New("event title is required")
	ErrItemNotFound   = errors.New("inventory item not found")
	ErrBundleNotFound = errors.New("bundle not found")
	ErrUnknownAction  = errors.New("unknown ledger action")
)
