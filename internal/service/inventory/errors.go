package inventory

import "errors"

var (
	ErrEmptyItemName   = errors.New("item name is required")
	ErrItemNotFound    = errors.New("inventory item not found")
	ErrEmptyBundleName = errors.New("bundle name is required")
	ErrEmptySelection  = errors.New("bundle selection is empty")
	ErrBundleNotFound  = errors.New("bundle not found")
)
