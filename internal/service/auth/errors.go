package auth

import "errors"

// ErrAccessDenied covers both an unknown username and a wrong password, so
// a caller cannot distinguish the two.
var ErrAccessDenied = errors.New("access denied")
