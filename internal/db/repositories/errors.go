package repositories

import "errors"

// ErrUserNotFound is returned when no users row matches the lookup
var ErrUserNotFound = errors.New("user not found")
