package memory

import "errors"

// ErrNoSpace is returned when a write would exceed the adapter's MaxSize.
var ErrNoSpace = errors.New("no space left in memory filesystem")
