package repository

import "errors"

// ErrOverlap is returned when the in-transaction overlap re-check (or the
// postgres exclusion constraint) rejects a write.
var ErrOverlap = errors.New("reservation overlaps an existing one")
