package frontier

import (
	"errors"
	"fmt"

	"github.com/crawlfrontier/frontier/internal/store"
)

// ErrNothingToClaim is re-exported from store so callers of this
// package never need to import store directly just to check it.
var ErrNothingToClaim = store.ErrNothingToClaim

// errEntityNotFound marks a lookup by id that found nothing, for
// entities the caller asserted must already exist.
var errEntityNotFound = errors.New("entity not found")

// OpError wraps a failure from a specific frontier operation with the
// entity it concerned, so logs and error messages carry enough context
// to find the offending row without a debugger.
type OpError struct {
	Op     string
	Entity string
	Err    error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("frontier: %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opErr(op, entity string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Entity: entity, Err: err}
}

// IsNothingToClaim reports whether err is (or wraps) ErrNothingToClaim.
func IsNothingToClaim(err error) bool {
	return errors.Is(err, ErrNothingToClaim)
}
