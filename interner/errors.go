package interner

import (
	"errors"
	"fmt"
)

var (
	// ErrIDSpaceExhausted is matched by errors returned when no further identifier can be assigned.
	ErrIDSpaceExhausted = errors.New("interner: identifier space exhausted")

	// ErrInvalidID is matched by errors returned when resolving an identifier that was never issued.
	ErrInvalidID = errors.New("interner: invalid identifier")
)

// CapacityError is returned by Intern when a new distinct string would need
// an identifier beyond Limit.
type CapacityError struct {
	Limit int // maximum number of distinct strings
	Text  string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("interner: cannot intern %q: limit of %d distinct strings reached", e.Text, e.Limit)
}

func (e *CapacityError) Unwrap() error {
	return ErrIDSpaceExhausted
}

// InvalidIDError is returned by Resolve for an identifier outside [0, Len).
type InvalidIDError struct {
	ID  any
	Len int
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("interner: invalid identifier %v (have %d strings)", e.ID, e.Len)
}

func (e *InvalidIDError) Unwrap() error {
	return ErrInvalidID
}
