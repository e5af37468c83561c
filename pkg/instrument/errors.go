package instrument

import (
	"errors"
	"fmt"
)

var (
	ErrPrecisionMismatch    = errors.New("precision mismatch")
	ErrNonPositiveIncrement = errors.New("non-positive increment")
)

// PrecisionMismatchError reports a declared precision that disagrees with
// the precision its increment field actually carries.
type PrecisionMismatchError struct {
	FieldA string
	FieldB string
	A      uint8
	B      uint8
}

func (e *PrecisionMismatchError) Error() string {
	return fmt.Sprintf("%s %d does not match %s %d: %v", e.FieldA, e.A, e.FieldB, e.B, ErrPrecisionMismatch)
}

func (e *PrecisionMismatchError) Unwrap() error { return ErrPrecisionMismatch }

// NonPositiveIncrementError reports a zero or negative tick or step.
type NonPositiveIncrementError struct {
	Field string
	Raw   int64
}

func (e *NonPositiveIncrementError) Error() string {
	return fmt.Sprintf("%s raw %d must be positive: %v", e.Field, e.Raw, ErrNonPositiveIncrement)
}

func (e *NonPositiveIncrementError) Unwrap() error { return ErrNonPositiveIncrement }
