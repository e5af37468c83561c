package types

import (
	"fmt"

	"github.com/govalues/decimal"
)

// Quantity is an immutable non-negative fixed-point size. The raw value is
// scaled by 10^precision and kept within the int64 range so decimal and
// string views stay exact.
type Quantity struct {
	raw       uint64
	precision uint8
}

func NewQuantity(value float64, precision uint8) (Quantity, error) {
	if value < 0 {
		return Quantity{}, fmt.Errorf("unable to create quantity from %v: %w", value, ErrValueRange)
	}
	raw, err := rawFromFloat(value, precision)
	if err != nil {
		return Quantity{}, fmt.Errorf("unable to create quantity from %v: %w", value, err)
	}
	return Quantity{raw: uint64(raw), precision: precision}, nil // #nosec G115
}

func MustQuantity(value float64, precision uint8) Quantity {
	q, err := NewQuantity(value, precision)
	if err != nil {
		panic(err)
	}
	return q
}

func QuantityFromRaw(raw uint64, precision uint8) (Quantity, error) {
	if err := checkPrecision(precision); err != nil {
		return Quantity{}, fmt.Errorf("unable to create quantity from raw %d: %w", raw, err)
	}
	if _, err := U64ToI64(raw); err != nil {
		return Quantity{}, fmt.Errorf("unable to create quantity from raw %d: %w", raw, err)
	}
	return Quantity{raw: raw, precision: precision}, nil
}

func ParseQuantity(s string) (Quantity, error) {
	raw, precision, err := parseFixed(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("unable to parse quantity: %w", err)
	}
	if raw < 0 {
		return Quantity{}, fmt.Errorf("unable to parse quantity %q: %w", s, ErrValueRange)
	}
	return Quantity{raw: uint64(raw), precision: precision}, nil
}

func (q Quantity) Raw() uint64      { return q.raw }
func (q Quantity) Precision() uint8 { return q.precision }

func (q Quantity) Decimal() decimal.Decimal {
	return must(decimal.New(U64ToI64Unsafe(q.raw), int(q.precision)))
}

// Float64 is a convenience view, exact only while the raw value stays
// below 2^53.
func (q Quantity) Float64() float64 {
	return float64(q.raw) / float64(pow10[q.precision])
}

func (q Quantity) String() string { return q.Decimal().String() }

func (q Quantity) IsZero() bool     { return q.raw == 0 }
func (q Quantity) IsPositive() bool { return q.raw > 0 }

func (q Quantity) Compare(o Quantity) int {
	if q.precision == o.precision {
		switch {
		case q.raw < o.raw:
			return -1
		case q.raw > o.raw:
			return 1
		default:
			return 0
		}
	}
	return q.Decimal().Cmp(o.Decimal())
}

func (q Quantity) Equal(o Quantity) bool { return q.Compare(o) == 0 }

func (q Quantity) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *Quantity) UnmarshalText(text []byte) error {
	parsed, err := ParseQuantity(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}
