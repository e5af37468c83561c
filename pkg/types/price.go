package types

import (
	"fmt"

	"github.com/govalues/decimal"
)

// Price is an immutable fixed-point price. The raw value is scaled by
// 10^precision, so equality of the struct itself means identical
// representation. Equal and Compare work across precisions.
type Price struct {
	raw       int64
	precision uint8
}

func NewPrice(value float64, precision uint8) (Price, error) {
	raw, err := rawFromFloat(value, precision)
	if err != nil {
		return Price{}, fmt.Errorf("unable to create price from %v: %w", value, err)
	}
	return Price{raw: raw, precision: precision}, nil
}

func MustPrice(value float64, precision uint8) Price {
	p, err := NewPrice(value, precision)
	if err != nil {
		panic(err)
	}
	return p
}

func PriceFromRaw(raw int64, precision uint8) (Price, error) {
	if err := checkPrecision(precision); err != nil {
		return Price{}, fmt.Errorf("unable to create price from raw %d: %w", raw, err)
	}
	return Price{raw: raw, precision: precision}, nil
}

func ParsePrice(s string) (Price, error) {
	raw, precision, err := parseFixed(s)
	if err != nil {
		return Price{}, fmt.Errorf("unable to parse price: %w", err)
	}
	return Price{raw: raw, precision: precision}, nil
}

func (p Price) Raw() int64       { return p.raw }
func (p Price) Precision() uint8 { return p.precision }

func (p Price) Decimal() decimal.Decimal {
	return must(decimal.New(p.raw, int(p.precision)))
}

// Float64 is a convenience view, exact only while the raw value stays
// below 2^53.
func (p Price) Float64() float64 {
	return float64(p.raw) / float64(pow10[p.precision])
}

func (p Price) String() string { return p.Decimal().String() }

func (p Price) IsZero() bool     { return p.raw == 0 }
func (p Price) IsPositive() bool { return p.raw > 0 }
func (p Price) IsNegative() bool { return p.raw < 0 }

func (p Price) Compare(o Price) int {
	if p.precision == o.precision {
		switch {
		case p.raw < o.raw:
			return -1
		case p.raw > o.raw:
			return 1
		default:
			return 0
		}
	}
	return p.Decimal().Cmp(o.Decimal())
}

func (p Price) Equal(o Price) bool { return p.Compare(o) == 0 }

func (p Price) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Price) UnmarshalText(text []byte) error {
	parsed, err := ParsePrice(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
