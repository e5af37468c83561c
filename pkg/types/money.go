package types

import (
	"fmt"
	"strings"

	"github.com/govalues/decimal"
)

// Money is an immutable amount in a single currency. The raw value is
// scaled by the currency precision.
type Money struct {
	raw      int64
	currency Currency
}

func NewMoney(amount float64, currency Currency) (Money, error) {
	if currency.code == "" {
		return Money{}, fmt.Errorf("unable to create money: %w", ErrCurrencyUnknown)
	}
	raw, err := rawFromFloat(amount, currency.precision)
	if err != nil {
		return Money{}, fmt.Errorf("unable to create money from %v: %w", amount, err)
	}
	return Money{raw: raw, currency: currency}, nil
}

func MustMoney(amount float64, currency Currency) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

func MoneyFromRaw(raw int64, currency Currency) (Money, error) {
	if currency.code == "" {
		return Money{}, fmt.Errorf("unable to create money from raw %d: %w", raw, ErrCurrencyUnknown)
	}
	return Money{raw: raw, currency: currency}, nil
}

// ParseMoney reads the "1000.00 USD" form produced by String. The currency
// code must be resolvable and the amount must fit the currency precision.
func ParseMoney(s string) (Money, error) {
	amountPart, codePart, ok := strings.Cut(s, " ")
	if !ok || amountPart == "" || codePart == "" {
		return Money{}, fmt.Errorf("unable to parse money %q: %w", s, ErrInvalidDecimal)
	}
	currency, err := CurrencyFromCode(codePart)
	if err != nil {
		return Money{}, fmt.Errorf("unable to parse money %q: %w", s, err)
	}
	raw, precision, err := parseFixed(amountPart)
	if err != nil {
		return Money{}, fmt.Errorf("unable to parse money %q: %w", s, err)
	}
	if precision > currency.precision {
		return Money{}, fmt.Errorf("unable to parse money %q: %d decimals for %s: %w",
			s, precision, currency.code, ErrPrecisionRange)
	}
	for ; precision < currency.precision; precision++ {
		next := raw * 10
		if next/10 != raw {
			return Money{}, fmt.Errorf("unable to parse money %q: %w", s, ErrValueRange)
		}
		raw = next
	}
	return Money{raw: raw, currency: currency}, nil
}

func (m Money) Raw() int64         { return m.raw }
func (m Money) Currency() Currency { return m.currency }

func (m Money) Decimal() decimal.Decimal {
	return must(decimal.New(m.raw, int(m.currency.precision)))
}

// Float64 is a convenience view, exact only while the raw value stays
// below 2^53.
func (m Money) Float64() float64 {
	return float64(m.raw) / float64(pow10[m.currency.precision])
}

func (m Money) String() string {
	return m.Decimal().String() + " " + m.currency.code
}

func (m Money) IsZero() bool     { return m.raw == 0 }
func (m Money) IsPositive() bool { return m.raw > 0 }
func (m Money) IsNegative() bool { return m.raw < 0 }

func (m Money) Compare(o Money) (int, error) {
	if m.currency.code != o.currency.code {
		return 0, fmt.Errorf("unable to compare %s with %s: %w",
			m.currency.code, o.currency.code, ErrCurrencyMismatch)
	}
	switch {
	case m.raw < o.raw:
		return -1, nil
	case m.raw > o.raw:
		return 1, nil
	default:
		return 0, nil
	}
}

func (m Money) Equal(o Money) bool {
	return m.currency.code == o.currency.code && m.raw == o.raw
}

func (m Money) Add(o Money) (Money, error) {
	if m.currency.code != o.currency.code {
		return Money{}, fmt.Errorf("unable to add %s to %s: %w",
			o.currency.code, m.currency.code, ErrCurrencyMismatch)
	}
	sum := m.raw + o.raw
	if (m.raw > 0 && o.raw > 0 && sum < 0) || (m.raw < 0 && o.raw < 0 && sum >= 0) {
		return Money{}, fmt.Errorf("unable to add %s to %s: %w", o, m, ErrValueRange)
	}
	return Money{raw: sum, currency: m.currency}, nil
}

func (m Money) Sub(o Money) (Money, error) {
	if m.currency.code != o.currency.code {
		return Money{}, fmt.Errorf("unable to subtract %s from %s: %w",
			o.currency.code, m.currency.code, ErrCurrencyMismatch)
	}
	diff := m.raw - o.raw
	if (m.raw > 0 && o.raw < 0 && diff < 0) || (m.raw < 0 && o.raw > 0 && diff >= 0) {
		return Money{}, fmt.Errorf("unable to subtract %s from %s: %w", o, m, ErrValueRange)
	}
	return Money{raw: diff, currency: m.currency}, nil
}

func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := ParseMoney(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
