package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/govalues/decimal"
)

// MaxPrecision is the largest number of decimal places a fixed-point value
// may carry. Raw values are scaled integers, value = raw / 10^precision.
const MaxPrecision = 9

var (
	ErrPrecisionRange   = errors.New("precision out of range")
	ErrValueRange       = errors.New("value out of range")
	ErrInvalidDecimal   = errors.New("invalid decimal string")
	ErrIntegerOverflow  = errors.New("integer overflow")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrCurrencyUnknown  = errors.New("unknown currency code")
)

var pow10 = [MaxPrecision + 1]int64{
	1,
	10,
	100,
	1_000,
	10_000,
	100_000,
	1_000_000,
	10_000_000,
	100_000_000,
	1_000_000_000,
}

const i64Bound = float64(1 << 63)

func checkPrecision(precision uint8) error {
	if precision > MaxPrecision {
		return fmt.Errorf("%d exceeds %d: %w", precision, MaxPrecision, ErrPrecisionRange)
	}
	return nil
}

// rawFromFloat scales value by 10^precision and rounds half away from zero.
func rawFromFloat(value float64, precision uint8) (int64, error) {
	if err := checkPrecision(precision); err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%v: %w", value, ErrValueRange)
	}
	scaled := math.Round(value * float64(pow10[precision]))
	if scaled >= i64Bound || scaled <= -i64Bound {
		return 0, fmt.Errorf("%v at precision %d: %w", value, precision, ErrValueRange)
	}
	return int64(scaled), nil
}

// parseFixed reads a plain decimal string. The precision is the number of
// digits after the point, exponent notation is not accepted.
func parseFixed(s string) (int64, uint8, error) {
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	digits := intPart
	precision := 0
	if hasFrac {
		if fracPart == "" {
			return 0, 0, fmt.Errorf("%q: %w", s, ErrInvalidDecimal)
		}
		precision = len(fracPart)
		if precision > MaxPrecision {
			return 0, 0, fmt.Errorf("%q: %w", s, ErrPrecisionRange)
		}
		digits += fracPart
	}
	raw, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, ErrInvalidDecimal)
	}
	return raw, uint8(precision), nil // #nosec G115
}

func must(v decimal.Decimal, err error) decimal.Decimal {
	if err == nil {
		return v
	}
	panic(err)
}
