package nanos

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

var ErrUnderflow = errors.New("timestamp underflow")

// UnixNanos is a monotonic nanosecond count since the UNIX epoch. The zero
// value is the epoch itself, values are always non-negative and totally
// ordered. Comparisons against untyped integer constants work directly.
type UnixNanos uint64

// TsEvent marks when an event occurred, TsInit marks when an object was
// initialised.
type (
	TsEvent = UnixNanos
	TsInit  = UnixNanos
)

// From wraps a raw nanosecond count. Total, every uint64 is a valid
// timestamp.
func From(raw uint64) UnixNanos { return UnixNanos(raw) }

// Now reads the wall clock. System clocks past the epoch by construction.
func Now() UnixNanos {
	return UnixNanos(time.Now().UnixNano()) // #nosec G115
}

// FromTime converts a wall-clock time, rejecting anything before the epoch.
func FromTime(t time.Time) (UnixNanos, error) {
	ns := t.UnixNano()
	if ns < 0 {
		return 0, fmt.Errorf("unable to convert %s: %w", t, ErrUnderflow)
	}
	return UnixNanos(ns), nil
}

func (n UnixNanos) UInt64() uint64 { return uint64(n) }

// Float64 is a convenience view, exact only below 2^53.
func (n UnixNanos) Float64() float64 { return float64(n) }

func (n UnixNanos) Time() time.Time {
	if n > math.MaxInt64 {
		panic("timestamp overflows time.Time")
	}
	return time.Unix(0, int64(n)).UTC() // #nosec G115
}

func (n UnixNanos) String() string {
	return strconv.FormatUint(uint64(n), 10)
}

func (n UnixNanos) Compare(o UnixNanos) int {
	switch {
	case n < o:
		return -1
	case n > o:
		return 1
	default:
		return 0
	}
}

// EqualOpt compares against an optional timestamp. An absent timestamp is
// never equal to a present one.
func (n UnixNanos) EqualOpt(o *UnixNanos) bool {
	return o != nil && n == *o
}

// CompareOpt orders against an optional timestamp. An absent timestamp is
// incomparable, reported as ok false.
func (n UnixNanos) CompareOpt(o *UnixNanos) (int, bool) {
	if o == nil {
		return 0, false
	}
	return n.Compare(*o), true
}

func (n UnixNanos) Add(o UnixNanos) UnixNanos { return n + o }

// Sub fails on underflow instead of wrapping. Elapsed-time math on
// out-of-order timestamps is a caller bug that must surface.
func (n UnixNanos) Sub(o UnixNanos) (UnixNanos, error) {
	if o > n {
		return 0, fmt.Errorf("unable to subtract %d from %d: %w", o, n, ErrUnderflow)
	}
	return n - o, nil
}

func (n UnixNanos) SubUnsafe(o UnixNanos) UnixNanos {
	if o > n {
		panic("timestamp underflow")
	}
	return n - o
}

// Delta is the signed difference in nanoseconds, defined for timestamps
// within the int64 range.
func (n UnixNanos) Delta(o UnixNanos) int64 {
	return int64(n) - int64(o) // #nosec G115
}
