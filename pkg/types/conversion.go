package types

import (
	"fmt"
	"math"
)

func U64ToI64(i uint64) (int64, error) {
	if i <= uint64(math.MaxInt64) {
		return int64(i), nil // #nosec G115
	}
	return 0, fmt.Errorf("%d: %w", i, ErrIntegerOverflow)
}

func U64ToI64Unsafe(i uint64) int64 {
	if i <= uint64(math.MaxInt64) {
		return int64(i) // #nosec G115
	}
	panic("integer overflow")
}

func I64ToU64(i int64) (uint64, error) {
	if i >= 0 {
		return uint64(i), nil // #nosec G115
	}
	return 0, fmt.Errorf("%d: %w", i, ErrIntegerOverflow)
}

func I64ToU64Unsafe(i int64) uint64 {
	if i >= 0 {
		return uint64(i) // #nosec G115
	}
	panic("integer overflow")
}
