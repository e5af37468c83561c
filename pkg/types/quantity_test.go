package types

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestQuantity_New(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		precision uint8
		wantRaw   uint64
		wantErr   bool
	}{
		{"zero", 0, 0, 0, false},
		{"whole units", 10, 0, 10, false},
		{"fractional", 0.25, 2, 25, false},
		{"max precision", 0.000000001, 9, 1, false},
		{"negative", -1, 0, 0, true},
		{"negative fractional", -0.5, 1, 0, true},
		{"precision too large", 1, 10, 0, true},
		{"nan", math.NaN(), 2, 0, true},
		{"inf", math.Inf(1), 2, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewQuantity(tt.value, tt.precision)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewQuantity(%v, %d) expected error, got nil", tt.value, tt.precision)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewQuantity(%v, %d) unexpected error: %v", tt.value, tt.precision, err)
			}
			if got.Raw() != tt.wantRaw {
				t.Errorf("NewQuantity(%v, %d).Raw() = %d, want %d", tt.value, tt.precision, got.Raw(), tt.wantRaw)
			}
		})
	}
}

func TestQuantity_FromRaw(t *testing.T) {
	tests := []struct {
		name      string
		raw       uint64
		precision uint8
		wantErr   bool
	}{
		{"zero", 0, 0, false},
		{"typical", 1_000_000, 6, false},
		{"max int64", math.MaxInt64, 0, false},
		{"above int64", uint64(math.MaxInt64) + 1, 0, true},
		{"precision too large", 1, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := QuantityFromRaw(tt.raw, tt.precision)
			if (err != nil) != tt.wantErr {
				t.Errorf("QuantityFromRaw(%d, %d) error = %v, wantErr %v", tt.raw, tt.precision, err, tt.wantErr)
			}
		})
	}
}

func TestQuantity_Parse(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"0.25", "0.25", false},
		{"10", "10", false},
		{"1.000", "1.000", false},
		{"-1", "", true},
		{"-0.5", "", true},
		{"x", "", true},
	}

	for _, tt := range tests {
		got, err := ParseQuantity(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseQuantity(%q) expected error, got nil", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseQuantity(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseQuantity(%q).String() = %s, want %s", tt.input, got.String(), tt.want)
		}
	}
}

func TestQuantity_Compare(t *testing.T) {
	tests := []struct {
		name string
		a    Quantity
		b    Quantity
		want int
	}{
		{"equal", MustQuantity(0.25, 2), MustQuantity(0.25, 2), 0},
		{"equal across precision", MustQuantity(1.5, 1), MustQuantity(1.500, 3), 0},
		{"less", MustQuantity(0.24, 2), MustQuantity(0.25, 2), -1},
		{"greater", MustQuantity(1, 0), MustQuantity(0.5, 1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestQuantity_MarshalText(t *testing.T) {
	quantities := []string{"0.25", "10", "1.000", "0.000000001"}

	for _, s := range quantities {
		q, err := ParseQuantity(s)
		if err != nil {
			t.Fatalf("ParseQuantity(%q) unexpected error: %v", s, err)
		}
		data, err := json.Marshal(q)
		if err != nil {
			t.Fatalf("Marshal(%s) unexpected error: %v", s, err)
		}
		var back Quantity
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s) unexpected error: %v", data, err)
		}
		if back != q {
			t.Errorf("round trip of %s = %v, want %v", s, back, q)
		}
	}
}

func TestQuantity_NegativeErrorKind(t *testing.T) {
	_, err := NewQuantity(-1, 0)
	if !errors.Is(err, ErrValueRange) {
		t.Errorf("NewQuantity(-1, 0) error = %v, want ErrValueRange", err)
	}
}
