package instrument

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestID_New(t *testing.T) {
	tests := []struct {
		name    string
		symbol  Symbol
		venue   Venue
		wantErr bool
	}{
		{"valid", "ETHUSDT-PERP", "BINANCE", false},
		{"empty symbol", "", "BINANCE", true},
		{"empty venue", "ETHUSDT-PERP", "", true},
		{"venue with dot", "ETHUSDT", "BIN.ANCE", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewID(tt.symbol, tt.venue)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewID(%q, %q) error = %v, wantErr %v", tt.symbol, tt.venue, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidID) {
				t.Errorf("NewID(%q, %q) error = %v, want ErrInvalidID", tt.symbol, tt.venue, err)
			}
		})
	}
}

func TestID_Parse(t *testing.T) {
	tests := []struct {
		input      string
		wantSymbol Symbol
		wantVenue  Venue
		wantErr    bool
	}{
		{"ETHUSDT-PERP.BINANCE", "ETHUSDT-PERP", "BINANCE", false},
		{"BTCUSDT.BYBIT", "BTCUSDT", "BYBIT", false},
		{"BRK.B.NYSE", "BRK.B", "NYSE", false},
		{"ETHUSDT", "", "", true},
		{".BINANCE", "", "", true},
		{"ETHUSDT.", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		got, err := ParseID(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseID(%q) expected error, got nil", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseID(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got.Symbol() != tt.wantSymbol || got.Venue() != tt.wantVenue {
			t.Errorf("ParseID(%q) = %q %q, want %q %q",
				tt.input, got.Symbol(), got.Venue(), tt.wantSymbol, tt.wantVenue)
		}
		if got.String() != tt.input {
			t.Errorf("ParseID(%q).String() = %q", tt.input, got.String())
		}
	}
}

func TestID_Equality(t *testing.T) {
	a := MustParseID("ETHUSDT-PERP.BINANCE")
	b := MustParseID("ETHUSDT-PERP.BINANCE")
	c := MustParseID("BTCUSDT-PERP.BINANCE")

	if a != b {
		t.Error("identical ids compare unequal")
	}
	if a == c {
		t.Error("distinct ids compare equal")
	}

	m := map[ID]int{a: 1}
	if m[b] != 1 {
		t.Error("id not usable as map key")
	}
}

func TestID_MarshalText(t *testing.T) {
	id := MustParseID("ETHUSDT-PERP.BINANCE")

	data, err := json.Marshal(id)
	if err != nil {
		t.Fatalf("Marshal unexpected error: %v", err)
	}
	if string(data) != `"ETHUSDT-PERP.BINANCE"` {
		t.Errorf("Marshal = %s, want quoted id", data)
	}

	var back ID
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal unexpected error: %v", err)
	}
	if back != id {
		t.Errorf("round trip = %v, want %v", back, id)
	}
}

func TestID_MustParsePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParseID(no-dot) expected panic, got none")
		}
	}()
	MustParseID("ETHUSDT")
}
