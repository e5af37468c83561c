package instrument

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidID = errors.New("invalid instrument id")

type Symbol string
type Venue string

func (s Symbol) String() string { return string(s) }
func (v Venue) String() string  { return string(v) }

// ID names an instrument as "{symbol}.{venue}". Symbols may contain dots,
// venues may not, so the venue always starts after the last dot.
type ID struct {
	symbol Symbol
	venue  Venue
}

func NewID(symbol Symbol, venue Venue) (ID, error) {
	if symbol == "" || venue == "" {
		return ID{}, fmt.Errorf("unable to create id from %q and %q: %w", symbol, venue, ErrInvalidID)
	}
	if strings.Contains(string(venue), ".") {
		return ID{}, fmt.Errorf("unable to create id, venue %q contains a dot: %w", venue, ErrInvalidID)
	}
	return ID{symbol: symbol, venue: venue}, nil
}

func MustID(symbol Symbol, venue Venue) ID {
	id, err := NewID(symbol, venue)
	if err != nil {
		panic(err)
	}
	return id
}

func ParseID(s string) (ID, error) {
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return ID{}, fmt.Errorf("unable to parse id %q, missing venue separator: %w", s, ErrInvalidID)
	}
	return NewID(Symbol(s[:i]), Venue(s[i+1:]))
}

func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) Symbol() Symbol { return id.symbol }
func (id ID) Venue() Venue   { return id.venue }
func (id ID) IsZero() bool   { return id.symbol == "" && id.venue == "" }

func (id ID) String() string {
	return string(id.symbol) + "." + string(id.venue)
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
