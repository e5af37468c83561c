package types

import (
	"fmt"
	"sync"
)

type CurrencyType int

const (
	CurrencyTypeFiat CurrencyType = iota
	CurrencyTypeCrypto
	CurrencyTypeCommodityBacked
)

func (t CurrencyType) String() string {
	switch t {
	case CurrencyTypeFiat:
		return "fiat"
	case CurrencyTypeCrypto:
		return "crypto"
	case CurrencyTypeCommodityBacked:
		return "commodity_backed"
	default:
		return fmt.Sprintf("currency_type(%d)", int(t))
	}
}

// Currency describes a denomination unit. Identity is the code alone, the
// remaining fields are descriptive.
type Currency struct {
	code      string
	precision uint8
	iso4217   uint16
	name      string
	kind      CurrencyType
}

func NewCurrency(code string, precision uint8, iso4217 uint16, name string, kind CurrencyType) (Currency, error) {
	if code == "" {
		return Currency{}, fmt.Errorf("unable to create currency: %w", ErrCurrencyUnknown)
	}
	if err := checkPrecision(precision); err != nil {
		return Currency{}, fmt.Errorf("unable to create currency %s: %w", code, err)
	}
	return Currency{code: code, precision: precision, iso4217: iso4217, name: name, kind: kind}, nil
}

func MustCurrency(code string, precision uint8, iso4217 uint16, name string, kind CurrencyType) Currency {
	c, err := NewCurrency(code, precision, iso4217, name, kind)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Currency) Code() string       { return c.code }
func (c Currency) Precision() uint8   { return c.precision }
func (c Currency) ISO4217() uint16    { return c.iso4217 }
func (c Currency) Name() string       { return c.name }
func (c Currency) Type() CurrencyType { return c.kind }

func (c Currency) Equal(o Currency) bool { return c.code == o.code }

func (c Currency) String() string { return c.code }

func (c Currency) MarshalText() ([]byte, error) {
	return []byte(c.code), nil
}

func (c *Currency) UnmarshalText(text []byte) error {
	resolved, err := CurrencyFromCode(string(text))
	if err != nil {
		return err
	}
	*c = resolved
	return nil
}

var (
	USD = MustCurrency("USD", 2, 840, "United States dollar", CurrencyTypeFiat)
	EUR = MustCurrency("EUR", 2, 978, "Euro", CurrencyTypeFiat)
	GBP = MustCurrency("GBP", 2, 826, "Pound sterling", CurrencyTypeFiat)
	JPY = MustCurrency("JPY", 0, 392, "Japanese yen", CurrencyTypeFiat)
	AUD = MustCurrency("AUD", 2, 36, "Australian dollar", CurrencyTypeFiat)
	CAD = MustCurrency("CAD", 2, 124, "Canadian dollar", CurrencyTypeFiat)
	CHF = MustCurrency("CHF", 2, 756, "Swiss franc", CurrencyTypeFiat)

	BTC  = MustCurrency("BTC", 8, 0, "Bitcoin", CurrencyTypeCrypto)
	ETH  = MustCurrency("ETH", 8, 0, "Ether", CurrencyTypeCrypto)
	SOL  = MustCurrency("SOL", 9, 0, "Solana", CurrencyTypeCrypto)
	XRP  = MustCurrency("XRP", 6, 0, "Ripple", CurrencyTypeCrypto)
	BNB  = MustCurrency("BNB", 8, 0, "Binance coin", CurrencyTypeCrypto)
	ADA  = MustCurrency("ADA", 6, 0, "Cardano", CurrencyTypeCrypto)
	DOGE = MustCurrency("DOGE", 8, 0, "Dogecoin", CurrencyTypeCrypto)
	USDT = MustCurrency("USDT", 6, 0, "Tether", CurrencyTypeCrypto)
	USDC = MustCurrency("USDC", 6, 0, "USD coin", CurrencyTypeCrypto)

	XAU = MustCurrency("XAU", 2, 959, "Gold", CurrencyTypeCommodityBacked)
)

var (
	currencyMu  sync.RWMutex
	currencyMap = map[string]Currency{}
)

func init() {
	for _, c := range []Currency{
		USD, EUR, GBP, JPY, AUD, CAD, CHF,
		BTC, ETH, SOL, XRP, BNB, ADA, DOGE, USDT, USDC,
		XAU,
	} {
		currencyMap[c.code] = c
	}
}

// RegisterCurrency adds a venue-defined currency to the lookup table.
// Registering an identical definition twice is a no-op, a conflicting
// definition for an existing code is rejected.
func RegisterCurrency(c Currency) error {
	if c.code == "" {
		return fmt.Errorf("unable to register currency: %w", ErrCurrencyUnknown)
	}
	currencyMu.Lock()
	defer currencyMu.Unlock()
	if existing, ok := currencyMap[c.code]; ok && existing != c {
		return fmt.Errorf("unable to register currency %s: conflicting definition", c.code)
	}
	currencyMap[c.code] = c
	return nil
}

func CurrencyFromCode(code string) (Currency, error) {
	currencyMu.RLock()
	c, ok := currencyMap[code]
	currencyMu.RUnlock()
	if !ok {
		return Currency{}, fmt.Errorf("unable to resolve currency %s: %w", code, ErrCurrencyUnknown)
	}
	return c, nil
}

func MustCurrencyFromCode(code string) Currency {
	c, err := CurrencyFromCode(code)
	if err != nil {
		panic(err)
	}
	return c
}
