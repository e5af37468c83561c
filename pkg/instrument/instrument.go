package instrument

import (
	"github.com/govalues/decimal"

	"github.com/avalder/keel/pkg/nanos"
	"github.com/avalder/keel/pkg/types"
)

// Instrument is the read-only view shared by every tradable definition.
// Accessors that may have nothing to report return an ok flag, absence is
// explicit and never encoded as a zero value.
type Instrument interface {
	ID() ID
	RawSymbol() Symbol
	AssetClass() AssetClass
	Class() Class

	Underlying() (Symbol, bool)
	BaseCurrency() (types.Currency, bool)
	QuoteCurrency() types.Currency
	SettlementCurrency() types.Currency
	ISIN() (string, bool)
	OptionKind() (OptionKind, bool)
	Exchange() (Venue, bool)
	StrikePrice() (types.Price, bool)
	ActivationNanos() (nanos.UnixNanos, bool)
	ExpirationNanos() (nanos.UnixNanos, bool)

	IsInverse() bool
	PricePrecision() uint8
	SizePrecision() uint8
	PriceIncrement() types.Price
	SizeIncrement() types.Quantity
	Multiplier() types.Quantity
	LotSize() types.Quantity

	MaxQuantity() (types.Quantity, bool)
	MinQuantity() (types.Quantity, bool)
	MaxNotional() (types.Money, bool)
	MinNotional() (types.Money, bool)
	MaxPrice() (types.Price, bool)
	MinPrice() (types.Price, bool)

	MakerFee() decimal.Decimal
	TakerFee() decimal.Decimal
	MarginInit() decimal.Decimal
	MarginMaint() decimal.Decimal

	TsEvent() nanos.UnixNanos
	TsInit() nanos.UnixNanos

	IntoAny() Any
}
