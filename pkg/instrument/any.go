package instrument

import (
	"encoding/json"
	"fmt"

	"github.com/govalues/decimal"
	"go.uber.org/zap"

	"github.com/avalder/keel/pkg/nanos"
	"github.com/avalder/keel/pkg/types"
)

var (
	_ Instrument = CryptoPerpetual{}
	_ Instrument = CryptoFuture{}
	_ Instrument = Any{}
)

// Any holds exactly one of the known instrument variants by value. The set
// of variants is closed, matching on Kind with the As accessors is
// exhaustive. A zero Any holds nothing and panics when read.
type Any struct {
	kind      Kind
	perpetual CryptoPerpetual
	future    CryptoFuture
}

func (p CryptoPerpetual) IntoAny() Any { return Any{kind: KindCryptoPerpetual, perpetual: p} }
func (f CryptoFuture) IntoAny() Any    { return Any{kind: KindCryptoFuture, future: f} }

func (a Any) Kind() Kind { return a.kind }

func (a Any) AsCryptoPerpetual() (CryptoPerpetual, bool) {
	return a.perpetual, a.kind == KindCryptoPerpetual
}

func (a Any) AsCryptoFuture() (CryptoFuture, bool) {
	return a.future, a.kind == KindCryptoFuture
}

func (a Any) concrete() Instrument {
	switch a.kind {
	case KindCryptoPerpetual:
		return a.perpetual
	case KindCryptoFuture:
		return a.future
	default:
		panic(fmt.Sprintf("instrument variant not set: %s", a.kind))
	}
}

func (a Any) ID() ID                 { return a.concrete().ID() }
func (a Any) RawSymbol() Symbol      { return a.concrete().RawSymbol() }
func (a Any) AssetClass() AssetClass { return a.concrete().AssetClass() }
func (a Any) Class() Class           { return a.concrete().Class() }

func (a Any) Underlying() (Symbol, bool)           { return a.concrete().Underlying() }
func (a Any) BaseCurrency() (types.Currency, bool) { return a.concrete().BaseCurrency() }
func (a Any) QuoteCurrency() types.Currency        { return a.concrete().QuoteCurrency() }
func (a Any) SettlementCurrency() types.Currency   { return a.concrete().SettlementCurrency() }
func (a Any) ISIN() (string, bool)                 { return a.concrete().ISIN() }
func (a Any) OptionKind() (OptionKind, bool)       { return a.concrete().OptionKind() }
func (a Any) Exchange() (Venue, bool)              { return a.concrete().Exchange() }
func (a Any) StrikePrice() (types.Price, bool)     { return a.concrete().StrikePrice() }

func (a Any) ActivationNanos() (nanos.UnixNanos, bool) { return a.concrete().ActivationNanos() }
func (a Any) ExpirationNanos() (nanos.UnixNanos, bool) { return a.concrete().ExpirationNanos() }

func (a Any) IsInverse() bool               { return a.concrete().IsInverse() }
func (a Any) PricePrecision() uint8         { return a.concrete().PricePrecision() }
func (a Any) SizePrecision() uint8          { return a.concrete().SizePrecision() }
func (a Any) PriceIncrement() types.Price   { return a.concrete().PriceIncrement() }
func (a Any) SizeIncrement() types.Quantity { return a.concrete().SizeIncrement() }
func (a Any) Multiplier() types.Quantity    { return a.concrete().Multiplier() }
func (a Any) LotSize() types.Quantity       { return a.concrete().LotSize() }

func (a Any) MaxQuantity() (types.Quantity, bool) { return a.concrete().MaxQuantity() }
func (a Any) MinQuantity() (types.Quantity, bool) { return a.concrete().MinQuantity() }
func (a Any) MaxNotional() (types.Money, bool)    { return a.concrete().MaxNotional() }
func (a Any) MinNotional() (types.Money, bool)    { return a.concrete().MinNotional() }
func (a Any) MaxPrice() (types.Price, bool)       { return a.concrete().MaxPrice() }
func (a Any) MinPrice() (types.Price, bool)       { return a.concrete().MinPrice() }

func (a Any) MakerFee() decimal.Decimal    { return a.concrete().MakerFee() }
func (a Any) TakerFee() decimal.Decimal    { return a.concrete().TakerFee() }
func (a Any) MarginInit() decimal.Decimal  { return a.concrete().MarginInit() }
func (a Any) MarginMaint() decimal.Decimal { return a.concrete().MarginMaint() }

func (a Any) TsEvent() nanos.UnixNanos { return a.concrete().TsEvent() }
func (a Any) TsInit() nanos.UnixNanos  { return a.concrete().TsInit() }

func (a Any) IntoAny() Any { return a }

func (a Any) Equal(o Any) bool { return a.ID() == o.ID() }

func (a Any) Fields() []zap.Field {
	switch a.kind {
	case KindCryptoPerpetual:
		return a.perpetual.Fields()
	case KindCryptoFuture:
		return a.future.Fields()
	default:
		return []zap.Field{zap.Stringer("kind", a.kind)}
	}
}

type kindProbe struct {
	Kind string `json:"kind"`
}

func (a Any) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case KindCryptoPerpetual:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			cryptoPerpetualJSON
		}{a.kind.String(), a.perpetual.toJSON()})
	case KindCryptoFuture:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			cryptoFutureJSON
		}{a.kind.String(), a.future.toJSON()})
	default:
		return nil, fmt.Errorf("unable to marshal instrument variant: %s", a.kind)
	}
}

func (a *Any) UnmarshalJSON(data []byte) error {
	var probe kindProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	kind, err := kindFromString(probe.Kind)
	if err != nil {
		return err
	}
	switch kind {
	case KindCryptoPerpetual:
		var p CryptoPerpetual
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*a = p.IntoAny()
	case KindCryptoFuture:
		var f CryptoFuture
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*a = f.IntoAny()
	}
	return nil
}
