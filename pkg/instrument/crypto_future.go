package instrument

import (
	"encoding/json"
	"fmt"

	"github.com/govalues/decimal"
	"go.uber.org/zap"

	"github.com/avalder/keel/pkg/nanos"
	"github.com/avalder/keel/pkg/types"
)

// CryptoFuture is a deliverable futures contract on a crypto underlying,
// live between its activation and expiration timestamps. Same construction
// contract as CryptoPerpetual.
type CryptoFuture struct {
	id                 ID
	rawSymbol          Symbol
	underlying         types.Currency
	quoteCurrency      types.Currency
	settlementCurrency types.Currency
	isInverse          bool
	activation         nanos.UnixNanos
	expiration         nanos.UnixNanos
	pricePrecision     uint8
	sizePrecision      uint8
	priceIncrement     types.Price
	sizeIncrement      types.Quantity
	makerFee           decimal.Decimal
	takerFee           decimal.Decimal
	marginInit         decimal.Decimal
	marginMaint        decimal.Decimal
	lotSize            types.Quantity
	maxQuantity        *types.Quantity
	minQuantity        *types.Quantity
	maxNotional        *types.Money
	minNotional        *types.Money
	maxPrice           *types.Price
	minPrice           *types.Price
	tsEvent            nanos.UnixNanos
	tsInit             nanos.UnixNanos
}

func NewCryptoFuture(
	id ID,
	rawSymbol Symbol,
	underlying types.Currency,
	quoteCurrency types.Currency,
	settlementCurrency types.Currency,
	isInverse bool,
	activation nanos.UnixNanos,
	expiration nanos.UnixNanos,
	pricePrecision uint8,
	sizePrecision uint8,
	priceIncrement types.Price,
	sizeIncrement types.Quantity,
	makerFee decimal.Decimal,
	takerFee decimal.Decimal,
	marginInit decimal.Decimal,
	marginMaint decimal.Decimal,
	tsEvent nanos.UnixNanos,
	tsInit nanos.UnixNanos,
	opts ...Option,
) (CryptoFuture, error) {
	if id.IsZero() {
		return CryptoFuture{}, fmt.Errorf("unable to create crypto future: %w", ErrInvalidID)
	}
	if err := validateIncrements(pricePrecision, priceIncrement, sizePrecision, sizeIncrement); err != nil {
		return CryptoFuture{}, fmt.Errorf("unable to create crypto future %s: %w", id, err)
	}

	o := applyOptions(opts)
	lotSize := types.MustQuantity(1, 0)
	if o.lotSize != nil {
		lotSize = *o.lotSize
	}

	return CryptoFuture{
		id:                 id,
		rawSymbol:          rawSymbol,
		underlying:         underlying,
		quoteCurrency:      quoteCurrency,
		settlementCurrency: settlementCurrency,
		isInverse:          isInverse,
		activation:         activation,
		expiration:         expiration,
		pricePrecision:     pricePrecision,
		sizePrecision:      sizePrecision,
		priceIncrement:     priceIncrement,
		sizeIncrement:      sizeIncrement,
		makerFee:           makerFee,
		takerFee:           takerFee,
		marginInit:         marginInit,
		marginMaint:        marginMaint,
		lotSize:            lotSize,
		maxQuantity:        o.maxQuantity,
		minQuantity:        o.minQuantity,
		maxNotional:        o.maxNotional,
		minNotional:        o.minNotional,
		maxPrice:           o.maxPrice,
		minPrice:           o.minPrice,
		tsEvent:            tsEvent,
		tsInit:             tsInit,
	}, nil
}

func MustCryptoFuture(
	id ID,
	rawSymbol Symbol,
	underlying types.Currency,
	quoteCurrency types.Currency,
	settlementCurrency types.Currency,
	isInverse bool,
	activation nanos.UnixNanos,
	expiration nanos.UnixNanos,
	pricePrecision uint8,
	sizePrecision uint8,
	priceIncrement types.Price,
	sizeIncrement types.Quantity,
	makerFee decimal.Decimal,
	takerFee decimal.Decimal,
	marginInit decimal.Decimal,
	marginMaint decimal.Decimal,
	tsEvent nanos.UnixNanos,
	tsInit nanos.UnixNanos,
	opts ...Option,
) CryptoFuture {
	f, err := NewCryptoFuture(id, rawSymbol, underlying, quoteCurrency, settlementCurrency,
		isInverse, activation, expiration, pricePrecision, sizePrecision, priceIncrement, sizeIncrement,
		makerFee, takerFee, marginInit, marginMaint, tsEvent, tsInit, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f CryptoFuture) ID() ID                 { return f.id }
func (f CryptoFuture) RawSymbol() Symbol      { return f.rawSymbol }
func (f CryptoFuture) AssetClass() AssetClass { return AssetClassCryptocurrency }
func (f CryptoFuture) Class() Class           { return ClassFuture }

func (f CryptoFuture) Underlying() (Symbol, bool)           { return Symbol(f.underlying.Code()), true }
func (f CryptoFuture) BaseCurrency() (types.Currency, bool) { return types.Currency{}, false }
func (f CryptoFuture) QuoteCurrency() types.Currency        { return f.quoteCurrency }
func (f CryptoFuture) SettlementCurrency() types.Currency   { return f.settlementCurrency }
func (f CryptoFuture) ISIN() (string, bool)                 { return "", false }
func (f CryptoFuture) OptionKind() (OptionKind, bool)       { return 0, false }
func (f CryptoFuture) Exchange() (Venue, bool)              { return "", false }
func (f CryptoFuture) StrikePrice() (types.Price, bool)     { return types.Price{}, false }

func (f CryptoFuture) ActivationNanos() (nanos.UnixNanos, bool) { return f.activation, true }
func (f CryptoFuture) ExpirationNanos() (nanos.UnixNanos, bool) { return f.expiration, true }

// UnderlyingCurrency is the typed view of the underlying asset.
func (f CryptoFuture) UnderlyingCurrency() types.Currency { return f.underlying }

func (f CryptoFuture) IsInverse() bool               { return f.isInverse }
func (f CryptoFuture) PricePrecision() uint8         { return f.pricePrecision }
func (f CryptoFuture) SizePrecision() uint8          { return f.sizePrecision }
func (f CryptoFuture) PriceIncrement() types.Price   { return f.priceIncrement }
func (f CryptoFuture) SizeIncrement() types.Quantity { return f.sizeIncrement }
func (f CryptoFuture) Multiplier() types.Quantity    { return types.MustQuantity(1, 0) }
func (f CryptoFuture) LotSize() types.Quantity       { return f.lotSize }

func (f CryptoFuture) MaxQuantity() (types.Quantity, bool) { return deref(f.maxQuantity) }
func (f CryptoFuture) MinQuantity() (types.Quantity, bool) { return deref(f.minQuantity) }
func (f CryptoFuture) MaxNotional() (types.Money, bool)    { return deref(f.maxNotional) }
func (f CryptoFuture) MinNotional() (types.Money, bool)    { return deref(f.minNotional) }
func (f CryptoFuture) MaxPrice() (types.Price, bool)       { return deref(f.maxPrice) }
func (f CryptoFuture) MinPrice() (types.Price, bool)       { return deref(f.minPrice) }

func (f CryptoFuture) MakerFee() decimal.Decimal    { return f.makerFee }
func (f CryptoFuture) TakerFee() decimal.Decimal    { return f.takerFee }
func (f CryptoFuture) MarginInit() decimal.Decimal  { return f.marginInit }
func (f CryptoFuture) MarginMaint() decimal.Decimal { return f.marginMaint }

func (f CryptoFuture) TsEvent() nanos.UnixNanos { return f.tsEvent }
func (f CryptoFuture) TsInit() nanos.UnixNanos  { return f.tsInit }

func (f CryptoFuture) Equal(o CryptoFuture) bool { return f.id == o.id }

func (f CryptoFuture) Fields() []zap.Field {
	return []zap.Field{
		zap.Stringer("id", f.id),
		zap.String("raw_symbol", string(f.rawSymbol)),
		zap.Stringer("underlying", f.underlying),
		zap.Stringer("quote_currency", f.quoteCurrency),
		zap.Stringer("settlement_currency", f.settlementCurrency),
		zap.Bool("is_inverse", f.isInverse),
		zap.Uint64("activation_ns", f.activation.UInt64()),
		zap.Uint64("expiration_ns", f.expiration.UInt64()),
		zap.Stringer("price_increment", f.priceIncrement),
		zap.Stringer("size_increment", f.sizeIncrement),
		zap.Stringer("maker_fee", f.makerFee),
		zap.Stringer("taker_fee", f.takerFee),
		zap.Stringer("lot_size", f.lotSize),
		zap.Uint64("ts_event", f.tsEvent.UInt64()),
		zap.Uint64("ts_init", f.tsInit.UInt64()),
	}
}

type cryptoFutureJSON struct {
	ID                 ID              `json:"id"`
	RawSymbol          Symbol          `json:"raw_symbol"`
	Underlying         types.Currency  `json:"underlying"`
	QuoteCurrency      types.Currency  `json:"quote_currency"`
	SettlementCurrency types.Currency  `json:"settlement_currency"`
	IsInverse          bool            `json:"is_inverse"`
	Activation         nanos.UnixNanos `json:"activation_ns"`
	Expiration         nanos.UnixNanos `json:"expiration_ns"`
	PricePrecision     uint8           `json:"price_precision"`
	SizePrecision      uint8           `json:"size_precision"`
	PriceIncrement     types.Price     `json:"price_increment"`
	SizeIncrement      types.Quantity  `json:"size_increment"`
	MakerFee           decimal.Decimal `json:"maker_fee"`
	TakerFee           decimal.Decimal `json:"taker_fee"`
	MarginInit         decimal.Decimal `json:"margin_init"`
	MarginMaint        decimal.Decimal `json:"margin_maint"`
	LotSize            *types.Quantity `json:"lot_size,omitempty"`
	MaxQuantity        *types.Quantity `json:"max_quantity,omitempty"`
	MinQuantity        *types.Quantity `json:"min_quantity,omitempty"`
	MaxNotional        *types.Money    `json:"max_notional,omitempty"`
	MinNotional        *types.Money    `json:"min_notional,omitempty"`
	MaxPrice           *types.Price    `json:"max_price,omitempty"`
	MinPrice           *types.Price    `json:"min_price,omitempty"`
	TsEvent            nanos.UnixNanos `json:"ts_event"`
	TsInit             nanos.UnixNanos `json:"ts_init"`
}

func (f CryptoFuture) toJSON() cryptoFutureJSON {
	lotSize := f.lotSize
	return cryptoFutureJSON{
		ID:                 f.id,
		RawSymbol:          f.rawSymbol,
		Underlying:         f.underlying,
		QuoteCurrency:      f.quoteCurrency,
		SettlementCurrency: f.settlementCurrency,
		IsInverse:          f.isInverse,
		Activation:         f.activation,
		Expiration:         f.expiration,
		PricePrecision:     f.pricePrecision,
		SizePrecision:      f.sizePrecision,
		PriceIncrement:     f.priceIncrement,
		SizeIncrement:      f.sizeIncrement,
		MakerFee:           f.makerFee,
		TakerFee:           f.takerFee,
		MarginInit:         f.marginInit,
		MarginMaint:        f.marginMaint,
		LotSize:            &lotSize,
		MaxQuantity:        f.maxQuantity,
		MinQuantity:        f.minQuantity,
		MaxNotional:        f.maxNotional,
		MinNotional:        f.minNotional,
		MaxPrice:           f.maxPrice,
		MinPrice:           f.minPrice,
		TsEvent:            f.tsEvent,
		TsInit:             f.tsInit,
	}
}

func (j cryptoFutureJSON) build() (CryptoFuture, error) {
	opts := make([]Option, 0, 7)
	if j.LotSize != nil {
		opts = append(opts, WithLotSize(*j.LotSize))
	}
	if j.MaxQuantity != nil {
		opts = append(opts, WithMaxQuantity(*j.MaxQuantity))
	}
	if j.MinQuantity != nil {
		opts = append(opts, WithMinQuantity(*j.MinQuantity))
	}
	if j.MaxNotional != nil {
		opts = append(opts, WithMaxNotional(*j.MaxNotional))
	}
	if j.MinNotional != nil {
		opts = append(opts, WithMinNotional(*j.MinNotional))
	}
	if j.MaxPrice != nil {
		opts = append(opts, WithMaxPrice(*j.MaxPrice))
	}
	if j.MinPrice != nil {
		opts = append(opts, WithMinPrice(*j.MinPrice))
	}
	return NewCryptoFuture(j.ID, j.RawSymbol, j.Underlying, j.QuoteCurrency, j.SettlementCurrency,
		j.IsInverse, j.Activation, j.Expiration, j.PricePrecision, j.SizePrecision,
		j.PriceIncrement, j.SizeIncrement, j.MakerFee, j.TakerFee, j.MarginInit, j.MarginMaint,
		j.TsEvent, j.TsInit, opts...)
}

func (f CryptoFuture) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.toJSON())
}

func (f *CryptoFuture) UnmarshalJSON(data []byte) error {
	var j cryptoFutureJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	built, err := j.build()
	if err != nil {
		return err
	}
	*f = built
	return nil
}
