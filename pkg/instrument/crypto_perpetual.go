package instrument

import (
	"encoding/json"
	"fmt"

	"github.com/govalues/decimal"
	"go.uber.org/zap"

	"github.com/avalder/keel/pkg/nanos"
	"github.com/avalder/keel/pkg/types"
)

// CryptoPerpetual is a perpetual swap contract settled in crypto. The struct
// is immutable, construction goes through NewCryptoPerpetual so every value
// in circulation satisfies the precision and increment invariants.
type CryptoPerpetual struct {
	id                 ID
	rawSymbol          Symbol
	baseCurrency       types.Currency
	quoteCurrency      types.Currency
	settlementCurrency types.Currency
	isInverse          bool
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

func validateIncrements(pricePrecision uint8, priceIncrement types.Price, sizePrecision uint8, sizeIncrement types.Quantity) error {
	if pricePrecision != priceIncrement.Precision() {
		return &PrecisionMismatchError{
			FieldA: "price_precision", FieldB: "price_increment",
			A: pricePrecision, B: priceIncrement.Precision(),
		}
	}
	if sizePrecision != sizeIncrement.Precision() {
		return &PrecisionMismatchError{
			FieldA: "size_precision", FieldB: "size_increment",
			A: sizePrecision, B: sizeIncrement.Precision(),
		}
	}
	if !priceIncrement.IsPositive() {
		return &NonPositiveIncrementError{Field: "price_increment", Raw: priceIncrement.Raw()}
	}
	if !sizeIncrement.IsPositive() {
		return &NonPositiveIncrementError{Field: "size_increment", Raw: types.U64ToI64Unsafe(sizeIncrement.Raw())}
	}
	return nil
}

func NewCryptoPerpetual(
	id ID,
	rawSymbol Symbol,
	baseCurrency types.Currency,
	quoteCurrency types.Currency,
	settlementCurrency types.Currency,
	isInverse bool,
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
) (CryptoPerpetual, error) {
	if id.IsZero() {
		return CryptoPerpetual{}, fmt.Errorf("unable to create crypto perpetual: %w", ErrInvalidID)
	}
	if err := validateIncrements(pricePrecision, priceIncrement, sizePrecision, sizeIncrement); err != nil {
		return CryptoPerpetual{}, fmt.Errorf("unable to create crypto perpetual %s: %w", id, err)
	}

	o := applyOptions(opts)
	lotSize := types.MustQuantity(1, 0)
	if o.lotSize != nil {
		lotSize = *o.lotSize
	}

	return CryptoPerpetual{
		id:                 id,
		rawSymbol:          rawSymbol,
		baseCurrency:       baseCurrency,
		quoteCurrency:      quoteCurrency,
		settlementCurrency: settlementCurrency,
		isInverse:          isInverse,
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

func MustCryptoPerpetual(
	id ID,
	rawSymbol Symbol,
	baseCurrency types.Currency,
	quoteCurrency types.Currency,
	settlementCurrency types.Currency,
	isInverse bool,
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
) CryptoPerpetual {
	p, err := NewCryptoPerpetual(id, rawSymbol, baseCurrency, quoteCurrency, settlementCurrency,
		isInverse, pricePrecision, sizePrecision, priceIncrement, sizeIncrement,
		makerFee, takerFee, marginInit, marginMaint, tsEvent, tsInit, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p CryptoPerpetual) ID() ID                 { return p.id }
func (p CryptoPerpetual) RawSymbol() Symbol      { return p.rawSymbol }
func (p CryptoPerpetual) AssetClass() AssetClass { return AssetClassCryptocurrency }
func (p CryptoPerpetual) Class() Class           { return ClassSwap }

func (p CryptoPerpetual) Underlying() (Symbol, bool)           { return "", false }
func (p CryptoPerpetual) BaseCurrency() (types.Currency, bool) { return p.baseCurrency, true }
func (p CryptoPerpetual) QuoteCurrency() types.Currency        { return p.quoteCurrency }
func (p CryptoPerpetual) SettlementCurrency() types.Currency   { return p.settlementCurrency }
func (p CryptoPerpetual) ISIN() (string, bool)                 { return "", false }
func (p CryptoPerpetual) OptionKind() (OptionKind, bool)       { return 0, false }
func (p CryptoPerpetual) Exchange() (Venue, bool)              { return "", false }
func (p CryptoPerpetual) StrikePrice() (types.Price, bool)     { return types.Price{}, false }

func (p CryptoPerpetual) ActivationNanos() (nanos.UnixNanos, bool) { return 0, false }
func (p CryptoPerpetual) ExpirationNanos() (nanos.UnixNanos, bool) { return 0, false }

func (p CryptoPerpetual) IsInverse() bool               { return p.isInverse }
func (p CryptoPerpetual) PricePrecision() uint8         { return p.pricePrecision }
func (p CryptoPerpetual) SizePrecision() uint8          { return p.sizePrecision }
func (p CryptoPerpetual) PriceIncrement() types.Price   { return p.priceIncrement }
func (p CryptoPerpetual) SizeIncrement() types.Quantity { return p.sizeIncrement }
func (p CryptoPerpetual) Multiplier() types.Quantity    { return types.MustQuantity(1, 0) }
func (p CryptoPerpetual) LotSize() types.Quantity       { return p.lotSize }

func (p CryptoPerpetual) MaxQuantity() (types.Quantity, bool) { return deref(p.maxQuantity) }
func (p CryptoPerpetual) MinQuantity() (types.Quantity, bool) { return deref(p.minQuantity) }
func (p CryptoPerpetual) MaxNotional() (types.Money, bool)    { return deref(p.maxNotional) }
func (p CryptoPerpetual) MinNotional() (types.Money, bool)    { return deref(p.minNotional) }
func (p CryptoPerpetual) MaxPrice() (types.Price, bool)       { return deref(p.maxPrice) }
func (p CryptoPerpetual) MinPrice() (types.Price, bool)       { return deref(p.minPrice) }

func (p CryptoPerpetual) MakerFee() decimal.Decimal    { return p.makerFee }
func (p CryptoPerpetual) TakerFee() decimal.Decimal    { return p.takerFee }
func (p CryptoPerpetual) MarginInit() decimal.Decimal  { return p.marginInit }
func (p CryptoPerpetual) MarginMaint() decimal.Decimal { return p.marginMaint }

func (p CryptoPerpetual) TsEvent() nanos.UnixNanos { return p.tsEvent }
func (p CryptoPerpetual) TsInit() nanos.UnixNanos  { return p.tsInit }

func deref[T any](v *T) (T, bool) {
	if v == nil {
		var zero T
		return zero, false
	}
	return *v, true
}

// Equal is identity equality, two definitions are the same instrument when
// their IDs match regardless of field payloads.
func (p CryptoPerpetual) Equal(o CryptoPerpetual) bool { return p.id == o.id }

func (p CryptoPerpetual) Fields() []zap.Field {
	return []zap.Field{
		zap.Stringer("id", p.id),
		zap.String("raw_symbol", string(p.rawSymbol)),
		zap.Stringer("base_currency", p.baseCurrency),
		zap.Stringer("quote_currency", p.quoteCurrency),
		zap.Stringer("settlement_currency", p.settlementCurrency),
		zap.Bool("is_inverse", p.isInverse),
		zap.Stringer("price_increment", p.priceIncrement),
		zap.Stringer("size_increment", p.sizeIncrement),
		zap.Stringer("maker_fee", p.makerFee),
		zap.Stringer("taker_fee", p.takerFee),
		zap.Stringer("lot_size", p.lotSize),
		zap.Uint64("ts_event", p.tsEvent.UInt64()),
		zap.Uint64("ts_init", p.tsInit.UInt64()),
	}
}

type cryptoPerpetualJSON struct {
	ID                 ID              `json:"id"`
	RawSymbol          Symbol          `json:"raw_symbol"`
	BaseCurrency       types.Currency  `json:"base_currency"`
	QuoteCurrency      types.Currency  `json:"quote_currency"`
	SettlementCurrency types.Currency  `json:"settlement_currency"`
	IsInverse          bool            `json:"is_inverse"`
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

func (p CryptoPerpetual) toJSON() cryptoPerpetualJSON {
	lotSize := p.lotSize
	return cryptoPerpetualJSON{
		ID:                 p.id,
		RawSymbol:          p.rawSymbol,
		BaseCurrency:       p.baseCurrency,
		QuoteCurrency:      p.quoteCurrency,
		SettlementCurrency: p.settlementCurrency,
		IsInverse:          p.isInverse,
		PricePrecision:     p.pricePrecision,
		SizePrecision:      p.sizePrecision,
		PriceIncrement:     p.priceIncrement,
		SizeIncrement:      p.sizeIncrement,
		MakerFee:           p.makerFee,
		TakerFee:           p.takerFee,
		MarginInit:         p.marginInit,
		MarginMaint:        p.marginMaint,
		LotSize:            &lotSize,
		MaxQuantity:        p.maxQuantity,
		MinQuantity:        p.minQuantity,
		MaxNotional:        p.maxNotional,
		MinNotional:        p.minNotional,
		MaxPrice:           p.maxPrice,
		MinPrice:           p.minPrice,
		TsEvent:            p.tsEvent,
		TsInit:             p.tsInit,
	}
}

// build runs the decoded payload back through the checked constructor, a
// document that violates the construction invariants does not decode.
func (j cryptoPerpetualJSON) build() (CryptoPerpetual, error) {
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
	return NewCryptoPerpetual(j.ID, j.RawSymbol, j.BaseCurrency, j.QuoteCurrency, j.SettlementCurrency,
		j.IsInverse, j.PricePrecision, j.SizePrecision, j.PriceIncrement, j.SizeIncrement,
		j.MakerFee, j.TakerFee, j.MarginInit, j.MarginMaint, j.TsEvent, j.TsInit, opts...)
}

func (p CryptoPerpetual) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.toJSON())
}

func (p *CryptoPerpetual) UnmarshalJSON(data []byte) error {
	var j cryptoPerpetualJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	built, err := j.build()
	if err != nil {
		return err
	}
	*p = built
	return nil
}
