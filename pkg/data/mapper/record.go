package mapper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/govalues/decimal"

	"github.com/avalder/keel/pkg/instrument"
	"github.com/avalder/keel/pkg/nanos"
	"github.com/avalder/keel/pkg/types"
)

var (
	ErrFieldTooLong = errors.New("field does not fit fixed record slot")
	ErrScaleRange   = errors.New("decimal scale does not fit fixed record")
)

const (
	flagIsInverse = 1 << iota
	flagMaxQuantity
	flagMinQuantity
	flagMaxNotional
	flagMinNotional
	flagMaxPrice
	flagMinPrice
)

// BinaryCryptoPerpetual is the fixed on-disk image of a perpetual
// definition. Field order and widths are part of the format, the struct
// carries no implicit padding so the memory image equals the wire image.
type BinaryCryptoPerpetual struct {
	Symbol         [32]byte
	Venue          [16]byte
	RawSymbol      [32]byte
	Base           [8]byte
	Quote          [8]byte
	Settlement     [8]byte
	MaxNotionalCcy [8]byte
	MinNotionalCcy [8]byte

	PriceIncrementRaw   int64
	SizeIncrementRaw    uint64
	MakerFeeMantissa    int64
	TakerFeeMantissa    int64
	MarginInitMantissa  int64
	MarginMaintMantissa int64
	LotSizeRaw          uint64
	MaxQuantityRaw      uint64
	MinQuantityRaw      uint64
	MaxNotionalRaw      int64
	MinNotionalRaw      int64
	MaxPriceRaw         int64
	MinPriceRaw         int64
	TsEvent             uint64
	TsInit              uint64

	PricePrecision       uint8
	SizePrecision        uint8
	MakerFeeScale        uint8
	TakerFeeScale        uint8
	MarginInitScale      uint8
	MarginMaintScale     uint8
	LotSizePrecision     uint8
	MaxQuantityPrecision uint8
	MinQuantityPrecision uint8
	MaxPricePrecision    uint8
	MinPricePrecision    uint8
	Flags                uint8

	_ [4]byte
}

func putString(dst []byte, field, s string) error {
	if len(s) > len(dst) {
		return fmt.Errorf("%s %q exceeds %d bytes: %w", field, s, len(dst), ErrFieldTooLong)
	}
	copy(dst, s)
	for i := len(s); i < len(dst); i++ {
		dst[i] = 0
	}
	return nil
}

func getString(src []byte) string {
	for i, b := range src {
		if b == 0 {
			return string(src[:i])
		}
	}
	return string(src)
}

func decimalParts(field string, d decimal.Decimal) (int64, uint8, error) {
	scale := d.Scale()
	if scale > types.MaxPrecision {
		return 0, 0, fmt.Errorf("%s scale %d: %w", field, scale, ErrScaleRange)
	}
	digits := strings.Replace(d.String(), ".", "", 1)
	mantissa, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%s %s: %w", field, d, ErrScaleRange)
	}
	return mantissa, uint8(scale), nil // #nosec G115
}

// FromModel freezes a definition into its binary image.
func FromModel(p instrument.CryptoPerpetual) (BinaryCryptoPerpetual, error) {
	var rec BinaryCryptoPerpetual

	if err := putString(rec.Symbol[:], "symbol", string(p.ID().Symbol())); err != nil {
		return BinaryCryptoPerpetual{}, err
	}
	if err := putString(rec.Venue[:], "venue", string(p.ID().Venue())); err != nil {
		return BinaryCryptoPerpetual{}, err
	}
	if err := putString(rec.RawSymbol[:], "raw_symbol", string(p.RawSymbol())); err != nil {
		return BinaryCryptoPerpetual{}, err
	}
	base, _ := p.BaseCurrency()
	if err := putString(rec.Base[:], "base_currency", base.Code()); err != nil {
		return BinaryCryptoPerpetual{}, err
	}
	if err := putString(rec.Quote[:], "quote_currency", p.QuoteCurrency().Code()); err != nil {
		return BinaryCryptoPerpetual{}, err
	}
	if err := putString(rec.Settlement[:], "settlement_currency", p.SettlementCurrency().Code()); err != nil {
		return BinaryCryptoPerpetual{}, err
	}

	rec.PriceIncrementRaw = p.PriceIncrement().Raw()
	rec.SizeIncrementRaw = p.SizeIncrement().Raw()
	rec.PricePrecision = p.PricePrecision()
	rec.SizePrecision = p.SizePrecision()

	var err error
	if rec.MakerFeeMantissa, rec.MakerFeeScale, err = decimalParts("maker_fee", p.MakerFee()); err != nil {
		return BinaryCryptoPerpetual{}, err
	}
	if rec.TakerFeeMantissa, rec.TakerFeeScale, err = decimalParts("taker_fee", p.TakerFee()); err != nil {
		return BinaryCryptoPerpetual{}, err
	}
	if rec.MarginInitMantissa, rec.MarginInitScale, err = decimalParts("margin_init", p.MarginInit()); err != nil {
		return BinaryCryptoPerpetual{}, err
	}
	if rec.MarginMaintMantissa, rec.MarginMaintScale, err = decimalParts("margin_maint", p.MarginMaint()); err != nil {
		return BinaryCryptoPerpetual{}, err
	}

	rec.LotSizeRaw = p.LotSize().Raw()
	rec.LotSizePrecision = p.LotSize().Precision()
	rec.TsEvent = p.TsEvent().UInt64()
	rec.TsInit = p.TsInit().UInt64()

	if p.IsInverse() {
		rec.Flags |= flagIsInverse
	}
	if maxQ, ok := p.MaxQuantity(); ok {
		rec.Flags |= flagMaxQuantity
		rec.MaxQuantityRaw = maxQ.Raw()
		rec.MaxQuantityPrecision = maxQ.Precision()
	}
	if minQ, ok := p.MinQuantity(); ok {
		rec.Flags |= flagMinQuantity
		rec.MinQuantityRaw = minQ.Raw()
		rec.MinQuantityPrecision = minQ.Precision()
	}
	if maxN, ok := p.MaxNotional(); ok {
		rec.Flags |= flagMaxNotional
		rec.MaxNotionalRaw = maxN.Raw()
		if err := putString(rec.MaxNotionalCcy[:], "max_notional_currency", maxN.Currency().Code()); err != nil {
			return BinaryCryptoPerpetual{}, err
		}
	}
	if minN, ok := p.MinNotional(); ok {
		rec.Flags |= flagMinNotional
		rec.MinNotionalRaw = minN.Raw()
		if err := putString(rec.MinNotionalCcy[:], "min_notional_currency", minN.Currency().Code()); err != nil {
			return BinaryCryptoPerpetual{}, err
		}
	}
	if maxP, ok := p.MaxPrice(); ok {
		rec.Flags |= flagMaxPrice
		rec.MaxPriceRaw = maxP.Raw()
		rec.MaxPricePrecision = maxP.Precision()
	}
	if minP, ok := p.MinPrice(); ok {
		rec.Flags |= flagMinPrice
		rec.MinPriceRaw = minP.Raw()
		rec.MinPricePrecision = minP.Precision()
	}

	return rec, nil
}

// ToModel thaws the record back through the checked constructor, so a
// corrupt image fails instead of producing an invalid definition.
func (rec BinaryCryptoPerpetual) ToModel() (instrument.CryptoPerpetual, error) {
	id, err := instrument.NewID(instrument.Symbol(getString(rec.Symbol[:])), instrument.Venue(getString(rec.Venue[:])))
	if err != nil {
		return instrument.CryptoPerpetual{}, fmt.Errorf("unable to restore record: %w", err)
	}
	base, err := types.CurrencyFromCode(getString(rec.Base[:]))
	if err != nil {
		return instrument.CryptoPerpetual{}, fmt.Errorf("unable to restore record %s: %w", id, err)
	}
	quote, err := types.CurrencyFromCode(getString(rec.Quote[:]))
	if err != nil {
		return instrument.CryptoPerpetual{}, fmt.Errorf("unable to restore record %s: %w", id, err)
	}
	settlement, err := types.CurrencyFromCode(getString(rec.Settlement[:]))
	if err != nil {
		return instrument.CryptoPerpetual{}, fmt.Errorf("unable to restore record %s: %w", id, err)
	}

	priceIncrement, err := types.PriceFromRaw(rec.PriceIncrementRaw, rec.PricePrecision)
	if err != nil {
		return instrument.CryptoPerpetual{}, fmt.Errorf("unable to restore record %s: %w", id, err)
	}
	sizeIncrement, err := types.QuantityFromRaw(rec.SizeIncrementRaw, rec.SizePrecision)
	if err != nil {
		return instrument.CryptoPerpetual{}, fmt.Errorf("unable to restore record %s: %w", id, err)
	}

	opts := make([]instrument.Option, 0, 7)

	lotSize, err := types.QuantityFromRaw(rec.LotSizeRaw, rec.LotSizePrecision)
	if err != nil {
		return instrument.CryptoPerpetual{}, fmt.Errorf("unable to restore record %s: %w", id, err)
	}
	opts = append(opts, instrument.WithLotSize(lotSize))

	if rec.Flags&flagMaxQuantity != 0 {
		maxQ, err := types.QuantityFromRaw(rec.MaxQuantityRaw, rec.MaxQuantityPrecision)
		if err != nil {
			return instrument.CryptoPerpetual{}, fmt.Errorf("unable to restore record %s: %w", id, err)
		}
		opts = append(opts, instrument.WithMaxQuantity(maxQ))
	}
	if rec.Flags&flagMinQuantity != 0 {
		minQ, err := types.QuantityFromRaw(rec.MinQuantityRaw, rec.MinQuantityPrecision)
		if err != nil {
			return instrument.CryptoPerpetual{}, fmt.Errorf("unable to restore record %s: %w", id, err)
		}
		opts = append(opts, instrument.WithMinQuantity(minQ))
	}
	if rec.Flags&flagMaxNotional != 0 {
		ccy, err := types.CurrencyFromCode(getString(rec.MaxNotionalCcy[:]))
		if err != nil {
			return instrument.CryptoPerpetual{}, fmt.Errorf("unable to restore record %s: %w", id, err)
		}
		maxN, err := types.MoneyFromRaw(rec.MaxNotionalRaw, ccy)
		if err != nil {
			return instrument.CryptoPerpetual{}, fmt.Errorf("unable to restore record %s: %w", id, err)
		}
		opts = append(opts, instrument.WithMaxNotional(maxN))
	}
	if rec.Flags&flagMinNotional != 0 {
		ccy, err := types.CurrencyFromCode(getString(rec.MinNotionalCcy[:]))
		if err != nil {
			return instrument.CryptoPerpetual{}, fmt.Errorf("unable to restore record %s: %w", id, err)
		}
		minN, err := types.MoneyFromRaw(rec.MinNotionalRaw, ccy)
		if err != nil {
			return instrument.CryptoPerpetual{}, fmt.Errorf("unable to restore record %s: %w", id, err)
		}
		opts = append(opts, instrument.WithMinNotional(minN))
	}
	if rec.Flags&flagMaxPrice != 0 {
		maxP, err := types.PriceFromRaw(rec.MaxPriceRaw, rec.MaxPricePrecision)
		if err != nil {
			return instrument.CryptoPerpetual{}, fmt.Errorf("unable to restore record %s: %w", id, err)
		}
		opts = append(opts, instrument.WithMaxPrice(maxP))
	}
	if rec.Flags&flagMinPrice != 0 {
		minP, err := types.PriceFromRaw(rec.MinPriceRaw, rec.MinPricePrecision)
		if err != nil {
			return instrument.CryptoPerpetual{}, fmt.Errorf("unable to restore record %s: %w", id, err)
		}
		opts = append(opts, instrument.WithMinPrice(minP))
	}

	return instrument.NewCryptoPerpetual(
		id, instrument.Symbol(getString(rec.RawSymbol[:])),
		base, quote, settlement,
		rec.Flags&flagIsInverse != 0,
		rec.PricePrecision, rec.SizePrecision,
		priceIncrement, sizeIncrement,
		decimal.MustNew(rec.MakerFeeMantissa, int(rec.MakerFeeScale)),
		decimal.MustNew(rec.TakerFeeMantissa, int(rec.TakerFeeScale)),
		decimal.MustNew(rec.MarginInitMantissa, int(rec.MarginInitScale)),
		decimal.MustNew(rec.MarginMaintMantissa, int(rec.MarginMaintScale)),
		nanos.UnixNanos(rec.TsEvent), nanos.UnixNanos(rec.TsInit),
		opts...,
	)
}
