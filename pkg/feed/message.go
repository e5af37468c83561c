package feed

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/govalues/decimal"

	"github.com/avalder/keel/pkg/catalog"
	"github.com/avalder/keel/pkg/instrument"
	"github.com/avalder/keel/pkg/nanos"
	"github.com/avalder/keel/pkg/types"
)

var (
	ErrUnknownKind  = errors.New("unknown instrument kind")
	ErrMissingField = errors.New("missing definition field")
	ErrInvalidField = errors.New("invalid definition field")
)

// definitionMessage is the normalized wire form of one definition update.
// Decimal fields travel as strings to survive at full precision, optional
// constraints distinguish absent from zero by omission.
type definitionMessage struct {
	Kind               string  `json:"kind"`
	ID                 string  `json:"id"`
	RawSymbol          string  `json:"raw_symbol"`
	BaseCurrency       string  `json:"base_currency,omitempty"`
	Underlying         string  `json:"underlying,omitempty"`
	QuoteCurrency      string  `json:"quote_currency"`
	SettlementCurrency string  `json:"settlement_currency"`
	IsInverse          bool    `json:"is_inverse"`
	Activation         *uint64 `json:"activation_ns,omitempty"`
	Expiration         *uint64 `json:"expiration_ns,omitempty"`
	PricePrecision     uint8   `json:"price_precision"`
	SizePrecision      uint8   `json:"size_precision"`
	PriceIncrement     string  `json:"price_increment"`
	SizeIncrement      string  `json:"size_increment"`
	MakerFee           string  `json:"maker_fee"`
	TakerFee           string  `json:"taker_fee"`
	MarginInit         string  `json:"margin_init"`
	MarginMaint        string  `json:"margin_maint"`
	LotSize            *string `json:"lot_size,omitempty"`
	MaxQuantity        *string `json:"max_quantity,omitempty"`
	MinQuantity        *string `json:"min_quantity,omitempty"`
	MaxNotional        *string `json:"max_notional,omitempty"`
	MinNotional        *string `json:"min_notional,omitempty"`
	MaxPrice           *string `json:"max_price,omitempty"`
	MinPrice           *string `json:"min_price,omitempty"`
	TsEvent            uint64  `json:"ts_event"`
}

func parseDecimalField(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", field, ErrMissingField)
	}
	d, err := decimal.Parse(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s %q: %w", field, value, ErrInvalidField)
	}
	return d, nil
}

func (m definitionMessage) options() ([]instrument.Option, error) {
	opts := make([]instrument.Option, 0, 7)
	if m.LotSize != nil {
		lot, err := types.ParseQuantity(*m.LotSize)
		if err != nil {
			return nil, fmt.Errorf("lot_size: %w", err)
		}
		opts = append(opts, instrument.WithLotSize(lot))
	}
	if m.MaxQuantity != nil {
		q, err := types.ParseQuantity(*m.MaxQuantity)
		if err != nil {
			return nil, fmt.Errorf("max_quantity: %w", err)
		}
		opts = append(opts, instrument.WithMaxQuantity(q))
	}
	if m.MinQuantity != nil {
		q, err := types.ParseQuantity(*m.MinQuantity)
		if err != nil {
			return nil, fmt.Errorf("min_quantity: %w", err)
		}
		opts = append(opts, instrument.WithMinQuantity(q))
	}
	if m.MaxNotional != nil {
		n, err := types.ParseMoney(*m.MaxNotional)
		if err != nil {
			return nil, fmt.Errorf("max_notional: %w", err)
		}
		opts = append(opts, instrument.WithMaxNotional(n))
	}
	if m.MinNotional != nil {
		n, err := types.ParseMoney(*m.MinNotional)
		if err != nil {
			return nil, fmt.Errorf("min_notional: %w", err)
		}
		opts = append(opts, instrument.WithMinNotional(n))
	}
	if m.MaxPrice != nil {
		p, err := types.ParsePrice(*m.MaxPrice)
		if err != nil {
			return nil, fmt.Errorf("max_price: %w", err)
		}
		opts = append(opts, instrument.WithMaxPrice(p))
	}
	if m.MinPrice != nil {
		p, err := types.ParsePrice(*m.MinPrice)
		if err != nil {
			return nil, fmt.Errorf("min_price: %w", err)
		}
		opts = append(opts, instrument.WithMinPrice(p))
	}
	return opts, nil
}

// DecodeDefinition normalizes one raw message into a catalog definition,
// stamping tsInit as the local construction time. Everything flows through
// the checked constructors, a payload violating the instrument invariants
// is a decode error, never a malformed value.
func DecodeDefinition(data []byte, tsInit nanos.UnixNanos) (catalog.Definition, error) {
	var m definitionMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return catalog.Definition{}, fmt.Errorf("unable to decode definition: %w", err)
	}

	id, err := instrument.ParseID(m.ID)
	if err != nil {
		return catalog.Definition{}, fmt.Errorf("unable to decode definition: %w", err)
	}
	quote, err := types.CurrencyFromCode(m.QuoteCurrency)
	if err != nil {
		return catalog.Definition{}, fmt.Errorf("unable to decode definition %s: %w", id, err)
	}
	settlement, err := types.CurrencyFromCode(m.SettlementCurrency)
	if err != nil {
		return catalog.Definition{}, fmt.Errorf("unable to decode definition %s: %w", id, err)
	}
	priceIncrement, err := types.ParsePrice(m.PriceIncrement)
	if err != nil {
		return catalog.Definition{}, fmt.Errorf("unable to decode definition %s: %w", id, err)
	}
	sizeIncrement, err := types.ParseQuantity(m.SizeIncrement)
	if err != nil {
		return catalog.Definition{}, fmt.Errorf("unable to decode definition %s: %w", id, err)
	}
	makerFee, err := parseDecimalField("maker_fee", m.MakerFee)
	if err != nil {
		return catalog.Definition{}, fmt.Errorf("unable to decode definition %s: %w", id, err)
	}
	takerFee, err := parseDecimalField("taker_fee", m.TakerFee)
	if err != nil {
		return catalog.Definition{}, fmt.Errorf("unable to decode definition %s: %w", id, err)
	}
	marginInit, err := parseDecimalField("margin_init", m.MarginInit)
	if err != nil {
		return catalog.Definition{}, fmt.Errorf("unable to decode definition %s: %w", id, err)
	}
	marginMaint, err := parseDecimalField("margin_maint", m.MarginMaint)
	if err != nil {
		return catalog.Definition{}, fmt.Errorf("unable to decode definition %s: %w", id, err)
	}
	opts, err := m.options()
	if err != nil {
		return catalog.Definition{}, fmt.Errorf("unable to decode definition %s: %w", id, err)
	}

	switch m.Kind {
	case "crypto_perpetual":
		if m.BaseCurrency == "" {
			return catalog.Definition{}, fmt.Errorf("unable to decode definition %s: base_currency: %w", id, ErrMissingField)
		}
		base, err := types.CurrencyFromCode(m.BaseCurrency)
		if err != nil {
			return catalog.Definition{}, fmt.Errorf("unable to decode definition %s: %w", id, err)
		}
		p, err := instrument.NewCryptoPerpetual(
			id, instrument.Symbol(m.RawSymbol),
			base, quote, settlement, m.IsInverse,
			m.PricePrecision, m.SizePrecision, priceIncrement, sizeIncrement,
			makerFee, takerFee, marginInit, marginMaint,
			nanos.UnixNanos(m.TsEvent), tsInit, opts...,
		)
		if err != nil {
			return catalog.Definition{}, fmt.Errorf("unable to decode definition: %w", err)
		}
		return catalog.NewDefinition(p.IntoAny()), nil

	case "crypto_future":
		if m.Underlying == "" {
			return catalog.Definition{}, fmt.Errorf("unable to decode definition %s: underlying: %w", id, ErrMissingField)
		}
		if m.Activation == nil || m.Expiration == nil {
			return catalog.Definition{}, fmt.Errorf("unable to decode definition %s: activation_ns/expiration_ns: %w", id, ErrMissingField)
		}
		underlying, err := types.CurrencyFromCode(m.Underlying)
		if err != nil {
			return catalog.Definition{}, fmt.Errorf("unable to decode definition %s: %w", id, err)
		}
		f, err := instrument.NewCryptoFuture(
			id, instrument.Symbol(m.RawSymbol),
			underlying, quote, settlement, m.IsInverse,
			nanos.UnixNanos(*m.Activation), nanos.UnixNanos(*m.Expiration),
			m.PricePrecision, m.SizePrecision, priceIncrement, sizeIncrement,
			makerFee, takerFee, marginInit, marginMaint,
			nanos.UnixNanos(m.TsEvent), tsInit, opts...,
		)
		if err != nil {
			return catalog.Definition{}, fmt.Errorf("unable to decode definition: %w", err)
		}
		return catalog.NewDefinition(f.IntoAny()), nil

	default:
		return catalog.Definition{}, fmt.Errorf("unable to decode definition %s, kind %q: %w", id, m.Kind, ErrUnknownKind)
	}
}
