package instrument

import "github.com/avalder/keel/pkg/types"

type Option func(*options)

type options struct {
	lotSize     *types.Quantity
	maxQuantity *types.Quantity
	minQuantity *types.Quantity
	maxNotional *types.Money
	minNotional *types.Money
	maxPrice    *types.Price
	minPrice    *types.Price
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithLotSize(q types.Quantity) Option {
	return func(o *options) { o.lotSize = &q }
}

func WithMaxQuantity(q types.Quantity) Option {
	return func(o *options) { o.maxQuantity = &q }
}

func WithMinQuantity(q types.Quantity) Option {
	return func(o *options) { o.minQuantity = &q }
}

func WithMaxNotional(m types.Money) Option {
	return func(o *options) { o.maxNotional = &m }
}

func WithMinNotional(m types.Money) Option {
	return func(o *options) { o.minNotional = &m }
}

func WithMaxPrice(p types.Price) Option {
	return func(o *options) { o.maxPrice = &p }
}

func WithMinPrice(p types.Price) Option {
	return func(o *options) { o.minPrice = &p }
}
