package instrument

import "fmt"

type AssetClass int
type Class int
type OptionKind int
type Kind int

const (
	AssetClassFX AssetClass = iota
	AssetClassEquity
	AssetClassCommodity
	AssetClassDebt
	AssetClassIndex
	AssetClassCryptocurrency
)

const (
	ClassSpot Class = iota
	ClassSwap
	ClassFuture
	ClassForward
	ClassOption
)

const (
	OptionKindCall OptionKind = iota
	OptionKindPut
)

// Kind tags the concrete variant held by Any. The zero value marks an
// empty union.
const (
	KindCryptoPerpetual Kind = iota + 1
	KindCryptoFuture
)

func (a AssetClass) String() string {
	switch a {
	case AssetClassFX:
		return "fx"
	case AssetClassEquity:
		return "equity"
	case AssetClassCommodity:
		return "commodity"
	case AssetClassDebt:
		return "debt"
	case AssetClassIndex:
		return "index"
	case AssetClassCryptocurrency:
		return "cryptocurrency"
	default:
		return fmt.Sprintf("asset_class(%d)", int(a))
	}
}

func (c Class) String() string {
	switch c {
	case ClassSpot:
		return "spot"
	case ClassSwap:
		return "swap"
	case ClassFuture:
		return "future"
	case ClassForward:
		return "forward"
	case ClassOption:
		return "option"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

func (k OptionKind) String() string {
	switch k {
	case OptionKindCall:
		return "call"
	case OptionKindPut:
		return "put"
	default:
		return fmt.Sprintf("option_kind(%d)", int(k))
	}
}

func (k Kind) String() string {
	switch k {
	case KindCryptoPerpetual:
		return "crypto_perpetual"
	case KindCryptoFuture:
		return "crypto_future"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func kindFromString(s string) (Kind, error) {
	switch s {
	case "crypto_perpetual":
		return KindCryptoPerpetual, nil
	case "crypto_future":
		return KindCryptoFuture, nil
	default:
		return 0, fmt.Errorf("unknown instrument kind %q", s)
	}
}
