package mapper

import (
	"encoding/binary"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"unsafe"

	"github.com/govalues/decimal"

	"github.com/avalder/keel/pkg/instrument"
	"github.com/avalder/keel/pkg/types"
)

func newTestPerpetual(t *testing.T, opts ...instrument.Option) instrument.CryptoPerpetual {
	t.Helper()
	p, err := instrument.NewCryptoPerpetual(
		instrument.MustParseID("ETHUSDT-PERP.BINANCE"), "ETHUSDT-PERP",
		types.ETH, types.USDT, types.USDT, false,
		2, 3,
		types.MustPrice(0.01, 2), types.MustQuantity(0.001, 3),
		decimal.MustNew(2, 4), decimal.MustNew(4, 4),
		decimal.MustNew(1, 2), decimal.MustNew(5, 3),
		1_700_000_000_000_000_000, 1_700_000_000_000_000_001,
		opts...,
	)
	if err != nil {
		t.Fatalf("NewCryptoPerpetual unexpected error: %v", err)
	}
	return p
}

func TestBinaryCryptoPerpetual_NoPadding(t *testing.T) {
	var rec BinaryCryptoPerpetual
	memSize := int(unsafe.Sizeof(rec))
	wireSize := binary.Size(rec)
	if memSize != wireSize {
		t.Errorf("unsafe.Sizeof = %d, binary.Size = %d, record must be padding-free", memSize, wireSize)
	}
	if memSize%8 != 0 {
		t.Errorf("record size %d is not 8-byte aligned", memSize)
	}
}

func TestBinaryCryptoPerpetual_RoundTripMinimal(t *testing.T) {
	p := newTestPerpetual(t)

	rec, err := FromModel(p)
	if err != nil {
		t.Fatalf("FromModel unexpected error: %v", err)
	}
	back, err := rec.ToModel()
	if err != nil {
		t.Fatalf("ToModel unexpected error: %v", err)
	}

	if back.ID() != p.ID() {
		t.Errorf("id = %s, want %s", back.ID(), p.ID())
	}
	if back.RawSymbol() != p.RawSymbol() {
		t.Errorf("raw symbol = %s, want %s", back.RawSymbol(), p.RawSymbol())
	}
	if !back.PriceIncrement().Equal(p.PriceIncrement()) || back.PricePrecision() != p.PricePrecision() {
		t.Errorf("price increment = %s/%d, want %s/%d",
			back.PriceIncrement(), back.PricePrecision(), p.PriceIncrement(), p.PricePrecision())
	}
	if back.MakerFee().Cmp(p.MakerFee()) != 0 || back.MakerFee().Scale() != p.MakerFee().Scale() {
		t.Errorf("maker fee = %s, want %s at full scale", back.MakerFee(), p.MakerFee())
	}
	if back.MarginMaint().Cmp(p.MarginMaint()) != 0 {
		t.Errorf("margin maint = %s, want %s", back.MarginMaint(), p.MarginMaint())
	}
	if !back.LotSize().Equal(p.LotSize()) {
		t.Errorf("lot size = %s, want %s", back.LotSize(), p.LotSize())
	}
	if _, ok := back.MaxQuantity(); ok {
		t.Error("MaxQuantity ok = true, want absent to stay absent")
	}
	if _, ok := back.MinNotional(); ok {
		t.Error("MinNotional ok = true, want absent to stay absent")
	}
	if back.TsEvent() != p.TsEvent() || back.TsInit() != p.TsInit() {
		t.Errorf("timestamps = %s %s, want %s %s", back.TsEvent(), back.TsInit(), p.TsEvent(), p.TsInit())
	}
}

func TestBinaryCryptoPerpetual_RoundTripFull(t *testing.T) {
	p := newTestPerpetual(t,
		instrument.WithLotSize(types.MustQuantity(0.01, 3)),
		instrument.WithMaxQuantity(types.MustQuantity(10_000, 3)),
		instrument.WithMinQuantity(types.MustQuantity(0.001, 3)),
		instrument.WithMaxNotional(types.MustMoney(1_000_000, types.USDT)),
		instrument.WithMinNotional(types.MustMoney(10, types.USDT)),
		instrument.WithMaxPrice(types.MustPrice(99_999.99, 2)),
		instrument.WithMinPrice(types.MustPrice(0.01, 2)),
	)

	rec, err := FromModel(p)
	if err != nil {
		t.Fatalf("FromModel unexpected error: %v", err)
	}
	back, err := rec.ToModel()
	if err != nil {
		t.Fatalf("ToModel unexpected error: %v", err)
	}

	if maxQ, ok := back.MaxQuantity(); !ok || !maxQ.Equal(types.MustQuantity(10_000, 3)) {
		t.Errorf("MaxQuantity = %v %v, want 10000.000 true", maxQ, ok)
	}
	if minQ, ok := back.MinQuantity(); !ok || !minQ.Equal(types.MustQuantity(0.001, 3)) {
		t.Errorf("MinQuantity = %v %v, want 0.001 true", minQ, ok)
	}
	if maxN, ok := back.MaxNotional(); !ok || maxN.String() != "1000000.000000 USDT" {
		t.Errorf("MaxNotional = %v %v, want 1000000.000000 USDT true", maxN, ok)
	}
	if minN, ok := back.MinNotional(); !ok || minN.String() != "10.000000 USDT" {
		t.Errorf("MinNotional = %v %v, want 10.000000 USDT true", minN, ok)
	}
	if maxP, ok := back.MaxPrice(); !ok || !maxP.Equal(types.MustPrice(99_999.99, 2)) {
		t.Errorf("MaxPrice = %v %v, want 99999.99 true", maxP, ok)
	}
	if minP, ok := back.MinPrice(); !ok || !minP.Equal(types.MustPrice(0.01, 2)) {
		t.Errorf("MinPrice = %v %v, want 0.01 true", minP, ok)
	}
	if !back.LotSize().Equal(types.MustQuantity(0.01, 3)) {
		t.Errorf("LotSize = %s, want 0.010", back.LotSize())
	}
}

func TestBinaryCryptoPerpetual_FieldTooLong(t *testing.T) {
	long := instrument.Symbol(strings.Repeat("X", 33))
	p, err := instrument.NewCryptoPerpetual(
		instrument.MustID(long, "BINANCE"), long,
		types.ETH, types.USDT, types.USDT, false,
		2, 3,
		types.MustPrice(0.01, 2), types.MustQuantity(0.001, 3),
		decimal.MustNew(2, 4), decimal.MustNew(4, 4),
		decimal.MustNew(1, 2), decimal.MustNew(5, 3),
		0, 0,
	)
	if err != nil {
		t.Fatalf("NewCryptoPerpetual unexpected error: %v", err)
	}

	if _, err := FromModel(p); !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("FromModel error = %v, want ErrFieldTooLong", err)
	}
}

func TestMapper_WriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "definitions.bin")

	perps := []instrument.CryptoPerpetual{
		newTestPerpetual(t),
		newTestPerpetual(t,
			instrument.WithMinQuantity(types.MustQuantity(0.001, 3)),
			instrument.WithMinNotional(types.MustMoney(10, types.USDT)),
		),
	}

	writer := NewWriter[BinaryCryptoPerpetual](path)
	if err := writer.Open(); err != nil {
		t.Fatalf("Open unexpected error: %v", err)
	}
	for _, p := range perps {
		rec, err := FromModel(p)
		if err != nil {
			t.Fatalf("FromModel unexpected error: %v", err)
		}
		if err := writer.Write(rec); err != nil {
			t.Fatalf("Write unexpected error: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close unexpected error: %v", err)
	}

	reader := NewReader[BinaryCryptoPerpetual](path)
	if err := reader.Open(); err != nil {
		t.Fatalf("Open unexpected error: %v", err)
	}
	defer reader.Close()

	count, err := reader.EntryCount()
	if err != nil {
		t.Fatalf("EntryCount unexpected error: %v", err)
	}
	if count != int64(len(perps)) {
		t.Fatalf("EntryCount = %d, want %d", count, len(perps))
	}

	for i, want := range perps {
		var rec BinaryCryptoPerpetual
		if err := reader.Read(int64(i), &rec); err != nil {
			t.Fatalf("Read(%d) unexpected error: %v", i, err)
		}
		got, err := rec.ToModel()
		if err != nil {
			t.Fatalf("ToModel unexpected error: %v", err)
		}
		if got.ID() != want.ID() {
			t.Errorf("record %d id = %s, want %s", i, got.ID(), want.ID())
		}
		if minN, ok := got.MinNotional(); ok != (i == 1) {
			t.Errorf("record %d MinNotional = %v %v", i, minN, ok)
		}
	}

	var rec BinaryCryptoPerpetual
	if err := reader.Read(count, &rec); !errors.Is(err, ErrEof) {
		t.Errorf("Read past end error = %v, want ErrEof", err)
	}
}
