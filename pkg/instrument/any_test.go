package instrument

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/avalder/keel/pkg/types"
)

func TestAny_Kind(t *testing.T) {
	p := newTestPerpetual(t)
	f := newTestFuture(t)

	anyP := p.IntoAny()
	anyF := f.IntoAny()

	if anyP.Kind() != KindCryptoPerpetual {
		t.Errorf("Kind() = %s, want crypto_perpetual", anyP.Kind())
	}
	if anyF.Kind() != KindCryptoFuture {
		t.Errorf("Kind() = %s, want crypto_future", anyF.Kind())
	}

	if got, ok := anyP.AsCryptoPerpetual(); !ok || !got.Equal(p) {
		t.Error("AsCryptoPerpetual() lost the variant")
	}
	if _, ok := anyP.AsCryptoFuture(); ok {
		t.Error("AsCryptoFuture() on a perpetual reported ok")
	}
}

func TestAny_ReportsThroughInterface(t *testing.T) {
	p := newTestPerpetual(t, WithMinQuantity(types.MustQuantity(0.001, 3)))

	var viaInterface Instrument = p.IntoAny()

	if viaInterface.PricePrecision() != p.PricePrecision() {
		t.Errorf("PricePrecision via interface = %d, want %d", viaInterface.PricePrecision(), p.PricePrecision())
	}
	if viaInterface.ID() != p.ID() {
		t.Errorf("ID via interface = %s, want %s", viaInterface.ID(), p.ID())
	}
	gotMin, gotOk := viaInterface.MinQuantity()
	wantMin, wantOk := p.MinQuantity()
	if gotOk != wantOk || gotMin != wantMin {
		t.Errorf("MinQuantity via interface = %v %v, want %v %v", gotMin, gotOk, wantMin, wantOk)
	}
	if viaInterface.SizeIncrement() != p.SizeIncrement() {
		t.Error("SizeIncrement via interface differs from the variant")
	}
}

func TestAny_Equal(t *testing.T) {
	p := newTestPerpetual(t)
	same := newTestPerpetual(t).IntoAny()
	other := newTestFuture(t).IntoAny()

	if !p.IntoAny().Equal(same) {
		t.Error("same id unions compare unequal")
	}
	if p.IntoAny().Equal(other) {
		t.Error("different id unions compare equal")
	}
}

func TestAny_ZeroPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("reading a zero Any expected panic, got none")
		}
	}()
	var a Any
	_ = a.ID()
}

func TestAny_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		value    Any
		wantKind Kind
	}{
		{"perpetual", newTestPerpetual(t).IntoAny(), KindCryptoPerpetual},
		{"future", newTestFuture(t).IntoAny(), KindCryptoFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			if err != nil {
				t.Fatalf("Marshal unexpected error: %v", err)
			}
			if !strings.Contains(string(data), `"kind":"`+tt.wantKind.String()+`"`) {
				t.Errorf("payload missing kind tag: %s", data)
			}

			var back Any
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal unexpected error: %v", err)
			}
			if back.Kind() != tt.wantKind {
				t.Errorf("Kind after round trip = %s, want %s", back.Kind(), tt.wantKind)
			}
			if !back.Equal(tt.value) {
				t.Error("round trip changed identity")
			}
			if back.PriceIncrement() != tt.value.PriceIncrement() {
				t.Error("round trip changed price increment")
			}
		})
	}
}

func TestAny_JSONUnknownKind(t *testing.T) {
	var a Any
	err := json.Unmarshal([]byte(`{"kind":"equity"}`), &a)
	if err == nil {
		t.Error("Unmarshal of unknown kind expected error, got nil")
	}
}

func TestAny_MarshalZeroFails(t *testing.T) {
	var a Any
	if _, err := json.Marshal(a); err == nil {
		t.Error("Marshal of zero Any expected error, got nil")
	}
}
