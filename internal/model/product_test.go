package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFeatureListRoundTrip(t *testing.T) {
	f := FeatureList{"Ad-free", "Offline download"}
	v, err := f.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	var got FeatureList
	if err := got.Scan(v); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != 2 || got[0] != "Ad-free" || got[1] != "Offline download" {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestFeatureListScanString(t *testing.T) {
	var f FeatureList
	if err := f.Scan(`["a","b","c"]`); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if len(f) != 3 || f[2] != "c" {
		t.Fatalf("unexpected: %+v", f)
	}
}

func TestFeatureListNil(t *testing.T) {
	var f FeatureList
	v, err := f.Value()
	if err != nil || v != nil {
		t.Fatalf("nil value: %v %v", v, err)
	}
	if err := f.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if f != nil {
		t.Fatalf("expected nil list")
	}
}

func TestFeatureListScanUnsupported(t *testing.T) {
	var f FeatureList
	if err := f.Scan(42); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestPriceMarshalsAsNumber(t *testing.T) {
	p := Product{Price: decimal.NewFromInt(54900)}
	// MarshalJSONWithoutQuotes is flipped in this package's init.
	b, err := p.Price.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "54900" {
		t.Fatalf("price should serialize unquoted: %s", b)
	}
}
