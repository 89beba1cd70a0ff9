package serialize

import (
	"bytes"
	"testing"

	"github.com/cdpwire/codec/cbor"
)

type point struct{ x, y int32 }

func (p point) AppendCBOR(b []byte) []byte {
	b = cbor.AppendMapHeaderIndefinite(b)
	b = cbor.AppendUTF8String(b, "x")
	b = cbor.AppendSigned(b, p.x)
	b = cbor.AppendUTF8String(b, "y")
	b = cbor.AppendSigned(b, p.y)
	return cbor.AppendBreak(b)
}

func TestAppendPrimitives(t *testing.T) {
	cases := []struct {
		v    any
		want []byte
	}{
		{nil, cbor.AppendNull(nil)},
		{true, cbor.AppendBool(nil, true)},
		{int32(5), cbor.AppendSigned(nil, 5)},
		{3.5, cbor.AppendDouble(nil, 3.5)},
		{"hi", cbor.AppendUTF8String(nil, "hi")},
	}
	for _, c := range cases {
		got, ok := Append(nil, c.v)
		if !ok {
			t.Errorf("Append(%v) ok = false", c.v)
			continue
		}
		if !bytes.Equal(got, c.want) {
			t.Errorf("Append(%v) = %x, want %x", c.v, got, c.want)
		}
	}
}

func TestAppendUnrecognizedKind(t *testing.T) {
	_, ok := Append(nil, struct{ N int }{N: 1})
	if ok {
		t.Fatal("Append accepted an unrecognized kind")
	}
}

func TestAppendEncodable(t *testing.T) {
	got, ok := Append(nil, point{x: 1, y: 2})
	if !ok {
		t.Fatal("Append(point) ok = false")
	}
	want := point{x: 1, y: 2}.AppendCBOR(nil)
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestAppendSlice(t *testing.T) {
	got, ok := AppendSlice[int32](nil, []int32{1, 2, 3})
	if !ok {
		t.Fatal("AppendSlice ok = false")
	}
	want := cbor.AppendArrayHeaderIndefinite(nil)
	want = cbor.AppendSigned(want, 1)
	want = cbor.AppendSigned(want, 2)
	want = cbor.AppendSigned(want, 3)
	want = cbor.AppendBreak(want)
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestAppendSliceOfAny(t *testing.T) {
	got, ok := Append(nil, []any{int32(1), "a", true})
	if !ok {
		t.Fatal("Append([]any) ok = false")
	}
	want := cbor.AppendArrayHeaderIndefinite(nil)
	want = cbor.AppendSigned(want, 1)
	want = cbor.AppendUTF8String(want, "a")
	want = cbor.AppendBool(want, true)
	want = cbor.AppendBreak(want)
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestAppendPtr(t *testing.T) {
	v := int32(7)
	got, ok := AppendPtr(nil, &v)
	if !ok {
		t.Fatal("AppendPtr ok = false")
	}
	want := cbor.AppendSigned(nil, 7)
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}

	gotNil, ok := AppendPtr[int32](nil, nil)
	if !ok || !bytes.Equal(gotNil, cbor.AppendNull(nil)) {
		t.Fatalf("AppendPtr(nil) = %x, ok=%v", gotNil, ok)
	}
}
