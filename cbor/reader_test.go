package cbor

import (
	"testing"

	"github.com/cdpwire/codec/event"
	"github.com/cdpwire/codec/status"
)

func TestDecodeEmptyObject(t *testing.T) {
	rec := &event.Recorder{}
	st := Decode([]byte{0xbf, 0xff}, rec)
	if !st.Ok() {
		t.Fatalf("Decode: %v", st)
	}
	want := []event.Kind{event.KindObjectBegin, event.KindObjectEnd}
	if len(rec.Events) != len(want) {
		t.Fatalf("got %d events, want %d", len(rec.Events), len(want))
	}
}

func TestDecodeRejectsNonMapStart(t *testing.T) {
	rec := &event.Recorder{}
	st := Decode([]byte{0x01}, rec)
	if st.Ok() {
		t.Fatal("Decode accepted a non-map top-level byte")
	}
	if st.Kind != status.CBORInvalidStartByte {
		t.Fatalf("Kind = %v, want CBORInvalidStartByte", st.Kind)
	}
}

func TestDecodeNoInput(t *testing.T) {
	rec := &event.Recorder{}
	st := Decode(nil, rec)
	if st.Kind != status.CBORNoInput {
		t.Fatalf("Kind = %v, want CBORNoInput", st.Kind)
	}
}

func TestDecodeNestedArray(t *testing.T) {
	var b []byte
	b = AppendMapHeaderIndefinite(b)
	b = AppendUTF16String(b, []uint16{'a'})
	b = AppendArrayHeaderIndefinite(b)
	b = AppendSigned(b, 1)
	b = AppendSigned(b, 2)
	b = AppendBreak(b)
	b = AppendBreak(b)

	rec := &event.Recorder{}
	st := Decode(b, rec)
	if !st.Ok() {
		t.Fatalf("Decode: %v", st)
	}
	want := []event.Kind{
		event.KindObjectBegin, event.KindString, event.KindArrayBegin,
		event.KindInt, event.KindInt, event.KindArrayEnd, event.KindObjectEnd,
	}
	if len(rec.Events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(rec.Events), len(want), rec.Events)
	}
	for i, k := range want {
		if rec.Events[i].Kind != k {
			t.Errorf("event %d: Kind = %v, want %v", i, rec.Events[i].Kind, k)
		}
	}
}

func TestDecodeUnexpectedEOFInMap(t *testing.T) {
	// Opens a map, then nothing: no key, no break.
	b := []byte{0xbf}
	rec := &event.Recorder{}
	st := Decode(b, rec)
	if st.Kind != status.CBORUnexpectedEOFInMap {
		t.Fatalf("Kind = %v, want CBORUnexpectedEOFInMap", st.Kind)
	}
}

func TestDecodeUnexpectedEOFAfterMapKey(t *testing.T) {
	// A key with nothing following it: no value, no break.
	var b []byte
	b = AppendMapHeaderIndefinite(b)
	b = AppendUTF16String(b, []uint16{'a'})
	rec := &event.Recorder{}
	st := Decode(b, rec)
	if st.Kind != status.CBORUnexpectedEOFExpectedValue {
		t.Fatalf("Kind = %v, want CBORUnexpectedEOFExpectedValue", st.Kind)
	}
}

func TestDecodeInvalidMapKey(t *testing.T) {
	// A map whose "key" is an integer rather than a byte string.
	b := []byte{0xbf, 0x01, 0xff}
	rec := &event.Recorder{}
	st := Decode(b, rec)
	if st.Kind != status.CBORInvalidMapKey {
		t.Fatalf("Kind = %v, want CBORInvalidMapKey", st.Kind)
	}
}

// Depth guard: 1001 nested arrays inside the top-level map must
// trip the stack limit rather than recursing unboundedly.
func TestDecodeStackLimitExceeded(t *testing.T) {
	var b []byte
	b = AppendMapHeaderIndefinite(b)
	b = AppendUTF16String(b, []uint16{'a'})
	const depth = 1001
	for i := 0; i < depth; i++ {
		b = AppendArrayHeaderIndefinite(b)
	}
	for i := 0; i < depth; i++ {
		b = AppendBreak(b)
	}
	b = AppendBreak(b)

	rec := &event.Recorder{}
	st := Decode(b, rec)
	if st.Kind != status.CBORStackLimitExceeded {
		t.Fatalf("Kind = %v, want CBORStackLimitExceeded", st.Kind)
	}
}

// Indefinite-length initial bytes other than the container sentinels
// (an "indefinite integer" 0x1f/0x3f, an indefinite byte or text
// string 0x5f/0x7f) are profile violations, not zero values.
func TestDecodeRejectsIndefiniteNonContainers(t *testing.T) {
	cases := [][]byte{
		{0xbf, 0x42, 0x61, 0x00, 0x1f, 0xff},
		{0xbf, 0x42, 0x61, 0x00, 0x3f, 0xff},
		{0xbf, 0x42, 0x61, 0x00, 0x5f, 0xff, 0xff},
		{0xbf, 0x42, 0x61, 0x00, 0x7f, 0xff, 0xff},
	}
	for _, b := range cases {
		rec := &event.Recorder{}
		st := Decode(b, rec)
		if st.Kind != status.CBORUnsupportedValue {
			t.Errorf("Decode(%x) Kind = %v, want CBORUnsupportedValue", b, st.Kind)
		}
	}
}

func TestDecodeRejectsIndefiniteMapKey(t *testing.T) {
	// An indefinite-length byte string (0x5f) in key position.
	b := []byte{0xbf, 0x5f, 0xff, 0xff}
	rec := &event.Recorder{}
	st := Decode(b, rec)
	if st.Kind != status.CBORInvalidMapKey {
		t.Fatalf("Kind = %v, want CBORInvalidMapKey", st.Kind)
	}
}

func TestDecodeUnsupportedTag(t *testing.T) {
	// Tag 0 (not 22) is not part of the profile.
	var b []byte
	b = AppendMapHeaderIndefinite(b)
	b = AppendUTF16String(b, []uint16{'a'})
	b = append(b, 0xc0) // tag 0
	b = AppendUTF8String(b, "x")
	b = AppendBreak(b)

	rec := &event.Recorder{}
	st := Decode(b, rec)
	if st.Kind != status.CBORUnsupportedValue {
		t.Fatalf("Kind = %v, want CBORUnsupportedValue", st.Kind)
	}
}

func TestDecodeBinaryTagSurfacesAsBase64String(t *testing.T) {
	var b []byte
	b = AppendMapHeaderIndefinite(b)
	b = AppendUTF16String(b, []uint16{'k'})
	b = AppendBinary(b, []byte{0xff, 0x00, 0xaa})
	b = AppendBreak(b)

	rec := &event.Recorder{}
	st := Decode(b, rec)
	if !st.Ok() {
		t.Fatalf("Decode: %v", st)
	}
	// Events: ObjectBegin, String("k"), String(base64), ObjectEnd.
	if len(rec.Events) != 4 || rec.Events[2].Kind != event.KindString {
		t.Fatalf("unexpected events: %+v", rec.Events)
	}
	got := string(toRunes(rec.Events[2].Str))
	want := "/wCq" // base64 of 0xff 0x00 0xaa
	if got != want {
		t.Fatalf("base64 payload = %q, want %q", got, want)
	}
}

func TestDecodePositionReportedOnError(t *testing.T) {
	// Map opens, one valid key/value pair, then an invalid second key.
	var b []byte
	b = AppendMapHeaderIndefinite(b)
	b = AppendUTF16String(b, []uint16{'a'})
	b = AppendSigned(b, 1)
	firstPairEnd := len(b)
	b = append(b, 0x01) // integer where a map key (byte string) is expected

	rec := &event.Recorder{}
	st := Decode(b, rec)
	if st.Kind != status.CBORInvalidMapKey {
		t.Fatalf("Kind = %v, want CBORInvalidMapKey", st.Kind)
	}
	if st.Pos != int64(firstPairEnd) {
		t.Fatalf("Pos = %d, want %d", st.Pos, firstPairEnd)
	}
}
