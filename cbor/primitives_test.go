package cbor

import (
	"bytes"
	"encoding/hex"
	"math"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

// Unsigned 23 fits in the initial byte.
func TestAppendUnsigned23(t *testing.T) {
	got := AppendUnsigned(nil, 23)
	want := mustHex(t, "17")
	if !bytes.Equal(got, want) {
		t.Fatalf("AppendUnsigned(23) = %x, want %x", got, want)
	}
	v, rest, err := ReadUnsignedBytes(got)
	if err != nil || v != 23 || len(rest) != 0 {
		t.Fatalf("ReadUnsignedBytes = (%d, %x, %v)", v, rest, err)
	}
}

// Unsigned 500 takes the 2-byte width class.
func TestAppendUnsigned500(t *testing.T) {
	got := AppendUnsigned(nil, 500)
	want := mustHex(t, "1901f4")
	if !bytes.Equal(got, want) {
		t.Fatalf("AppendUnsigned(500) = %x, want %x", got, want)
	}
}

func TestAppendUnsignedWidthClasses(t *testing.T) {
	cases := []struct {
		v    uint64
		want string
	}{
		{0, "00"},
		{23, "17"},
		{24, "1818"},
		{255, "18ff"},
		{256, "190100"},
		{65535, "19ffff"},
		{65536, "1a00010000"},
		{1 << 32, "1b0000000100000000"},
		{math.MaxUint64, "1bffffffffffffffff"},
	}
	for _, c := range cases {
		got := AppendUnsigned(nil, c.v)
		want := mustHex(t, c.want)
		if !bytes.Equal(got, want) {
			t.Errorf("AppendUnsigned(%d) = %x, want %x", c.v, got, want)
		}
	}
}

func TestAppendSignedNegative(t *testing.T) {
	// -1 encodes as major 1, value 0: 0x20.
	got := AppendSigned(nil, -1)
	want := mustHex(t, "20")
	if !bytes.Equal(got, want) {
		t.Fatalf("AppendSigned(-1) = %x, want %x", got, want)
	}
	v, rest, err := ReadSignedBytes(got)
	if err != nil || v != -1 || len(rest) != 0 {
		t.Fatalf("ReadSignedBytes(-1 encoding) = (%d, %x, %v)", v, rest, err)
	}
}

func TestAppendSignedPositive(t *testing.T) {
	got := AppendSigned(nil, 1)
	want := mustHex(t, "01")
	if !bytes.Equal(got, want) {
		t.Fatalf("AppendSigned(1) = %x, want %x", got, want)
	}
}

func TestSignedRoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 23, -24, -25, 500, -500, 1 << 20, -(1 << 20), math.MinInt32, math.MaxInt32} {
		enc := AppendSigned(nil, v)
		got, rest, err := ReadSignedBytes(enc)
		if err != nil {
			t.Errorf("ReadSignedBytes(%d) error: %v", v, err)
			continue
		}
		if got != v || len(rest) != 0 {
			t.Errorf("round trip of %d = (%d, %d leftover bytes)", v, got, len(rest))
		}
	}
}

// UTF-16 "Hello, 🌎." as a little-endian byte string.
func TestAppendUTF16StringHelloWorld(t *testing.T) {
	units := []uint16{'H', 'e', 'l', 'l', 'o', ',', ' ', 0xd83c, 0xdf0e, '.'}
	got := AppendUTF16String(nil, units)
	if got[0] != 0x54 {
		t.Fatalf("initial byte = %#x, want 0x54", got[0])
	}
	if len(got) != 1+20 {
		t.Fatalf("len(got) = %d, want 21", len(got))
	}
	// Low byte first for each code unit.
	if got[1] != 'H' || got[2] != 0 {
		t.Fatalf("first code unit bytes = %x %x", got[1], got[2])
	}
	decoded, rest, err := ReadUTF16StringBytes(got)
	if err != nil {
		t.Fatalf("ReadUTF16StringBytes: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("leftover bytes: %x", rest)
	}
	if len(decoded) != len(units) {
		t.Fatalf("decoded len = %d, want %d", len(decoded), len(units))
	}
	for i := range units {
		if decoded[i] != units[i] {
			t.Errorf("decoded[%d] = %x, want %x", i, decoded[i], units[i])
		}
	}
}

func TestReadUTF16OddLengthRejected(t *testing.T) {
	// Byte string of length 1: header 0x41 + one byte.
	b := []byte{0x41, 0x00}
	_, _, err := ReadUTF16StringBytes(b)
	if err != ErrOddString16Length {
		t.Fatalf("err = %v, want ErrOddString16Length", err)
	}
}

func TestUTF8StringRoundTrip(t *testing.T) {
	got := AppendUTF8String(nil, "abc")
	want := mustHex(t, "63616263")
	if !bytes.Equal(got, want) {
		t.Fatalf("AppendUTF8String = %x, want %x", got, want)
	}
	s, rest, err := ReadUTF8StringBytes(got)
	if err != nil || s != "abc" || len(rest) != 0 {
		t.Fatalf("ReadUTF8StringBytes = (%q, %x, %v)", s, rest, err)
	}
}

func TestUTF8StringRejectsHighBit(t *testing.T) {
	// Text string of length 1 containing 0x80.
	b := []byte{0x61, 0x80}
	_, _, err := ReadUTF8StringBytes(b)
	if err != ErrString8Not7Bit {
		t.Fatalf("err = %v, want ErrString8Not7Bit", err)
	}
}

func TestAppendBinaryTag22(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	got := AppendBinary(nil, data)
	if got[0] != InitialByteTag22 {
		t.Fatalf("first byte = %#x, want tag 22", got[0])
	}
	out, rest, err := ReadBinaryBytes(got)
	if err != nil {
		t.Fatalf("ReadBinaryBytes: %v", err)
	}
	if !bytes.Equal(out, data) || len(rest) != 0 {
		t.Fatalf("ReadBinaryBytes = (%x, %x)", out, rest)
	}
}

// Double 1/3.
func TestAppendDoubleOneThird(t *testing.T) {
	got := AppendDouble(nil, 1.0/3)
	want := mustHex(t, "fb3fd5555555555555")
	if !bytes.Equal(got, want) {
		t.Fatalf("AppendDouble(1/3) = %x, want %x", got, want)
	}
	v, rest, err := ReadDoubleBytes(got)
	if err != nil || v != 1.0/3 || len(rest) != 0 {
		t.Fatalf("ReadDoubleBytes = (%v, %x, %v)", v, rest, err)
	}
}

func TestDoubleRoundTripSpecials(t *testing.T) {
	for _, v := range []float64{0, 1, -1, math.Pi, math.SmallestNonzeroFloat64, math.MaxFloat64, math.Inf(1), math.Inf(-1)} {
		enc := AppendDouble(nil, v)
		got, rest, err := ReadDoubleBytes(enc)
		if err != nil || len(rest) != 0 {
			t.Errorf("round trip of %v: (%v, %x, %v)", v, got, rest, err)
			continue
		}
		if got != v {
			t.Errorf("round trip of %v = %v", v, got)
		}
	}
	// NaN never compares equal; check via IsNaN.
	got, _, err := ReadDoubleBytes(AppendDouble(nil, math.NaN()))
	if err != nil || !math.IsNaN(got) {
		t.Errorf("NaN round trip = (%v, %v)", got, err)
	}
}

func TestReadSignedRejectsOutOfRange(t *testing.T) {
	// Unsigned just past MaxInt32, and a negative just past MinInt32.
	tooBig := AppendUnsigned(nil, uint64(math.MaxInt32)+1)
	if _, _, err := ReadSignedBytes(tooBig); err == nil {
		t.Error("ReadSignedBytes accepted MaxInt32+1")
	}
	// Major 1 with payload 2^31 decodes to -2^31-1, below MinInt32.
	tooSmall := writeItemStart(nil, majorTypeNegInt, 1<<31)
	if _, _, err := ReadSignedBytes(tooSmall); err == nil {
		t.Error("ReadSignedBytes accepted a value below MinInt32")
	}
}

func TestAppendBoolNull(t *testing.T) {
	if got := AppendBool(nil, true); !bytes.Equal(got, []byte{0xf5}) {
		t.Errorf("AppendBool(true) = %x", got)
	}
	if got := AppendBool(nil, false); !bytes.Equal(got, []byte{0xf4}) {
		t.Errorf("AppendBool(false) = %x", got)
	}
	if got := AppendNull(nil); !bytes.Equal(got, []byte{0xf6}) {
		t.Errorf("AppendNull() = %x", got)
	}
}

func TestContainerHeadersAndBreak(t *testing.T) {
	if got := AppendMapHeaderIndefinite(nil); got[0] != 0xbf {
		t.Errorf("AppendMapHeaderIndefinite = %x", got)
	}
	if got := AppendArrayHeaderIndefinite(nil); got[0] != 0x9f {
		t.Errorf("AppendArrayHeaderIndefinite = %x", got)
	}
	if got := AppendBreak(nil); got[0] != 0xff {
		t.Errorf("AppendBreak = %x", got)
	}
}

func TestReadUnsignedBytesShort(t *testing.T) {
	// addInfo selects a 2-byte payload but only one byte follows.
	_, _, err := ReadUnsignedBytes([]byte{0x19, 0x01})
	if err != ErrShortBytes {
		t.Fatalf("err = %v, want ErrShortBytes", err)
	}
}

// Additional info 31 is container framing, never a primitive header:
// an "indefinite-length integer" or string initial byte is rejected
// outright rather than decoded as a zero value.
func TestPrimitiveReadersRejectIndefiniteHeaders(t *testing.T) {
	if _, _, err := ReadUnsignedBytes([]byte{0x1f}); err != ErrIndefiniteLength {
		t.Errorf("ReadUnsignedBytes(0x1f) err = %v, want ErrIndefiniteLength", err)
	}
	if _, _, err := ReadSignedBytes([]byte{0x3f}); err != ErrIndefiniteLength {
		t.Errorf("ReadSignedBytes(0x3f) err = %v, want ErrIndefiniteLength", err)
	}
	if _, _, err := ReadUTF16StringBytes([]byte{0x5f, 0xff}); err != ErrIndefiniteLength {
		t.Errorf("ReadUTF16StringBytes(0x5f) err = %v, want ErrIndefiniteLength", err)
	}
	if _, _, err := ReadUTF8StringBytes([]byte{0x7f, 0xff}); err != ErrIndefiniteLength {
		t.Errorf("ReadUTF8StringBytes(0x7f) err = %v, want ErrIndefiniteLength", err)
	}
	// Indefinite tag header, and tag 22 wrapping an indefinite string.
	if _, _, err := ReadBinaryBytes([]byte{0xdf, 0x41, 0x00}); err != ErrIndefiniteLength {
		t.Errorf("ReadBinaryBytes(0xdf ...) err = %v, want ErrIndefiniteLength", err)
	}
	if _, _, err := ReadBinaryBytes([]byte{0xd6, 0x5f, 0xff}); err != ErrIndefiniteLength {
		t.Errorf("ReadBinaryBytes(0xd6 0x5f ...) err = %v, want ErrIndefiniteLength", err)
	}
}

func TestReadUnsignedWrongMajorType(t *testing.T) {
	// 0x41 is major type 2 (bytes), length 1.
	_, _, err := ReadUnsignedBytes([]byte{0x41, 0x00})
	if _, ok := err.(InvalidPrefixError); !ok {
		t.Fatalf("err = %v (%T), want InvalidPrefixError", err, err)
	}
}

func TestIsLikelyJSON(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{`{"a":1}`, true},
		{`[1,2,3]`, true},
		{`"hi"`, true},
		{`-1.5`, true},
		{`true`, true},
		{`null`, true},
		{"  \n\t{}", true},
		{"", false},
		{"   ", false},
	}
	for _, c := range cases {
		if got := IsLikelyJSON([]byte(c.in)); got != c.want {
			t.Errorf("IsLikelyJSON(%q) = %v, want %v", c.in, got, c.want)
		}
	}
	// A profiled CBOR map header is never mistaken for JSON.
	if IsLikelyJSON([]byte{0xbf, 0xff}) {
		t.Error("IsLikelyJSON misfired against a CBOR map header")
	}
}
