package cbor

import (
	"encoding/base64"

	"github.com/cdpwire/codec/event"
	"github.com/cdpwire/codec/status"
)

// maxDepth bounds the reader's recursion: any input
// nesting deeper than this produces *_STACK_LIMIT_EXCEEDED rather than
// exhausting the host stack.
const maxDepth = 1000

// Decode walks a profiled CBOR byte span and delivers events to h.
// The first byte of b must be 0xbf (an indefinite-length map); any
// other leading byte is BINARY_ENCODING_INVALID_START_BYTE.
//
// On success h receives exactly one ObjectBegin/ObjectEnd-bracketed
// stream of events; on failure h receives exactly one Error call. The
// returned Status mirrors whatever was passed to h.Error, or OK.
func Decode(b []byte, h event.Handler) status.Status {
	d := decoder{total: len(b)}
	if len(b) == 0 {
		return d.fail(h, status.CBORNoInput, b)
	}
	if b[0] != InitialByteMapIndef {
		return d.fail(h, status.CBORInvalidStartByte, b)
	}
	_, st := d.parseMap(b, h, 0)
	return st
}

type decoder struct {
	total int
}

// pos returns the byte offset into the original input at which
// remaining begins: the number of bytes already consumed.
func (d decoder) pos(remaining []byte) int64 {
	return int64(d.total - len(remaining))
}

func (d decoder) fail(h event.Handler, kind status.Kind, remaining []byte) status.Status {
	st := status.At(kind, d.pos(remaining))
	h.Error(st)
	return st
}

// parseMap consumes the 0xbf at the front of b, delivers ObjectBegin,
// zero or more (String key, value) pairs, and ObjectEnd, and returns
// the bytes following the matching 0xff.
func (d decoder) parseMap(b []byte, h event.Handler, depth int) ([]byte, status.Status) {
	rest := b[1:]
	h.ObjectBegin()
	for {
		if len(rest) == 0 {
			return rest, d.fail(h, status.CBORUnexpectedEOFInMap, rest)
		}
		if rest[0] == InitialByteBreak {
			rest = rest[1:]
			h.ObjectEnd()
			return rest, status.OKStatus
		}
		key, keyRest, err := ReadUTF16StringBytes(rest)
		if err != nil {
			return rest, d.fail(h, status.CBORInvalidMapKey, rest)
		}
		h.String(key)
		var st status.Status
		rest, st = d.parseValue(keyRest, h, depth+1)
		if !st.Ok() {
			return rest, st
		}
	}
}

// parseArray is parseMap's analogue without keys.
func (d decoder) parseArray(b []byte, h event.Handler, depth int) ([]byte, status.Status) {
	rest := b[1:]
	h.ArrayBegin()
	for {
		if len(rest) == 0 {
			return rest, d.fail(h, status.CBORUnexpectedEOFInArray, rest)
		}
		if rest[0] == InitialByteBreak {
			rest = rest[1:]
			h.ArrayEnd()
			return rest, status.OKStatus
		}
		var st status.Status
		rest, st = d.parseValue(rest, h, depth+1)
		if !st.Ok() {
			return rest, st
		}
	}
}

// parseValue dispatches one value: first on whole-byte
// sentinels, then on the major-type field.
func (d decoder) parseValue(b []byte, h event.Handler, depth int) ([]byte, status.Status) {
	if depth >= maxDepth {
		return b, d.fail(h, status.CBORStackLimitExceeded, b)
	}
	if len(b) == 0 {
		return b, d.fail(h, status.CBORUnexpectedEOFExpectedValue, b)
	}

	switch b[0] {
	case InitialByteFalse:
		h.Bool(false)
		return b[1:], status.OKStatus
	case InitialByteTrue:
		h.Bool(true)
		return b[1:], status.OKStatus
	case InitialByteNull:
		h.Null()
		return b[1:], status.OKStatus
	case InitialByteDouble:
		v, rest, err := ReadDoubleBytes(b)
		if err != nil {
			return b, d.fail(h, status.CBORInvalidDouble, b)
		}
		h.Double(v)
		return rest, status.OKStatus
	case InitialByteArrayIndef:
		return d.parseArray(b, h, depth)
	case InitialByteMapIndef:
		return d.parseMap(b, h, depth)
	}

	// The only indefinite-length initial bytes the profile knows are
	// the container sentinels handled above (and the stop byte, which
	// the container loops consume). Anything else carrying additional
	// info 31, such as an indefinite-length integer or string, is
	// outside the profile.
	if getAddInfo(b[0]) == addInfoIndefinite {
		return b, d.fail(h, status.CBORUnsupportedValue, b)
	}

	switch getMajorType(b[0]) {
	case majorTypeUint, majorTypeNegInt:
		v, rest, err := ReadSignedBytes(b)
		if err != nil {
			return b, d.fail(h, status.CBORInvalidSigned, b)
		}
		h.Int(v)
		return rest, status.OKStatus

	case majorTypeBytes:
		v, rest, err := ReadUTF16StringBytes(b)
		if err != nil {
			return b, d.fail(h, status.CBORInvalidString16, b)
		}
		h.String(v)
		return rest, status.OKStatus

	case majorTypeText:
		v, rest, err := ReadUTF8StringBytes(b)
		if err != nil {
			if err == ErrString8Not7Bit {
				return b, d.fail(h, status.CBORString8MustBe7Bit, b)
			}
			return b, d.fail(h, status.CBORInvalidString8, b)
		}
		h.String(widenASCII(v))
		return rest, status.OKStatus

	case majorTypeTag:
		// Only tag 22 (base64-hint) followed by a byte string is
		// accepted. The event model has no raw binary variant, so the
		// decoded bytes are surfaced the way JSON itself would
		// represent them: base64 text in a String event.
		raw, rest, err := ReadBinaryBytes(b)
		if err != nil {
			return b, d.fail(h, status.CBORUnsupportedValue, b)
		}
		h.String(widenASCII(base64.StdEncoding.EncodeToString(raw)))
		return rest, status.OKStatus

	default:
		return b, d.fail(h, status.CBORUnsupportedValue, b)
	}
}

// widenASCII converts a 7-bit-ASCII string to UTF-16 code units.
// Every caller of this helper has already verified 7-bit cleanliness
// (ReadUTF8StringBytes, or base64's own fixed alphabet), so each byte
// is numerically identical to its code unit.
func widenASCII(s string) []uint16 {
	out := make([]uint16, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = uint16(s[i])
	}
	return out
}
