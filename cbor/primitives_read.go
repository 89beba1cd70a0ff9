package cbor

import (
	"encoding/binary"
	"math"
)

// itemHeader is the decoded (major type, additional-info value,
// header length in bytes) triple for one CBOR initial byte plus its
// optional multi-byte length/value payload.
type itemHeader struct {
	major     uint8
	addInfo   uint8
	value     uint64
	headerLen int
}

// readItemHeader parses the initial byte of b and, if additional info
// selects a multi-byte payload, that payload too. It never looks past
// the header: callers read the item's own payload (string bytes,
// double bits, ...) themselves using headerLen as the offset.
func readItemHeader(b []byte) (itemHeader, error) {
	if len(b) == 0 {
		return itemHeader{}, ErrShortBytes
	}
	first := b[0]
	major := getMajorType(first)
	addInfo := getAddInfo(first)

	switch {
	case addInfo < addInfo1Byte:
		return itemHeader{major: major, addInfo: addInfo, value: uint64(addInfo), headerLen: 1}, nil
	case addInfo == addInfo1Byte:
		if len(b) < 2 {
			return itemHeader{}, ErrShortBytes
		}
		return itemHeader{major: major, addInfo: addInfo, value: uint64(b[1]), headerLen: 2}, nil
	case addInfo == addInfo2Byte:
		if len(b) < 3 {
			return itemHeader{}, ErrShortBytes
		}
		return itemHeader{major: major, addInfo: addInfo, value: uint64(binary.BigEndian.Uint16(b[1:3])), headerLen: 3}, nil
	case addInfo == addInfo4Byte:
		if len(b) < 5 {
			return itemHeader{}, ErrShortBytes
		}
		return itemHeader{major: major, addInfo: addInfo, value: uint64(binary.BigEndian.Uint32(b[1:5])), headerLen: 5}, nil
	case addInfo == addInfo8Byte:
		if len(b) < 9 {
			return itemHeader{}, ErrShortBytes
		}
		return itemHeader{major: major, addInfo: addInfo, value: binary.BigEndian.Uint64(b[1:9]), headerLen: 9}, nil
	case addInfo == addInfoIndefinite:
		// Indefinite lengths exist only as the container framing bytes
		// 0x9f, 0xbf and 0xff, which callers dispatch on before ever
		// reading an item header; on any other major type they are
		// outside the profile.
		return itemHeader{}, ErrIndefiniteLength
	default:
		// additional-info values 28..30 are reserved by RFC 7049 and
		// carry no defined meaning; the profile does not accept them.
		return itemHeader{}, ErrReservedAddInfo
	}
}

// ReadUnsignedBytes decodes a CBOR unsigned integer (major type 0)
// from the front of b and returns the remaining bytes.
func ReadUnsignedBytes(b []byte) (v uint64, rest []byte, err error) {
	h, err := readItemHeader(b)
	if err != nil {
		return 0, b, err
	}
	if h.major != majorTypeUint {
		return 0, b, InvalidPrefixError{Want: majorTypeUint, Got: h.major}
	}
	return h.value, b[h.headerLen:], nil
}

// ReadSignedBytes decodes a CBOR integer in [math.MinInt32,
// math.MaxInt32] (major type 0 or 1) from the front of b.
func ReadSignedBytes(b []byte) (v int32, rest []byte, err error) {
	h, err := readItemHeader(b)
	if err != nil {
		return 0, b, err
	}
	switch h.major {
	case majorTypeUint:
		if h.value > math.MaxInt32 {
			return 0, b, UintOverflowError{Value: h.value}
		}
		return int32(h.value), b[h.headerLen:], nil
	case majorTypeNegInt:
		if h.value > math.MaxInt32 {
			return 0, b, UintOverflowError{Value: h.value}
		}
		return int32(-int64(h.value) - 1), b[h.headerLen:], nil
	default:
		return 0, b, InvalidPrefixError{Want: majorTypeUint, Got: h.major}
	}
}

// ReadUTF16StringBytes decodes a CBOR byte string (major type 2)
// whose payload is little-endian UTF-16 code units.
func ReadUTF16StringBytes(b []byte) (v []uint16, rest []byte, err error) {
	h, err := readItemHeader(b)
	if err != nil {
		return nil, b, err
	}
	if h.major != majorTypeBytes {
		return nil, b, InvalidPrefixError{Want: majorTypeBytes, Got: h.major}
	}
	if h.value%2 != 0 {
		return nil, b, ErrOddString16Length
	}
	payload := b[h.headerLen:]
	if uint64(len(payload)) < h.value {
		return nil, b, ErrShortBytes
	}
	n := int(h.value / 2)
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(payload[2*i]) | uint16(payload[2*i+1])<<8
	}
	return out, payload[h.value:], nil
}

// ReadUTF8StringBytes decodes a CBOR text string (major type 3),
// rejecting any byte with its high bit set.
func ReadUTF8StringBytes(b []byte) (v string, rest []byte, err error) {
	h, err := readItemHeader(b)
	if err != nil {
		return "", b, err
	}
	if h.major != majorTypeText {
		return "", b, InvalidPrefixError{Want: majorTypeText, Got: h.major}
	}
	payload := b[h.headerLen:]
	if uint64(len(payload)) < h.value {
		return "", b, ErrShortBytes
	}
	str := payload[:h.value]
	for _, c := range str {
		if c&0x80 != 0 {
			return "", b, ErrString8Not7Bit
		}
	}
	return string(str), payload[h.value:], nil
}

// ReadBinaryBytes decodes the tag-22-wrapped byte string binary-blob
// encoding.
func ReadBinaryBytes(b []byte) (v []byte, rest []byte, err error) {
	h, err := readItemHeader(b)
	if err != nil {
		return nil, b, err
	}
	if h.major != majorTypeTag || h.value != 22 {
		return nil, b, InvalidPrefixError{Want: majorTypeTag, Got: h.major}
	}
	inner := b[h.headerLen:]
	ih, err := readItemHeader(inner)
	if err != nil {
		return nil, b, err
	}
	if ih.major != majorTypeBytes {
		return nil, b, InvalidPrefixError{Want: majorTypeBytes, Got: ih.major}
	}
	payload := inner[ih.headerLen:]
	if uint64(len(payload)) < ih.value {
		return nil, b, ErrShortBytes
	}
	out := make([]byte, ih.value)
	copy(out, payload[:ih.value])
	return out, payload[ih.value:], nil
}

// ReadDoubleBytes decodes a CBOR double (0xfb plus 8 big-endian
// bytes) from the front of b.
func ReadDoubleBytes(b []byte) (v float64, rest []byte, err error) {
	if len(b) == 0 {
		return 0, b, ErrShortBytes
	}
	if b[0] != InitialByteDouble {
		return 0, b, InvalidPrefixError{Want: majorTypeSimple, Got: getMajorType(b[0])}
	}
	if len(b) < 9 {
		return 0, b, ErrShortBytes
	}
	bits := binary.BigEndian.Uint64(b[1:9])
	return math.Float64frombits(bits), b[9:], nil
}
