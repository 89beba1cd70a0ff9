package cbor

import (
	"encoding/binary"
	"math"
)

// writeItemStart appends the initial byte (and, for values that don't
// fit in the additional-info field itself, the multi-byte payload) for
// major type major and unsigned value v. The width class, 1/2/4/8
// bytes, is chosen at the 2^8, 2^16 and 2^32 boundaries.
func writeItemStart(b []byte, major uint8, v uint64) []byte {
	switch {
	case v < addInfo1Byte:
		return append(b, makeByte(major, uint8(v)))
	case v < 1<<8:
		b = append(b, makeByte(major, addInfo1Byte))
		return append(b, uint8(v))
	case v < 1<<16:
		b = append(b, makeByte(major, addInfo2Byte))
		return binary.BigEndian.AppendUint16(b, uint16(v))
	case v < 1<<32:
		b = append(b, makeByte(major, addInfo4Byte))
		return binary.BigEndian.AppendUint32(b, uint32(v))
	default:
		b = append(b, makeByte(major, addInfo8Byte))
		return binary.BigEndian.AppendUint64(b, v)
	}
}

// AppendUnsigned appends v as a CBOR unsigned integer (major type 0).
func AppendUnsigned(b []byte, v uint64) []byte {
	return writeItemStart(b, majorTypeUint, v)
}

// AppendSigned appends v as a CBOR integer: major type 0 for v >= 0,
// major type 1 (encoding -(v+1)) for v < 0.
func AppendSigned(b []byte, v int32) []byte {
	if v >= 0 {
		return writeItemStart(b, majorTypeUint, uint64(v))
	}
	return writeItemStart(b, majorTypeNegInt, uint64(-(int64(v) + 1)))
}

// AppendUTF16String appends s as a CBOR byte string (major type 2)
// whose payload is each UTF-16 code unit in little-endian order — the
// one deliberate RFC 7049 deviation this profile carries.
func AppendUTF16String(b []byte, s []uint16) []byte {
	b = writeItemStart(b, majorTypeBytes, uint64(len(s))*2)
	for _, u := range s {
		b = append(b, byte(u), byte(u>>8))
	}
	return b
}

// AppendUTF8String appends s as a CBOR text string (major type 3).
// The profile requires every byte to have its high bit clear; this
// encoder does not enforce that on the way out and trusts its caller
// to pass ASCII. The reader rejects what a misbehaving caller wrote.
func AppendUTF8String(b []byte, s string) []byte {
	b = writeItemStart(b, majorTypeText, uint64(len(s)))
	return append(b, s...)
}

// AppendBinary appends data as a tag-22 (base64-hint) wrapped byte
// string, the profile's "arbitrary binary blob" encoding.
func AppendBinary(b []byte, data []byte) []byte {
	b = append(b, InitialByteTag22)
	b = writeItemStart(b, majorTypeBytes, uint64(len(data)))
	return append(b, data...)
}

// AppendDouble appends v as a CBOR double (major 7, additional info
// 27) followed by its IEEE-754 bit pattern, big-endian.
func AppendDouble(b []byte, v float64) []byte {
	b = append(b, InitialByteDouble)
	return binary.BigEndian.AppendUint64(b, math.Float64bits(v))
}

// AppendBool appends v as 0xf4 (false) or 0xf5 (true).
func AppendBool(b []byte, v bool) []byte {
	if v {
		return append(b, InitialByteTrue)
	}
	return append(b, InitialByteFalse)
}

// AppendNull appends 0xf6.
func AppendNull(b []byte) []byte { return append(b, InitialByteNull) }

// AppendMapHeaderIndefinite appends 0xbf, opening an indefinite-length map.
func AppendMapHeaderIndefinite(b []byte) []byte { return append(b, InitialByteMapIndef) }

// AppendArrayHeaderIndefinite appends 0x9f, opening an indefinite-length array.
func AppendArrayHeaderIndefinite(b []byte) []byte { return append(b, InitialByteArrayIndef) }

// AppendBreak appends 0xff, closing the innermost indefinite-length container.
func AppendBreak(b []byte) []byte { return append(b, InitialByteBreak) }
