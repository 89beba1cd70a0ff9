package cbor

import "strconv"

// Errors returned by the primitive encode/decode functions
// (primitives_read.go, primitives_write.go). These are plain Go
// errors local to the byte-slice layer; the reader above
// (reader.go) translates them into status.Status values
// carrying a byte offset.
var (
	// ErrShortBytes is returned when a primitive decoder is given
	// fewer bytes than the encoding it is reading requires.
	ErrShortBytes error = errShort{}

	// ErrString8Not7Bit is returned when a UTF-8 string primitive
	// (major type 3) contains a byte with the high bit set; the
	// profile requires 7-bit-clean payloads.
	ErrString8Not7Bit error = errString8Not7Bit{}

	// ErrOddString16Length is returned when a UTF-16 bytestring
	// primitive (major type 2) has an odd byte length, which cannot
	// hold a whole number of 16-bit code units.
	ErrOddString16Length error = errOddString16Length{}

	// ErrReservedAddInfo is returned when an initial byte carries one
	// of the additional-info values 28..30, which RFC 7049 reserves.
	ErrReservedAddInfo error = errReservedAddInfo{}

	// ErrIndefiniteLength is returned when a primitive decoder is
	// pointed at an initial byte with additional info 31. Indefinite
	// lengths are container framing (0x9f, 0xbf, 0xff) in this
	// profile, never a primitive header.
	ErrIndefiniteLength error = errIndefiniteLength{}
)

type errShort struct{}

func (errShort) Error() string { return "cbor: too few bytes left to read object" }

type errString8Not7Bit struct{}

func (errString8Not7Bit) Error() string { return "cbor: utf-8 string byte has high bit set" }

type errOddString16Length struct{}

func (errOddString16Length) Error() string { return "cbor: utf-16 bytestring has odd byte length" }

type errReservedAddInfo struct{}

func (errReservedAddInfo) Error() string { return "cbor: reserved additional-info value in initial byte" }

type errIndefiniteLength struct{}

func (errIndefiniteLength) Error() string { return "cbor: indefinite length not allowed here" }

// InvalidPrefixError is returned when a primitive decoder is pointed
// at an initial byte whose major type does not match what it expects.
type InvalidPrefixError struct {
	Want uint8
	Got  uint8
}

func (e InvalidPrefixError) Error() string {
	return "cbor: expected major type " + strconv.Itoa(int(e.Want)) + " but got " + strconv.Itoa(int(e.Got))
}

// UintOverflowError is returned when a decoded unsigned value does not
// fit in the signed 32-bit range the profile requires for the Signed
// primitive.
type UintOverflowError struct {
	Value uint64
}

func (e UintOverflowError) Error() string {
	return "cbor: " + strconv.FormatUint(e.Value, 10) + " overflows int32"
}
