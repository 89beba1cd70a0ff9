package cbor

// Major type values, per the top 3 bits of a CBOR initial byte.
const (
	majorTypeUint   = 0
	majorTypeNegInt = 1
	majorTypeBytes  = 2
	majorTypeText   = 3
	majorTypeArray  = 4
	majorTypeMap    = 5
	majorTypeTag    = 6
	majorTypeSimple = 7
)

// Additional-info values that select a multi-byte payload width rather
// than encoding the value directly.
const (
	addInfo1Byte      = 24
	addInfo2Byte      = 25
	addInfo4Byte      = 26
	addInfo8Byte      = 27
	addInfoIndefinite = 31
)

// Simple values under major type 7.
const (
	simpleFalse   = 20
	simpleTrue    = 21
	simpleNull    = 22
	simpleFloat64 = 27
)

// Full initial bytes the profile recognizes as self-contained sentinels
// (no major-type/additional-info decomposition needed to dispatch on
// them).
const (
	InitialByteFalse      byte = majorTypeSimple<<5 | simpleFalse
	InitialByteTrue       byte = majorTypeSimple<<5 | simpleTrue
	InitialByteNull       byte = majorTypeSimple<<5 | simpleNull
	InitialByteDouble     byte = majorTypeSimple<<5 | simpleFloat64
	InitialByteArrayIndef byte = majorTypeArray<<5 | addInfoIndefinite
	InitialByteMapIndef   byte = majorTypeMap<<5 | addInfoIndefinite
	InitialByteBreak      byte = majorTypeSimple<<5 | addInfoIndefinite
	InitialByteTag22      byte = majorTypeTag<<5 | 22
)

// makeByte packs a major type and additional-info nibble into an
// initial byte.
func makeByte(major, addInfo uint8) byte {
	return major<<5 | (addInfo & 0x1f)
}
