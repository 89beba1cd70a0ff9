// Package serialize implements a serializer-traits façade: a fixed
// mapping from value kind to "append its CBOR encoding to a byte
// buffer", after crdtp::SerializerTraits in the C++ inspector
// protocol library: bool, int32, double, string, slices (as
// indefinite-length arrays), and anything exposing a "serialize
// yourself" capability.
package serialize

import "github.com/cdpwire/codec/cbor"

// Encodable is the "serialize yourself" capability, mirroring
// crdtp::Serializable. A type implementing it is appended verbatim by
// delegating to AppendCBOR; the façade never inspects its fields.
type Encodable interface {
	AppendCBOR(b []byte) []byte
}

// Append dispatches on the dynamic kind of v and appends its CBOR
// profile encoding to b. It recognizes nil (as null), bool, int32,
// float64, string (as UTF-8 text), any Encodable, and []any whose
// elements this function itself can append (an indefinite-length
// array). Typed slices other than []any are not recognized here;
// AppendSlice encodes those.
//
// ok is false if v's kind is not one the façade recognizes; where
// C++ template dispatch makes an unsupported kind a compile error,
// Go's dynamic type switch needs a runtime fallback.
func Append(b []byte, v any) (out []byte, ok bool) {
	switch x := v.(type) {
	case nil:
		return cbor.AppendNull(b), true
	case bool:
		return cbor.AppendBool(b, x), true
	case int32:
		return cbor.AppendSigned(b, x), true
	case float64:
		return cbor.AppendDouble(b, x), true
	case string:
		return cbor.AppendUTF8String(b, x), true
	case Encodable:
		return x.AppendCBOR(b), true
	case []any:
		return AppendSlice(b, x)
	default:
		return b, false
	}
}

// AppendSlice appends vs as an indefinite-length CBOR array, each
// element appended via Append. It returns ok=false, leaving b
// unmodified from the caller's point of view semantically (the
// partial array bytes are still present, mirroring the writer, which
// leaves clearing a half-built buffer to its caller), if any element's
// kind is unrecognized.
func AppendSlice[T any](b []byte, vs []T) (out []byte, ok bool) {
	b = cbor.AppendArrayHeaderIndefinite(b)
	for _, v := range vs {
		b, ok = Append(b, v)
		if !ok {
			return b, false
		}
	}
	return cbor.AppendBreak(b), true
}

// AppendPtr appends *p, or null if p is nil — a pointer convenience
// shim for dereferencing collaborators.
func AppendPtr[T any](b []byte, p *T) (out []byte, ok bool) {
	if p == nil {
		return cbor.AppendNull(b), true
	}
	return Append(b, *p)
}
