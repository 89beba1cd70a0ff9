package cbor

import "unicode/utf8"

// getMajorType extracts the top 3 bits of a CBOR initial byte.
func getMajorType(b byte) uint8 { return b >> 5 }

// getAddInfo extracts the bottom 5 bits of a CBOR initial byte.
func getAddInfo(b byte) uint8 { return b & 0x1f }

// IsLikelyJSON reports whether the given byte slice looks like JSON text
// rather than profiled CBOR. It is a heuristic, used by `cdpcodec
// validate -v` to hint that a failed validation may be because the
// input was JSON text rather than CBOR bytes:
//
//   - It requires the data to be valid UTF-8.
//   - It then checks the first non-whitespace byte against the JSON
//     value grammar (object/array/string/number/true/false/null).
//
// Every profiled CBOR payload starts with 0xbf, which is not valid
// UTF-8 on its own, so in practice this discriminator never misfires
// against this module's own wire format.
func IsLikelyJSON(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	i := 0
	for i < len(b) {
		c := b[i]
		if c == ' ' || c == '\n' || c == '\r' || c == '\t' {
			i++
			continue
		}
		break
	}
	if i >= len(b) {
		return false
	}
	ch := b[i]
	if ch == '{' || ch == '[' || ch == '"' || ch == '-' {
		return true
	}
	if ch >= '0' && ch <= '9' {
		return true
	}
	if ch == 't' || ch == 'f' || ch == 'n' {
		return true
	}
	return false
}
