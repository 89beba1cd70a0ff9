// Package numdeps provides the one capability the core intentionally
// does not implement itself: locale-independent string<->double
// conversion. The C++ inspector_protocol library injects this as a
// system dependency (strtod_l/ostringstream pinned to the "C" locale)
// so that number formatting never depends on a process-wide locale;
// the core here depends on the same small Deps interface.
package numdeps

import "strconv"

// Deps is the injected capability for converting between the textual
// and binary representations of a double.
type Deps interface {
	// StrToD parses s as a double. ok is false on range overflow or if
	// any part of s failed to parse (trailing garbage, empty input).
	StrToD(s []byte) (value float64, ok bool)

	// DToStr formats v as the shortest decimal string that round-trips
	// back to v, independent of process locale.
	DToStr(v float64) string
}

// std is the default Deps implementation. Go's strconv package is
// already locale-independent (there is no "C" locale to opt into, nor
// a process-wide locale to escape), so no locale handling is needed;
// strconv.ParseFloat/FormatFloat give the guarantee the interface
// asks for directly.
type std struct{}

// Default returns the standard-library-backed Deps implementation.
func Default() Deps { return std{} }

func (std) StrToD(s []byte) (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (std) DToStr(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
