// Package jsonparser implements a streaming, stack-bounded
// recursive-descent JSON tokenizer/parser over either 8-bit or 16-bit
// code units. It drives an event.Handler; it never builds a value
// tree of its own.
package jsonparser

import "github.com/cdpwire/codec/span"

// token classifies one lexical unit of the grammar.
type token int

const (
	tokInvalid token = iota
	tokObjectBegin
	tokObjectEnd
	tokArrayBegin
	tokArrayEnd
	tokStringLiteral
	tokNumber
	tokBoolTrue
	tokBoolFalse
	tokNull
	tokListSeparator
	tokObjectPairSeparator
)

// isSpaceOrNewline reports the whitespace set this tokenizer accepts:
// space, LF, VT, FF, CR. Horizontal tab is not in the set — a known
// deviation from RFC 8259, preserved for wire compatibility with the
// inspector protocol's existing parsers.
func isSpaceOrNewline[T span.Unit](c T) bool {
	return c == T(' ') || c == T('\n') || c == T('\v') || c == T('\f') || c == T('\r')
}

// skipComment reports whether s begins with a `//` or `/* */`
// comment and, if so, how many code units it occupies. A `//`
// comment closes cleanly at end-of-input; an unterminated `/* */`
// comment is a lexical failure.
func skipComment[T span.Unit](s span.Span[T]) (n int, ok bool) {
	if s.Len() < 2 || s.At(0) != T('/') {
		return 0, false
	}
	if s.At(1) == T('/') {
		i := 2
		for i < s.Len() {
			if s.At(i) == T('\n') || s.At(i) == T('\r') {
				return i + 1, true
			}
			i++
		}
		return s.Len(), true
	}
	if s.At(1) == T('*') {
		i := 2
		var prev T
		for i < s.Len() {
			if prev == T('*') && s.At(i) == T('/') {
				return i + 1, true
			}
			prev = s.At(i)
			i++
		}
		return 0, false
	}
	return 0, false
}

// skipWhitespaceAndComments returns the number of leading code units
// of s that are whitespace or comments.
func skipWhitespaceAndComments[T span.Unit](s span.Span[T]) int {
	i := 0
	for i < s.Len() {
		c := s.At(i)
		if isSpaceOrNewline(c) {
			i++
			continue
		}
		if c == T('/') {
			n, ok := skipComment(s.Sub(i))
			if !ok {
				break
			}
			i += n
			continue
		}
		break
	}
	return i
}

// parseConstToken reports whether s begins with the literal word.
func parseConstToken[T span.Unit](s span.Span[T], word string) (n int, ok bool) {
	if s.Len() < len(word) {
		return 0, false
	}
	for i := 0; i < len(word); i++ {
		if s.At(i) != T(word[i]) {
			return 0, false
		}
	}
	return len(word), true
}

// readInt reads a maximal run of ASCII digits from the front of s.
// Leading zeros are rejected unless allowLeadingZeros (used for
// fraction and exponent digit runs, which RFC 4627 permits to have
// leading zeros).
func readInt[T span.Unit](s span.Span[T], allowLeadingZeros bool) (n int, ok bool) {
	if s.Len() == 0 {
		return 0, false
	}
	hasLeadingZero := s.At(0) == T('0')
	i := 0
	for i < s.Len() && s.At(i) >= T('0') && s.At(i) <= T('9') {
		i++
	}
	if i == 0 {
		return 0, false
	}
	if !allowLeadingZeros && i > 1 && hasLeadingZero {
		return 0, false
	}
	return i, true
}

// parseNumberToken reads [minus] int [frac] [exp] from the front of s.
func parseNumberToken[T span.Unit](s span.Span[T]) (n int, ok bool) {
	if s.Len() == 0 {
		return 0, false
	}
	i := 0
	if s.At(0) == T('-') {
		i++
	}
	intLen, ok := readInt(s.Sub(i), false)
	if !ok {
		return 0, false
	}
	i += intLen
	if i == s.Len() {
		return i, true
	}
	if s.At(i) == T('.') {
		i++
		fracLen, ok := readInt(s.Sub(i), true)
		if !ok {
			return 0, false
		}
		i += fracLen
		if i == s.Len() {
			return i, true
		}
	}
	if s.At(i) == T('e') || s.At(i) == T('E') {
		i++
		if i == s.Len() {
			return 0, false
		}
		if s.At(i) == T('-') || s.At(i) == T('+') {
			i++
			if i == s.Len() {
				return 0, false
			}
		}
		expLen, ok := readInt(s.Sub(i), true)
		if !ok {
			return 0, false
		}
		i += expLen
	}
	return i, true
}

func isHexDigit[T span.Unit](c T) bool {
	return (c >= T('0') && c <= T('9')) || (c >= T('a') && c <= T('f')) || (c >= T('A') && c <= T('F'))
}

func hasHexDigits[T span.Unit](s span.Span[T], digits int) bool {
	if s.Len() < digits {
		return false
	}
	for i := 0; i < digits; i++ {
		if !isHexDigit(s.At(i)) {
			return false
		}
	}
	return true
}

// parseStringToken reads a string body from s (positioned just past
// the opening `"`) up to and including its closing `"`, validating
// escape syntax as it goes. `\x` with 2 hex digits is lexically
// accepted here but rejected at decode time (decodeString).
func parseStringToken[T span.Unit](s span.Span[T]) (n int, ok bool) {
	i := 0
	for i < s.Len() {
		c := s.At(i)
		i++
		if c == T('\\') {
			if i == s.Len() {
				return 0, false
			}
			c = s.At(i)
			i++
			switch c {
			case T('x'):
				if !hasHexDigits(s.Sub(i), 2) {
					return 0, false
				}
				i += 2
			case T('u'):
				if !hasHexDigits(s.Sub(i), 4) {
					return 0, false
				}
				i += 4
			case T('\\'), T('/'), T('b'), T('f'), T('n'), T('r'), T('t'), T('v'), T('"'):
			default:
				return 0, false
			}
		} else if c == T('"') {
			return i, true
		}
	}
	return 0, false
}

// parseToken skips leading whitespace/comments in s and classifies
// the token that follows. ws is the number of code units skipped;
// body is the length of the token itself (0 for tokInvalid).
func parseToken[T span.Unit](s span.Span[T]) (tok token, ws int, body int) {
	ws = skipWhitespaceAndComments(s)
	t := s.Sub(ws)
	if t.Len() == 0 {
		return tokInvalid, ws, 0
	}
	c := t.At(0)
	switch {
	case c == T('n'):
		if n, ok := parseConstToken(t, "null"); ok {
			return tokNull, ws, n
		}
	case c == T('t'):
		if n, ok := parseConstToken(t, "true"); ok {
			return tokBoolTrue, ws, n
		}
	case c == T('f'):
		if n, ok := parseConstToken(t, "false"); ok {
			return tokBoolFalse, ws, n
		}
	case c == T('['):
		return tokArrayBegin, ws, 1
	case c == T(']'):
		return tokArrayEnd, ws, 1
	case c == T(','):
		return tokListSeparator, ws, 1
	case c == T('{'):
		return tokObjectBegin, ws, 1
	case c == T('}'):
		return tokObjectEnd, ws, 1
	case c == T(':'):
		return tokObjectPairSeparator, ws, 1
	case c == T('"'):
		if n, ok := parseStringToken(t.Sub(1)); ok {
			return tokStringLiteral, ws, 1 + n
		}
	case c == T('-') || (c >= T('0') && c <= T('9')):
		if n, ok := parseNumberToken(t); ok {
			return tokNumber, ws, n
		}
	}
	return tokInvalid, ws, 0
}
