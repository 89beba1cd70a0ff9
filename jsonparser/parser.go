package jsonparser

import (
	"math"

	"github.com/cdpwire/codec/event"
	"github.com/cdpwire/codec/numdeps"
	"github.com/cdpwire/codec/span"
	"github.com/cdpwire/codec/status"
)

// Parser walks a span of code units and drives an event.Handler. It
// is single-use: construct one per Parse call.
type Parser[T span.Unit] struct {
	total   int
	deps    numdeps.Deps
	h       event.Handler
	errored bool
	st      status.Status
}

// New returns a Parser driving h, using deps for number<->string
// conversion.
func New[T span.Unit](deps numdeps.Deps, h event.Handler) *Parser[T] {
	return &Parser[T]{deps: deps, h: h, st: status.OKStatus}
}

// Parse parses s as a single JSON value, delivering events to the
// handler supplied to New. At most one error event is emitted, and
// any non-whitespace/non-comment input remaining after the top-level
// value produces JSON_PARSER_UNPROCESSED_INPUT_REMAINS.
func (p *Parser[T]) Parse(s span.Span[T]) status.Status {
	p.total = s.Len()
	if s.Len() == 0 {
		p.fail(status.JSONNoInput, 0)
		return p.st
	}
	rest := p.parseValue(s, 0)
	if p.errored {
		return p.st
	}
	rest = skipWS(rest)
	if rest.Len() != 0 {
		p.fail(status.JSONUnprocessedInputRemains, p.pos(rest))
		return p.st
	}
	return status.OKStatus
}

func skipWS[T span.Unit](s span.Span[T]) span.Span[T] {
	return s.Sub(skipWhitespaceAndComments(s))
}

// pos converts a remaining-input span into a byte/code-unit offset
// into the original input.
func (p *Parser[T]) pos(remaining span.Span[T]) int64 {
	return int64(p.total - remaining.Len())
}

// fail records the first error only: a parse emits at most one error
// event, and nothing after it.
func (p *Parser[T]) fail(kind status.Kind, pos int64) {
	if p.errored {
		return
	}
	p.errored = true
	p.st = status.At(kind, pos)
	p.h.Error(p.st)
}

// classifyInvalidValue picks the error kind for a tokInvalid result
// encountered where a value was expected, based on the leading
// character the tokenizer saw, distinguishing a malformed number or
// string literal from no recognizable value-starting token at all.
func classifyInvalidValue[T span.Unit](t span.Span[T]) status.Kind {
	if t.Len() == 0 {
		return status.JSONValueExpected
	}
	c := t.At(0)
	switch {
	case c == T('"'):
		return status.JSONInvalidString
	case c == T('-') || (c >= T('0') && c <= T('9')):
		return status.JSONInvalidNumber
	case c == T('n') || c == T('t') || c == T('f'):
		return status.JSONInvalidToken
	default:
		return status.JSONValueExpected
	}
}

func (p *Parser[T]) parseValue(s span.Span[T], depth int) span.Span[T] {
	if depth >= 1000 {
		p.fail(status.JSONStackLimitExceeded, p.pos(skipWS(s)))
		return s
	}
	tok, ws, body := parseToken(s)
	tokStart := s.Sub(ws)

	switch tok {
	case tokInvalid:
		p.fail(classifyInvalidValue(tokStart), p.pos(tokStart))
		return s

	case tokNull:
		p.h.Null()

	case tokBoolTrue:
		p.h.Bool(true)

	case tokBoolFalse:
		p.h.Bool(false)

	case tokNumber:
		literal := tokStart.SubLen(0, body)
		v, ok := p.charsToDouble(literal)
		if !ok {
			p.fail(status.JSONInvalidNumber, p.pos(tokStart))
			return s
		}
		if v >= math.MinInt32 && v <= math.MaxInt32 && float64(int32(v)) == v {
			p.h.Int(int32(v))
		} else {
			p.h.Double(v)
		}

	case tokStringLiteral:
		body := tokStart.SubLen(1, body-2)
		decoded, ok := decodeString(body)
		if !ok {
			p.fail(status.JSONInvalidString, p.pos(tokStart))
			return s
		}
		p.h.String(decoded)

	case tokArrayBegin:
		return p.parseArray(tokStart.Sub(body), depth)

	case tokObjectBegin:
		return p.parseObject(tokStart.Sub(body), depth)

	default:
		// A structurally valid token (',', ':', ']', '}') where a
		// value was expected.
		p.fail(status.JSONValueExpected, p.pos(tokStart))
		return s
	}

	return skipWS(tokStart.Sub(body))
}

func (p *Parser[T]) parseArray(s span.Span[T], depth int) span.Span[T] {
	p.h.ArrayBegin()
	cur := s
	tok, ws, body := parseToken(cur)
	for tok != tokArrayEnd {
		if p.errored {
			return cur
		}
		cur = p.parseValue(cur, depth+1)
		if p.errored {
			return cur
		}
		tok, ws, body = parseToken(cur)
		if tok == tokListSeparator {
			cur = cur.Sub(ws + body)
			tok, ws, body = parseToken(cur)
			if tok == tokArrayEnd {
				p.fail(status.JSONUnexpectedArrayEnd, p.pos(cur.Sub(ws)))
				return cur
			}
		} else if tok != tokArrayEnd {
			p.fail(status.JSONCommaOrArrayEndExpected, p.pos(cur.Sub(ws)))
			return cur
		}
	}
	cur = cur.Sub(ws + body)
	p.h.ArrayEnd()
	return skipWS(cur)
}

func (p *Parser[T]) parseObject(s span.Span[T], depth int) span.Span[T] {
	p.h.ObjectBegin()
	cur := s
	tok, ws, body := parseToken(cur)
	for tok != tokObjectEnd {
		if p.errored {
			return cur
		}
		if tok != tokStringLiteral {
			p.fail(status.JSONStringLiteralExpected, p.pos(cur.Sub(ws)))
			return cur
		}
		keyStart := cur.Sub(ws)
		keyBody := keyStart.SubLen(1, body-2)
		key, ok := decodeString(keyBody)
		if !ok {
			p.fail(status.JSONInvalidString, p.pos(keyStart))
			return cur
		}
		p.h.String(key)
		cur = keyStart.Sub(body)

		colonTok, colonWS, colonBody := parseToken(cur)
		if colonTok != tokObjectPairSeparator {
			p.fail(status.JSONColonExpected, p.pos(cur.Sub(colonWS)))
			return cur
		}
		cur = cur.Sub(colonWS + colonBody)

		cur = p.parseValue(cur, depth+1)
		if p.errored {
			return cur
		}
		tok, ws, body = parseToken(cur)
		if tok == tokListSeparator {
			cur = cur.Sub(ws + body)
			tok, ws, body = parseToken(cur)
			if tok == tokObjectEnd {
				p.fail(status.JSONUnexpectedObjectEnd, p.pos(cur.Sub(ws)))
				return cur
			}
		} else if tok != tokObjectEnd {
			p.fail(status.JSONCommaOrObjectEndExpected, p.pos(cur.Sub(ws)))
			return cur
		}
	}
	cur = cur.Sub(ws + body)
	p.h.ObjectEnd()
	return skipWS(cur)
}

// charsToDouble converts a numeric literal's code units to a double
// via the injected Deps. A 16-bit literal must be pure ASCII; the
// number grammar admits nothing else.
func (p *Parser[T]) charsToDouble(s span.Span[T]) (float64, bool) {
	buf := make([]byte, s.Len())
	for i := 0; i < s.Len(); i++ {
		c := s.At(i)
		if uint64(c) > 0x7f {
			return 0, false
		}
		buf[i] = byte(c)
	}
	return p.deps.StrToD(buf)
}

func hexVal(c uint16) uint16 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// decodeString expands escape sequences in s (the body of a string
// token, between but excluding the quotes) into UTF-16 code units.
// `\uXXXX` yields the raw 16-bit value with no surrogate pairing; `\x`
// is rejected here even though the tokenizer accepted it lexically.
func decodeString[T span.Unit](s span.Span[T]) ([]uint16, bool) {
	out := make([]uint16, 0, s.Len())
	i := 0
	for i < s.Len() {
		c := uint16(s.At(i))
		i++
		if c != '\\' {
			out = append(out, c)
			continue
		}
		if i == s.Len() {
			return nil, false
		}
		c = uint16(s.At(i))
		i++
		if c == 'x' {
			return nil, false
		}
		switch c {
		case '"', '/', '\\':
		case 'b':
			c = '\b'
		case 'f':
			c = '\f'
		case 'n':
			c = '\n'
		case 'r':
			c = '\r'
		case 't':
			c = '\t'
		case 'v':
			c = '\v'
		case 'u':
			if i+4 > s.Len() {
				return nil, false
			}
			c = hexVal(uint16(s.At(i)))<<12 | hexVal(uint16(s.At(i+1)))<<8 |
				hexVal(uint16(s.At(i+2)))<<4 | hexVal(uint16(s.At(i+3)))
			i += 4
		default:
			return nil, false
		}
		out = append(out, c)
	}
	return out, true
}

// ParseBytes parses an 8-bit code-unit input.
func ParseBytes(b []byte, deps numdeps.Deps, h event.Handler) status.Status {
	return New[byte](deps, h).Parse(span.Of(b))
}

// ParseUTF16 parses a 16-bit code-unit input.
func ParseUTF16(u []uint16, deps numdeps.Deps, h event.Handler) status.Status {
	return New[uint16](deps, h).Parse(span.Of(u))
}
