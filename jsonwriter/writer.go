// Package jsonwriter implements the event.Handler that renders
// events as minified JSON text.
package jsonwriter

import (
	"strconv"

	"github.com/cdpwire/codec/numdeps"
	"github.com/cdpwire/codec/status"
)

type container int

const (
	containerNone container = iota
	containerObject
	containerArray
)

type frame struct {
	kind  container
	count int
}

// Writer consumes events and appends minified JSON to an internal
// buffer. It implements event.Handler.
type Writer struct {
	buf     []byte
	stack   []frame
	deps    numdeps.Deps
	errored bool
	st      status.Status
}

// New returns a Writer using deps to format doubles.
func New(deps numdeps.Deps) *Writer {
	return &Writer{stack: []frame{{kind: containerNone}}, deps: deps, st: status.OKStatus}
}

// Bytes returns the JSON text accumulated so far. It is empty if
// Error was ever called.
func (w *Writer) Bytes() []byte { return w.buf }

// Text returns the JSON text accumulated so far as a string. Named
// Text rather than String to avoid colliding with the event.Handler
// method of the same name that this type also implements.
func (w *Writer) Text() string { return string(w.buf) }

// Status returns the terminal status: OK unless Error was called.
func (w *Writer) Status() status.Status { return w.st }

func (w *Writer) top() *frame { return &w.stack[len(w.stack)-1] }

// beforeValue runs the delimiter rule: a comma before any value after
// the first in a container, a colon between an object key (even
// count) and its value (odd count).
func (w *Writer) beforeValue() {
	f := w.top()
	if f.count > 0 {
		if f.kind == containerObject && f.count%2 == 1 {
			w.buf = append(w.buf, ':')
		} else {
			w.buf = append(w.buf, ',')
		}
	}
	f.count++
}

func (w *Writer) ObjectBegin() {
	if w.errored {
		return
	}
	w.beforeValue()
	w.buf = append(w.buf, '{')
	w.stack = append(w.stack, frame{kind: containerObject})
}

func (w *Writer) ObjectEnd() {
	if w.errored {
		return
	}
	if w.top().kind != containerObject {
		panic("jsonwriter: ObjectEnd does not match open container")
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.buf = append(w.buf, '}')
}

func (w *Writer) ArrayBegin() {
	if w.errored {
		return
	}
	w.beforeValue()
	w.buf = append(w.buf, '[')
	w.stack = append(w.stack, frame{kind: containerArray})
}

func (w *Writer) ArrayEnd() {
	if w.errored {
		return
	}
	if w.top().kind != containerArray {
		panic("jsonwriter: ArrayEnd does not match open container")
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.buf = append(w.buf, ']')
}

const hexDigits = "0123456789abcdef"

// String escapes and appends chars. Each code unit is handled
// independently, so an unpaired or split surrogate pair is emitted as
// two ordinary `\uXXXX` escapes rather than re-paired.
func (w *Writer) String(chars []uint16) {
	if w.errored {
		return
	}
	w.beforeValue()
	w.buf = append(w.buf, '"')
	for _, c := range chars {
		switch c {
		case '"':
			w.buf = append(w.buf, '\\', '"')
		case '\\':
			w.buf = append(w.buf, '\\', '\\')
		case '\b':
			w.buf = append(w.buf, '\\', 'b')
		case '\f':
			w.buf = append(w.buf, '\\', 'f')
		case '\n':
			w.buf = append(w.buf, '\\', 'n')
		case '\r':
			w.buf = append(w.buf, '\\', 'r')
		case '\t':
			w.buf = append(w.buf, '\\', 't')
		default:
			if c >= 32 && c <= 126 {
				w.buf = append(w.buf, byte(c))
			} else {
				w.buf = append(w.buf, '\\', 'u',
					hexDigits[(c>>12)&0xf], hexDigits[(c>>8)&0xf],
					hexDigits[(c>>4)&0xf], hexDigits[c&0xf])
			}
		}
	}
	w.buf = append(w.buf, '"')
}

func (w *Writer) Int(v int32) {
	if w.errored {
		return
	}
	w.beforeValue()
	w.buf = strconv.AppendInt(w.buf, int64(v), 10)
}

func (w *Writer) Double(v float64) {
	if w.errored {
		return
	}
	w.beforeValue()
	w.buf = append(w.buf, w.deps.DToStr(v)...)
}

func (w *Writer) Bool(v bool) {
	if w.errored {
		return
	}
	w.beforeValue()
	if v {
		w.buf = append(w.buf, "true"...)
	} else {
		w.buf = append(w.buf, "false"...)
	}
}

func (w *Writer) Null() {
	if w.errored {
		return
	}
	w.beforeValue()
	w.buf = append(w.buf, "null"...)
}

// Error records st and clears the output: every
// subsequent event is a no-op.
func (w *Writer) Error(st status.Status) {
	w.errored = true
	w.st = st
	w.buf = w.buf[:0]
}
