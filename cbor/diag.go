package cbor

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/cdpwire/codec/event"
	"github.com/cdpwire/codec/status"
)

// diagContainer mirrors the JSON writer's container state, reused here
// to punctuate diagnostic notation the same way the JSON writer
// punctuates real JSON.
type diagContainer int

const (
	diagNone diagContainer = iota
	diagObject
	diagArray
)

type diagFrame struct {
	kind  diagContainer
	count int
}

// diagHandler is an event.Handler that renders the events it receives
// as human-readable diagnostic notation (RFC 8949 §8 in spirit, not
// letter) rather than either JSON or CBOR. It never round-trips;
// it exists purely for cbor.Diag / `cdpcodec validate -v`.
type diagHandler struct {
	buf   strings.Builder
	stack []diagFrame
}

func newDiagHandler() *diagHandler {
	return &diagHandler{stack: []diagFrame{{kind: diagNone}}}
}

func (d *diagHandler) top() *diagFrame { return &d.stack[len(d.stack)-1] }

func (d *diagHandler) beforeValue() {
	f := d.top()
	if f.count > 0 {
		if f.kind == diagObject && f.count%2 == 1 {
			d.buf.WriteString(": ")
		} else {
			d.buf.WriteString(", ")
		}
	}
	f.count++
}

func (d *diagHandler) push(kind diagContainer, open byte) {
	d.beforeValue()
	d.buf.WriteByte(open)
	d.stack = append(d.stack, diagFrame{kind: kind})
}

func (d *diagHandler) pop(close byte) {
	d.stack = d.stack[:len(d.stack)-1]
	d.buf.WriteByte(close)
}

func (d *diagHandler) ObjectBegin() { d.push(diagObject, '{') }
func (d *diagHandler) ObjectEnd()   { d.pop('}') }
func (d *diagHandler) ArrayBegin()  { d.push(diagArray, '[') }
func (d *diagHandler) ArrayEnd()    { d.pop(']') }

func (d *diagHandler) String(chars []uint16) {
	d.beforeValue()
	d.buf.WriteString(strconv.Quote(string(utf16.Decode(chars))))
}

func (d *diagHandler) Int(v int32) {
	d.beforeValue()
	d.buf.WriteString(strconv.FormatInt(int64(v), 10))
}

func (d *diagHandler) Double(v float64) {
	d.beforeValue()
	d.buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
}

func (d *diagHandler) Bool(v bool) {
	d.beforeValue()
	d.buf.WriteString(strconv.FormatBool(v))
}

func (d *diagHandler) Null() {
	d.beforeValue()
	d.buf.WriteString("null")
}

func (d *diagHandler) Error(status.Status) {}

var _ event.Handler = (*diagHandler)(nil)

// Diag renders b as diagnostic notation for debugging. It returns the
// notation produced so far, the bytes left unconsumed, and a non-nil
// error (a status.Status) if b is not a well-formed instance of the
// profile.
func Diag(b []byte) (string, []byte, error) {
	if len(b) == 0 {
		return "", b, status.At(status.CBORNoInput, 0)
	}
	if b[0] != InitialByteMapIndef {
		return "", b, status.At(status.CBORInvalidStartByte, 0)
	}
	dh := newDiagHandler()
	d := decoder{total: len(b)}
	rest, st := d.parseMap(b, dh, 0)
	if !st.Ok() {
		return dh.buf.String(), rest, st
	}
	return dh.buf.String(), rest, nil
}
