package cbor

import "github.com/cdpwire/codec/status"

type writerContainer int

const (
	writerContainerObject writerContainer = iota
	writerContainerArray
)

// Writer is the JSON-model event.Handler that transduces events into
// the profiled CBOR wire format. It is a pure transducer:
// it performs no structural validation of its own beyond what the
// upstream producer (typically jsonparser) already guarantees, aside
// from asserting that ObjectEnd/ArrayEnd close the container kind they
// opened.
type Writer struct {
	buf     []byte
	base    int
	stack   []writerContainer
	st      status.Status
	errored bool
}

// NewWriter returns a Writer appending to a freshly allocated buffer.
func NewWriter() *Writer {
	return &Writer{st: status.OKStatus}
}

// NewWriterTo returns a Writer that appends to buf (which may be
// non-empty; the writer never truncates the caller's prefix except on
// Error, where it clears back to the length buf had when constructed).
func NewWriterTo(buf []byte) *Writer {
	return &Writer{buf: buf, base: len(buf), st: status.OKStatus}
}

// Bytes returns the accumulated CBOR bytes. If Error was ever called
// it holds only the prefix given to NewWriterTo (empty for NewWriter).
func (w *Writer) Bytes() []byte { return w.buf }

// Status returns the terminal status: OK unless Error was called.
func (w *Writer) Status() status.Status { return w.st }

func (w *Writer) ObjectBegin() {
	if w.errored {
		return
	}
	w.stack = append(w.stack, writerContainerObject)
	w.buf = AppendMapHeaderIndefinite(w.buf)
}

func (w *Writer) ObjectEnd() {
	if w.errored {
		return
	}
	if w.stack[len(w.stack)-1] != writerContainerObject {
		panic("cbor: ObjectEnd does not match open container")
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.buf = AppendBreak(w.buf)
}

func (w *Writer) ArrayBegin() {
	if w.errored {
		return
	}
	w.stack = append(w.stack, writerContainerArray)
	w.buf = AppendArrayHeaderIndefinite(w.buf)
}

func (w *Writer) ArrayEnd() {
	if w.errored {
		return
	}
	if w.stack[len(w.stack)-1] != writerContainerArray {
		panic("cbor: ArrayEnd does not match open container")
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.buf = AppendBreak(w.buf)
}

func (w *Writer) String(chars []uint16) {
	if w.errored {
		return
	}
	w.buf = AppendUTF16String(w.buf, chars)
}

func (w *Writer) Int(v int32) {
	if w.errored {
		return
	}
	w.buf = AppendSigned(w.buf, v)
}

func (w *Writer) Double(v float64) {
	if w.errored {
		return
	}
	w.buf = AppendDouble(w.buf, v)
}

func (w *Writer) Bool(v bool) {
	if w.errored {
		return
	}
	w.buf = AppendBool(w.buf, v)
}

func (w *Writer) Null() {
	if w.errored {
		return
	}
	w.buf = AppendNull(w.buf)
}

// Error records st and discards any bytes written so far: a writer's
// output is guaranteed empty-or-complete, never a truncated prefix.
func (w *Writer) Error(st status.Status) {
	w.errored = true
	w.st = st
	w.buf = w.buf[:w.base]
}
