// Package event defines the push-style handler interface that both the
// JSON parser and the CBOR reader drive, and that the CBOR writer and
// the JSON writer implement. JSON<->CBOR conversion is nothing more
// than a parser wired to a handler of the other format.
package event

import "github.com/cdpwire/codec/status"

// Handler receives a stream of JSON-model events in document order.
// For objects, String (key) and the following value event alternate
// with no interleaving; nested containers are fully delivered between
// their own Begin/End before the outer container continues.
//
// At most one Error call happens per parse/decode, and it is always
// the last call a well-behaved producer makes. After Error, a Handler
// must not assume any previously received Begin/End pair is complete.
type Handler interface {
	ObjectBegin()
	ObjectEnd()
	ArrayBegin()
	ArrayEnd()

	// String delivers a sequence of UTF-16 code units. Unpaired
	// surrogates are preserved intact; the caller must not attempt to
	// re-pair or re-validate them.
	String(chars []uint16)

	Int(v int32)
	Double(v float64)
	Bool(v bool)
	Null()

	// Error is called at most once per parse/decode, and terminates
	// the stream: no further calls follow it.
	Error(st status.Status)
}

// Discard is a Handler that does nothing with every event except
// recording the terminal Status, if any. It is used where only
// validation (not reconstruction) is wanted — e.g. the CBOR profile
// validator, which delegates to the reader without paying to build a
// representation of the output.
type Discard struct {
	St status.Status
}

func (d *Discard) ObjectBegin()           {}
func (d *Discard) ObjectEnd()             {}
func (d *Discard) ArrayBegin()            {}
func (d *Discard) ArrayEnd()              {}
func (d *Discard) String(_ []uint16)      {}
func (d *Discard) Int(_ int32)            {}
func (d *Discard) Double(_ float64)       {}
func (d *Discard) Bool(_ bool)            {}
func (d *Discard) Null()                  {}
func (d *Discard) Error(st status.Status) { d.St = st }

// Kind tags a recorded Event for Recorder, below.
type Kind int

const (
	KindObjectBegin Kind = iota
	KindObjectEnd
	KindArrayBegin
	KindArrayEnd
	KindString
	KindInt
	KindDouble
	KindBool
	KindNull
	KindError
)

// Event is a recorded, comparable snapshot of one Handler call. It
// exists so tests can assert on the exact event sequence a parser or
// reader produced, independent of any particular consumer.
type Event struct {
	Kind   Kind
	Str    []uint16
	Int    int32
	Double float64
	Bool   bool
	Status status.Status
}

// Recorder is a Handler that appends every event it receives to
// Events, for use in tests that want to assert on the raw event
// sequence a producer emits.
type Recorder struct {
	Events []Event
}

func (r *Recorder) ObjectBegin() { r.Events = append(r.Events, Event{Kind: KindObjectBegin}) }
func (r *Recorder) ObjectEnd()   { r.Events = append(r.Events, Event{Kind: KindObjectEnd}) }
func (r *Recorder) ArrayBegin()  { r.Events = append(r.Events, Event{Kind: KindArrayBegin}) }
func (r *Recorder) ArrayEnd()    { r.Events = append(r.Events, Event{Kind: KindArrayEnd}) }
func (r *Recorder) String(chars []uint16) {
	cp := make([]uint16, len(chars))
	copy(cp, chars)
	r.Events = append(r.Events, Event{Kind: KindString, Str: cp})
}
func (r *Recorder) Int(v int32)      { r.Events = append(r.Events, Event{Kind: KindInt, Int: v}) }
func (r *Recorder) Double(v float64) { r.Events = append(r.Events, Event{Kind: KindDouble, Double: v}) }
func (r *Recorder) Bool(v bool)      { r.Events = append(r.Events, Event{Kind: KindBool, Bool: v}) }
func (r *Recorder) Null()            { r.Events = append(r.Events, Event{Kind: KindNull}) }
func (r *Recorder) Error(st status.Status) {
	r.Events = append(r.Events, Event{Kind: KindError, Status: st})
}
