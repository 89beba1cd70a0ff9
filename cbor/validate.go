package cbor

import (
	"github.com/cdpwire/codec/event"
	"github.com/cdpwire/codec/status"
)

// Validate reports whether b is a well-formed instance of the
// profile: a top-level indefinite-length map containing only the
// primitives and containers the profile allows, with no disallowed
// tags or major types. It walks the entire structure without building
// a representation of the decoded value, for use as a cheap
// conformance check, used by `cdpcodec validate`.
func Validate(b []byte) status.Status {
	d := &event.Discard{}
	return Decode(b, d)
}
