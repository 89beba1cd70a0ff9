// Package status defines the error taxonomy and the Status value that
// carries a parse or decode failure back to a caller. Unlike the rest
// of the module's internal errors (plain Go errors at the CBOR
// primitive layer, see the cbor package), Status is the sole result
// carrier that crosses the JSON parser / CBOR reader / JSON writer
// boundary: it is a value, not something thrown, and it always comes
// with a byte offset.
package status

import "strconv"

// Kind enumerates the error taxonomy of the JSON parser and the CBOR
// reader: JSON parsing errors first, then CBOR (binary encoding)
// errors.
type Kind int

const (
	// OK is the zero value: no error.
	OK Kind = iota

	// JSON parser errors.
	JSONUnprocessedInputRemains
	JSONStackLimitExceeded
	JSONNoInput
	JSONInvalidToken
	JSONInvalidNumber
	JSONInvalidString
	JSONUnexpectedArrayEnd
	JSONCommaOrArrayEndExpected
	JSONStringLiteralExpected
	JSONColonExpected
	JSONUnexpectedObjectEnd
	JSONCommaOrObjectEndExpected
	JSONValueExpected

	// CBOR reader errors.
	CBORNoInput
	CBORInvalidStartByte
	CBORUnexpectedEOFExpectedValue
	CBORUnexpectedEOFInArray
	CBORUnexpectedEOFInMap
	CBORInvalidMapKey
	CBORStackLimitExceeded
	CBORUnsupportedValue
	CBORInvalidString16
	CBORInvalidString8
	CBORString8MustBe7Bit
	CBORInvalidDouble
	CBORInvalidSigned
)

var names = map[Kind]string{
	OK:                              "OK",
	JSONUnprocessedInputRemains:     "JSON_PARSER_UNPROCESSED_INPUT_REMAINS",
	JSONStackLimitExceeded:          "JSON_PARSER_STACK_LIMIT_EXCEEDED",
	JSONNoInput:                     "JSON_PARSER_NO_INPUT",
	JSONInvalidToken:                "JSON_PARSER_INVALID_TOKEN",
	JSONInvalidNumber:               "JSON_PARSER_INVALID_NUMBER",
	JSONInvalidString:               "JSON_PARSER_INVALID_STRING",
	JSONUnexpectedArrayEnd:          "JSON_PARSER_UNEXPECTED_ARRAY_END",
	JSONCommaOrArrayEndExpected:     "JSON_PARSER_COMMA_OR_ARRAY_END_EXPECTED",
	JSONStringLiteralExpected:       "JSON_PARSER_STRING_LITERAL_EXPECTED",
	JSONColonExpected:               "JSON_PARSER_COLON_EXPECTED",
	JSONUnexpectedObjectEnd:         "JSON_PARSER_UNEXPECTED_OBJECT_END",
	JSONCommaOrObjectEndExpected:    "JSON_PARSER_COMMA_OR_OBJECT_END_EXPECTED",
	JSONValueExpected:               "JSON_PARSER_VALUE_EXPECTED",
	CBORNoInput:                     "BINARY_ENCODING_NO_INPUT",
	CBORInvalidStartByte:            "BINARY_ENCODING_INVALID_START_BYTE",
	CBORUnexpectedEOFExpectedValue:  "BINARY_ENCODING_UNEXPECTED_EOF_EXPECTED_VALUE",
	CBORUnexpectedEOFInArray:        "BINARY_ENCODING_UNEXPECTED_EOF_IN_ARRAY",
	CBORUnexpectedEOFInMap:          "BINARY_ENCODING_UNEXPECTED_EOF_IN_MAP",
	CBORInvalidMapKey:               "BINARY_ENCODING_INVALID_MAP_KEY",
	CBORStackLimitExceeded:          "BINARY_ENCODING_STACK_LIMIT_EXCEEDED",
	CBORUnsupportedValue:            "BINARY_ENCODING_UNSUPPORTED_VALUE",
	CBORInvalidString16:             "BINARY_ENCODING_INVALID_STRING16",
	CBORInvalidString8:              "BINARY_ENCODING_INVALID_STRING8",
	CBORString8MustBe7Bit:           "BINARY_ENCODING_STRING8_MUST_BE_7BIT",
	CBORInvalidDouble:               "BINARY_ENCODING_INVALID_DOUBLE",
	CBORInvalidSigned:               "BINARY_ENCODING_INVALID_SIGNED",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UNKNOWN_ERROR_KIND"
}

// NPos is the sentinel position for a status with no known byte offset.
const NPos int64 = -1

// Status carries a Kind plus the zero-based byte offset into the
// original input at which the error was detected (or NPos if unknown).
// The zero value is OK.
type Status struct {
	Kind Kind
	Pos  int64
}

// OKStatus is the canonical non-error Status.
var OKStatus = Status{Kind: OK, Pos: NPos}

// Ok reports whether the status represents success.
func (s Status) Ok() bool { return s.Kind == OK }

// Error implements the error interface so a Status can be returned
// anywhere a Go error is expected (e.g. from the CLI).
func (s Status) Error() string {
	if s.Ok() {
		return "status: OK"
	}
	return "status: " + s.Kind.String() + " at byte " + strconv.FormatInt(s.Pos, 10)
}

// At constructs an error Status at the given byte offset.
func At(k Kind, pos int64) Status {
	return Status{Kind: k, Pos: pos}
}
