// Package errs holds the codec's typed error taxonomy (spec.md §7) in one
// place so internal/encoding, internal/decoding, and the root package all
// report and recognize the same concrete types; the root package re-exports
// them as its own public names via type aliases.
package errs

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// ErrNeedMore signals that a Decoder needs more bytes before it can
// complete the value currently in progress.
var ErrNeedMore = errors.New("msgpack: need more data")

// TypeError reports input of the wrong shape: an unserializable value kind
// with no Default hook configured, or a non-callable/misused hook.
type TypeError struct{ Detail string }

func (e *TypeError) Error() string { return "msgpack: " + e.Detail }

// ValueError reports malformed wire input: a reserved byte, an oversized
// length, an invalid ext-to-timestamp length, or trailing bytes after a
// one-shot decode.
type ValueError struct{ Detail string }

func (e *ValueError) Error() string { return "msgpack: " + e.Detail }

// OverflowError reports an integer or timestamp field outside its
// representable range.
type OverflowError struct{ Detail string }

func (e *OverflowError) Error() string { return "msgpack: " + e.Detail }

// NestingError reports a container nesting depth exceeding the configured
// limit, on either the encode or the decode path.
type NestingError struct {
	Depth int
	Limit int
}

func (e *NestingError) Error() string {
	return fmt.Sprintf("msgpack: nesting depth %d exceeds limit %d", e.Depth, e.Limit)
}

// IncompleteError is returned by the one-shot Unmarshal when the input ends
// before a complete value was parsed.
type IncompleteError struct{}

func (e *IncompleteError) Error() string { return "msgpack: incomplete messagepack format" }

func ReservedByte() error {
	return &ValueError{Detail: "0xc1 byte must not be used"}
}

func ExtraData() error {
	return &ValueError{Detail: "extra data"}
}

// OversizedCount reports a container length (array/map items) exceeding
// its configured ceiling.
func OversizedCount(kind string, got, limit int) error {
	return &ValueError{Detail: fmt.Sprintf(
		"%s length %s exceeds configured maximum %s",
		kind, humanize.Comma(int64(got)), humanize.Comma(int64(limit)),
	)}
}

// OversizedBytes reports a byte-payload length (str/bin/ext) exceeding its
// configured ceiling.
func OversizedBytes(kind string, got, limit int) error {
	return &ValueError{Detail: fmt.Sprintf(
		"%s length %s exceeds configured maximum %s",
		kind, humanize.IBytes(uint64(got)), humanize.IBytes(uint64(limit)),
	)}
}

func BadUTF8(kind string) error {
	return &ValueError{Detail: fmt.Sprintf("%s is not valid utf-8", kind)}
}

func BadTimestampLen(n int) error {
	return &ValueError{Detail: fmt.Sprintf("timestamp ext has invalid payload length %d", n)}
}

func UnhashableKey() error {
	return &ValueError{Detail: "map key is not hashable"}
}
