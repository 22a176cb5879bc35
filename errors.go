package msgpack

import "github.com/unkn0wn-root/msgpack/internal/errs"

// ErrNeedMore is returned by Unpacker.Next when the fed bytes end
// mid-value. Feeding more bytes and retrying is legal; feeding never
// invalidates values already produced. FileUnpacker.Next does not return it:
// it reads more instead, and reports IncompleteError if the reader ends
// mid-value.
var ErrNeedMore = errs.ErrNeedMore

// TypeError reports input of the wrong shape: an unserializable value kind
// with no Default hook configured, or a non-callable/misused hook.
type TypeError = errs.TypeError

// ValueError reports malformed wire input: a reserved byte, an oversized
// length, an invalid ext-to-timestamp length, or trailing bytes after a
// one-shot decode.
type ValueError = errs.ValueError

// OverflowError reports an integer or timestamp field outside its
// representable range.
type OverflowError = errs.OverflowError

// NestingError reports a container nesting depth exceeding the configured
// limit, on either the encode or the decode path.
type NestingError = errs.NestingError

// IncompleteError is returned by the one-shot Unmarshal when the input ends
// before a complete value was parsed. The incremental Unpacker never
// returns this; it returns ErrNeedMore instead and stays resumable.
type IncompleteError = errs.IncompleteError
