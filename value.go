package msgpack

import "github.com/unkn0wn-root/msgpack/internal/mpvalue"

// Kind discriminates the variant held by a Value.
type Kind = mpvalue.Kind

const (
	KindNil       = mpvalue.KindNil
	KindBool      = mpvalue.KindBool
	KindInt       = mpvalue.KindInt
	KindUint      = mpvalue.KindUint
	KindFloat32   = mpvalue.KindFloat32
	KindFloat64   = mpvalue.KindFloat64
	KindStr       = mpvalue.KindStr
	KindBin       = mpvalue.KindBin
	KindArray     = mpvalue.KindArray
	KindMap       = mpvalue.KindMap
	KindExt       = mpvalue.KindExt
	KindTimestamp = mpvalue.KindTimestamp
	KindRaw       = mpvalue.KindRaw
)

// KV is one key/value pair of a Map, held in decode (insertion) order.
type KV = mpvalue.KV

// Value is a closed sum type covering every MessagePack wire type plus Raw,
// an opaque pre-encoded fragment. The zero Value is KindNil.
type Value = mpvalue.Value

// NilValue is the MessagePack nil value.
func NilValue() Value { return mpvalue.NilValue() }

// Bool wraps a bool.
func Bool(b bool) Value { return mpvalue.Bool(b) }

// Int wraps a signed integer. The encoder picks the narrowest signed or
// unsigned wire form that represents it exactly.
func Int(i int64) Value { return mpvalue.Int(i) }

// Uint wraps an unsigned integer.
func Uint(u uint64) Value { return mpvalue.Uint(u) }

// Float32 wraps a 32-bit float, preserved at that width.
func Float32(f float32) Value { return mpvalue.Float32(f) }

// Float64 wraps a 64-bit float.
func Float64(f float64) Value { return mpvalue.Float64(f) }

// Str wraps a UTF-8 string.
func Str(s string) Value { return mpvalue.Str(s) }

// Bin wraps a binary blob. The slice is kept by reference, not copied.
func Bin(b []byte) Value { return mpvalue.Bin(b) }

// Array wraps an ordered list of values. The slice is kept by reference.
func Array(items []Value) Value { return mpvalue.Array(items) }

// MapOf wraps an ordered list of key/value pairs. Insertion order is
// preserved through encode and decode.
func MapOf(kv []KV) Value { return mpvalue.MapOf(kv) }

// ExtValue wraps a user extension type.
func ExtValue(e Ext) Value { return mpvalue.ExtValue(e) }

// TimestampValue wraps a Timestamp, rendered on the wire as reserved ext -1.
func TimestampValue(t Timestamp) Value { return mpvalue.TimestampValue(t) }

// RawValue wraps an already-encoded MessagePack fragment, emitted verbatim
// by the encoder. Raw is never produced by the decoder.
func RawValue(b []byte) Value { return mpvalue.RawValue(b) }
