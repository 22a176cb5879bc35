package mpvalue

import "bytes"

// Kind discriminates the variant held by a Value. It plays the same role
// here that a one-byte frame kind plays in a hand-rolled binary format:
// a single tag field next to a flat struct, never a type switch over
// interfaces.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt  // signed, see Value.Int
	KindUint // unsigned, see Value.Uint
	KindFloat32
	KindFloat64
	KindStr
	KindBin
	KindArray
	KindMap
	KindExt
	KindTimestamp
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindStr:
		return "str"
	case KindBin:
		return "bin"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindExt:
		return "ext"
	case KindTimestamp:
		return "timestamp"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// KV is one key/value pair of a Map, held in decode (insertion) order.
type KV struct {
	Key   Value
	Value Value
}

// Value is a closed sum type covering every MessagePack wire type plus Raw,
// an opaque pre-encoded fragment. The zero Value is KindNil.
type Value struct {
	kind Kind

	b   bool
	i   int64
	u   uint64
	f32 float32
	f64 float64
	str string
	bin []byte
	arr []Value
	m   []KV
	ext Ext
	ts  Timestamp
}

// NilValue is the MessagePack nil value.
func NilValue() Value { return Value{kind: KindNil} }

// Bool wraps a bool.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps a signed integer. The encoder picks the narrowest signed or
// unsigned wire form that represents it exactly.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Uint wraps an unsigned integer.
func Uint(u uint64) Value { return Value{kind: KindUint, u: u} }

// Float32 wraps a 32-bit float, preserved at that width.
func Float32(f float32) Value { return Value{kind: KindFloat32, f32: f} }

// Float64 wraps a 64-bit float.
func Float64(f float64) Value { return Value{kind: KindFloat64, f64: f} }

// Str wraps a UTF-8 string.
func Str(s string) Value { return Value{kind: KindStr, str: s} }

// Bin wraps a binary blob. The slice is kept by reference, not copied.
func Bin(b []byte) Value { return Value{kind: KindBin, bin: b} }

// Array wraps an ordered list of values. The slice is kept by reference.
func Array(items []Value) Value { return Value{kind: KindArray, arr: items} }

// MapOf wraps an ordered list of key/value pairs. Insertion order is
// preserved through encode and decode.
func MapOf(kv []KV) Value { return Value{kind: KindMap, m: kv} }

// ExtValue wraps a user extension type.
func ExtValue(e Ext) Value { return Value{kind: KindExt, ext: e} }

// TimestampValue wraps a Timestamp, rendered on the wire as reserved ext -1.
func TimestampValue(t Timestamp) Value { return Value{kind: KindTimestamp, ts: t} }

// RawValue wraps an already-encoded MessagePack fragment, emitted verbatim
// by the encoder. Raw is never produced by the decoder.
func RawValue(b []byte) Value { return Value{kind: KindRaw, bin: b} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether v holds KindNil.
func (v Value) IsNil() bool { return v.kind == KindNil }

// Bool returns v's bool and true if v holds KindBool.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Int returns v's signed integer and true if v holds KindInt.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Uint returns v's unsigned integer and true if v holds KindUint.
func (v Value) Uint() (uint64, bool) { return v.u, v.kind == KindUint }

// Float32 returns v's float and true if v holds KindFloat32.
func (v Value) Float32() (float32, bool) { return v.f32, v.kind == KindFloat32 }

// Float64 returns v's float and true if v holds KindFloat64.
func (v Value) Float64() (float64, bool) { return v.f64, v.kind == KindFloat64 }

// Str returns v's string and true if v holds KindStr.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindStr }

// Bin returns v's bytes and true if v holds KindBin.
func (v Value) Bin() ([]byte, bool) { return v.bin, v.kind == KindBin }

// Array returns v's items and true if v holds KindArray.
func (v Value) Array() ([]Value, bool) { return v.arr, v.kind == KindArray }

// Map returns v's key/value pairs and true if v holds KindMap.
func (v Value) Map() ([]KV, bool) { return v.m, v.kind == KindMap }

// Ext returns v's extension and true if v holds KindExt.
func (v Value) Ext() (Ext, bool) { return v.ext, v.kind == KindExt }

// Timestamp returns v's timestamp and true if v holds KindTimestamp.
func (v Value) Timestamp() (Timestamp, bool) { return v.ts, v.kind == KindTimestamp }

// Raw returns v's pre-encoded bytes and true if v holds KindRaw.
func (v Value) Raw() ([]byte, bool) { return v.bin, v.kind == KindRaw }

// isHashable reports whether v is legal as a Map key: spec.md requires map
// keys be "hashable-equivalent" (strings, ints, bin, ext, raw, timestamp,
// bool, nil); arrays and maps are not.
func (v Value) isHashable() bool {
	return v.kind != KindArray && v.kind != KindMap
}

// Equal reports deep, exact equality between two Values. Raw fragments
// compare by their encoded bytes, not by decoding them (Raw is opaque).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindUint:
		return v.u == o.u
	case KindFloat32:
		return v.f32 == o.f32
	case KindFloat64:
		return v.f64 == o.f64
	case KindStr:
		return v.str == o.str
	case KindBin, KindRaw:
		return bytes.Equal(v.bin, o.bin)
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(o.m) {
			return false
		}
		for i := range v.m {
			if !v.m[i].Key.Equal(o.m[i].Key) || !v.m[i].Value.Equal(o.m[i].Value) {
				return false
			}
		}
		return true
	case KindExt:
		return v.ext.Code == o.ext.Code && bytes.Equal(v.ext.Data, o.ext.Data)
	case KindTimestamp:
		return v.ts.Seconds == o.ts.Seconds && v.ts.Nanoseconds == o.ts.Nanoseconds
	default:
		return false
	}
}
