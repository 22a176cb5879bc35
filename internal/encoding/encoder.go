// Package encoding implements the MessagePack encoder: smallest-form
// selection across MessagePack's overlapping type encodings, a depth guard
// against runaway container nesting, and an output buffer pre-sized to
// 1 KiB (mirroring the bytes.Buffer.Grow pre-sizing idiom the cascache
// teacher uses in internal/wire.go). Past that the buffer grows through
// plain append, whose growth factor for slices of this size is below x2;
// the encoder does not double it itself.
package encoding

import (
	"fmt"
	"math"

	"github.com/unkn0wn-root/msgpack/internal/errs"
	"github.com/unkn0wn-root/msgpack/internal/mpvalue"
)

const (
	initialBufSize  = 1024
	DefaultMaxDepth = 32
)

// Encode serializes root into a freshly allocated byte slice. maxDepth <= 0
// means DefaultMaxDepth.
func Encode(root mpvalue.Value, maxDepth int) ([]byte, error) {
	return EncodeInto(root, make([]byte, 0, initialBufSize), maxDepth)
}

// EncodeInto appends root's encoding to out and returns the grown slice.
func EncodeInto(root mpvalue.Value, out []byte, maxDepth int) ([]byte, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	e := &encoder{buf: out, maxDepth: maxDepth}
	if err := e.value(root, 0); err != nil {
		return nil, err
	}
	return e.buf, nil
}

type encoder struct {
	buf      []byte
	maxDepth int
}

func (e *encoder) value(v mpvalue.Value, depth int) error {
	switch v.Kind() {
	case mpvalue.KindNil:
		e.u8(0xC0)
	case mpvalue.KindBool:
		b, _ := v.Bool()
		if b {
			e.u8(0xC3)
		} else {
			e.u8(0xC2)
		}
	case mpvalue.KindInt:
		i, _ := v.Int()
		e.int64(i)
	case mpvalue.KindUint:
		u, _ := v.Uint()
		e.uintMagnitude(u)
	case mpvalue.KindFloat32:
		f, _ := v.Float32()
		e.u8(0xCA)
		e.u32(math.Float32bits(f))
	case mpvalue.KindFloat64:
		f, _ := v.Float64()
		e.u8(0xCB)
		e.u64(math.Float64bits(f))
	case mpvalue.KindStr:
		s, _ := v.Str()
		return e.str(s)
	case mpvalue.KindBin:
		b, _ := v.Bin()
		return e.bin(b)
	case mpvalue.KindArray:
		items, _ := v.Array()
		return e.array(items, depth)
	case mpvalue.KindMap:
		kv, _ := v.Map()
		return e.mapv(kv, depth)
	case mpvalue.KindExt:
		ext, _ := v.Ext()
		return e.ext(ext.Code, ext.Data)
	case mpvalue.KindTimestamp:
		ts, _ := v.Timestamp()
		return e.timestamp(ts.Seconds, ts.Nanoseconds)
	case mpvalue.KindRaw:
		raw, _ := v.Raw()
		e.buf = append(e.buf, raw...)
	default:
		return &errs.TypeError{Detail: fmt.Sprintf("cannot encode value kind %v", v.Kind())}
	}
	return nil
}

func (e *encoder) enterContainer(depth int) error {
	if depth >= e.maxDepth {
		return &errs.NestingError{Depth: depth + 1, Limit: e.maxDepth}
	}
	return nil
}

func (e *encoder) int64(i int64) {
	if i >= 0 {
		e.uintMagnitude(uint64(i))
		return
	}
	switch {
	case i >= -32:
		e.u8(byte(0xE0 | (i & 0x1F)))
	case i >= -128:
		e.u8(0xD0)
		e.u8(byte(int8(i)))
	case i >= -32768:
		e.u8(0xD1)
		e.u16(uint16(int16(i)))
	case i >= -(1 << 31):
		e.u8(0xD2)
		e.u32(uint32(int32(i)))
	default:
		e.u8(0xD3)
		e.u64(uint64(i))
	}
}

func (e *encoder) uintMagnitude(u uint64) {
	switch {
	case u <= 0x7F:
		e.u8(byte(u))
	case u <= 0xFF:
		e.u8(0xCC)
		e.u8(byte(u))
	case u <= 0xFFFF:
		e.u8(0xCD)
		e.u16(uint16(u))
	case u <= 0xFFFFFFFF:
		e.u8(0xCE)
		e.u32(uint32(u))
	default:
		e.u8(0xCF)
		e.u64(u)
	}
}

func (e *encoder) str(s string) error {
	n := len(s)
	switch {
	case n <= 31:
		e.u8(byte(0xA0 | n))
	case n <= 0xFF:
		e.u8(0xD9)
		e.u8(byte(n))
	case n <= 0xFFFF:
		e.u8(0xDA)
		e.u16(uint16(n))
	case uint64(n) <= 0xFFFFFFFF:
		e.u8(0xDB)
		e.u32(uint32(n))
	default:
		return &errs.TypeError{Detail: "str length exceeds 2^32-1"}
	}
	e.buf = append(e.buf, s...)
	return nil
}

func (e *encoder) bin(b []byte) error {
	n := len(b)
	switch {
	case n <= 0xFF:
		e.u8(0xC4)
		e.u8(byte(n))
	case n <= 0xFFFF:
		e.u8(0xC5)
		e.u16(uint16(n))
	case uint64(n) <= 0xFFFFFFFF:
		e.u8(0xC6)
		e.u32(uint32(n))
	default:
		return &errs.TypeError{Detail: "bin length exceeds 2^32-1"}
	}
	e.buf = append(e.buf, b...)
	return nil
}

func (e *encoder) array(items []mpvalue.Value, depth int) error {
	if err := e.enterContainer(depth); err != nil {
		return err
	}
	n := len(items)
	switch {
	case n <= 15:
		e.u8(byte(0x90 | n))
	case n <= 0xFFFF:
		e.u8(0xDC)
		e.u16(uint16(n))
	default:
		e.u8(0xDD)
		e.u32(uint32(n))
	}
	for _, it := range items {
		if err := e.value(it, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) mapv(kv []mpvalue.KV, depth int) error {
	if err := e.enterContainer(depth); err != nil {
		return err
	}
	n := len(kv)
	switch {
	case n <= 15:
		e.u8(byte(0x80 | n))
	case n <= 0xFFFF:
		e.u8(0xDE)
		e.u16(uint16(n))
	default:
		e.u8(0xDF)
		e.u32(uint32(n))
	}
	for _, pair := range kv {
		if err := e.value(pair.Key, depth+1); err != nil {
			return err
		}
		if err := e.value(pair.Value, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) ext(code int8, data []byte) error {
	n := len(data)
	switch n {
	case 1, 2, 4, 8, 16:
		var tag byte
		switch n {
		case 1:
			tag = 0xD4
		case 2:
			tag = 0xD5
		case 4:
			tag = 0xD6
		case 8:
			tag = 0xD7
		default:
			tag = 0xD8
		}
		e.u8(tag)
		e.u8(byte(code))
	default:
		switch {
		case n <= 0xFF:
			e.u8(0xC7)
			e.u8(byte(n))
		case n <= 0xFFFF:
			e.u8(0xC8)
			e.u16(uint16(n))
		case uint64(n) <= 0xFFFFFFFF:
			e.u8(0xC9)
			e.u32(uint32(n))
		default:
			return &errs.TypeError{Detail: "ext length exceeds 2^32-1"}
		}
		e.u8(byte(code))
	}
	e.buf = append(e.buf, data...)
	return nil
}

const (
	maxTimestamp32Sec = 0xFFFFFFFF
	timestamp34BitMax = 1<<34 - 1
	timestamp30BitMax = 1<<30 - 1
)

func (e *encoder) timestamp(sec int64, ns uint32) error {
	switch {
	case sec >= 0 && sec <= maxTimestamp32Sec && ns == 0:
		e.u8(0xD6)
		e.u8(0xFF)
		e.u32(uint32(sec))
	case sec >= 0 && sec <= timestamp34BitMax && ns <= timestamp30BitMax:
		e.u8(0xD7)
		e.u8(0xFF)
		e.u64((uint64(ns) << 34) | uint64(sec))
	default:
		e.u8(0xC7)
		e.u8(0x0C)
		e.u8(0xFF)
		e.u32(ns)
		e.u64(uint64(sec))
	}
	return nil
}

func (e *encoder) u8(b byte)    { e.buf = append(e.buf, b) }
func (e *encoder) u16(v uint16) { e.buf = append(e.buf, byte(v>>8), byte(v)) }
func (e *encoder) u32(v uint32) {
	e.buf = append(e.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
func (e *encoder) u64(v uint64) {
	e.buf = append(e.buf,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v),
	)
}
