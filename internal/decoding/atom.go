package decoding

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/unkn0wn-root/msgpack/internal/errs"
	"github.com/unkn0wn-root/msgpack/internal/mpvalue"
	"github.com/unkn0wn-root/msgpack/internal/queue"
)

// readAtom consumes exactly one tag's worth of input: a leaf value, or a
// container header that pushes a new assembly-stack frame. pushed reports
// the latter case, in which the caller should loop back into readAtom
// rather than feed a (zero) Value to the current frame.
//
// Every variable-length form captures cp before consuming its tag byte, so
// any short read anywhere in the form rewinds the queue back to the tag and
// surfaces ErrNeedMore — the next Step call re-parses the whole atom from
// its tag byte rather than resuming mid-form.
func (d *Decoder) readAtom() (mpvalue.Value, bool, error) {
	cp := d.q.Checkpoint()
	tagBuf, ok := d.q.Peek(1)
	if !ok {
		return mpvalue.Value{}, false, ErrNeedMore
	}
	tag := tagBuf[0]
	d.q.Consume(1)

	switch {
	case tag <= 0x7F:
		return mpvalue.Uint(uint64(tag)), false, nil
	case tag >= 0xE0:
		return mpvalue.Int(int64(int8(tag))), false, nil
	case tag >= 0x80 && tag <= 0x8F:
		return d.openContainer(true, int(tag&0x0F), cp)
	case tag >= 0x90 && tag <= 0x9F:
		return d.openContainer(false, int(tag&0x0F), cp)
	case tag >= 0xA0 && tag <= 0xBF:
		return d.readFixStr(int(tag&0x1F), cp)
	}

	switch tag {
	case 0xC0:
		return mpvalue.NilValue(), false, nil
	case 0xC1:
		return mpvalue.Value{}, false, d.errReservedByte()
	case 0xC2:
		return mpvalue.Bool(false), false, nil
	case 0xC3:
		return mpvalue.Bool(true), false, nil
	case 0xC4:
		return d.readBinWithLenHeader(1, cp)
	case 0xC5:
		return d.readBinWithLenHeader(2, cp)
	case 0xC6:
		return d.readBinWithLenHeader(4, cp)
	case 0xC7:
		return d.readExtWithLenHeader(1, cp)
	case 0xC8:
		return d.readExtWithLenHeader(2, cp)
	case 0xC9:
		return d.readExtWithLenHeader(4, cp)
	case 0xCA:
		return d.readFloat32(cp)
	case 0xCB:
		return d.readFloat64(cp)
	case 0xCC:
		return d.readUint(1, cp)
	case 0xCD:
		return d.readUint(2, cp)
	case 0xCE:
		return d.readUint(4, cp)
	case 0xCF:
		return d.readUint(8, cp)
	case 0xD0:
		return d.readInt(1, cp)
	case 0xD1:
		return d.readInt(2, cp)
	case 0xD2:
		return d.readInt(4, cp)
	case 0xD3:
		return d.readInt(8, cp)
	case 0xD4:
		return d.readFixExt(1, cp)
	case 0xD5:
		return d.readFixExt(2, cp)
	case 0xD6:
		return d.readFixExt(4, cp)
	case 0xD7:
		return d.readFixExt(8, cp)
	case 0xD8:
		return d.readFixExt(16, cp)
	case 0xD9:
		return d.readStrWithLenHeader(1, cp)
	case 0xDA:
		return d.readStrWithLenHeader(2, cp)
	case 0xDB:
		return d.readStrWithLenHeader(4, cp)
	case 0xDC:
		return d.readArrayWithLenHeader(2, cp)
	case 0xDD:
		return d.readArrayWithLenHeader(4, cp)
	case 0xDE:
		return d.readMapWithLenHeader(2, cp)
	case 0xDF:
		return d.readMapWithLenHeader(4, cp)
	}

	// Every byte value is covered by the ranges and cases above.
	return mpvalue.Value{}, false, &errs.ValueError{Detail: fmt.Sprintf("unhandled tag 0x%02x", tag)}
}

// openContainer validates a declared array/map length against its ceiling
// and the assembly stack against MaxDepth, then either pushes a frame
// (pushed=true) or, for a zero-length container, returns the finished
// empty Value directly (pushed=false).
func (d *Decoder) openContainer(isMap bool, n int, cp queue.Checkpoint) (mpvalue.Value, bool, error) {
	kind := "array"
	limit := d.cfg.MaxArrayLen
	if isMap {
		kind = "map"
		limit = d.cfg.MaxMapLen
	}
	if n > limit {
		d.warnOversized(kind, n, limit)
		return mpvalue.Value{}, false, errs.OversizedCount(kind, n, limit)
	}
	if len(d.stack) >= d.cfg.MaxDepth {
		return mpvalue.Value{}, false, &errs.NestingError{Depth: len(d.stack) + 1, Limit: d.cfg.MaxDepth}
	}
	if n == 0 {
		if isMap {
			return mpvalue.MapOf(nil), false, nil
		}
		return mpvalue.Array(nil), false, nil
	}
	d.stack = append(d.stack, &frame{isMap: isMap, target: n})
	return mpvalue.Value{}, true, nil
}

func (d *Decoder) readFixStr(n int, cp queue.Checkpoint) (mpvalue.Value, bool, error) {
	if n > d.cfg.MaxBytesLen {
		d.warnOversized("str", n, d.cfg.MaxBytesLen)
		return mpvalue.Value{}, false, errs.OversizedBytes("str", n, d.cfg.MaxBytesLen)
	}
	buf, err := d.readPayload(n, cp)
	if err != nil {
		return mpvalue.Value{}, false, err
	}
	if !utf8.Valid(buf) {
		return mpvalue.Value{}, false, errs.BadUTF8("str")
	}
	return mpvalue.Str(string(buf)), false, nil
}

func (d *Decoder) readStrWithLenHeader(lenBytes int, cp queue.Checkpoint) (mpvalue.Value, bool, error) {
	n64, err := d.readBE(lenBytes, cp)
	if err != nil {
		return mpvalue.Value{}, false, err
	}
	n := int(n64)
	if n > d.cfg.MaxBytesLen {
		d.warnOversized("str", n, d.cfg.MaxBytesLen)
		return mpvalue.Value{}, false, errs.OversizedBytes("str", n, d.cfg.MaxBytesLen)
	}
	buf, err := d.readPayload(n, cp)
	if err != nil {
		return mpvalue.Value{}, false, err
	}
	if !utf8.Valid(buf) {
		return mpvalue.Value{}, false, errs.BadUTF8("str")
	}
	return mpvalue.Str(string(buf)), false, nil
}

func (d *Decoder) readBinWithLenHeader(lenBytes int, cp queue.Checkpoint) (mpvalue.Value, bool, error) {
	n64, err := d.readBE(lenBytes, cp)
	if err != nil {
		return mpvalue.Value{}, false, err
	}
	n := int(n64)
	if n > d.cfg.MaxBytesLen {
		d.warnOversized("bin", n, d.cfg.MaxBytesLen)
		return mpvalue.Value{}, false, errs.OversizedBytes("bin", n, d.cfg.MaxBytesLen)
	}
	buf, err := d.readPayload(n, cp)
	if err != nil {
		return mpvalue.Value{}, false, err
	}
	return mpvalue.Bin(buf), false, nil
}

func (d *Decoder) readExtWithLenHeader(lenBytes int, cp queue.Checkpoint) (mpvalue.Value, bool, error) {
	n64, err := d.readBE(lenBytes, cp)
	if err != nil {
		return mpvalue.Value{}, false, err
	}
	n := int(n64)
	if n > d.cfg.MaxBytesLen {
		d.warnOversized("ext", n, d.cfg.MaxBytesLen)
		return mpvalue.Value{}, false, errs.OversizedBytes("ext", n, d.cfg.MaxBytesLen)
	}
	payload, err := d.readPayload(n+1, cp)
	if err != nil {
		return mpvalue.Value{}, false, err
	}
	v, err := d.processExt(int8(payload[0]), payload[1:])
	return v, false, err
}

func (d *Decoder) readFixExt(n int, cp queue.Checkpoint) (mpvalue.Value, bool, error) {
	payload, err := d.readPayload(n+1, cp)
	if err != nil {
		return mpvalue.Value{}, false, err
	}
	v, err := d.processExt(int8(payload[0]), payload[1:])
	return v, false, err
}

// processExt runs the registered ExtHook, if any, in place of the built-in
// reserved-code -1 timestamp promotion; a hook sees every code, including
// -1, and may return mpvalue.Passthrough to keep the raw Ext.
func (d *Decoder) processExt(code int8, data []byte) (mpvalue.Value, error) {
	e := mpvalue.Ext{Code: code, Data: data}
	if d.cfg.ExtHook != nil {
		return d.cfg.ExtHook(e)
	}
	if code == -1 {
		return timestampFromExt(data)
	}
	return mpvalue.ExtValue(e), nil
}

func timestampFromExt(data []byte) (mpvalue.Value, error) {
	switch len(data) {
	case 4:
		sec := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
		return mpvalue.TimestampValue(mpvalue.Timestamp{Seconds: int64(sec)}), nil
	case 8:
		var x uint64
		for _, b := range data {
			x = x<<8 | uint64(b)
		}
		ns := uint32(x >> 34)
		sec := int64(x & 0x3FFFFFFFF)
		return mpvalue.TimestampValue(mpvalue.Timestamp{Seconds: sec, Nanoseconds: ns}), nil
	case 12:
		ns := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
		var sec uint64
		for _, b := range data[4:] {
			sec = sec<<8 | uint64(b)
		}
		return mpvalue.TimestampValue(mpvalue.Timestamp{Seconds: int64(sec), Nanoseconds: ns}), nil
	default:
		return mpvalue.Value{}, errs.BadTimestampLen(len(data))
	}
}

func (d *Decoder) readFloat32(cp queue.Checkpoint) (mpvalue.Value, bool, error) {
	v, err := d.readBE(4, cp)
	if err != nil {
		return mpvalue.Value{}, false, err
	}
	return mpvalue.Float32(math.Float32frombits(uint32(v))), false, nil
}

func (d *Decoder) readFloat64(cp queue.Checkpoint) (mpvalue.Value, bool, error) {
	v, err := d.readBE(8, cp)
	if err != nil {
		return mpvalue.Value{}, false, err
	}
	return mpvalue.Float64(math.Float64frombits(v)), false, nil
}

func (d *Decoder) readUint(n int, cp queue.Checkpoint) (mpvalue.Value, bool, error) {
	v, err := d.readBE(n, cp)
	if err != nil {
		return mpvalue.Value{}, false, err
	}
	return mpvalue.Uint(v), false, nil
}

func (d *Decoder) readInt(n int, cp queue.Checkpoint) (mpvalue.Value, bool, error) {
	v, err := d.readBE(n, cp)
	if err != nil {
		return mpvalue.Value{}, false, err
	}
	var i int64
	switch n {
	case 1:
		i = int64(int8(v))
	case 2:
		i = int64(int16(v))
	case 4:
		i = int64(int32(v))
	default:
		i = int64(v)
	}
	return mpvalue.Int(i), false, nil
}

func (d *Decoder) readArrayWithLenHeader(lenBytes int, cp queue.Checkpoint) (mpvalue.Value, bool, error) {
	n64, err := d.readBE(lenBytes, cp)
	if err != nil {
		return mpvalue.Value{}, false, err
	}
	return d.openContainer(false, int(n64), cp)
}

func (d *Decoder) readMapWithLenHeader(lenBytes int, cp queue.Checkpoint) (mpvalue.Value, bool, error) {
	n64, err := d.readBE(lenBytes, cp)
	if err != nil {
		return mpvalue.Value{}, false, err
	}
	return d.openContainer(true, int(n64), cp)
}

// readBE reads n big-endian bytes as a length header or a fixed-width
// numeric payload. On a short read it rewinds to cp and reports ErrNeedMore.
func (d *Decoder) readBE(n int, cp queue.Checkpoint) (uint64, error) {
	buf, err := d.readPayload(n, cp)
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, b := range buf {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// readPayload consumes exactly n bytes, or rewinds to cp and reports
// ErrNeedMore if fewer than n are available. The returned slice is a fresh
// copy safe to retain past further queue mutation.
func (d *Decoder) readPayload(n int, cp queue.Checkpoint) ([]byte, error) {
	buf, ok := d.q.Peek(n)
	if !ok {
		d.q.Rewind(cp)
		return nil, ErrNeedMore
	}
	d.q.Consume(n)
	out := make([]byte, n)
	copy(out, buf)
	return out, nil
}

func (d *Decoder) errReservedByte() error {
	if d.cfg.Error != nil {
		d.cfg.Error("reserved byte encountered", map[string]any{"tag": "0xc1"})
	}
	return errs.ReservedByte()
}

func (d *Decoder) warnOversized(kind string, got, limit int) {
	if d.cfg.Warn != nil {
		d.cfg.Warn("oversized length rejected", map[string]any{
			"kind": kind, "got": got, "limit": limit,
		})
	}
}
