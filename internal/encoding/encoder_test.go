package encoding

import (
	"bytes"
	"math"
	"testing"

	"github.com/unkn0wn-root/msgpack/internal/mpvalue"
)

func encodeOrFail(t *testing.T, v mpvalue.Value) []byte {
	t.Helper()
	b, err := Encode(v, 0)
	if err != nil {
		t.Fatalf("Encode(%v) error: %v", v, err)
	}
	return b
}

func TestEncodeSmallestForm(t *testing.T) {
	cases := []struct {
		name string
		v    mpvalue.Value
		want []byte
	}{
		{"positive fixint 0", mpvalue.Uint(0), []byte{0x00}},
		{"positive fixint 127", mpvalue.Uint(127), []byte{0x7F}},
		{"uint8 128", mpvalue.Uint(128), []byte{0xCC, 0x80}},
		{"uint8 255", mpvalue.Uint(255), []byte{0xCC, 0xFF}},
		{"uint16 256", mpvalue.Uint(256), []byte{0xCD, 0x01, 0x00}},
		{"uint16 65535", mpvalue.Uint(65535), []byte{0xCD, 0xFF, 0xFF}},
		{"uint32 65536", mpvalue.Uint(65536), []byte{0xCE, 0x00, 0x01, 0x00, 0x00}},
		{"uint32 2^32-1", mpvalue.Uint(0xFFFFFFFF), []byte{0xCE, 0xFF, 0xFF, 0xFF, 0xFF}},
		{"uint64 2^32", mpvalue.Uint(0x100000000), append([]byte{0xCF}, 0, 0, 0, 1, 0, 0, 0, 0)},
		{"negative fixint -1", mpvalue.Int(-1), []byte{0xFF}},
		{"negative fixint -32", mpvalue.Int(-32), []byte{0xE0}},
		{"int8 -33", mpvalue.Int(-33), []byte{0xD0, 0xDF}},
		{"int8 -128", mpvalue.Int(-128), []byte{0xD0, 0x80}},
		{"int16 -129", mpvalue.Int(-129), []byte{0xD1, 0xFF, 0x7F}},
		{"int16 -32768", mpvalue.Int(-32768), []byte{0xD1, 0x80, 0x00}},
		{"int32 -32769", mpvalue.Int(-32769), []byte{0xD2, 0xFF, 0xFF, 0x7F, 0xFF}},
		{"int32 -(2^31)", mpvalue.Int(-(1 << 31)), []byte{0xD2, 0x80, 0x00, 0x00, 0x00}},
		{"int64 -(2^31)-1", mpvalue.Int(-(1 << 31) - 1),
			[]byte{0xD3, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F, 0xFF, 0xFF, 0xFF}},
		{"int64 min", mpvalue.Int(-0x8000000000000000),
			[]byte{0xD3, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{"bool true", mpvalue.Bool(true), []byte{0xC3}},
		{"bool false", mpvalue.Bool(false), []byte{0xC2}},
		{"nil", mpvalue.NilValue(), []byte{0xC0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := encodeOrFail(t, c.v)
			if !bytes.Equal(got, c.want) {
				t.Fatalf("got % x, want % x", got, c.want)
			}
		})
	}
}

func TestEncodeFloat(t *testing.T) {
	// encode(3.14159265358979) == float64 tag + IEEE754 big-endian bits
	got := encodeOrFail(t, mpvalue.Float64(3.14159265358979))
	want := []byte{0xCB, 0x40, 0x09, 0x21, 0xFB, 0x54, 0x44, 0x2D, 0x11}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestEncodePi(t *testing.T) {
	got := encodeOrFail(t, mpvalue.Float64(math.Pi))
	want := []byte{0xCB, 0x40, 0x09, 0x21, 0xFB, 0x54, 0x44, 0x2D, 0x18}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestEncodeFixStr(t *testing.T) {
	got := encodeOrFail(t, mpvalue.Str("hello"))
	want := append([]byte{0xA5}, "hello"...)
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestEncodeStrLengthBoundaries(t *testing.T) {
	s31 := string(make([]byte, 31))
	got := encodeOrFail(t, mpvalue.Str(s31))
	if got[0] != 0xA0|31 {
		t.Fatalf("31-byte string should use fixstr, got tag 0x%02x", got[0])
	}
	s32 := string(make([]byte, 32))
	got = encodeOrFail(t, mpvalue.Str(s32))
	if got[0] != 0xD9 {
		t.Fatalf("32-byte string should use str8, got tag 0x%02x", got[0])
	}
	s255 := string(make([]byte, 255))
	got = encodeOrFail(t, mpvalue.Str(s255))
	if got[0] != 0xD9 {
		t.Fatalf("255-byte string should use str8, got tag 0x%02x", got[0])
	}
	s256 := string(make([]byte, 256))
	got = encodeOrFail(t, mpvalue.Str(s256))
	if got[0] != 0xDA {
		t.Fatalf("256-byte string should use str16, got tag 0x%02x", got[0])
	}
}

func TestEncodeBin(t *testing.T) {
	got := encodeOrFail(t, mpvalue.Bin([]byte{1, 2, 3}))
	want := []byte{0xC4, 0x03, 1, 2, 3}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestEncodeMapCompactSchema(t *testing.T) {
	v := mpvalue.MapOf([]mpvalue.KV{
		{Key: mpvalue.Str("compact"), Value: mpvalue.Bool(true)},
		{Key: mpvalue.Str("schema"), Value: mpvalue.Uint(0)},
	})
	got := encodeOrFail(t, v)
	want := append([]byte{0x82},
		append(append([]byte{0xA7}, "compact"...), 0xC3)...)
	want = append(want, append(append([]byte{0xA6}, "schema"...), 0x00)...)
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestEncodeArrayFixAndLarger(t *testing.T) {
	items := make([]mpvalue.Value, 15)
	for i := range items {
		items[i] = mpvalue.Uint(uint64(i))
	}
	got := encodeOrFail(t, mpvalue.Array(items))
	if got[0] != 0x90|15 {
		t.Fatalf("15-item array should use fixarray, got tag 0x%02x", got[0])
	}

	items16 := make([]mpvalue.Value, 16)
	got = encodeOrFail(t, mpvalue.Array(items16))
	if got[0] != 0xDC {
		t.Fatalf("16-item array should use array16, got tag 0x%02x", got[0])
	}
}

func TestEncodeExt(t *testing.T) {
	got := encodeOrFail(t, mpvalue.ExtValue(mpvalue.Ext{Code: 0x42, Data: []byte("123")}))
	want := []byte{0xC7, 0x03, 0x42, '1', '2', '3'}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestEncodeExtFixedWidths(t *testing.T) {
	cases := []struct {
		n   int
		tag byte
	}{{1, 0xD4}, {2, 0xD5}, {4, 0xD6}, {8, 0xD7}, {16, 0xD8}}
	for _, c := range cases {
		got := encodeOrFail(t, mpvalue.ExtValue(mpvalue.Ext{Code: 1, Data: make([]byte, c.n)}))
		if got[0] != c.tag {
			t.Fatalf("ext len %d: got tag 0x%02x, want 0x%02x", c.n, got[0], c.tag)
		}
	}
}

func TestEncodeTimestampWireWidths(t *testing.T) {
	// 32-bit: seconds only, fits uint32, no nanoseconds.
	got := encodeOrFail(t, mpvalue.TimestampValue(mpvalue.Timestamp{Seconds: 1609459200}))
	if got[0] != 0xD6 || got[1] != 0xFF {
		t.Fatalf("32-bit timestamp should be fixext4 code -1, got % x", got)
	}

	// 64-bit: seconds + nanoseconds packed into a single fixext8.
	got = encodeOrFail(t, mpvalue.TimestampValue(mpvalue.Timestamp{
		Seconds: 1745787446, Nanoseconds: 763583000,
	}))
	if got[0] != 0xD7 || got[1] != 0xFF {
		t.Fatalf("64-bit timestamp should be fixext8 code -1, got % x", got)
	}

	// 96-bit: seconds outside the 34-bit range forces the ext8 form.
	got = encodeOrFail(t, mpvalue.TimestampValue(mpvalue.Timestamp{
		Seconds: -1, Nanoseconds: 500,
	}))
	if got[0] != 0xC7 || got[1] != 0x0C || got[2] != 0xFF {
		t.Fatalf("96-bit timestamp should be ext8(12) code -1, got % x", got)
	}
}

func TestEncodeNestingDepthGuard(t *testing.T) {
	// build a singly-nested array chain deeper than maxDepth
	var v mpvalue.Value = mpvalue.Array(nil)
	for i := 0; i < 5; i++ {
		v = mpvalue.Array([]mpvalue.Value{v})
	}
	if _, err := Encode(v, 3); err == nil {
		t.Fatalf("expected nesting error with maxDepth=3, got nil")
	}
	if _, err := Encode(v, 0); err != nil {
		t.Fatalf("expected no error with default maxDepth, got %v", err)
	}
}

func TestEncodeUint64HighBoundary(t *testing.T) {
	got := encodeOrFail(t, mpvalue.Uint(math.MaxUint64))
	want := []byte{0xCF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestEncodeInt64MaxBoundary(t *testing.T) {
	got := encodeOrFail(t, mpvalue.Int(math.MaxInt64))
	want := []byte{0xCF, 0x7F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestEncodeStrAndArrayAndMapHighBoundaries(t *testing.T) {
	str16 := encodeOrFail(t, mpvalue.Str(string(make([]byte, 65535))))
	if str16[0] != 0xDA {
		t.Fatalf("65535-byte string should use str16, got tag 0x%02x", str16[0])
	}
	str32 := encodeOrFail(t, mpvalue.Str(string(make([]byte, 65536))))
	if str32[0] != 0xDB {
		t.Fatalf("65536-byte string should use str32, got tag 0x%02x", str32[0])
	}

	arr16 := encodeOrFail(t, mpvalue.Array(make([]mpvalue.Value, 65535)))
	if arr16[0] != 0xDC {
		t.Fatalf("65535-item array should use array16, got tag 0x%02x", arr16[0])
	}
	arr32 := encodeOrFail(t, mpvalue.Array(make([]mpvalue.Value, 65536)))
	if arr32[0] != 0xDD {
		t.Fatalf("65536-item array should use array32, got tag 0x%02x", arr32[0])
	}

	map16 := encodeOrFail(t, mpvalue.MapOf(make([]mpvalue.KV, 65535)))
	if map16[0] != 0xDE {
		t.Fatalf("65535-entry map should use map16, got tag 0x%02x", map16[0])
	}
	map32 := encodeOrFail(t, mpvalue.MapOf(make([]mpvalue.KV, 65536)))
	if map32[0] != 0xDF {
		t.Fatalf("65536-entry map should use map32, got tag 0x%02x", map32[0])
	}
}

func TestEncodeExtVariableLengthBoundaries(t *testing.T) {
	cases := []struct {
		n   int
		tag byte
	}{{3, 0xC7}, {5, 0xC7}, {9, 0xC7}, {17, 0xC7}, {255, 0xC7}, {256, 0xC8}, {65536, 0xC9}}
	for _, c := range cases {
		got := encodeOrFail(t, mpvalue.ExtValue(mpvalue.Ext{Code: 1, Data: make([]byte, c.n)}))
		if got[0] != c.tag {
			t.Fatalf("ext len %d: got tag 0x%02x, want 0x%02x", c.n, got[0], c.tag)
		}
	}
}

func TestEncodeRawPassthrough(t *testing.T) {
	raw := []byte{0xC0}
	got := encodeOrFail(t, mpvalue.RawValue(raw))
	if !bytes.Equal(got, raw) {
		t.Fatalf("raw passthrough got % x, want % x", got, raw)
	}
}

func TestEncodeZeroValueEncodesAsNil(t *testing.T) {
	if _, err := Encode(mpvalue.Value{}, 0); err != nil {
		t.Fatalf("zero Value is KindNil, should encode cleanly, got error %v", err)
	}
}
