// Package msgpack implements a MessagePack codec: a one-shot Marshal/Unmarshal
// pair and an incremental, push-based Unpacker that consumes bytes as they
// arrive and yields decoded values one at a time.
//
// Components:
//   - Value: a closed, tagged union covering every MessagePack wire type
//     (nil, bool, integers, floats, strings, binary, arrays, maps, extensions,
//     timestamps) plus Raw, an escape hatch for pre-encoded fragments.
//   - Unpacker / FileUnpacker: resumable decoders. Unpacker is fed byte slices
//     directly; FileUnpacker pulls from an io.Reader in fixed-size chunks.
//   - Packer: holds encoder configuration (a Default fallback for
//     unencodable kinds) across repeated Marshal calls.
//
// Canonical form:
//
//	b, _ := msgpack.Marshal(msgpack.MapOf([]msgpack.KV{
//		{Key: msgpack.Str("compact"), Value: msgpack.Bool(true)},
//		{Key: msgpack.Str("schema"), Value: msgpack.Uint(0)},
//	}))
//
// Incremental decoding:
//
//	u := msgpack.NewUnpacker()
//	u.Feed(chunk)
//	for {
//		v, err := u.Next()
//		if err == msgpack.ErrNeedMore {
//			break
//		}
//		if err != nil {
//			// fatal; subsequent Next calls keep reporting it
//		}
//		// use v
//	}
package msgpack
