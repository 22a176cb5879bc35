// Package uuidext is a bundled ExtHook round-tripping github.com/google/uuid
// values through the MessagePack extension mechanism, under a caller-chosen
// ext code. Register it with WithExtHook(uuidext.Hook(code)); it passes
// through every other code unchanged via msgpack.Passthrough.
package uuidext

import (
	"github.com/google/uuid"

	"github.com/unkn0wn-root/msgpack"
)

// Hook returns an ExtHook that decodes 16-byte payloads tagged with code
// into msgpack.Ext holding the UUID's raw bytes; it does not materialize a
// uuid.UUID Value directly since Value has no UUID kind — callers read the
// ext payload back out with Decode.
func Hook(code int8) msgpack.ExtHook {
	return func(e msgpack.Ext) (msgpack.Value, error) {
		if e.Code != code {
			return msgpack.Passthrough(e)
		}
		if len(e.Data) != 16 {
			return msgpack.Value{}, &msgpack.ValueError{
				Detail: "uuidext: ext payload must be 16 bytes",
			}
		}
		return msgpack.ExtValue(e), nil
	}
}

// Encode wraps id as an Ext Value tagged with code, ready for Marshal.
func Encode(code int8, id uuid.UUID) msgpack.Value {
	data := make([]byte, 16)
	copy(data, id[:])
	return msgpack.ExtValue(msgpack.Ext{Code: code, Data: data})
}

// Decode extracts a uuid.UUID from a Value produced by Encode (or passed
// through Hook), failing if v does not hold a 16-byte Ext under code.
func Decode(code int8, v msgpack.Value) (uuid.UUID, error) {
	e, ok := v.Ext()
	if !ok || e.Code != code {
		return uuid.UUID{}, &msgpack.TypeError{Detail: "uuidext: value is not a matching ext"}
	}
	if len(e.Data) != 16 {
		return uuid.UUID{}, &msgpack.ValueError{Detail: "uuidext: ext payload must be 16 bytes"}
	}
	var id uuid.UUID
	copy(id[:], e.Data)
	return id, nil
}
