package mpvalue

// Ext is the MessagePack extension mechanism: a user-defined type code plus
// an opaque payload. Code -1 is reserved for Timestamp (spec.md §3); it is
// promoted to a Timestamp Value on decode unless an ExtHook is registered.
type Ext struct {
	Code int8
	Data []byte
}

// ExtHook is invoked for every decoded Ext, including the reserved
// Timestamp code -1. A registered hook replaces the built-in timestamp
// promotion: its result is the decoded Value, so a code -1 Ext handed back
// via Passthrough stays a KindExt Value rather than becoming a Timestamp.
type ExtHook func(e Ext) (Value, error)

// Passthrough hands the raw Ext back unchanged, enabling a hook to
// selectively intercept some codes and fall through the rest.
func Passthrough(e Ext) (Value, error) { return ExtValue(e), nil }

// DefaultFunc is the encoder's fallback for value kinds it cannot map onto
// a Value directly (see Packer/Marshal's Default option). It must return an
// encodable Value; a hook that keeps returning non-encodable values trips
// the nesting guard on re-entry rather than looping forever.
type DefaultFunc func(v any) (Value, error)
