package msgpack

import "github.com/unkn0wn-root/msgpack/internal/mpvalue"

// Ext is the MessagePack extension mechanism: a user-defined type code plus
// an opaque payload. Code -1 is reserved for Timestamp (spec.md §3); it is
// promoted to a Timestamp Value on decode unless an ExtHook is registered.
type Ext = mpvalue.Ext

// ExtHook is invoked for every decoded Ext, including the reserved
// Timestamp code -1. A registered hook replaces the built-in timestamp
// promotion: its result is the decoded Value, so a code -1 Ext handed back
// via Passthrough stays a KindExt Value rather than becoming a Timestamp.
type ExtHook = mpvalue.ExtHook

// Passthrough hands the raw Ext back unchanged, enabling a hook to
// selectively intercept some codes and fall through the rest.
func Passthrough(e Ext) (Value, error) { return mpvalue.Passthrough(e) }

// DefaultFunc is the encoder's fallback for value kinds it cannot map onto
// a Value directly (see Packer/Marshal's Default option). It must return an
// encodable Value.
type DefaultFunc = mpvalue.DefaultFunc
