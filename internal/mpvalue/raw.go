package mpvalue

// Raw is an opaque, already-encoded MessagePack fragment. The encoder
// writes it verbatim with no validation: callers vouch for its
// well-formedness. The decoder never produces Raw; it is purely an encode-
// side passthrough escape hatch.
type Raw []byte
