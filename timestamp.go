package msgpack

import "github.com/unkn0wn-root/msgpack/internal/mpvalue"

// Timestamp is the semantic value rendered on the wire as reserved ext -1.
// It round-trips through three wire widths depending on magnitude (see
// spec.md §4.2/§4.3). Neither field is normalized or range-checked: a
// Nanoseconds of 1e9 or more is stored, encoded and decoded as given.
type Timestamp = mpvalue.Timestamp
