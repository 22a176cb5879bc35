package msgpack

import (
	"github.com/unkn0wn-root/msgpack/internal/decoding"
	"github.com/unkn0wn-root/msgpack/internal/queue"
)

// Unpacker is the incremental decoder: Feed appends bytes, Next pulls one
// complete Value at a time. Feeding more bytes never invalidates Values
// already produced, and values come out in stream order.
//
// Not safe for concurrent use.
type Unpacker struct {
	q *queue.Queue
	d *decoding.Decoder
}

// NewUnpacker returns an empty Unpacker ready to Feed.
func NewUnpacker(opts ...Option) *Unpacker {
	c := buildConfig(opts)
	q := queue.New()
	return &Unpacker{q: q, d: decoding.New(q, c.decodingConfig())}
}

// Feed appends b to the pending input.
func (u *Unpacker) Feed(b []byte) {
	u.q.Append(b)
}

// Idle reports whether the Unpacker holds no partial value: the fed bytes
// end exactly on a value boundary, with no container left open.
func (u *Unpacker) Idle() bool {
	return u.d.Idle()
}

// Next returns the next complete Value, ErrNeedMore if the fed bytes end
// mid-value, or a fatal error. Once a fatal (non-ErrNeedMore) error is
// observed, every subsequent Next call returns it again — the Unpacker does
// not self-heal.
func (u *Unpacker) Next() (Value, error) {
	return u.d.Step()
}

// UnmarshalOne feeds b and returns exactly one Value; it does not check for
// or reject trailing bytes (use Unmarshal for that). Intended for a single
// chunk known to hold at least one complete value, with leftovers meant to
// be consumed by later UnmarshalOne/Next calls against the same Unpacker.
func (u *Unpacker) UnmarshalOne(b []byte) (Value, error) {
	u.Feed(b)
	return u.Next()
}
