// Package queue implements ByteQueue: a double-ended byte accumulator that
// feeds the incremental decoder. It supports peek/consume without copying
// when a request fits inside a single appended chunk, and an O(1)
// checkpoint/rewind pair used by the decoder's "need more bytes" path.
package queue

// Queue is a FIFO of byte chunks. The zero Queue is ready to use.
//
// Append is O(1) amortized. Peek never consumes; it returns a contiguous
// view when the request fits inside the front chunk, and materializes a
// temporary buffer only when it spans chunks. Consume advances the read
// cursor and drops fully-consumed chunks. Checkpoint/Rewind are O(1): they
// capture and restore the chunk slice header plus cursor and available
// count, with no copying.
type Queue struct {
	chunks [][]byte
	off    int // read offset into chunks[0]
	avail  int // total unread bytes across all chunks
}

// Checkpoint is an opaque snapshot of a Queue's read position, produced by
// Queue.Checkpoint and consumed by Queue.Rewind.
type Checkpoint struct {
	chunks [][]byte
	off    int
	avail  int
}

// New returns an empty Queue.
func New() *Queue { return &Queue{} }

// Append copies b into the queue as one new chunk. Appending an empty slice
// is a no-op.
func (q *Queue) Append(b []byte) {
	if len(b) == 0 {
		return
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	q.chunks = append(q.chunks, cp)
	q.avail += len(cp)
}

// Available returns the total number of unread bytes.
func (q *Queue) Available() int { return q.avail }

// Peek returns the next n bytes without consuming them, and true if n bytes
// were available. The returned slice is a view into queue storage when n
// fits inside the front chunk and must not be retained past the next
// mutating call; otherwise it is a freshly materialized copy.
func (q *Queue) Peek(n int) ([]byte, bool) {
	if n < 0 || n > q.avail {
		return nil, false
	}
	if n == 0 {
		return nil, true
	}
	if len(q.chunks) > 0 {
		if front := q.chunks[0][q.off:]; len(front) >= n {
			return front[:n], true
		}
	}
	out := make([]byte, 0, n)
	need := n
	for i, c := range q.chunks {
		seg := c
		if i == 0 {
			seg = c[q.off:]
		}
		if len(seg) == 0 {
			continue
		}
		take := need
		if take > len(seg) {
			take = len(seg)
		}
		out = append(out, seg[:take]...)
		need -= take
		if need == 0 {
			break
		}
	}
	return out, true
}

// Consume advances the read cursor by n bytes, discarding any chunk it
// fully consumes. It is only legal when Available() >= n.
func (q *Queue) Consume(n int) {
	if n < 0 || n > q.avail {
		panic("queue: consume exceeds available bytes")
	}
	q.avail -= n
	for n > 0 && len(q.chunks) > 0 {
		rem := q.chunks[0][q.off:]
		if len(rem) <= n {
			n -= len(rem)
			q.chunks = q.chunks[1:]
			q.off = 0
		} else {
			q.off += n
			n = 0
		}
	}
}

// Checkpoint captures the current read position.
func (q *Queue) Checkpoint() Checkpoint {
	return Checkpoint{chunks: q.chunks, off: q.off, avail: q.avail}
}

// Rewind restores the queue to its state at Checkpoint. Bytes consumed since
// the checkpoint become unread again; bytes appended since the checkpoint
// are dropped, so Append must not run between a Checkpoint and its Rewind.
func (q *Queue) Rewind(cp Checkpoint) {
	q.chunks = cp.chunks
	q.off = cp.off
	q.avail = cp.avail
}
