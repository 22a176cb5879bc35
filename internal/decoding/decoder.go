// Package decoding implements the incremental MessagePack decoder: a
// resumable state machine driven entirely by its caller. Step attempts to
// produce one complete value per call, returning ErrNeedMore when the fed
// bytes end mid-value. Feeding more bytes and calling Step again resumes
// exactly where parsing left off — no coroutine, no goroutine, no hidden
// state beyond the queue and the assembly stack.
//
// The assembly stack (capped at MaxDepth, default 32) holds in-progress
// array/map frames across NeedMore boundaries: once an item is fully
// consumed from the queue it is never re-read, so a container half filled
// when the bytes run out stays half filled in the Decoder until more bytes
// arrive. Only the atom currently being read rewinds on a short read — via
// the queue's checkpoint/rewind — so the next Step call re-parses it from
// its tag byte instead of needing its own persisted sub-state.
package decoding

import (
	"github.com/unkn0wn-root/msgpack/internal/errs"
	"github.com/unkn0wn-root/msgpack/internal/mpvalue"
	"github.com/unkn0wn-root/msgpack/internal/queue"
)

// ErrNeedMore signals that Step needs more bytes before it can complete the
// value currently in progress.
var ErrNeedMore = errs.ErrNeedMore

// LogFunc is a minimal structured-log callback; nil disables logging. It
// exists instead of a Logger interface so this package need not redeclare
// msgpack.Fields as an identical-but-distinct named type (the root package
// adapts its Logger into these two closures).
type LogFunc func(msg string, fields map[string]any)

// Config configures a Decoder. The zero Config uses spec-default ceilings
// (array 10,000,000; map 100,000; str/bin/ext 128 MiB) and depth (32).
type Config struct {
	MaxArrayLen int
	MaxMapLen   int
	MaxBytesLen int // applies to str, bin, and ext payloads alike
	MaxDepth    int

	ExtHook mpvalue.ExtHook

	Warn  LogFunc
	Error LogFunc
}

const (
	DefaultMaxArrayLen = 10_000_000
	DefaultMaxMapLen   = 100_000
	DefaultMaxBytesLen = 128 * 1024 * 1024
	DefaultMaxDepth    = 32
)

func (c Config) normalized() Config {
	if c.MaxArrayLen <= 0 {
		c.MaxArrayLen = DefaultMaxArrayLen
	}
	if c.MaxMapLen <= 0 {
		c.MaxMapLen = DefaultMaxMapLen
	}
	if c.MaxBytesLen <= 0 {
		c.MaxBytesLen = DefaultMaxBytesLen
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	return c
}

// frame is one in-progress container on the assembly stack.
type frame struct {
	isMap          bool
	target         int
	items          []mpvalue.Value
	kv             []mpvalue.KV
	havePendingKey bool
	pendingKey     mpvalue.Value
}

func (f *frame) count() int {
	if f.isMap {
		return len(f.kv)
	}
	return len(f.items)
}

// Decoder is the incremental decode state machine. It is not safe for
// concurrent use; exactly one goroutine may call Step at a time.
type Decoder struct {
	cfg   Config
	q     *queue.Queue
	stack []*frame
	fatal error
}

// New returns a Decoder reading from q.
func New(q *queue.Queue, cfg Config) *Decoder {
	return &Decoder{cfg: cfg.normalized(), q: q}
}

// Idle reports whether the Decoder holds no partial value: the byte queue
// is empty and no container frame is open. A reader hitting io.EOF while
// Idle is a clean stream boundary; otherwise it is a truncated value.
func (d *Decoder) Idle() bool {
	return d.q.Available() == 0 && len(d.stack) == 0
}

// Step attempts to produce one complete top-level value. It returns
// ErrNeedMore when q doesn't yet hold enough bytes; any other non-nil error
// is fatal and sticky — every subsequent Step call returns it again without
// consuming further bytes.
func (d *Decoder) Step() (mpvalue.Value, error) {
	if d.fatal != nil {
		return mpvalue.Value{}, d.fatal
	}
	v, err := d.run()
	if err != nil && err != ErrNeedMore {
		d.fatal = err
	}
	return v, err
}

func (d *Decoder) run() (mpvalue.Value, error) {
	for {
		v, pushed, err := d.readAtom()
		if err != nil {
			return mpvalue.Value{}, err
		}
		if pushed {
			continue
		}
		final, done, err := d.feedChild(v)
		if err != nil {
			return mpvalue.Value{}, err
		}
		if done {
			return final, nil
		}
	}
}

// feedChild inserts child into the current top-of-stack frame (or, if the
// stack is empty, treats it as the finished top-level value). Closing a
// frame feeds its built container into its own parent, looping until
// either a frame remains open (done=false, go read its next item) or the
// stack empties out (done=true, the whole value is ready).
func (d *Decoder) feedChild(child mpvalue.Value) (mpvalue.Value, bool, error) {
	for {
		if len(d.stack) == 0 {
			return child, true, nil
		}
		top := d.stack[len(d.stack)-1]
		if top.isMap {
			if !top.havePendingKey {
				if !isHashable(child) {
					return mpvalue.Value{}, true, errs.UnhashableKey()
				}
				top.pendingKey = child
				top.havePendingKey = true
				return mpvalue.Value{}, false, nil
			}
			top.kv = append(top.kv, mpvalue.KV{Key: top.pendingKey, Value: child})
			top.havePendingKey = false
		} else {
			top.items = append(top.items, child)
		}
		if top.count() < top.target {
			return mpvalue.Value{}, false, nil
		}
		var closed mpvalue.Value
		if top.isMap {
			closed = mpvalue.MapOf(top.kv)
		} else {
			closed = mpvalue.Array(top.items)
		}
		d.stack = d.stack[:len(d.stack)-1]
		child = closed
	}
}

func isHashable(v mpvalue.Value) bool {
	return v.Kind() != mpvalue.KindArray && v.Kind() != mpvalue.KindMap
}
