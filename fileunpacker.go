package msgpack

import "io"

// FileUnpacker pulls MessagePack values out of an io.Reader, the idiomatic
// Go rendering of "any object exposing read(n) -> bytes": reading more on
// ErrNeedMore and returning io.EOF only at a clean stream boundary (no bytes
// pending, reader exhausted).
//
// Not safe for concurrent use.
type FileUnpacker struct {
	r        io.Reader
	u        *Unpacker
	readSize int
	logger   Logger
	buf      []byte
}

// NewFileUnpacker wraps r. WithReadSize controls the per-read chunk size
// (default 4096).
func NewFileUnpacker(r io.Reader, opts ...Option) *FileUnpacker {
	c := buildConfig(opts)
	return &FileUnpacker{
		r:        r,
		u:        NewUnpacker(opts...),
		readSize: c.readSize,
		logger:   c.logger,
		buf:      make([]byte, c.readSize),
	}
}

// Next returns the next complete Value, reading from r as needed. It
// returns io.EOF when the reader is exhausted with no partial value
// pending, or ErrNeedMore-derived fatal errors for a reader that ends
// mid-value (surfaced as IncompleteError, matching Unmarshal's one-shot
// behavior since a FileUnpacker has no further caller to feed it more).
func (f *FileUnpacker) Next() (Value, error) {
	for {
		v, err := f.u.Next()
		if err == nil {
			return v, nil
		}
		if err != ErrNeedMore {
			return Value{}, err
		}
		n, rerr := f.r.Read(f.buf)
		if n > 0 {
			f.u.Feed(f.buf[:n])
			continue // try parsing before acting on a simultaneous EOF
		}
		if rerr != nil {
			if rerr == io.EOF {
				if f.u.Idle() {
					return Value{}, io.EOF
				}
				f.logger.Debug("stream ended mid-value", Fields{"read_size": f.readSize})
				return Value{}, &IncompleteError{}
			}
			return Value{}, rerr
		}
	}
}
