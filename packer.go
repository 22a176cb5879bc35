package msgpack

import "github.com/unkn0wn-root/msgpack/internal/encoding"

// Packer holds encode options across repeated Marshal calls, avoiding the
// per-call option-parsing Marshal does.
type Packer struct {
	c config
}

// NewPacker builds a Packer from opts.
func NewPacker(opts ...Option) *Packer {
	return &Packer{c: buildConfig(opts)}
}

// Marshal encodes v using the Packer's configured options.
func (p *Packer) Marshal(v any) ([]byte, error) {
	root, err := toValue(v, 0, p.c.def, p.c.maxDepth)
	if err != nil {
		return nil, err
	}
	return encoding.Encode(root, p.c.maxDepth)
}
