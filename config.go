package msgpack

import "github.com/unkn0wn-root/msgpack/internal/decoding"

// config holds the options shared by Marshal/Unmarshal, Packer, Unpacker,
// and FileUnpacker. The zero config is not used directly — New* constructors
// always run it through normalized() first.
type config struct {
	tuple    bool
	extHook  ExtHook
	def      DefaultFunc
	readSize int
	logger   Logger

	maxArrayLen int
	maxMapLen   int
	maxBytesLen int
	maxDepth    int
}

const defaultReadSize = 4096

func (c config) normalized() config {
	c.readSize = coalesce(c.readSize, defaultReadSize)
	c.maxArrayLen = coalesce(c.maxArrayLen, decoding.DefaultMaxArrayLen)
	c.maxMapLen = coalesce(c.maxMapLen, decoding.DefaultMaxMapLen)
	c.maxBytesLen = coalesce(c.maxBytesLen, decoding.DefaultMaxBytesLen)
	c.maxDepth = coalesce(c.maxDepth, decoding.DefaultMaxDepth)
	if c.logger == nil {
		c.logger = NopLogger{}
	}
	return c
}

func (c config) decodingConfig() decoding.Config {
	return decoding.Config{
		MaxArrayLen: c.maxArrayLen,
		MaxMapLen:   c.maxMapLen,
		MaxBytesLen: c.maxBytesLen,
		MaxDepth:    c.maxDepth,
		ExtHook:     c.extHook,
		Warn: func(msg string, f map[string]any) {
			c.logger.Warn(msg, f)
		},
		Error: func(msg string, f map[string]any) {
			c.logger.Error(msg, f)
		},
	}
}

// Option configures Marshal, Unmarshal, Packer, Unpacker, and FileUnpacker.
type Option func(*config)

// WithTuple stores a tuple flag for API parity. Nothing in this package
// reads it: it changes neither encoding nor decoding (see DESIGN.md).
func WithTuple(tuple bool) Option {
	return func(c *config) { c.tuple = tuple }
}

// WithExtHook registers the single user ext-dispatch hook. It sees every
// Ext, code -1 included, and replaces the built-in Timestamp promotion.
func WithExtHook(hook ExtHook) Option {
	return func(c *config) { c.extHook = hook }
}

// WithDefault registers the encoder's fallback for native values with no
// direct Value mapping.
func WithDefault(def DefaultFunc) Option {
	return func(c *config) { c.def = def }
}

// WithReadSize sets FileUnpacker's per-read chunk size. Default 4096.
func WithReadSize(n int) Option {
	return func(c *config) { c.readSize = n }
}

// WithLogger installs a diagnostic logger. Default NopLogger.
func WithLogger(l Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMaxArrayLen overrides the decoder's array-length ceiling (default
// 10,000,000).
func WithMaxArrayLen(n int) Option {
	return func(c *config) { c.maxArrayLen = n }
}

// WithMaxMapLen overrides the decoder's map-length ceiling (default
// 100,000).
func WithMaxMapLen(n int) Option {
	return func(c *config) { c.maxMapLen = n }
}

// WithMaxBytesLen overrides the decoder's str/bin/ext length ceiling
// (default 128 MiB).
func WithMaxBytesLen(n int) Option {
	return func(c *config) { c.maxBytesLen = n }
}

// WithMaxDepth overrides the encode/decode container-nesting ceiling
// (default 32).
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

func buildConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c.normalized()
}
