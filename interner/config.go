package interner

// Config holds the settings an Interner is created with.
type Config struct {
	// Capacity is a hint for the number of bytes and strings expected.
	Capacity int
	// MaxBytes bounds the arena's reserved storage; 0 means unbounded.
	MaxBytes int
	// MaxIDs bounds the number of distinct strings below what the
	// identifier type can represent; 0 means the type's own limit.
	MaxIDs int
}

// Option configures an Interner.
type Option func(*Config)

// WithCapacity presizes the arena and both lookup tables.
func WithCapacity(n int) Option {
	return func(c *Config) {
		c.Capacity = n
	}
}

// WithMaxBytes bounds the total storage the arena may reserve.
func WithMaxBytes(n int) Option {
	return func(c *Config) {
		c.MaxBytes = n
	}
}

// WithMaxIDs bounds the number of distinct strings.
func WithMaxIDs(n int) Option {
	return func(c *Config) {
		c.MaxIDs = n
	}
}

func newConfig(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.Capacity = max(cfg.Capacity, 0)
	return cfg
}
