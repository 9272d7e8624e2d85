package typedbytes

// DefaultMaxDepth is the nesting limit used when Config.MaxDepth is zero.
const DefaultMaxDepth = 512

// Config defines configuration for Encoders and Decoders.
// A nil *Config, or zero fields, select the defaults.
type Config struct {
	// Registry holds the definitions used to encode and decode values.
	// If nil, DefaultRegistry is used.
	Registry *Registry

	// MaxDepth limits how deeply values may nest; a scalar at the top level has depth 1.
	// If zero, DefaultMaxDepth is used. If negative, nesting is unlimited.
	MaxDepth int
}

func (c *Config) copyAndFill() *Config {
	config := new(Config)
	if c != nil {
		*config = *c
	}

	if config.Registry == nil {
		config.Registry = DefaultRegistry
	}

	if config.MaxDepth == 0 {
		config.MaxDepth = DefaultMaxDepth
	}

	return config
}
