package verticat

import (
	"slices"

	"github.com/go-kit/log"

	"github.com/arloliu/verticat/internal/options"
	"github.com/arloliu/verticat/stream"
)

type config struct {
	logger   log.Logger
	order    []int
	metadata bool
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		logger:   log.NewNopLogger(),
		metadata: true,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *config) streamOptions(name string) []stream.Option {
	return []stream.Option{
		stream.WithName(name),
		stream.WithLogger(c.logger),
	}
}

func (c *config) writerOptions() []stream.WriterOption {
	return []stream.WriterOption{
		stream.WithColumnOrder(c.order),
		stream.WithMetadata(c.metadata),
	}
}

// Option configures the top-level operations.
type Option = options.Option[*config]

// WithLogger sets the logger receiving row decode diagnostics.
func WithLogger(logger log.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithColumnOrder permutes the columns of emitted files: output column i
// is input column order[i], zero-based.
func WithColumnOrder(order []int) Option {
	return options.NoError(func(c *config) {
		c.order = slices.Clone(order)
	})
}

// WithMetadata controls whether emitted files start with the signature and
// column definitions. Enabled by default.
func WithMetadata(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.metadata = enabled
	})
}
