package stream

import (
	"fmt"
	"slices"

	"github.com/go-kit/log"

	"github.com/arloliu/verticat/internal/options"
)

const defaultBufferSize = 64 * 1024

type config struct {
	logger     log.Logger
	name       string
	bufferSize int
}

func newConfig() *config {
	return &config{
		logger:     log.NewNopLogger(),
		name:       "<stream>",
		bufferSize: defaultBufferSize,
	}
}

// Option configures a Stream.
type Option = options.Option[*config]

// WithLogger sets the logger receiving iteration diagnostics.
// The default discards everything.
func WithLogger(logger log.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithName sets the input name used in errors and log lines.
func WithName(name string) Option {
	return options.NoError(func(c *config) {
		c.name = name
	})
}

// WithBufferSize sets the read buffer size placed in front of the input.
func WithBufferSize(size int) Option {
	return options.New(func(c *config) error {
		if size < 16 {
			return fmt.Errorf("buffer size %d is too small", size)
		}
		c.bufferSize = size

		return nil
	})
}

type writerConfig struct {
	order    []int
	metadata bool
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*writerConfig]

// WithColumnOrder makes the writer emit output column i from input column
// order[i] (zero-based). A nil order keeps the input order.
func WithColumnOrder(order []int) WriterOption {
	return options.NoError(func(c *writerConfig) {
		c.order = slices.Clone(order)
	})
}

// WithMetadata controls whether WriteHeader emits the signature and column
// definitions. It is enabled by default; disable it to emit rows only.
func WithMetadata(enabled bool) WriterOption {
	return options.NoError(func(c *writerConfig) {
		c.metadata = enabled
	})
}
