package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/arloliu/verticat"
	"github.com/arloliu/verticat/errs"
	"github.com/arloliu/verticat/format"
	"github.com/arloliu/verticat/internal/sink"
)

func run(cmd *cobra.Command, f *flags, args []string, logger log.Logger) error {
	fl := cmd.Flags()
	emitting := fl.Changed("head") || fl.Changed("tail") || f.cat

	switch {
	case f.head < 0:
		return fmt.Errorf("%w: --head %d", errs.ErrInvalidRowCount, f.head)
	case f.tail < 0:
		return fmt.Errorf("%w: --tail %d", errs.ErrInvalidRowCount, f.tail)
	case f.output != "" && !emitting:
		return errors.New("--output applies to --head, --tail and --cat")
	case f.output != "" && !f.cat && len(args) > 1:
		return errors.New("--output takes a single input with --head and --tail; use --cat to concatenate")
	}

	opts, err := f.operationOptions(logger)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()

	switch {
	case fl.Changed("head"):
		return emitEach(f, stdout, args, logger, func(src verticat.Source, w io.Writer) error {
			return verticat.Head(src, w, f.head, opts...)
		})
	case fl.Changed("tail"):
		return emitEach(f, stdout, args, logger, func(src verticat.Source, w io.Writer) error {
			return verticat.Tail(src, w, f.tail, opts...)
		})
	case f.cat:
		return catAll(f, stdout, args, logger, opts)
	case f.header:
		return forEachInput(args, logger, func(src verticat.Source) error {
			if len(args) > 1 {
				fmt.Fprintf(stdout, "==> %s <==\n", src.Name())
			}
			return verticat.PrintHeader(src, stdout, opts...)
		})
	default:
		return forEachInput(args, logger, func(src verticat.Source) error {
			n, err := verticat.Count(src, opts...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "%d %s\n", n, src.Name())

			return err
		})
	}
}

func (f *flags) operationOptions(logger log.Logger) ([]verticat.Option, error) {
	order, err := parseColumnOrder(f.reorder)
	if err != nil {
		return nil, err
	}

	return []verticat.Option{
		verticat.WithLogger(logger),
		verticat.WithColumnOrder(order),
		verticat.WithMetadata(!f.noMetadata),
	}, nil
}

// forEachInput runs fn on every input, logging failures without stopping.
func forEachInput(args []string, logger log.Logger, fn func(verticat.Source) error) error {
	failed := 0
	for _, path := range args {
		if err := fn(verticat.FileSource(path)); err != nil {
			level.Error(logger).Log("msg", "processing failed", "input", path, "err", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errInputsFailed, failed, len(args))
	}

	return nil
}

func emitEach(f *flags, stdout io.Writer, args []string, logger log.Logger,
	fn func(verticat.Source, io.Writer) error,
) error {
	out, err := newOutput(f, stdout)
	if err != nil {
		return err
	}

	runErr := forEachInput(args, logger, func(src verticat.Source) error {
		return fn(src, out)
	})
	if err := out.Close(); err != nil {
		return err
	}

	return runErr
}

func catAll(f *flags, stdout io.Writer, args []string, logger log.Logger, opts []verticat.Option) error {
	out, err := newOutput(f, stdout)
	if err != nil {
		return err
	}

	srcs := make([]verticat.Source, len(args))
	for i, path := range args {
		srcs[i] = verticat.FileSource(path)
	}

	if err := verticat.CatAll(srcs, out, opts...); err != nil {
		level.Error(logger).Log("msg", "concatenation failed", "inputs", len(srcs), "err", err)
		_ = out.Close()

		return fmt.Errorf("%w: %w", errInputsFailed, err)
	}

	return out.Close()
}

// output opens its sink on the first write, so an input that fails before
// producing any bytes leaves no output file behind.
type output struct {
	open func() (*sink.Sink, error)
	s    *sink.Sink
}

func newOutput(f *flags, stdout io.Writer) (*output, error) {
	ct, err := format.ParseCompressionType(f.outputCompression)
	if err != nil {
		return nil, err
	}

	opts := []sink.Option{sink.WithCompression(ct), sink.WithForce(f.force)}
	if f.output == "" {
		return &output{open: func() (*sink.Sink, error) {
			return sink.Wrap("stdout", stdout, opts...)
		}}, nil
	}

	return &output{open: func() (*sink.Sink, error) {
		return sink.Create(f.output, opts...)
	}}, nil
}

func (o *output) Write(p []byte) (int, error) {
	if o.s == nil {
		s, err := o.open()
		if err != nil {
			return 0, err
		}
		o.s = s
	}

	return o.s.Write(p)
}

func (o *output) Close() error {
	if o.s == nil {
		return nil
	}

	return o.s.Close()
}

// parseColumnOrder turns a 1-based list such as "3,1,2" into zero-based
// positions. Whether it is a permutation is checked per input.
func parseColumnOrder(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	order := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q is not a column position", errs.ErrInvalidColumnOrder, p)
		}
		order = append(order, n-1)
	}

	return order, nil
}
