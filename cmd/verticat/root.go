package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

// errInputsFailed makes the process exit with status 1 after every input
// has been attempted.
var errInputsFailed = errors.New("one or more inputs failed")

type flags struct {
	count  bool
	head   int
	tail   int
	cat    bool
	header bool

	output            string
	force             bool
	outputCompression string
	noMetadata        bool
	reorder           string

	verbose bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "verticat [flags] <file>...",
		Short: "Count, head, tail and cat Vertica native binary files",
		Long: `verticat reads Vertica native binary files without loading them into memory.

By default it prints the number of rows of each file. head, tail and cat
re-emit the selected rows as a valid native file on standard output or into
the file given with --output. Compressed inputs (zstd, s2, lz4) are detected
and decompressed on the fly.

Example:
  verticat data.bin
  verticat --head 10 -o first10.bin data.bin
  verticat --tail 5 --reorder 3,1,2 data.bin > last5.bin
  verticat --cat -o all.bin.zst --output-compression zstd part-*.bin`,
		Version:       versionString(),
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), f.verbose)
			return run(cmd, f, args, logger)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	fs := cmd.Flags()
	// -h is --head, so help takes -H.
	fs.BoolP("help", "H", false, "help for verticat")
	fs.BoolVarP(&f.count, "count", "c", false, "count rows (default mode)")
	fs.IntVarP(&f.head, "head", "h", 0, "emit the first `n` rows")
	fs.IntVarP(&f.tail, "tail", "t", 0, "emit the last `n` rows")
	fs.BoolVar(&f.cat, "cat", false, "emit every row; several inputs are concatenated")
	fs.BoolVar(&f.header, "header", false, "print the declared column widths (-1 for variable width)")
	fs.StringVarP(&f.output, "output", "o", "", "write emitted rows to this `file` instead of standard output")
	fs.BoolVar(&f.force, "force", false, "overwrite the --output file if it exists")
	fs.StringVar(&f.outputCompression, "output-compression", "none", "compress emitted output: none, zstd, s2 or lz4")
	fs.BoolVar(&f.noMetadata, "no-metadata", false, "omit the signature and column definitions from emitted output")
	fs.StringVarP(&f.reorder, "reorder", "r", "", "emit columns in this 1-based `order`, e.g. 3,1,2")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log debug diagnostics to standard error")
	cmd.MarkFlagsMutuallyExclusive("count", "head", "tail", "cat", "header")

	return cmd
}

// newLogger builds the stderr logger. Only warnings and errors are shown
// unless verbose is set.
func newLogger(w io.Writer, verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	allow := level.AllowWarn()
	if verbose {
		allow = level.AllowDebug()
	}

	return level.NewFilter(logger, allow)
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInputsFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
