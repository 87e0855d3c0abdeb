// Command gridgrep searches text for a literal pattern by dispatching one
// kernel instance per candidate offset on a compute device.
//
// Usage:
//
//	gridgrep <pattern> [file]
//
// With one argument the haystack is read from standard input; with two it is
// read from the named file. An unreadable file degrades to an empty haystack,
// so the search still reports zero matches and exits cleanly.
//
// Flags:
//
//	--backend string
//	    compute backend: auto, cpu, metal, vulkan (default "auto")
//	--jobs int
//	    CPU device worker count, 0 = all logical CPUs
//	--max-matches int
//	    result slots per search (default 10000)
//	--sort
//	    order records by offset instead of discovery order
//
// Example:
//
//	# Search a file
//	gridgrep func main.go
//
//	# Search standard input
//	cat access.log | gridgrep "GET /health"
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/orneryd/gridgrep/pkg/compute"
	"github.com/orneryd/gridgrep/pkg/grep"
	"github.com/orneryd/gridgrep/pkg/output"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if isBackendFatal(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		backendName string
		jobs        int
		maxMatches  int
		sortOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "gridgrep <pattern> [file]",
		Short: "Literal substring search as a data-parallel kernel dispatch",
		Long: `gridgrep finds every occurrence of a literal pattern by running one kernel
instance per candidate offset. Matching instances reserve result slots
through an atomic counter in shared buffer memory; the host harvests the
offsets after the completion barrier and prints the containing lines.

The backend auto-detects at startup (Metal on macOS, then Vulkan, then the
host CPU). Matches beyond --max-matches are counted but not printed; the
header always states the true count.

Examples:
  # Search a file
  gridgrep func main.go

  # Search standard input
  cat access.log | gridgrep "GET /health"

  # Force the CPU backend with four workers, sorted output
  gridgrep --backend cpu --jobs 4 --sort TODO ./src/parser.go`,
		Args:    cobra.RangeArgs(1, 2),
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid past this point; runtime failures
			// should not echo the usage text.
			cmd.SilenceUsage = true
			return run(cmd, args, backendName, jobs, maxMatches, sortOutput)
		},
	}

	cmd.Flags().StringVar(&backendName, "backend", "auto", "compute backend: auto, cpu, metal, vulkan")
	cmd.Flags().IntVar(&jobs, "jobs", 0, "CPU device worker count, 0 = all logical CPUs")
	cmd.Flags().IntVar(&maxMatches, "max-matches", grep.DefaultCapacity, "result slots per search")
	cmd.Flags().BoolVar(&sortOutput, "sort", false, "order records by offset instead of discovery order")

	return cmd
}

func run(cmd *cobra.Command, args []string, backendName string, jobs, maxMatches int, sortOutput bool) error {
	pattern := args[0]

	backend, err := compute.ParseBackend(backendName)
	if err != nil {
		return err
	}

	haystack, source := readSource(cmd, args)

	cfg := compute.DefaultConfig()
	cfg.PreferredBackend = backend
	cfg.Workers = jobs
	if backend != compute.BackendAuto {
		// An explicit backend request must not silently run elsewhere.
		cfg.FallbackOnError = false
	}

	dev, err := compute.Open(cfg)
	if err != nil {
		return err
	}
	defer dev.Release()

	eng, err := grep.NewEngine(dev, &grep.Config{
		Capacity:    maxMatches,
		SortOffsets: sortOutput,
	})
	if err != nil {
		return err
	}

	rep, err := eng.Search(haystack, []byte(pattern))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok && f == os.Stdout {
		out = output.NewWriter(f)
	}
	return output.NewReporter(out, cmd.ErrOrStderr()).Report(rep, pattern, source)
}

// readSource loads the haystack. One positional argument reads standard
// input; two read the named file. Read failures are reported on the error
// stream but degrade to an empty haystack, preserving the zero-match exit.
func readSource(cmd *cobra.Command, args []string) ([]byte, string) {
	if len(args) == 2 {
		data, err := os.ReadFile(args[1])
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "cannot read file %s\n", args[1])
			return nil, args[1]
		}
		return data, args[1]
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "cannot read standard input")
		return nil, "stdin"
	}
	return data, "stdin"
}

// isBackendFatal reports whether err is a compute-backend failure. Those
// exit with a distinct status so scripts can tell device problems from
// usage errors.
func isBackendFatal(err error) bool {
	return errors.Is(err, compute.ErrUnavailable) ||
		errors.Is(err, compute.ErrBuildProgram) ||
		errors.Is(err, compute.ErrDispatch) ||
		errors.Is(err, compute.ErrBufferSize)
}
