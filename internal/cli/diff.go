package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qri-io/jsondiff"
)

// DiffOptions holds flags for the diff command.
type DiffOptions struct {
	*RootOptions
	Output string // "patch" | "text"
	Stats  bool
	Color  bool
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiffOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Print the patch that turns one document into another",
		Long: `Compare two documents and print the patch that turns <from> into <to>.

Both documents must have an object at the root. Use "-" to read one of
them from stdin.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "patch", "output style (patch|text)")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "print change statistics after the patch")
	cmd.Flags().BoolVar(&opts.Color, "color", false, "colorize text output")

	return cmd
}

func runDiff(opts *DiffOptions, fromPath, toPath string, cmd *cobra.Command) error {
	log := opts.logger()
	if opts.Output != "patch" && opts.Output != "text" {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid output %q: must be one of patch, text", opts.Output))
	}

	docs, err := readInputs(cmd, fromPath, toPath)
	if err != nil {
		return err
	}
	codec := codecFor(opts.Format, fromPath)
	log.Debug("read documents",
		zap.String("codec", codec.Name()),
		zap.Int("fromBytes", len(docs[0])),
		zap.Int("toBytes", len(docs[1])),
	)

	from, err := codec.Decode(docs[0])
	if err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("reading %s", fromPath), err)
	}
	to, err := codec.Decode(docs[1])
	if err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("reading %s", toPath), err)
	}

	stats := &jsondiff.Stats{}
	patch, err := jsondiff.Diff(from, to, jsondiff.OptionSetStats(stats))
	if err != nil {
		return WrapExitError(ExitFailure, "diffing documents", err)
	}
	log.Debug("computed patch",
		zap.Int("instructions", patch.Len()),
		zap.Int("sets", stats.Sets),
		zap.Int("inserts", stats.Inserts),
		zap.Int("deletes", stats.Deletes),
		zap.Int("merges", stats.Merges),
	)

	w := cmd.OutOrStdout()
	if err := writePatch(w, opts, codec, patch); err != nil {
		return WrapExitError(ExitFailure, "writing patch", err)
	}
	if opts.Stats {
		str := jsondiff.FormatPrettyStats(stats)
		if opts.Color {
			str = jsondiff.FormatPrettyStatsColor(stats)
		}
		if _, err := io.WriteString(w, str); err != nil {
			return WrapExitError(ExitFailure, "writing stats", err)
		}
	}
	return nil
}

func writePatch(w io.Writer, opts *DiffOptions, codec jsondiff.Codec, patch *jsondiff.Object) error {
	if opts.Output == "text" {
		return jsondiff.FormatPretty(w, patch, opts.Color)
	}
	data, err := codec.Encode(patch)
	if err != nil {
		return err
	}
	return writeDocument(w, data)
}
