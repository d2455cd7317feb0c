package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "" | "json" | "yaml"

	log *zap.Logger
}

// ValidFormats defines the allowed document formats. an empty format picks
// one from the file extension
var ValidFormats = []string{"", "json", "yaml"}

// NewRootCommand creates the root command for the jsondiff CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "jsondiff",
		Short: "Structural diff & patch for JSON documents",
		Long: `Compute compact structural patches between two JSON (or YAML) documents
and apply them back.

Patches are plain objects whose keys name the operation: "k" sets a member,
"-k" deletes it, "~k" merges a nested patch, and "k[+n]" inserts into an array.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of json, yaml", opts.Format))
			}
			opts.log = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "", "document format (json|yaml), defaults to the file extension")

	cmd.AddCommand(NewDiffCommand(opts))
	cmd.AddCommand(NewApplyCommand(opts))

	return cmd
}

// logger returns the command logger, discarding output when commands run
// without the root pre-run
func (o *RootOptions) logger() *zap.Logger {
	if o.log == nil {
		return zap.NewNop()
	}
	return o.log
}

// newLogger writes production-encoded entries to w. warnings and above
// unless verbose is set
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level)).Named("jsondiff")
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
