package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qri-io/jsondiff"
)

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <document> <patch>",
		Short: "Apply a patch to a document",
		Long: `Apply a patch produced by "jsondiff diff" to a document and print the
result. Both files are read with the same format. Use "-" to read one of
them from stdin.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runApply(opts *RootOptions, docPath, patchPath string, cmd *cobra.Command) error {
	log := opts.logger()
	docs, err := readInputs(cmd, docPath, patchPath)
	if err != nil {
		return err
	}
	codec := codecFor(opts.Format, docPath)
	log.Debug("applying patch",
		zap.String("codec", codec.Name()),
		zap.String("document", docPath),
		zap.String("patch", patchPath),
	)

	result, err := jsondiff.ApplyBytes(codec, docs[0], docs[1])
	if err != nil {
		log.Warn("patch failed", zap.Error(err))
		return WrapExitError(ExitFailure, fmt.Sprintf("applying %s", patchPath), err)
	}
	if err := writeDocument(cmd.OutOrStdout(), result); err != nil {
		return WrapExitError(ExitFailure, "writing result", err)
	}
	return nil
}
