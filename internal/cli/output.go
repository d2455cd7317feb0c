package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qri-io/jsondiff"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Input failure (unreadable documents, patches that don't apply, etc.)
	ExitCommandError = 2 // Command error (missing files, bad flags, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// codecFor picks the codec named by format, falling back to the extension
// of path. stdin & unknown extensions read as json
func codecFor(format, path string) jsondiff.Codec {
	switch format {
	case "json":
		return jsondiff.JSON
	case "yaml":
		return jsondiff.YAML
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return jsondiff.YAML
	}
	return jsondiff.JSON
}

// readInputs loads each named document. "-" reads from the command's
// stdin, at most once
func readInputs(cmd *cobra.Command, paths ...string) ([][]byte, error) {
	docs := make([][]byte, len(paths))
	stdin := false
	for i, p := range paths {
		if p == "-" {
			if stdin {
				return nil, NewExitError(ExitCommandError, "stdin can only be read once")
			}
			stdin = true
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return nil, WrapExitError(ExitCommandError, "reading stdin", err)
			}
			docs[i] = data
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("reading %s", p), err)
		}
		docs[i] = data
	}
	return docs, nil
}

// writeDocument writes data followed by a newline unless it already ends
// with one
func writeDocument(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
