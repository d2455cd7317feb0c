// Command jsondiff computes & applies structural patches between JSON
// documents
package main

import (
	"fmt"
	"os"

	"github.com/qri-io/jsondiff/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
