// Command stagelint lints Dockerfiles against the hadolint rule set.
package main

import (
	"os"

	"github.com/wharflab/stagelint/cmd/stagelint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
