// moldesc is the command-line entry point of the MolDesc-Toolkit.
package main

import (
	"os"

	"github.com/turtacn/MolDesc-Toolkit/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	// Execute already prints the failure to stderr; main only maps it to the
	// process exit code.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
