// Package cmd implements the vethpair subcommands.
package cmd

import (
	"io"
	"os"

	"grimm.is/vethpair/internal/i18n"
	"grimm.is/vethpair/internal/logging"
	"grimm.is/vethpair/linkpair"
)

// Printer is the global message printer for the CLI
var Printer = i18n.NewCLIPrinter()

// stdout receives command output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// exit terminates the process after a fatal teardown failure.
var exit = os.Exit

// exitOnTeardown logs a failed teardown and exits with status 1. The pair
// is left on the host, so the log line carries what is needed to remove it.
func exitOnTeardown(log *logging.Logger) linkpair.FatalHandler {
	return func(err *linkpair.TeardownError) {
		log.Error("failed to remove link pair, remove manually with: ip link del "+err.Name,
			"pair", err.ID, "index", err.Index, "error", err.Err)
		exit(1)
	}
}
