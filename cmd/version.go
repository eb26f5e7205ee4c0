package cmd

import (
	"runtime"

	"grimm.is/vethpair/internal/brand"
)

// RunVersion prints build information.
func RunVersion() {
	Printer.Fprintf(stdout, "%s %s (commit %s, %s, %s/%s)\n",
		brand.Name, brand.Version, brand.GitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
