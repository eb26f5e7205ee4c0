package cmd

import (
	"fmt"
	"text/tabwriter"

	"grimm.is/vethpair/internal/brand"
	"grimm.is/vethpair/internal/config"
	"grimm.is/vethpair/internal/network"
	"grimm.is/vethpair/linkpair"
)

// RunCheck validates the configuration file syntax and semantics.
func RunCheck(configFile string, verbose bool) error {
	if len(configFile) == 0 {
		return fmt.Errorf("usage: %s check [-v] <config-file>\nExample: %s check -v %s/%s",
			brand.BinaryName, brand.BinaryName, brand.GetConfigDir(), brand.ConfigFileName)
	}

	file, err := config.LoadFile(configFile)
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	Printer.Fprintf(stdout, "Configuration valid!\n")
	Printer.Fprintf(stdout, "Link pair: %s\n", file.LinkPairConfig().String())

	if verbose {
		Printer.Fprintln(stdout)
		printSettings(file)
	}
	return nil
}

func printSettings(file *config.File) {
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	rollback := true
	if file.Rollback != nil {
		rollback = *file.Rollback
	}

	Printer.Fprintln(w, "SETTING\tVALUE")
	Printer.Fprintf(w, "endpoint_a\t%s\n", file.EndpointA)
	Printer.Fprintf(w, "endpoint_b\t%s\n", file.EndpointB)
	Printer.Fprintf(w, "request_timeout\t%s\n", orDefault(file.RequestTimeout, network.DefaultRequestTimeout.String()))
	Printer.Fprintf(w, "teardown_timeout\t%s\n", orDefault(file.TeardownTimeout, linkpair.DefaultTeardownTimeout.String()))
	Printer.Fprintf(w, "rollback\t%t\n", rollback)
	Printer.Fprintf(w, "log_level\t%s\n", orDefault(file.LogLevel, "info"))
}

func orDefault(v, def string) string {
	if v == "" {
		return def + " (default)"
	}
	return v
}
