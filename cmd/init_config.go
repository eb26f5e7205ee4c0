package cmd

import (
	"fmt"
	"os"

	"grimm.is/vethpair/internal/config"
)

// RunInitConfig writes the default configuration to path, or to stdout
// when path is "-". An existing file is only replaced with force.
func RunInitConfig(path string, force bool) error {
	def := config.Default()

	if path == "-" {
		_, err := stdout.Write(def.Encode())
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", path)
	}

	if err := def.WriteFile(path); err != nil {
		return err
	}
	Printer.Fprintf(stdout, "Wrote default configuration to %s\n", path)
	return nil
}
