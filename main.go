package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"grimm.is/vethpair/cmd"
	"grimm.is/vethpair/internal/brand"
)

var printer = cmd.Printer

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	defaultConfig := brand.GetConfigDir() + "/" + brand.ConfigFileName

	switch os.Args[1] {
	case "up":
		upFlags := flag.NewFlagSet("up", flag.ExitOnError)
		configFile := upFlags.String("config", "", "Configuration file (default: built-in veth0/veth1)")
		upFlags.StringVar(configFile, "c", "", "Configuration file (short)")
		endpointA := upFlags.String("a", "", "Name of endpoint A (overrides config)")
		endpointB := upFlags.String("b", "", "Name of endpoint B (overrides config)")
		doProbe := upFlags.Bool("probe", false, "Check the peer link and send a frame from A to B")
		metricsAddr := upFlags.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9469)")
		noRollback := upFlags.Bool("no-rollback", false, "Leave a partially provisioned pair on the host")
		hold := upFlags.Bool("hold", true, "Keep the pair until interrupted")
		upFlags.Parse(os.Args[2:])

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err := cmd.RunUp(ctx, cmd.UpOptions{
			ConfigFile:  *configFile,
			EndpointA:   *endpointA,
			EndpointB:   *endpointB,
			Probe:       *doProbe,
			MetricsAddr: *metricsAddr,
			NoRollback:  *noRollback,
			Hold:        *hold,
		})
		stop()
		if err != nil {
			printer.Fprintf(os.Stderr, "Up failed: %v\n", err)
			os.Exit(1)
		}

	case "check":
		checkFlags := flag.NewFlagSet("check", flag.ExitOnError)
		verbose := checkFlags.Bool("verbose", false, "Show all settings")
		checkFlags.BoolVar(verbose, "v", false, "Show all settings (short)")
		checkFlags.Parse(os.Args[2:])

		configFile := defaultConfig
		if len(checkFlags.Args()) > 0 {
			configFile = checkFlags.Arg(0)
		}

		if err := cmd.RunCheck(configFile, *verbose); err != nil {
			printer.Fprintf(os.Stderr, "Check failed: %v\n", err)
			os.Exit(1)
		}

	case "init-config":
		initFlags := flag.NewFlagSet("init-config", flag.ExitOnError)
		output := initFlags.String("o", defaultConfig, "Output file (- for stdout)")
		force := initFlags.Bool("force", false, "Overwrite an existing file")
		initFlags.Parse(os.Args[2:])

		if err := cmd.RunInitConfig(*output, *force); err != nil {
			printer.Fprintf(os.Stderr, "Init failed: %v\n", err)
			os.Exit(1)
		}

	case "version", "-v", "--version":
		cmd.RunVersion()

	case "help", "-h", "--help":
		printUsage()

	default:
		printer.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printer.Printf(`%s - %s

Usage:
  %s <command> [options]

Commands:
  up            Create a veth link pair and hold it until interrupted
                Options: --config (-c) <file>, -a <name>, -b <name>, --probe,
                         --metrics-addr <addr>, --no-rollback, --hold=false
  check         Validate configuration file
                Options: --verbose (-v)
  init-config   Write a default configuration file
                Options: -o <file>, --force
  version       Show version information

Examples:
  %s up                             # Create veth0/veth1
  %s up -a tap-a -b tap-b --probe   # Custom names, check forwarding
  %s init-config -o -               # Print the default config
  %s check -v %s
`,
		brand.Name, brand.Description,
		brand.LowerName,
		brand.LowerName, brand.LowerName, brand.LowerName, brand.LowerName,
		brand.GetConfigDir()+"/"+brand.ConfigFileName)
}
