// Geoprobe identifies geospatial documents and opens them through the driver
// catalog.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "geoprobe",
		Short:        "Identify and open geospatial documents",
		Long:         `Geoprobe offers files to the registered format drivers and reports which one claims them.`,
		SilenceUsage: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringArray("config", nil, "set a configuration option as KEY=VALUE (repeatable)")
	pf.String("config-file", "", "read configuration options from a TOML or YAML file")
	pf.StringSlice("allowed-drivers", nil, "only offer files to the named drivers")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("debug", false, "log debug diagnostics to stderr")

	cmd.AddCommand(newIdentifyCmd(), newOpenCmd(), newDriversCmd())
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// IsTerminal reports whether the file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
