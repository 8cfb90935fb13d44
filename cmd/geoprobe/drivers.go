package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDriversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List the registered drivers",
		Args:  cobra.NoArgs,
		RunE:  runDrivers,
	}
}

func runDrivers(cmd *cobra.Command, _ []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLONG NAME\tEXT\tCAPABILITIES\tSQL\tHELP")
	for _, n := range e.catalog.Names() {
		d := e.catalog.Lookup(n)
		if d == nil {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.Name, d.LongName, d.Extension, d.Capabilities,
			strings.Join(d.SQLDialects, ","), d.HelpTopic)
	}
	return tw.Flush()
}
