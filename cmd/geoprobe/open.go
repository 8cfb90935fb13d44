package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoprobe/geoprobe"
)

func newOpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open [flags] FILE",
		Short: "Open a file and list its layers",
		Args:  cobra.ExactArgs(1),
		RunE:  runOpen,
	}
	cmd.Flags().Bool("update", false, "request update access")
	return cmd
}

func runOpen(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	update, err := cmd.Flags().GetBool("update")
	if err != nil {
		return fmt.Errorf("failed to get update flag: %w", err)
	}
	if update {
		e.opts.Access = geoprobe.AccessUpdate
	}

	ds, err := e.catalog.Open(cmd.Context(), args[0], e.opts)
	if err != nil {
		return err
	}
	defer ds.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", e.label.Sprint("dataset:"), ds.Name())
	drv := ds.Driver()
	if d := e.catalog.Lookup(drv); d != nil {
		drv = fmt.Sprintf("%s (%s)", d.Name, d.LongName)
	}
	fmt.Fprintf(out, "%s %s\n", e.label.Sprint("driver:"), drv)
	ls := ds.Layers()
	fmt.Fprintf(out, "%s %d\n", e.label.Sprint("layers:"), len(ls))
	for i, l := range ls {
		fmt.Fprintf(out, "  %d: %s\n", i+1, l)
	}
	return nil
}
