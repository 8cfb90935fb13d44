package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/geoprobe/geoprobe"
)

func newIdentifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identify [flags] FILE...",
		Short: "Report which driver recognizes each file",
		Long: `Identify offers each file to the registered drivers without opening a
dataset, and prints the verdict and accepting driver for each one.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIdentify,
	}
	cmd.Flags().IntP("jobs", "j", 0, "number of files to probe concurrently (0 means GOMAXPROCS)")
	return cmd
}

type identifyResult struct {
	File    string
	Driver  string
	Verdict geoprobe.Verdict
	Err     error
}

func runIdentify(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns its index.
	res := make([]identifyResult, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(args)))
	for i, name := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			drv, v, err := e.catalog.Identify(ctx, name, e.opts)
			res[i] = identifyResult{File: name, Driver: drv, Verdict: v, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var failed int
	for _, r := range res {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(out, "%s\t%s\t%v\n", r.File, e.failed.Sprint("error"), r.Err)
		case r.Verdict.Matched():
			fmt.Fprintf(out, "%s\t%s\t%s\n", r.File, e.verdict(r.Verdict), r.Driver)
		default:
			fmt.Fprintf(out, "%s\t%s\t-\n", r.File, e.verdict(r.Verdict))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be read", failed, len(args))
	}
	return nil
}
