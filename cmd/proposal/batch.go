package main

import (
	"fmt"

	"github.com/benjaminschreck/go-proposal/pkg/proposal"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		jobsPath string
		parallel int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate many proposals from a YAML jobs file",
		Long: `batch reads a YAML file of the form

  jobs:
    - variant: Make & CRM Automation
      form:
        client_name: Acme
        country: USA
        client_number: "+15550100"
        date: 2025-03-05
        prices: {M-Price: 10000}

and generates every job independently. Failed jobs are reported and do
not stop the others.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := proposal.LoadBatchFile(jobsPath)
			if err != nil {
				return err
			}

			dir := a.engine.Config().OutputDir
			if dir == "" {
				if dir, err = proposal.PrivateTempDir(); err != nil {
					return err
				}
			}

			results, err := a.engine.GenerateBatch(cmd.Context(), reqs, dir, parallel)
			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintln(out, color.RedString("FAIL %v", r.Err))
					continue
				}
				fmt.Fprintln(out, color.GreenString("OK   %s", r.Path))
			}
			if err != nil {
				return fmt.Errorf("%d of %d jobs failed", countFailed(results), len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jobsPath, "jobs", "", "YAML jobs file")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "Maximum concurrent jobs (default: number of CPUs)")
	_ = cmd.MarkFlagRequired("jobs")
	return cmd
}

func countFailed(results []proposal.BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
