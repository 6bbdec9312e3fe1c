package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"omibyte.io/ceiling/builder"
	"omibyte.io/ceiling/claims"
)

var graphCmd = &cobra.Command{
	Use:   "graph <system.yaml>",
	Short: "Print which jobs interfere through shared resources",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := builder.Check(cmd.Context(), builder.Options{
			System:      args[0],
			Environment: builder.Environment(),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, component := range result.Graph.Components() {
			fmt.Fprintf(out, "group %d:\n", i)
			for _, job := range component {
				fmt.Fprintf(out, "\t%s priority %d", job, job.Priority)
				if blockers := claims.Blockers(result.Table, job); len(blockers) > 0 {
					fmt.Fprintf(out, ", deferred by %v", blockers)
				}
				fmt.Fprintln(out)
			}
		}
		return nil
	},
}
