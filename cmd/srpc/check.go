package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"omibyte.io/ceiling/builder"
)

var (
	checkTarget string

	checkCmd = &cobra.Command{
		Use:   "check <system.yaml>",
		Short: "Validate the resource claims of a system declaration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := builder.Check(cmd.Context(), builder.Options{
				System:      args[0],
				Target:      checkTarget,
				Environment: builder.Environment(),
			})
			if err != nil {
				return err
			}

			enc := result.Target.Encoding()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RESOURCE\tCEILING\tBASEPRI\tJOBS")
			for _, r := range result.Table.Resources() {
				fmt.Fprintf(w, "%s\t%d\t%#02x\t", r.ID, r.Ceiling(), enc.Hardware(r.Ceiling()))
				for i, job := range r.Jobs {
					if i > 0 {
						fmt.Fprint(w, ", ")
					}
					fmt.Fprint(w, job)
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}
)

func init() {
	checkCmd.Flags().StringVar(&checkTarget, "target", "", "target chip or series, overrides the declaration")
}
