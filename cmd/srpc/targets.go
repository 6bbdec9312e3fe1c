package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"omibyte.io/ceiling/builder"
	"omibyte.io/ceiling/targets"
)

var (
	targetsCmd = &cobra.Command{
		Use:   "targets",
		Short: "List the supported targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			db := targets.All()
			if fname := builder.Environment().Value("SRPC_TARGETS"); len(fname) > 0 {
				var err error
				if db, err = targets.Load(fname); err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SERIES\tCPU\tCORE\tBITS\tCHIPS")
			for _, t := range db {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", t.Series, t.Cpu, t.Core, t.PriorityBits, strings.Join(t.Chips, ","))
			}
			return w.Flush()
		},
	}

	importCmd = &cobra.Command{
		Use:   "import <device.svd>",
		Short: "Print a target description derived from an SVD device file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			target, vectors, err := targets.ImportSVD(f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			names := maps.Keys(vectors)
			slices.SortFunc(names, func(a, b string) bool {
				return vectors[a] < vectors[b]
			})
			for _, name := range names {
				fmt.Fprintf(out, "# %3d %s\n", vectors[name], name)
			}

			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err = enc.Encode(map[string]targets.Targets{"targets": {target}}); err != nil {
				return err
			}
			return enc.Close()
		},
	}
)

func init() {
	targetsCmd.AddCommand(importCmd)
}
