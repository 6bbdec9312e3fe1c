package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"omibyte.io/ceiling/builder"
)

var (
	buildOpts = struct {
		output string
		pkg    string
		target string
		svd    string
		tags   string
		dryRun bool
	}{}

	buildCmd = &cobra.Command{
		Use:   "build <system.yaml>",
		Short: "Check a system declaration and generate its binding",
		Long:  "Check a system declaration and generate the Go source holding its resource ceilings, vector priorities and critical section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options := builder.Options{
				System:      args[0],
				Output:      buildOpts.output,
				Package:     buildOpts.pkg,
				Target:      buildOpts.target,
				SVD:         buildOpts.svd,
				Environment: builder.Environment(),
				DryRun:      buildOpts.dryRun,
			}

			if len(buildOpts.tags) > 0 {
				options.BuildTags = strings.Split(buildOpts.tags, ",")
			}

			result, err := builder.Build(cmd.Context(), options)
			if err != nil {
				return err
			}

			if buildOpts.dryRun {
				_, err = cmd.OutOrStdout().Write(result.Source)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d jobs, %d resources, %s (%s)\n",
				result.Output, len(result.Jobs), result.Table.Len(), result.Target.Series, result.Target.Core)
			return nil
		},
	}
)

func init() {
	buildCmd.Flags().StringVarP(&buildOpts.output, "output", "o", ".", "output file or directory")
	buildCmd.Flags().StringVarP(&buildOpts.pkg, "package", "p", "", "package name of the generated file")
	buildCmd.Flags().StringVar(&buildOpts.target, "target", "", "target chip or series, overrides the declaration")
	buildCmd.Flags().StringVar(&buildOpts.svd, "svd", "", "device file supplying the NVIC line of each vector, overrides the declaration")
	buildCmd.Flags().StringVarP(&buildOpts.tags, "tags", "t", "", "build tags of the generated file")
	buildCmd.Flags().BoolVarP(&buildOpts.dryRun, "dry-run", "n", false, "print the generated source instead of writing it")
}
