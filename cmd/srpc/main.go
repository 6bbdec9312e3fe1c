package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"omibyte.io/ceiling/builder"
)

var (
	rootCmd = &cobra.Command{
		Use:   "srpc",
		Short: "Stack resource policy compiler",
		Long: `srpc checks the resource claims of a statically declared set of interrupt
jobs and generates the priority ceiling binding used by their critical sections.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	envCmd = &cobra.Command{
		Use:   "env",
		Short: "Print srpc environment information",
		Run: func(cmd *cobra.Command, args []string) {
			for _, line := range builder.Environment().List() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
		},
	}
)

func init() {
	rootCmd.AddCommand(checkCmd, buildCmd, targetsCmd, graphCmd, envCmd)
}

// printDiagnostics writes one line per joined error.
func printDiagnostics(w io.Writer, prefix string, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			printDiagnostics(w, prefix, e)
		}
		return
	}
	fmt.Fprintln(w, prefix, err)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		prefix := "error:"
		if errors.Is(err, builder.ErrInvalidSystem) {
			prefix = "system error:"
		}
		printDiagnostics(os.Stderr, prefix, err)
		os.Exit(1)
	}
}
