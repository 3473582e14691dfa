// Command nyxc is the compiler-front-end driver: it runs the five-stage
// pipeline (internal/pipeline) over a source file and reports
// diagnostics, or starts the language server. Grounded on
// miaomiao1992-dingo/cmd/dingo/main.go's cobra root-command shape —
// SilenceUsage, a custom help renderer, subcommand-constructor
// functions each returning a *cobra.Command — generalized to this
// front-end's own two subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:          "nyxc [file]",
		Short:        "nyxc - front end for the nyx language",
		Long:         "nyxc lexes, parses, checks, hoists, resolves and infers types for a nyx source file, reporting every diagnostic it finds.",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		// A bare `nyxc somefile.nyx` runs check directly, matching spec.md
		// §6's driver surface ("Input: one source path on the command
		// line"); `nyxc check somefile.nyx` does the same thing spelled
		// out, for scripts that prefer an explicit subcommand.
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runCheck(args[0])
		},
	}

	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(lspCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
