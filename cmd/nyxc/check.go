package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyxlang/nyxc/internal/config"
	"github.com/nyxlang/nyxc/internal/diag"
	"github.com/nyxlang/nyxc/internal/pipeline"
	"github.com/nyxlang/nyxc/internal/present"
)

func checkCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "run the front-end pipeline over a source file and report diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckWithConfig(args[0], configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "nyx.toml", "path to the project's nyx.toml")
	return cmd
}

func runCheck(path string) error {
	return runCheckWithConfig(path, "nyx.toml")
}

// runCheckWithConfig implements spec.md §6's driver surface exactly:
// one source path in, pretty-printed diagnostics on stderr, a terminal
// summary line, and a zero exit code unless an Error-severity
// diagnostic was produced — here signaled by returning an error, which
// main's cobra.Execute turns into exit code 1.
func runCheckWithConfig(path, configPath string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	result := pipeline.Run(string(src), cfg)

	renderer := present.New(string(src), os.Stderr)
	for _, d := range result.Diags.All() {
		renderer.Render(os.Stderr, d)
	}
	present.Summary(os.Stderr, result.Diags.Len(), result.Diags.WarningCount(), result.Diags.ErrorCount())

	failed := result.Diags.HasErrors()
	if cfg.WarningsAsErrors && result.Diags.WarningCount() > 0 {
		failed = true
	}
	if failed {
		return fmt.Errorf("%d error(s) reported", errorOrWarningCount(result.Diags, cfg))
	}
	return nil
}

func errorOrWarningCount(d *diag.Bag, cfg *config.Config) int {
	if cfg.WarningsAsErrors {
		return d.ErrorCount() + d.WarningCount()
	}
	return d.ErrorCount()
}
