package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyxlang/nyxc/internal/config"
	"github.com/nyxlang/nyxc/internal/lspserver"
)

func lspCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "start the language server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			server := lspserver.NewServer(cfg, os.Stderr)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			return server.Serve(ctx, stdio{})
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "nyx.toml", "path to the project's nyx.toml")
	return cmd
}

// stdio wraps the process's standard streams as an io.ReadWriteCloser,
// the same wrapper dingo-lsp's main.go uses for its jsonrpc2 stream,
// except Close is a real no-op rather than one that also logs — the
// editor owns the lifetime of these descriptors, not this process.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdio) Close() error                { return nil }

var _ io.ReadWriteCloser = stdio{}
