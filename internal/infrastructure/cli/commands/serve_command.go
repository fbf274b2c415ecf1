package commands

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doeshing/nlterm/internal/app"
	"github.com/doeshing/nlterm/internal/infrastructure/httpapi"
)

// NewServeCommand starts the JSON API.
func NewServeCommand(lazy *app.Lazy) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the terminal over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			if addr == "" {
				addr = container.Config.GetServerAddr()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", addr, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "nlterm API listening on %s\n", ln.Addr())

			registry := httpapi.NewRegistry(container.NewTerminal, container.Config.GetMaxSessions())
			server := httpapi.NewServer(registry, container.Logger, container.Config.GetAllowOrigin())
			return httpapi.Serve(ctx, ln, server.Handler(), container.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
