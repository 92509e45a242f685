package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/talkincode/webestoque/internal/adminapi"
	"github.com/talkincode/webestoque/internal/app"
	"github.com/talkincode/webestoque/internal/webserver"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a := app.NewApplication(c.cfg)
			if err := a.Init(true); err != nil {
				a.Release()
				return err
			}
			defer a.Release()

			g, ctx := errgroup.WithContext(ctx)
			handlers := adminapi.NewHandlers(ctx, a.Inventory(), a.Binder())
			server := webserver.NewWebServer(c.cfg)
			handlers.Init(server)

			g.Go(func() error {
				return server.Start(ctx)
			})
			g.Go(func() error {
				<-ctx.Done()
				// unblocks a dialog flow still waiting for an answer
				handlers.Modal().Dismiss()
				return nil
			})
			err := g.Wait()
			zap.S().Info("webestoque stopped")
			return err
		},
	}
}
