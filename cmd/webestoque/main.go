package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/talkincode/webestoque/config"
	"github.com/talkincode/webestoque/internal/app"
)

// errSilent fails the command after the message was already shown.
var errSilent = errors.New("action failed")

// cli carries the flags shared by every command.
type cli struct {
	configFile string
	debug      bool
	cfg        *config.AppConfig
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "webestoque",
		Short: "Filament spool inventory",
		Long: `webestoque keeps a small catalog of filament spools: register, edit,
buy, restock and delete products from the browser or the terminal.

Run "webestoque serve" to start the web interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(c.configFile)
			if err != nil {
				return err
			}
			if c.debug {
				cfg.System.Debug = true
				cfg.Logger.Mode = "development"
			}
			c.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "config file (yaml)")
	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "debug logging")

	root.AddCommand(
		c.serveCmd(),
		c.listCmd(),
		c.addCmd(),
		c.actionCmd("buy", "Buy units of a product"),
		c.actionCmd("restock", "Add units to a product"),
		c.actionCmd("delete", "Delete a product"),
		c.exportCmd(),
		c.backupCmd(),
	)
	return root
}

// openApp initializes the application for a one-shot command.
func (c *cli) openApp() (*app.Application, error) {
	a := app.NewApplication(c.cfg)
	if err := a.Init(false); err != nil {
		a.Release()
		return nil, err
	}
	return a, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
