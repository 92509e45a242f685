package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/talkincode/webestoque/internal/domain"
	"github.com/talkincode/webestoque/internal/export"
)

func (c *cli) exportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export products as csv or xlsx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var write func(io.Writer, []domain.Product) error
			switch format {
			case "csv":
				write = export.WriteCSV
			case "xlsx":
				write = export.WriteXLSX
			default:
				return errors.Errorf("unsupported format %q", format)
			}

			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Release()

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return errors.Wrap(err, "create output")
				}
				defer f.Close()
				out = f
			}
			return write(out, a.Inventory().List())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (c *cli) backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Write a storage snapshot into the backup dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Release()
			path, err := a.Backup()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
