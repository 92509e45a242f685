package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/talkincode/webestoque/internal/interact"
	"github.com/talkincode/webestoque/internal/inventory"
	"github.com/talkincode/webestoque/internal/render"
	"github.com/talkincode/webestoque/internal/validate"
)

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Release()

			out := cmd.OutOrStdout()
			rows := a.Binder().Rows(a.Inventory().List())
			if len(rows) == 0 {
				fmt.Fprintln(out, render.EmptyTableText)
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNOME\tTIPO\tCORES\tPESO\tDIMENSÕES\tPREÇO\tQTD\tSTATUS")
			for _, r := range rows {
				status := "Indisponível"
				if r.Available {
					status = "Disponível"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
					r.ID, r.Name, r.FilamentType, r.Colors, r.Weight, r.Dimensions, r.Price, r.Quantity, status)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) addCmd() *cobra.Command {
	var (
		form        validate.RawForm
		id          int64
		image       string
		removeImage bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a product, or update one with --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Release()

			sub := inventory.Submission{ID: id, Form: form, RemoveImage: removeImage}
			if image != "" {
				f, err := os.Open(image)
				if err != nil {
					return err
				}
				defer f.Close()
				sub.Image = f
			}
			p, err := a.Inventory().Submit(cmd.Context(), sub)
			if err != nil {
				return err
			}
			msg := "Produto cadastrado com sucesso."
			if id != 0 {
				msg = "Produto atualizado com sucesso."
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (#%d)\n", msg, p.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.Int64Var(&id, "id", 0, "product to update")
	f.StringVar(&form.Name, "name", "", "name")
	f.StringVar(&form.FilamentType, "type", "", "filament type")
	f.StringVar(&form.Colors, "colors", "", "colors")
	f.StringVar(&form.Weight, "weight", "", "weight in grams")
	f.StringVar(&form.Dimensions, "dimensions", "", "dimensions")
	f.StringVar(&form.Price, "price", "", "unit price")
	f.StringVar(&form.Quantity, "quantity", "", "units in stock")
	f.StringVar(&form.Description, "description", "", "description")
	f.StringVar(&image, "image", "", "image file")
	f.BoolVar(&removeImage, "remove-image", false, "drop the stored image")
	return cmd
}

// actionCmd asks for confirmation or a quantity on the terminal.
func (c *cli) actionCmd(kind interact.Kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind) + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return inventory.ErrNotFound
			}
			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Release()

			prompt := &reportingPrompt{Prompt: interact.NewPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), a.Binder().Money)}
			_, err = interact.NewActions(a.Inventory(), prompt).Run(cmd.Context(), kind, id)
			if err != nil && prompt.reported {
				return errSilent
			}
			return err
		},
	}
}

// reportingPrompt remembers whether the prompt already printed a failure.
type reportingPrompt struct {
	*interact.Prompt
	reported bool
}

func (p *reportingPrompt) Reject(ctx context.Context, q interact.Question, err error) bool {
	p.reported = true
	return p.Prompt.Reject(ctx, q, err)
}
