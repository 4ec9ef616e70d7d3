package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newPageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Inspect pages",
	}
	cmd.AddCommand(newPageShowCommand())
	return cmd
}

func newPageShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <page-id>",
		Short: "Show a single page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			defer d.close()

			page, err := d.fr.GetPage(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get page: %w", err)
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Field", "Value"})
			t.AppendRow(table.Row{"ID", page.ID})
			t.AppendRow(table.Row{"Site ID", page.SiteID})
			t.AppendRow(table.Row{"URL", page.URL})
			t.AppendRow(table.Row{"Hops from seed", page.HopsFromSeed})
			t.AppendRow(table.Row{"Priority", page.Priority})
			t.AppendRow(table.Row{"Claimed", page.Claimed})
			t.AppendRow(table.Row{"Brozzle count", page.BrozzleCount})
			t.Render()
			return nil
		},
	}
}
