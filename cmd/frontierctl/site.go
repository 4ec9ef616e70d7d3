package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/crawlfrontier/frontier/internal/domain"
)

func newSiteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Inspect sites",
	}
	cmd.AddCommand(newSiteShowCommand())
	return cmd
}

func newSiteShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <site-id>",
		Short: "Show a single site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			defer d.close()

			site, err := d.fr.GetSite(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get site: %w", err)
			}

			scope := site.Scope()
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Field", "Value"})
			t.AppendRow(table.Row{"ID", site.ID})
			t.AppendRow(table.Row{"Job ID", site.JobID})
			t.AppendRow(table.Row{"Seed", site.Seed})
			t.AppendRow(table.Row{"Scope SURT", scope.Surt})
			t.AppendRow(table.Row{"Status", site.Status})
			t.AppendRow(table.Row{"Claimed", site.Claimed})
			t.AppendRow(table.Row{"Last claimed by", site.LastClaimedBy})
			t.Render()
			return nil
		},
	}
}

// renderSiteTable prints a summary table of sites, used by `job show`.
func renderSiteTable(sites []*domain.Site) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Seed", "Status", "Claimed", "Last Claimed By"})
	for _, s := range sites {
		t.AppendRow(table.Row{s.ID, s.Seed, s.Status, s.Claimed, s.LastClaimedBy})
	}
	t.Render()
}
