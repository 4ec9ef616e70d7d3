package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/crawlfrontier/frontier/internal/jobconf"
)

func newJobCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Submit and inspect jobs",
	}
	cmd.AddCommand(newJobSubmitCommand())
	cmd.AddCommand(newJobShowCommand())
	return cmd
}

func newJobSubmitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <job.yaml>",
		Short: "Submit a job configuration file, creating its seed sites and pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			defer d.close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open job file: %w", err)
			}
			defer f.Close()

			conf, err := jobconf.Load(f)
			if err != nil {
				return err
			}

			job, err := jobconf.NewJob(cmd.Context(), d.fr, d.checker, conf)
			if err != nil {
				return fmt.Errorf("create job: %w", err)
			}

			d.log.Info("job submitted", "job_id", job.ID)
			fmt.Println(job.ID)
			return nil
		},
	}
}

func newJobShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show a job and its sites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			defer d.close()

			job, err := d.fr.GetJob(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get job: %w", err)
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Field", "Value"})
			t.AppendRow(table.Row{"ID", job.ID})
			t.AppendRow(table.Row{"Status", job.Status})
			t.AppendRow(table.Row{"Started", job.Started})
			if job.Finished != nil {
				t.AppendRow(table.Row{"Finished", *job.Finished})
			}
			t.Render()

			sites, err := d.fr.SitesByJob(cmd.Context(), job.ID)
			if err != nil {
				return fmt.Errorf("list sites: %w", err)
			}

			fmt.Println()
			renderSiteTable(sites)
			return nil
		},
	}
}
