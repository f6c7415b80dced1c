package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/dublin-research/property-cli/internal/model"
	"github.com/dublin-research/property-cli/internal/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded pipeline runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("store"); err != nil {
			return err
		}

		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "runs: open store")
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "runs: migrate store")
		}

		runs, err := st.ListRuns(ctx, runsLimit)
		if err != nil {
			return eris.Wrap(err, "runs: list")
		}

		return formatRunsList(os.Stdout, runs)
	},
}

func formatRunsList(out io.Writer, runs []model.Run) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMMAND\tSTATUS\tROWS\tGEOCODED\tCREATED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Command, r.Status, r.Rows, r.Geocoded,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	rootCmd.AddCommand(runsCmd)
}
