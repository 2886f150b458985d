package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	rosterService "github.com/cmlabs-hris/roster-viewer-go/internal/service/roster"
	"github.com/spf13/cobra"
)

func newWindowCmd(flags *globalFlags) *cobra.Command {
	var (
		date   string
		view   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Print the visible window and its record filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != outputText && output != outputJSON {
				return fmt.Errorf("--output must be %q or %q", outputText, outputJSON)
			}
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			svc := newService(cfg, emptyRepositories(), time.Now, newLogger(cmd, cfg))
			resp, err := svc.GetWindow(cmd.Context(), roster.WindowRequest{Date: date, View: view})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output == outputJSON {
				return writeJSON(w, resp)
			}
			fmt.Fprintf(w, "view:  %s\n", resp.View)
			fmt.Fprintf(w, "start: %s\n", resp.Start)
			fmt.Fprintf(w, "end:   %s\n", resp.End)
			fmt.Fprintf(w, "days:  %s\n", strings.Join(resp.Days, " "))
			fmt.Fprintf(w, "odata: %s\n", resp.ODataFilter)
			fmt.Fprintf(w, "sql:   %s\n", resp.SQLPredicate)
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "focus date (YYYY-MM-DD or DD-MM-YYYY)")
	cmd.Flags().StringVar(&view, "view", "", "month or week (default ROSTER_DEFAULT_VIEW)")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "text or json")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

// emptyRepositories backs commands that never load records.
func emptyRepositories() rosterService.Repositories {
	return (&Snapshot{}).repositories()
}
