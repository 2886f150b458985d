package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/colorutil"
	"github.com/spf13/cobra"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type resolveOptions struct {
	snapshot        string
	date            string
	view            string
	team            string
	employee        string
	dark            bool
	includeHidden   bool
	includeInactive bool
	output          string
}

func newResolveCmd(flags *globalFlags) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a roster grid from a snapshot file",
		Long: `Resolves every employee day of the visible window around --date against
the records in a JSON snapshot. With --employee only that employee's cell on
--date is resolved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.snapshot, "snapshot", "s", "", "snapshot JSON file")
	cmd.Flags().StringVarP(&opts.date, "date", "d", "", "focus date (YYYY-MM-DD or DD-MM-YYYY)")
	cmd.Flags().StringVar(&opts.view, "view", "", "month or week (default ROSTER_DEFAULT_VIEW)")
	cmd.Flags().StringVar(&opts.team, "team", "", "only show this team")
	cmd.Flags().StringVar(&opts.employee, "employee", "", "resolve a single cell for this employee")
	cmd.Flags().BoolVar(&opts.dark, "dark", false, "pick text colors for the dark theme")
	cmd.Flags().BoolVar(&opts.includeHidden, "include-hidden", false, "include hidden employees")
	cmd.Flags().BoolVar(&opts.includeInactive, "include-inactive", false, "include inactive employees")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputText, "text or json")
	_ = cmd.MarkFlagRequired("snapshot")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runResolve(cmd *cobra.Command, flags *globalFlags, opts *resolveOptions) error {
	if opts.output != outputText && opts.output != outputJSON {
		return fmt.Errorf("--output must be %q or %q", outputText, outputJSON)
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	now, err := clock(flags, cfg.Roster.Location())
	if err != nil {
		return err
	}
	snap, err := readSnapshot(opts.snapshot)
	if err != nil {
		return err
	}

	svc := newService(cfg, snap.repositories(), now, newLogger(cmd, cfg))
	theme := colorutil.LightTheme()
	if opts.dark {
		theme = colorutil.DarkTheme()
	}

	if opts.employee != "" {
		cell, err := svc.GetCell(cmd.Context(), roster.CellRequest{Employee: opts.employee, Date: opts.date, Theme: theme})
		if err != nil {
			return err
		}
		if opts.output == outputJSON {
			return writeJSON(cmd.OutOrStdout(), cell)
		}
		return printCell(cmd.OutOrStdout(), cell)
	}

	req := roster.GridRequest{
		Date:            opts.date,
		View:            opts.view,
		IncludeHidden:   opts.includeHidden,
		IncludeInactive: opts.includeInactive,
		Theme:           theme,
	}
	if opts.team != "" {
		req.Team = &opts.team
	}

	grid, err := svc.GetGrid(cmd.Context(), req)
	if err != nil {
		return err
	}
	if opts.output == outputJSON {
		return writeJSON(cmd.OutOrStdout(), grid)
	}
	return printGrid(cmd.OutOrStdout(), grid)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// cellGlyph is the short text form of a cell: its label, "~" for a shaded
// weekend, "." when empty. A trailing "+" marks overlays.
func cellGlyph(c roster.CellResponse) string {
	glyph := "."
	switch {
	case c.Label != "":
		glyph = c.Label
	case c.Background != "":
		glyph = "~"
	}
	if len(c.Overlays) > 0 {
		glyph += "+"
	}
	return glyph
}

func printGrid(w io.Writer, grid roster.GridResponse) error {
	fmt.Fprintf(w, "%s %s..%s (%s)\n", grid.View, grid.Start, grid.End, grid.Theme)

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	header := []string{"EMPLOYEE", "TEAM"}
	for _, d := range grid.Days {
		day := d.Date[len(d.Date)-2:]
		if d.IsToday {
			day = "*" + day
		}
		header = append(header, day)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range grid.Rows {
		line := []string{row.Employee.Key, row.Employee.Team}
		for _, c := range row.Cells {
			line = append(line, cellGlyph(c))
		}
		fmt.Fprintln(tw, strings.Join(line, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, sk := range grid.Skipped {
		fmt.Fprintf(w, "skipped employee %d (%q): %s\n", sk.ID, sk.Username, sk.Reason)
	}
	return nil
}

func printCell(w io.Writer, detail roster.CellDetailResponse) error {
	c := detail.Cell
	fmt.Fprintf(w, "%s on %s\n", detail.Employee.Key, c.Date)
	if c.PrimaryKind != "" {
		fmt.Fprintf(w, "primary: %s #%d %s bg=%s text=%s\n", c.PrimaryKind, c.PrimarySourceID, c.Label, c.Background, c.TextColor)
	} else {
		fmt.Fprintln(w, "primary: none")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range c.Events {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.Kind, e.Title, e.Subtitle)
	}
	return tw.Flush()
}
