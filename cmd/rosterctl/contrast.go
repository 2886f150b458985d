package main

import (
	"fmt"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/spf13/cobra"
)

func newContrastCmd(flags *globalFlags) *cobra.Command {
	var dark bool

	cmd := &cobra.Command{
		Use:   "contrast HEX [HEX...]",
		Short: "Pick readable text colors for background colors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			svc := newService(cfg, emptyRepositories(), nil, newLogger(cmd, cfg))

			theme := "light"
			if dark {
				theme = "dark"
			}
			for _, hex := range args {
				resp, err := svc.GetContrast(cmd.Context(), roster.ContrastRequest{Hex: hex, Theme: theme})
				if err != nil {
					return err
				}
				status := "ok"
				if !resp.Valid {
					status = "invalid"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", resp.Hex, resp.TextColor, status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dark, "dark", false, "use the dark theme palette")
	return cmd
}
