package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmynk/ticketapp/internal/middleware"
	"github.com/mmynk/ticketapp/internal/ui"
)

func newUICmd(opts *rootOptions) *cobra.Command {
	var start string
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The screen belongs to the UI, so logs only go to the log file.
			a, err := opts.openApp(cmd, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			model := ui.New(ctx, a.auth, a.tickets, middleware.Route(start))
			p := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithContext(ctx),
			)
			a.logger.Info("Starting terminal UI", "route", start)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("terminal UI failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "route", string(middleware.RouteLanding), "screen to open first, e.g. /dashboard")
	return cmd
}
