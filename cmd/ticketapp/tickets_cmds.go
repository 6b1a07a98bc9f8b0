package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/ticketapp/internal/form"
	"github.com/mmynk/ticketapp/internal/models"
)

func newTicketsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tickets",
		Aliases: []string{"ticket", "t"},
		Short:   "Manage tickets (requires login)",
	}
	cmd.AddCommand(
		newTicketsListCmd(opts),
		newTicketsShowCmd(opts),
		newTicketsCreateCmd(opts),
		newTicketsUpdateCmd(opts),
		newTicketsDeleteCmd(opts),
		newTicketsSearchCmd(opts),
	)
	return cmd
}

func newTicketsListCmd(opts *rootOptions) *cobra.Command {
	var status string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets in creation order",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, _ []string, a *app) error {
			var (
				list []models.Ticket
				err  error
			)
			if status != "" {
				st, perr := models.ParseStatus(status)
				if perr != nil {
					return perr
				}
				list, err = a.tickets.Filter(cmd.Context(), st)
			} else {
				list, err = a.tickets.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printTickets(cmd.OutOrStdout(), list, asJSON)
		}),
	}
	cmd.Flags().StringVar(&status, "status", "", "only show tickets with this status")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newTicketsShowCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one ticket",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, args []string, a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := a.tickets.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, t)
			}
			fmt.Fprintf(out, "ID:          %d\n", t.ID)
			fmt.Fprintf(out, "Title:       %s\n", t.Title)
			fmt.Fprintf(out, "Status:      %s\n", t.Status.Label())
			if t.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", t.Description)
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newTicketsCreateCmd(opts *rootOptions) *cobra.Command {
	var title, description, status string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a ticket",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, _ []string, a *app) error {
			c := form.NewController(a.tickets)
			c.Title = title
			c.Description = description
			if status != "" {
				st, err := models.ParseStatus(status)
				if err != nil {
					return err
				}
				c.Status = st
			}
			t, err := c.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (#%d)\n", c.Success, t.ID)
			return nil
		}),
	}
	cmd.Flags().StringVar(&title, "title", "", "ticket title (required)")
	cmd.Flags().StringVar(&description, "description", "", "ticket description")
	cmd.Flags().StringVar(&status, "status", "", "open, in_progress or closed (default open)")
	return cmd
}

func newTicketsUpdateCmd(opts *rootOptions) *cobra.Command {
	var title, description, status string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a ticket's title, description or status",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, args []string, a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var patch models.TicketPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("status") {
				st, err := models.ParseStatus(status)
				if err != nil {
					return err
				}
				patch.Status = &st
			}
			if patch.Empty() {
				return fmt.Errorf("nothing to update: pass --title, --description or --status")
			}
			if _, err := a.tickets.Update(cmd.Context(), id, patch); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), form.MsgUpdated)
			return nil
		}),
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	return cmd
}

func newTicketsDeleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, args []string, a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete ticket #%d?", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			c := form.NewController(a.tickets)
			if err := c.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Success)
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newTicketsSearchCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find tickets whose title or description contains query",
		Args:  cobra.MaximumNArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, args []string, a *app) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			list, err := a.tickets.Search(cmd.Context(), query)
			if err != nil {
				return err
			}
			return printTickets(cmd.OutOrStdout(), list, asJSON)
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ticket id %q", s)
	}
	return id, nil
}

func printTickets(w io.Writer, list []models.Ticket, asJSON bool) error {
	if asJSON {
		if list == nil {
			list = []models.Ticket{}
		}
		return writeJSON(w, list)
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "No tickets yet.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tDESCRIPTION")
	for _, t := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", t.ID, t.Status.Label(), t.Title, t.Description)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// confirm asks a yes/no question on in; anything but y or yes is no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
