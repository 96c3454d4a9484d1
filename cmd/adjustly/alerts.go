package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adjustly/adjustly/internal/cli"
)

func alertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Manage price-drop alerts",
	}

	cmd.AddCommand(listAlertsCmd())
	cmd.AddCommand(readAlertCmd())
	cmd.AddCommand(clearAlertsCmd())

	return cmd
}

func listAlertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List alerts, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			alerts, err := store.ListAlerts(ctx)
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}
			if len(alerts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No alerts. Run 'adjustly reconcile' to check for price drops."))
				return nil
			}

			unread, err := store.UnreadAlertCount(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s Alerts (%d unread)", cli.BellIcon, unread)))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, alert := range alerts {
				marker := " "
				message := alert.Message
				if !alert.Read {
					marker = cli.SuccessStyle.Render("●")
					message = cli.BoldStyle.Render(message)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					marker,
					shortID(alert.ID),
					alert.CreatedAt.Format("2006-01-02 15:04"),
					message)
			}
			return w.Flush()
		},
	}
}

func readAlertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark an alert as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			// Accept the short ids printed by list.
			alerts, err := store.ListAlerts(ctx)
			if err != nil {
				return err
			}
			id := args[0]
			for _, alert := range alerts {
				if alert.ID == id || shortID(alert.ID) == id {
					id = alert.ID
					break
				}
			}

			if err := store.MarkAlertRead(ctx, id); err != nil {
				return fmt.Errorf("failed to mark alert read: %w", err)
			}
			return nil
		},
	}
}

func clearAlertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all alerts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ClearAlerts(ctx); err != nil {
				return fmt.Errorf("failed to clear alerts: %w", err)
			}
			fmt.Println(cli.FormatSuccess("Cleared all alerts"))
			return nil
		},
	}
}
