package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adjustly/adjustly/internal/cli"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export items, alerts, and settings as JSON",
		Long:  `Write the full store as one JSON snapshot. With no file argument the snapshot goes to stdout.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			data, err := store.ExportData(ctx)
			if err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}

			if len(args) == 0 {
				fmt.Println(string(data))
				return nil
			}

			if err := os.WriteFile(args[0], data, 0600); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported snapshot to %s", args[0])))
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data from a JSON snapshot",
		Long: `Replace items, alerts, and settings wholesale from a snapshot produced
by export. A malformed snapshot is rejected and existing data is untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0]) // #nosec G304 -- user-supplied snapshot path
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ImportData(ctx, data); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Snapshot imported"))
			return nil
		},
	}
}

func wipeCmd() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete all items, alerts, and settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !confirmed {
				return fmt.Errorf("refusing to wipe without --yes")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.WipeAllData(ctx); err != nil {
				return fmt.Errorf("failed to wipe data: %w", err)
			}

			fmt.Println(cli.FormatSuccess("All data wiped"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the wipe")

	return cmd
}
