package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adjustly/adjustly/internal/cli"
	"github.com/adjustly/adjustly/internal/model"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change app settings",
	}

	cmd.AddCommand(showSettingsCmd())
	cmd.AddCommand(setSettingsCmd())

	return cmd
}

func showSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Adjustment window: %d days\n", settings.AdjustmentWindowDays)
			fmt.Printf("Theme: %s\n", settings.DarkMode)
			fmt.Printf("Costco sync (beta): %v\n", settings.CostcoSyncEnabled)
			return nil
		},
	}
}

func setSettingsCmd() *cobra.Command {
	var (
		windowDays int
		darkMode   string
		costcoSync bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Long: `Change one or more settings. Only the flags you pass are changed;
everything else keeps its current value.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var patch model.SettingsPatch
			if cmd.Flags().Changed("window-days") {
				patch.AdjustmentWindowDays = &windowDays
			}
			if cmd.Flags().Changed("dark-mode") {
				mode := model.DarkMode(darkMode)
				patch.DarkMode = &mode
			}
			if cmd.Flags().Changed("costco-sync") {
				patch.CostcoSyncEnabled = &costcoSync
			}
			if patch == (model.SettingsPatch{}) {
				return fmt.Errorf("nothing to change; pass --window-days, --dark-mode, or --costco-sync")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.UpdateSettings(ctx, patch); err != nil {
				return fmt.Errorf("failed to update settings: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Settings updated"))
			return nil
		},
	}

	cmd.Flags().IntVar(&windowDays, "window-days", model.DefaultAdjustmentWindowDays, "price-adjustment window in days")
	cmd.Flags().StringVar(&darkMode, "dark-mode", string(model.DarkModeSystem), "theme: system, light, dark")
	cmd.Flags().BoolVar(&costcoSync, "costco-sync", false, "enable the Costco sync beta toggle")

	return cmd
}
