package main

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/adjustly/adjustly/internal/cli"
	"github.com/adjustly/adjustly/internal/engine"
)

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Match all tracked items against the promo catalog",
		Long: `Run the promo matcher over every tracked item. Items whose price has
dropped below what was paid get a price-drop alert and become ready to
claim. Safe to run repeatedly; recorded matches are never re-evaluated.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cat, err := loadCatalog()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			items, err := store.ListItems(ctx)
			if err != nil {
				return fmt.Errorf("failed to list items: %w", err)
			}
			if len(items) == 0 {
				fmt.Println(cli.InfoStyle.Render("No items tracked yet; nothing to reconcile."))
				return nil
			}

			bar := progressbar.NewOptions(len(items),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan]Checking promos...[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)

			eng := engine.New(cat, store)
			eng.SetProgress(func(_, _ int) {
				_ = bar.Add(1)
			})

			// One clock sample for the whole pass.
			matches, err := eng.ReconcileAll(ctx, time.Now())
			if err != nil {
				return err
			}

			if matches == 0 {
				fmt.Println(cli.InfoStyle.Render("No new promo matches."))
			} else {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Found %d new promo match(es); see 'adjustly alerts list'", matches)))
			}
			return nil
		},
	}
}
