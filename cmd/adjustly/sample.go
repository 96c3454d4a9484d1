package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/adjustly/adjustly/internal/cli"
	"github.com/adjustly/adjustly/internal/model"
)

// sampleItems returns demo receipt lines for trying the app: one fresh item
// that the bundled catalog matches, one nearing the end of its window, and
// one that already has a verified shelf-price drop.
func sampleItems(now time.Time) []model.TrackedItem {
	today := model.DateOf(now)
	verified := model.Money(2399)

	return []model.TrackedItem{
		{
			ItemNumber:   "1234567",
			Description:  "Kirkland Signature Organic Extra Virgin Olive Oil, 2L",
			UnitPrice:    model.Money(1999),
			Quantity:     2,
			PurchaseDate: today.AddDays(-5),
			Warehouse:    "San Francisco #123",
		},
		{
			ItemNumber:   "9876543",
			Description:  "Charmin Ultra Soft Toilet Paper, 30 Mega Rolls",
			UnitPrice:    model.Money(3299),
			Quantity:     1,
			PurchaseDate: today.AddDays(-20),
			Warehouse:    "San Francisco #123",
		},
		{
			ItemNumber:      "5555555",
			Description:     "Tide Pods Laundry Detergent, 112 ct",
			UnitPrice:       model.Money(2899),
			Quantity:        1,
			PurchaseDate:    today.AddDays(-3),
			Warehouse:       "Daly City #456",
			VerifiedPrice:   &verified,
			DetectionSource: model.DetectionVerifiedShelf,
		},
	}
}

func sampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Load sample items for trying the app",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			for _, item := range sampleItems(time.Now()) {
				if _, err := store.AddItem(ctx, item); err != nil {
					return fmt.Errorf("failed to add sample item: %w", err)
				}
			}

			fmt.Println(cli.FormatSuccess("Loaded 3 sample items; try 'adjustly list' and 'adjustly reconcile'"))
			return nil
		},
	}
}
