package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/adjustly/adjustly/internal/cli"
	"github.com/adjustly/adjustly/internal/model"
	"github.com/adjustly/adjustly/internal/refund"
	"github.com/adjustly/adjustly/internal/service"
)

func addCmd() *cobra.Command {
	var (
		itemNumber   string
		description  string
		price        string
		quantity     int
		date         string
		warehouse    string
		receiptImage string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Track a purchased item",
		Long:  `Add a receipt line item to start tracking it for price drops.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			unitPrice, err := model.ParseMoney(price)
			if err != nil {
				return err
			}
			if unitPrice <= 0 {
				return fmt.Errorf("price must be positive, got %s", unitPrice)
			}

			purchaseDate := model.DateOf(time.Now())
			if date != "" {
				purchaseDate, err = model.ParseDate(date)
				if err != nil {
					return err
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			id, err := store.AddItem(ctx, model.TrackedItem{
				ItemNumber:   itemNumber,
				Description:  description,
				UnitPrice:    unitPrice,
				Quantity:     quantity,
				PurchaseDate: purchaseDate,
				Warehouse:    warehouse,
				ReceiptImage: receiptImage,
			})
			if err != nil {
				return fmt.Errorf("failed to add item: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Tracking %q (%s)", description, id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&itemNumber, "item-number", "", "retailer SKU on the receipt")
	cmd.Flags().StringVar(&description, "description", "", "item description")
	cmd.Flags().StringVar(&price, "price", "", "unit price paid, e.g. 19.99")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "quantity purchased")
	cmd.Flags().StringVar(&date, "date", "", "purchase date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&warehouse, "warehouse", "", "warehouse label, e.g. \"San Francisco #123\"")
	cmd.Flags().StringVar(&receiptImage, "receipt", "", "receipt image reference")
	_ = cmd.MarkFlagRequired("item-number")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func listCmd() *cobra.Command {
	var (
		filter string
		sortBy string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked items",
		Long:  `Display tracked items with their current status, claim countdown, and potential refund.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

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
				fmt.Println(cli.InfoStyle.Render("No items tracked. Use 'adjustly add' to start tracking price drops."))
				return nil
			}

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return err
			}

			// One consistent clock sample for the whole listing.
			now := time.Now()

			type row struct {
				item    model.TrackedItem
				summary refund.Summary
			}
			rows := make([]row, 0, len(items))
			for _, item := range items {
				rows = append(rows, row{
					item:    item,
					summary: refund.Summarize(item, settings.AdjustmentWindowDays, now),
				})
			}

			filtered := rows[:0:0]
			for _, r := range rows {
				if matchesFilter(r.summary, filter) {
					filtered = append(filtered, r)
				}
			}

			switch sortBy {
			case "expiring":
				sort.SliceStable(filtered, func(i, j int) bool {
					return filtered[i].summary.DaysLeft < filtered[j].summary.DaysLeft
				})
			case "savings":
				sort.SliceStable(filtered, func(i, j int) bool {
					return filtered[i].summary.PotentialRefund > filtered[j].summary.PotentialRefund
				})
			case "newest":
				sort.SliceStable(filtered, func(i, j int) bool {
					return filtered[i].item.PurchaseDate.After(filtered[j].item.PurchaseDate.Time)
				})
			default:
				return fmt.Errorf("unknown sort %q (want expiring, savings, or newest)", sortBy)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("ITEM"),
				cli.BoldStyle.Render("PAID"),
				cli.BoldStyle.Render("STATUS"),
				cli.BoldStyle.Render("WINDOW"),
				cli.BoldStyle.Render("REFUND"))

			readyCount := 0
			var totalSavings model.Money
			for _, r := range filtered {
				refundCol := "-"
				if r.summary.PotentialRefund > 0 {
					refundCol = r.summary.PotentialRefund.String()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					shortID(r.item.ID),
					truncate(r.item.Description, 44),
					r.item.UnitPrice,
					cli.StatusPill(r.summary.Status),
					cli.DaysLeft(r.summary.DaysLeft),
					refundCol,
				)
				if r.summary.Status == model.StatusReady || r.summary.Status == model.StatusPossible {
					readyCount++
					totalSavings += r.summary.PotentialRefund
				}
			}
			_ = w.Flush()

			fmt.Println()
			fmt.Printf("%d tracked, %d with price drops, %s potential savings\n",
				len(filtered), readyCount, cli.SuccessStyle.Render(totalSavings.String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "filter: all, tracking, ready, expiring, expired")
	cmd.Flags().StringVar(&sortBy, "sort", "expiring", "sort: expiring, savings, newest")

	return cmd
}

// matchesFilter mirrors the tracked-page filter chips: "ready" includes
// possible drops, and "expiring" means an open window closing within 10 days.
func matchesFilter(s refund.Summary, filter string) bool {
	switch filter {
	case "all", "":
		return true
	case "tracking":
		return s.Status == model.StatusTracking
	case "ready":
		return s.Status == model.StatusReady || s.Status == model.StatusPossible
	case "expiring":
		return s.DaysLeft > 0 && s.DaysLeft <= 10
	case "expired":
		return s.Status == model.StatusExpired
	default:
		return false
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show item details and its refund pass",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			item, err := findItem(ctx, store, args[0])
			if err != nil {
				return err
			}

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return err
			}

			now := time.Now()
			summary := refund.Summarize(*item, settings.AdjustmentWindowDays, now)

			fmt.Println(cli.FormatTitle(item.Description))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Item number:\t%s\n", item.ItemNumber)
			fmt.Fprintf(w, "Status:\t%s\n", cli.StatusPill(summary.Status))
			fmt.Fprintf(w, "Paid:\t%s × %d\n", item.UnitPrice, item.Quantity)
			fmt.Fprintf(w, "Purchased:\t%s", item.PurchaseDate)
			if item.Warehouse != "" {
				fmt.Fprintf(w, " at %s", item.Warehouse)
			}
			fmt.Fprintln(w)
			if current, ok := item.CurrentPrice(); ok {
				fmt.Fprintf(w, "Current price:\t%s (%s)\n", current, item.DetectionSource)
			}
			if summary.Status != model.StatusExpired {
				fmt.Fprintf(w, "Window:\t%s of %d days\n", cli.DaysLeft(summary.DaysLeft), settings.AdjustmentWindowDays)
			}
			_ = w.Flush()

			// Refund pass: the summary shown at the membership desk.
			if summary.Status == model.StatusReady || summary.Status == model.StatusPossible {
				current, _ := item.CurrentPrice()
				pass := fmt.Sprintf("Item #%s\nPaid %s on %s\nCurrent price %s\nRefund requested: %s",
					item.ItemNumber, item.UnitPrice, item.PurchaseDate, current, summary.PotentialRefund)
				fmt.Println()
				fmt.Println(cli.RenderBox("Refund Pass", pass))
			}
			return nil
		},
	}
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id> <price>",
		Short: "Record a shelf price you verified in store",
		Long:  `Record the current shelf price for an item. A verified price below what you paid makes the item ready to claim.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			price, err := model.ParseMoney(args[1])
			if err != nil {
				return err
			}
			if price <= 0 {
				return fmt.Errorf("verified price must be positive, got %s", price)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			item, err := findItem(ctx, store, args[0])
			if err != nil {
				return err
			}

			source := model.DetectionVerifiedShelf
			err = store.UpdateItem(ctx, item.ID, model.ItemPatch{
				VerifiedPrice:   &price,
				DetectionSource: &source,
			})
			if err != nil {
				return fmt.Errorf("failed to record verified price: %w", err)
			}

			if price < item.UnitPrice {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Verified %s, a drop of %s per unit", price, item.UnitPrice-price)))
			} else {
				fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("Verified %s, no drop below the %s you paid", price, item.UnitPrice)))
			}
			return nil
		},
	}
}

func claimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claim <id>",
		Short: "Mark an item's refund as claimed",
		Long:  `Mark an item claimed after requesting the adjustment at the membership desk. Claimed items show as expired and are never matched again.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			item, err := findItem(ctx, store, args[0])
			if err != nil {
				return err
			}

			claimed := true
			if err := store.UpdateItem(ctx, item.ID, model.ItemPatch{Claimed: &claimed}); err != nil {
				return fmt.Errorf("failed to mark claimed: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Marked %q claimed", item.Description)))
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Stop tracking an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			item, err := findItem(ctx, store, args[0])
			if err != nil {
				return err
			}

			if err := store.DeleteItem(ctx, item.ID); err != nil {
				return fmt.Errorf("failed to delete item: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Stopped tracking %q", item.Description)))
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// findItem resolves a full or prefix id to a tracked item, so users can pass
// the short ids shown by list.
func findItem(ctx context.Context, store service.Storage, id string) (*model.TrackedItem, error) {
	items, err := store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	var match *model.TrackedItem
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
		if strings.HasPrefix(items[i].ID, id) {
			if match != nil {
				return nil, fmt.Errorf("id %q is ambiguous", id)
			}
			match = &items[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no tracked item with id %q", id)
	}
	return match, nil
}
