package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/adjustly/adjustly/internal/cli"
)

func promosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promos",
		Short: "Inspect the promo catalog",
	}

	cmd.AddCommand(listPromosCmd())

	return cmd
}

func listPromosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog promos and their windows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}

			promos := cat.Promos()
			if len(promos) == 0 {
				fmt.Println(cli.InfoStyle.Render("Promo catalog is empty."))
				return nil
			}

			now := time.Now()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("PROMO"),
				cli.BoldStyle.Render("START"),
				cli.BoldStyle.Render("END"),
				cli.BoldStyle.Render("ITEMS"),
				cli.BoldStyle.Render("STATE"))

			for i := range promos {
				promo := &promos[i]
				state := cli.SubtleStyle.Render("ended")
				switch {
				case promo.ActiveAt(now):
					state = cli.SuccessStyle.Render("active")
				case now.Before(promo.Start.StartOfDay()):
					state = cli.InfoStyle.Render("upcoming")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					promo.Name, promo.Start, promo.End, len(promo.Items), state)
			}
			return w.Flush()
		},
	}
}
