package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show occupancy and revenue",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openPersistentService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		stats, err := svc.Stats(cmd.Context())
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			return printJSON(cmd.OutOrStdout(), stats)
		}

		p := message.NewPrinter(language.English)
		out := cmd.OutOrStdout()
		p.Fprintf(out, "Boards:            %d\n", stats.Total)
		p.Fprintf(out, "  sponsored:       %d\n", stats.Sponsored)
		p.Fprintf(out, "  renewal due:     %d\n", stats.RenewalDue)
		p.Fprintf(out, "  reserved:        %d\n", stats.Reserved)
		p.Fprintf(out, "  available:       %d\n", stats.Available)
		p.Fprintf(out, "Occupancy:         %d%%\n", stats.OccupancyRate)
		p.Fprintf(out, "Revenue (paid):    %d\n", stats.TotalRevenue)
		p.Fprintf(out, "Potential revenue: %d\n", stats.PotentialRevenue)
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(statsCmd)
}
