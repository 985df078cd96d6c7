package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Shivanand-hulikatti/pitchside-boards/internal/model"
	"github.com/spf13/cobra"
)

var jsonOutput bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards with their status and sponsor",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openPersistentService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		location, _ := cmd.Flags().GetString("location")
		status, _ := cmd.Flags().GetString("status")

		var boards []model.Board
		switch {
		case location != "":
			boards, err = svc.ListByLocation(cmd.Context(), model.Location(location))
		case status != "":
			boards, err = svc.ListByStatus(cmd.Context(), model.Status(status))
		default:
			boards, err = svc.ListAll(cmd.Context())
		}
		if err != nil {
			return err
		}
		if location != "" && status != "" {
			boards = filterStatus(boards, model.Status(status))
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, boards)
		}
		if len(boards) == 0 {
			fmt.Fprintln(out, "No boards found.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tLOCATION\tSIZE\tSTATUS\tPRICE\tSPONSOR\tENDS")
		for _, b := range boards {
			sponsor, ends := "-", "-"
			if b.Sponsor != nil {
				sponsor = b.Sponsor.Name
			}
			if b.Contract != nil {
				ends = b.Contract.EndDate.Format(model.DateLayout)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
				b.BoardNumber, b.Location, b.Size, b.Status, b.PricePerSeason, sponsor, ends)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	listCmd.Flags().String("location", "", "Only boards in this zone")
	listCmd.Flags().String("status", "", "Only boards with this status")
	rootCmd.AddCommand(listCmd)
}

func filterStatus(boards []model.Board, status model.Status) []model.Board {
	out := make([]model.Board, 0, len(boards))
	for _, b := range boards {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
