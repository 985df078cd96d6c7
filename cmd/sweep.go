package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Flag sponsored boards whose contract is due for renewal",
	Long:  "Runs one renewal sweep and exits. Suitable for cron when the server is not running.",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openPersistentService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		n, err := svc.FlagRenewals(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Flagged %d boards for renewal\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
