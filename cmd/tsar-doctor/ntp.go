package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsarnet/tsar-go/internal/ntptime"
)

var ntpServer string

var ntpCmd = &cobra.Command{
	Use:   "ntp",
	Short: "Query the NTP time oracle and report skew against the local clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := ntptime.New(ntpServer)
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		start := time.Now()
		netTime, err := client.Now(ctx)
		if err != nil {
			fmt.Printf("✗ ntp query failed: %v\n", err)
			return err
		}
		localTime := time.Now()
		skew := netTime.Sub(localTime)
		if skew < 0 {
			skew = -skew
		}

		fmt.Printf("✓ network time: %s\n", netTime.Format(time.RFC3339))
		fmt.Printf("  local time:   %s\n", localTime.Format(time.RFC3339))
		fmt.Printf("  skew:         %s\n", skew)
		fmt.Printf("  round trip:   %s\n", time.Since(start))
		if skew > 30*time.Second {
			fmt.Println("⚠ skew exceeds the 30s freshness window; verification will reject responses")
		}
		return nil
	},
}

func init() {
	ntpCmd.Flags().StringVar(&ntpServer, "server", ntptime.DefaultServer, "NTP server address (host:port)")
	rootCmd.AddCommand(ntpCmd)
}
