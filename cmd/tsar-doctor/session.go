package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsarnet/tsar-go/internal/logger"

	tsar "github.com/tsarnet/tsar-go"
)

var (
	flagAppID     string
	flagClientKey string
	flagBaseURL   string
)

func registerCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagAppID, "app-id", os.Getenv("TSAR_APP_ID"), "application UUID")
	cmd.Flags().StringVar(&flagClientKey, "client-key", os.Getenv("TSAR_CLIENT_KEY"), "base64 app public key (124 chars)")
	cmd.Flags().StringVar(&flagBaseURL, "base-url", envOr("TSAR_BASE_URL", ""), "override the default API base URL")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func buildClient(ctx context.Context) (*tsar.Client, error) {
	if flagAppID == "" || flagClientKey == "" {
		return nil, fmt.Errorf("--app-id and --client-key (or TSAR_APP_ID / TSAR_CLIENT_KEY) are required")
	}
	opts := []tsar.Option{tsar.WithLogger(logger.NewDefaultLogger())}
	if flagBaseURL != "" {
		opts = append(opts, tsar.WithBaseURL(flagBaseURL))
	}
	return tsar.Create(ctx, flagAppID, flagClientKey, opts...)
}

var initializeCmd = &cobra.Command{
	Use:   "initialize",
	Short: "Run Client creation against a live /initialize endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		c, err := buildClient(ctx)
		if err != nil {
			fmt.Printf("✗ initialize failed: %v\n", err)
			return err
		}
		fmt.Println("✓ client initialized")
		_ = c
		return nil
	},
}

var openOnUnauth bool

var authenticateCmd = &cobra.Command{
	Use:   "authenticate",
	Short: "Run Client creation plus Authenticate against live endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		c, err := buildClient(ctx)
		if err != nil {
			fmt.Printf("✗ initialize failed: %v\n", err)
			return err
		}

		u, err := c.Authenticate(ctx, openOnUnauth)
		if err != nil {
			fmt.Printf("✗ authenticate failed: %v\n", err)
			return err
		}
		fmt.Printf("✓ authenticated as %s (tier %d)\n", u.ID, u.Subscription.Tier)
		return nil
	},
}

var heartbeatCmd = &cobra.Command{
	Use:   "heartbeat",
	Short: "Run Client creation, Authenticate, and one Heartbeat against live endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
		defer cancel()

		c, err := buildClient(ctx)
		if err != nil {
			fmt.Printf("✗ initialize failed: %v\n", err)
			return err
		}

		u, err := c.Authenticate(ctx, false)
		if err != nil {
			fmt.Printf("✗ authenticate failed: %v\n", err)
			return err
		}

		if err := u.Heartbeat(ctx); err != nil {
			fmt.Printf("✗ heartbeat failed: %v\n", err)
			return err
		}
		fmt.Println("✓ heartbeat ok")
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{initializeCmd, authenticateCmd, heartbeatCmd} {
		registerCommonFlags(cmd)
		rootCmd.AddCommand(cmd)
	}
	authenticateCmd.Flags().BoolVar(&openOnUnauth, "open-on-unauth", true, "open the dashboard in a browser on an unauthorized response")
}
