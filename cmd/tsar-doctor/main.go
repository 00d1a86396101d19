package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tsar-doctor",
	Short: "tsar-doctor - operator diagnostics for the tsar client core",
	Long: `tsar-doctor exercises the hwid, ntp, and transport/verify pipeline
components of the tsar client library independently, for support triage
when an application embedding tsar reports an authentication failure.`,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
