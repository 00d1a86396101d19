package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsarnet/tsar-go/internal/platform"
)

var hwidJSON bool

var hwidCmd = &cobra.Command{
	Use:   "hwid",
	Short: "Print this machine's stable hardware identifier",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := platform.HWID()
		if err != nil {
			if hwidJSON {
				out, _ := json.MarshalIndent(map[string]string{"error": err.Error()}, "", "  ")
				fmt.Println(string(out))
			}
			return err
		}
		if hwidJSON {
			out, _ := json.MarshalIndent(map[string]string{"hwid": id}, "", "  ")
			fmt.Println(string(out))
			return nil
		}
		fmt.Printf("✓ hwid: %s\n", id)
		return nil
	},
}

func init() {
	hwidCmd.Flags().BoolVar(&hwidJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(hwidCmd)
}
