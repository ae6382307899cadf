package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the server is reachable",
	Args:  cobra.NoArgs,
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(_ *cobra.Command, _ []string) error {
	status, err := newClient().Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}
	if jsonOutput {
		printJSON(status)
		return nil
	}
	fmt.Printf("Server:  %s\n", serverURL)
	fmt.Printf("Status:  %s\n", status.Status)
	if status.Version != "" {
		fmt.Printf("Version: %s\n", status.Version)
	}
	return nil
}
