package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "List the servers you may request against",
	Args:  cobra.NoArgs,
	RunE:  runServersCmd,
}

func init() {
	rootCmd.AddCommand(serversCmd)
}

func runServersCmd(_ *cobra.Command, _ []string) error {
	servers, err := newClient().Servers()
	if err != nil {
		return fmt.Errorf("list servers failed: %w", err)
	}
	if jsonOutput {
		printJSON(servers)
		return nil
	}
	if len(servers) == 0 {
		fmt.Println("No servers bound to your account")
		return nil
	}
	for _, s := range servers {
		marker := " "
		if s.Primary {
			marker = "*"
		}
		managers := ""
		if s.Radarr {
			managers += " radarr"
		}
		if s.Sonarr {
			managers += " sonarr"
		}
		fmt.Printf("%s %-12s %-24s%s\n", marker, s.ID, s.Name, managers)
	}
	return nil
}
