package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] <query>...",
	Short: "Search the catalog with availability",
	Long: `Search the catalog and show each result's availability on your servers.

Examples:
  bigflix search "The Matrix"
  bigflix search --kind tv "Game of Thrones"
  bigflix search --page 2 matrix`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringP("kind", "k", "movie", "Media kind (movie or tv)")
	searchCmd.Flags().IntP("page", "p", 1, "Result page")
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	kind, _ := cmd.Flags().GetString("kind")
	page, _ := cmd.Flags().GetInt("page")

	results, err := newClient().Search(query, kind, page)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		printJSON(results)
		return nil
	}
	printSearch(os.Stdout, results)
	return nil
}
