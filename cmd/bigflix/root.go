package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	token      string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "bigflix",
	Short: "CLI client for the BigFlix request server",
	Long: `bigflix - CLI client for the BigFlix request server

Search the catalog, see what your Plex servers already have,
and request what they don't.

Run 'bigflixd' to start the server daemon.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("BIGFLIX_SERVER", "http://localhost:8585"), "Server URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("BIGFLIX_TOKEN"), "Bearer token (default $BIGFLIX_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("bigflix {{.Version}}\n")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newClient() *Client {
	return NewClient(serverURL, token)
}
