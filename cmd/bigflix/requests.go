package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var requestCmd = &cobra.Command{
	Use:   "request <tmdb-id>",
	Short: "Request a movie or series",
	Long: `Request a movie or series by its TMDB ID.

Requests wait for approval unless you may add directly, in which
case the item goes straight to the server's download manager.

Examples:
  bigflix request 603
  bigflix request --kind tv --season 1 --season 2 1399
  bigflix request --on living-room 603`,
	Args: cobra.ExactArgs(1),
	RunE: runRequestCmd,
}

var requestsCmd = &cobra.Command{
	Use:   "requests [id]",
	Short: "List requests or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRequestsCmd,
}

var approveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending request",
	Args:  cobra.ExactArgs(1),
	RunE:  runApproveCmd,
}

var rejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending request",
	Args:  cobra.ExactArgs(1),
	RunE:  runRejectCmd,
}

var cancelCmd = &cobra.Command{
	Use:     "cancel <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a request",
	Args:    cobra.ExactArgs(1),
	RunE:    runCancelCmd,
}

var historyCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show the audit trail of a request",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(requestCmd, requestsCmd, approveCmd, rejectCmd, cancelCmd, historyCmd)

	requestCmd.Flags().StringP("kind", "k", "movie", "Media kind (movie or tv)")
	requestCmd.Flags().String("on", "", "Server ID (default: your primary server)")
	requestCmd.Flags().IntSlice("season", nil, "Season to request (series only, repeatable)")

	requestsCmd.Flags().String("status", "", "Filter by status (pending, approved, rejected, added)")
	requestsCmd.Flags().String("on", "", "Filter by server ID")
	requestsCmd.Flags().Bool("mine", false, "Only your own requests")

	rejectCmd.Flags().StringP("notes", "m", "", "Reason shown to the requester")
}

func runRequestCmd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	kind, _ := cmd.Flags().GetString("kind")
	server, _ := cmd.Flags().GetString("on")
	seasons, _ := cmd.Flags().GetIntSlice("season")

	res, err := newClient().CreateRequest(CreateRequest{ItemID: id, Kind: kind, ServerID: server, Seasons: seasons})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if jsonOutput {
		printJSON(res)
		return nil
	}
	printResult(os.Stdout, res)
	return nil
}

func runRequestsCmd(cmd *cobra.Command, args []string) error {
	client := newClient()

	if len(args) == 1 {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		r, err := client.GetRequest(id)
		if err != nil {
			return fmt.Errorf("get request failed: %w", err)
		}
		if jsonOutput {
			printJSON(r)
			return nil
		}
		printRequest(os.Stdout, *r)
		return nil
	}

	status, _ := cmd.Flags().GetString("status")
	server, _ := cmd.Flags().GetString("on")
	mine, _ := cmd.Flags().GetBool("mine")

	list, err := client.ListRequests(status, server, mine)
	if err != nil {
		return fmt.Errorf("list requests failed: %w", err)
	}
	if jsonOutput {
		printJSON(list)
		return nil
	}
	printRequests(os.Stdout, list)
	return nil
}

func runApproveCmd(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	res, err := newClient().Approve(id)
	if err != nil {
		return fmt.Errorf("approve failed: %w", err)
	}
	if jsonOutput {
		printJSON(res)
		return nil
	}
	printResult(os.Stdout, res)
	return nil
}

func runRejectCmd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	notes, _ := cmd.Flags().GetString("notes")
	r, err := newClient().Reject(id, notes)
	if err != nil {
		return fmt.Errorf("reject failed: %w", err)
	}
	if jsonOutput {
		printJSON(r)
		return nil
	}
	printRequest(os.Stdout, *r)
	return nil
}

func runCancelCmd(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := newClient().Cancel(id); err != nil {
		return fmt.Errorf("cancel failed: %w", err)
	}
	if !jsonOutput {
		fmt.Printf("Request #%d deleted\n", id)
	}
	return nil
}

func runHistoryCmd(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	evts, err := newClient().RequestEvents(id)
	if err != nil {
		return fmt.Errorf("history failed: %w", err)
	}
	if jsonOutput {
		printJSON(evts)
		return nil
	}
	if len(evts) == 0 {
		fmt.Println("No events")
		return nil
	}
	for _, e := range evts {
		fmt.Println(describeEvent(e))
	}
	return nil
}
