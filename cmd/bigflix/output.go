package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/DelsinneJordan/BigFlix/internal/events"
)

var registry = events.DefaultRegistry()

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func yearString(y int) string {
	if y == 0 {
		return "-"
	}
	return strconv.Itoa(y)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID: %s", s)
	}
	return id, nil
}

// statusLabel renders an availability status for humans.
func statusLabel(it ItemResponse) string {
	switch it.Status {
	case "available":
		if len(it.LibraryServerNames) > 0 {
			return "available (" + strings.Join(it.LibraryServerNames, ", ") + ")"
		}
		return "available"
	case "not_available":
		return "-"
	case "":
		return "?"
	default:
		return it.Status
	}
}

func printSearch(w io.Writer, r *SearchResponse) {
	if len(r.Results) == 0 {
		fmt.Fprintf(w, "No %s results for %q\n", r.Kind, r.Query)
		return
	}
	fmt.Fprintf(w, "Found %d results for %q (page %d/%d):\n\n", r.TotalResults, r.Query, r.Page, r.TotalPages)
	fmt.Fprintf(w, " %8s │ %-40s │ %4s │ %s\n", "ID", "TITLE", "YEAR", "STATUS")
	fmt.Fprintln(w, "──────────┼──────────────────────────────────────────┼──────┼────────────────")
	for _, it := range r.Results {
		fmt.Fprintf(w, " %8d │ %-40s │ %4s │ %s\n", it.ID, truncate(it.Title, 40), yearString(it.Year), statusLabel(it))
	}
}

func printRequests(w io.Writer, list []RequestResponse) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No requests")
		return
	}
	fmt.Fprintf(w, " %5s │ %-8s │ %-32s │ %-6s │ %-8s │ %-10s │ %s\n", "ID", "STATUS", "TITLE", "KIND", "SERVER", "USER", "CREATED")
	fmt.Fprintln(w, "───────┼──────────┼──────────────────────────────────┼────────┼──────────┼────────────┼──────────────────")
	for _, r := range list {
		fmt.Fprintf(w, " %5d │ %-8s │ %-32s │ %-6s │ %-8s │ %-10s │ %s\n",
			r.ID, r.Status, truncate(r.Title, 32), r.Kind, truncate(r.ServerID, 8), truncate(r.UserID, 10),
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func printRequest(w io.Writer, r RequestResponse) {
	fmt.Fprintf(w, "Request #%d: %s (%s)\n", r.ID, r.Title, yearString(r.Year))
	fmt.Fprintf(w, "  Status:  %s\n", r.Status)
	fmt.Fprintf(w, "  Kind:    %s (TMDB %d)\n", r.Kind, r.TMDBID)
	fmt.Fprintf(w, "  Server:  %s\n", r.ServerID)
	fmt.Fprintf(w, "  User:    %s\n", r.UserID)
	if len(r.Seasons) > 0 {
		parts := make([]string, len(r.Seasons))
		for i, s := range r.Seasons {
			parts[i] = strconv.Itoa(s)
		}
		fmt.Fprintf(w, "  Seasons: %s\n", strings.Join(parts, ", "))
	}
	if r.ProcessedBy != nil {
		fmt.Fprintf(w, "  By:      %s\n", *r.ProcessedBy)
	}
	if r.Notes != nil {
		fmt.Fprintf(w, "  Notes:   %s\n", *r.Notes)
	}
}

func printResult(w io.Writer, res *ResultResponse) {
	printRequest(w, res.Request)
	if f := res.Fulfillment; f != nil {
		switch {
		case f.AlreadyExists:
			fmt.Fprintln(w, "  Manager: already present")
		case f.Success:
			fmt.Fprintln(w, "  Manager: added")
		default:
			fmt.Fprintf(w, "  Manager: failed: %s\n", f.Error)
		}
	}
	if res.Warning != "" {
		fmt.Fprintf(w, "Warning: %s\n", res.Warning)
	}
}

// describeEvent renders one audit event, decoding the payloads it knows.
func describeEvent(e EventResponse) string {
	line := e.OccurredAt.Local().Format("2006-01-02 15:04:05") + "  " + e.Type
	evt, err := registry.Unmarshal(events.RawEvent{EventType: e.Type, Payload: string(e.Payload)})
	if err != nil {
		return line
	}

	var actor, detail string
	switch ev := evt.(type) {
	case *events.RequestCreated:
		actor = ev.Actor
		detail = fmt.Sprintf("%s on %s as %s", ev.Title, ev.ServerID, ev.Status)
	case *events.RequestApproved:
		actor = ev.Actor
		if ev.Warning != "" {
			detail = "warning: " + ev.Warning
		}
	case *events.RequestRejected:
		actor = ev.Actor
		detail = ev.Notes
	case *events.RequestDeleted:
		actor = ev.Actor
		detail = "was " + ev.Status
	case *events.FulfillmentCompleted:
		detail = ev.Title + " on " + ev.ServerID
	case *events.FulfillmentFailed:
		detail = ev.Reason
	}
	if actor != "" {
		line += " by " + actor
	}
	if detail != "" {
		line += ": " + detail
	}
	return line
}
