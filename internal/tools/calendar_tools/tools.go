package calendar_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/workspacemcp/workspace-mcp/internal/calendar"
	"github.com/workspacemcp/workspace-mcp/internal/server"
	"github.com/workspacemcp/workspace-mcp/internal/tools/common"
)

// DefaultListWindow is how far ahead calendar_list_events looks when no
// time range is given.
const DefaultListWindow = 7 * 24 * time.Hour

func getAccountFromArgs(args map[string]interface{}) string {
	return common.GetAccountFromArgs(args)
}

func getCalendarClient(ctx context.Context, account string, sc *server.ServerContext) (*calendar.Client, error) {
	client, err := sc.CalendarClientForAccount(account)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar client for account %s: %w. Run 'workspace-mcp auth' to authorize", account, err)
	}
	return client, nil
}

// resolveTimeRange applies the listing defaults: timeMin falls back to
// now, timeMax to timeMin plus the default window.
func resolveTimeRange(timeMinStr, timeMaxStr string, now time.Time) (timeMin, timeMax time.Time, err error) {
	timeMin = now
	if timeMinStr != "" {
		timeMin, err = time.Parse(time.RFC3339, timeMinStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid timeMin format: %w", err)
		}
	}

	timeMax = timeMin.Add(DefaultListWindow)
	if timeMaxStr != "" {
		timeMax, err = time.Parse(time.RFC3339, timeMaxStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid timeMax format: %w", err)
		}
	}

	if !timeMax.After(timeMin) {
		return time.Time{}, time.Time{}, fmt.Errorf("timeMax must be after timeMin")
	}

	return timeMin, timeMax, nil
}

func formatEventTime(t time.Time, allDay bool) string {
	if allDay {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

// formatEventList renders listed events as a numbered listing.
func formatEventList(events []calendar.EventSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d events:\n\n", len(events))
	for i, event := range events {
		fmt.Fprintf(&b, "%d. %s\n", i+1, event.Summary)
		fmt.Fprintf(&b, "   ID: %s\n", event.ID)
		fmt.Fprintf(&b, "   Start: %s\n", formatEventTime(event.Start, event.AllDay))
		fmt.Fprintf(&b, "   End: %s\n", formatEventTime(event.End, event.AllDay))
		if event.Location != "" {
			fmt.Fprintf(&b, "   Location: %s\n", event.Location)
		}
		if event.MeetLink != "" {
			fmt.Fprintf(&b, "   Meet: %s\n", event.MeetLink)
		}
		if len(event.Attendees) > 0 {
			fmt.Fprintf(&b, "   Attendees: %d\n", len(event.Attendees))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatEventDetail renders one event in full.
func formatEventDetail(event *calendar.EventSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Event: %s\n", event.Summary)
	fmt.Fprintf(&b, "ID: %s\n", event.ID)
	fmt.Fprintf(&b, "Start: %s\n", formatEventTime(event.Start, event.AllDay))
	fmt.Fprintf(&b, "End: %s\n", formatEventTime(event.End, event.AllDay))
	if event.Status != "" {
		fmt.Fprintf(&b, "Status: %s\n", event.Status)
	}
	if event.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", event.Description)
	}
	if event.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", event.Location)
	}
	if event.Organizer != "" {
		fmt.Fprintf(&b, "Organizer: %s\n", event.Organizer)
	}
	if event.MeetLink != "" {
		fmt.Fprintf(&b, "Google Meet: %s\n", event.MeetLink)
	}
	if event.HTMLLink != "" {
		fmt.Fprintf(&b, "Link: %s\n", event.HTMLLink)
	}

	if len(event.Attendees) > 0 {
		fmt.Fprintf(&b, "\nAttendees (%d):\n", len(event.Attendees))
		for _, att := range event.Attendees {
			fmt.Fprintf(&b, "  - %s (%s)", att.Email, att.ResponseStatus)
			if att.DisplayName != "" {
				fmt.Fprintf(&b, " - %s", att.DisplayName)
			}
			if att.Optional {
				b.WriteString(" [optional]")
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func splitAttendees(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	attendees := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			attendees = append(attendees, trimmed)
		}
	}
	return attendees
}
