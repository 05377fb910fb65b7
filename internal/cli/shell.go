// Package cli drives the interactive query loop: prompting for a route,
// a stop pair and a target time, then rendering the planned departures.
// All domain computation lives in the planner package.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ptvplanner/internal/common/logger"
	"github.com/ptvplanner/internal/gtfs-realtime/feed"
	"github.com/ptvplanner/internal/planner"
)

type Shell struct {
	session *planner.Session
	feeds   *feed.Client
	loc     *time.Location
	in      *bufio.Scanner
	out     io.Writer
	logger  logger.Logger
}

func NewShell(session *planner.Session, feeds *feed.Client, loc *time.Location, log logger.Logger) *Shell {
	return &Shell{
		session: session,
		feeds:   feeds,
		loc:     loc,
		in:      bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
		logger:  log,
	}
}

// Run serves queries sequentially until the user enters a blank route or
// input ends.
func (s *Shell) Run(ctx context.Context) error {
	for {
		route, ok := s.prompt("Route (blank to quit): ")
		if !ok || route == "" {
			return nil
		}

		stops := s.session.StopsForRoute(route)
		if stops.Len() == 0 {
			fmt.Fprintf(s.out, "No stops found for route %q.\n", route)
			continue
		}

		for i, row := range stops.Rows() {
			fmt.Fprintf(s.out, "%3d. %s\n", i+1, row["stop_name"])
		}

		origin, ok := s.promptIndex("Origin stop number: ", stops.Len())
		if !ok {
			return nil
		}
		dest, ok := s.promptIndex("Destination stop number: ", stops.Len())
		if !ok {
			return nil
		}
		now, ok := s.promptDateTime()
		if !ok {
			return nil
		}

		tripUpdates := s.feeds.TripUpdates(ctx)
		positions := s.feeds.VehiclePositions(ctx)
		s.logger.Debug("Fetched realtime feeds",
			"trip_updates", len(tripUpdates),
			"vehicle_positions", len(positions),
		)

		originID := stops.Rows()[origin-1]["stop_id"]
		destID := stops.Rows()[dest-1]["stop_id"]
		results := s.session.Plan(route, originID, destID, now, tripUpdates, positions)

		renderResults(s.out, results)
	}
}

func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// promptIndex re-prompts until it gets a 1-based index within range.
func (s *Shell) promptIndex(label string, max int) (int, bool) {
	for {
		text, ok := s.prompt(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(text)
		if err == nil && n >= 1 && n <= max {
			return n, true
		}
		fmt.Fprintf(s.out, "Enter a number between 1 and %d.\n", max)
	}
}

// promptDateTime asks for a target date and time, defaulting to now.
func (s *Shell) promptDateTime() (time.Time, bool) {
	now := time.Now().In(s.loc)

	var day time.Time
	for {
		text, ok := s.prompt(fmt.Sprintf("Date [%s]: ", now.Format("2006-01-02")))
		if !ok {
			return time.Time{}, false
		}
		if text == "" {
			day = now
			break
		}
		parsed, err := time.ParseInLocation("2006-01-02", text, s.loc)
		if err == nil {
			day = parsed
			break
		}
		fmt.Fprintln(s.out, "Enter the date as YYYY-MM-DD.")
	}

	for {
		text, ok := s.prompt(fmt.Sprintf("Time [%s]: ", now.Format("15:04")))
		if !ok {
			return time.Time{}, false
		}
		if text == "" {
			return time.Date(day.Year(), day.Month(), day.Day(),
				now.Hour(), now.Minute(), 0, 0, s.loc), true
		}
		parsed, err := time.ParseInLocation("15:04", text, s.loc)
		if err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(),
				parsed.Hour(), parsed.Minute(), 0, 0, s.loc), true
		}
		fmt.Fprintln(s.out, "Enter the time as HH:MM.")
	}
}
