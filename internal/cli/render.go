package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ptvplanner/internal/planner"
)

// renderResults prints the planned departures as an aligned table.
func renderResults(w io.Writer, results []planner.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No departures inside the lookahead window.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUTE\tHEADSIGN\tSERVICE\tDEPARTS\tARRIVES\tLIVE ARRIVAL\tVEHICLE\tTRAVEL TIME")
	for _, r := range results {
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.RouteShortName,
			r.RouteLongName,
			r.Headsign,
			r.ServiceID,
			r.ScheduledDeparture,
			r.ScheduledArrival,
			r.LiveArrival,
			r.LivePosition,
			r.TravelTime,
		)
	}
	tw.Flush()
}
