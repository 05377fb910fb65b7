package planner

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// Duration renders the elapsed wall-clock time between two HH:MM clock
// readings (seconds, if present, are ignored). An end before the start means
// the trip ran past midnight; identical readings mean a full 24-hour trip,
// not an instantaneous one. Unparseable input yields Unavailable.
func Duration(startClock, endClock string) string {
	start, ok := clockMinutes(startClock)
	if !ok {
		return Unavailable
	}
	end, ok := clockMinutes(endClock)
	if !ok {
		return Unavailable
	}

	minutes := (end - start + minutesPerDay) % minutesPerDay
	if minutes == 0 {
		minutes = minutesPerDay
	}

	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours == 0:
		return pluralize(mins, "minute")
	case mins == 0:
		return pluralize(hours, "hour")
	default:
		return pluralize(hours, "hour") + " " + pluralize(mins, "minute")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func clockMinutes(clock string) (int, bool) {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 {
		return 0, false
	}
	min, err := strconv.Atoi(parts[1])
	if err != nil || min < 0 || min > 59 {
		return 0, false
	}
	return hour*60 + min, true
}
