package planner

import (
	"strings"
	"time"

	"github.com/ptvplanner/pkg/gtfs"
	"github.com/ptvplanner/pkg/table"
)

const (
	exceptionAdded   = "1"
	exceptionRemoved = "2"
)

// ServiceCalendar decides whether a service operates on a calendar date.
// A calendar_dates exception for the exact date takes precedence over the
// weekly pattern in either direction.
type ServiceCalendar struct {
	calendar   *table.Table
	exceptions *table.Table
}

func NewServiceCalendar(tables *gtfs.Tables) *ServiceCalendar {
	return &ServiceCalendar{
		calendar:   tables.Calendar,
		exceptions: tables.CalendarDates,
	}
}

func (c *ServiceCalendar) IsRunning(serviceID string, date time.Time) bool {
	dateKey := date.Format("20060102")

	exception, ok := c.exceptions.
		Where("service_id", serviceID).
		Where("date", dateKey).
		First()
	if ok {
		return exception["exception_type"] == exceptionAdded
	}

	row, ok := c.calendar.Where("service_id", serviceID).First()
	if !ok {
		return false
	}

	// start_date and end_date are fixed-width yyyymmdd keys, so string
	// comparison is calendar-date comparison.
	if dateKey < row["start_date"] || dateKey > row["end_date"] {
		return false
	}

	weekday := strings.ToLower(date.Weekday().String())
	return row[weekday] == "1"
}
