package timespan

import (
	"fmt"
	"time"
)

// NotAvailable is the literal marker reported when a duration cannot be
// computed: absent end time, unparsable input, or a negative span.
const NotAvailable = "not available"

const (
	timeLayout     = "15:04:05"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Completed computes the elapsed whole minutes between two same-day
// wall-clock times ("HH:MM:SS") and formats them as "{h}h {m}m".
// An end time textually earlier than the start is treated as incomplete data,
// not a midnight rollover, and reports NotAvailable.
func Completed(start, end string) string {
	if end == "" {
		return NotAvailable
	}
	startTime, err := time.Parse(timeLayout, start)
	if err != nil {
		return NotAvailable
	}
	endTime, err := time.Parse(timeLayout, end)
	if err != nil {
		return NotAvailable
	}
	diff := endTime.Sub(startTime)
	if diff < 0 {
		return NotAvailable
	}
	return formatMinutes(int(diff.Minutes()))
}

// Elapsed computes the formatted duration from an activity's date and start
// time ("YYYY-MM-DD", "HH:MM:SS") up to now. It is a pure function of its
// inputs; the once-per-second re-invocation cadence of live counters is a
// display concern handled by Ticker.
func Elapsed(date, start string, now time.Time) string {
	startAt, err := time.ParseInLocation(dateTimeLayout, date+" "+start, now.Location())
	if err != nil {
		return NotAvailable
	}
	diff := now.Sub(startAt)
	if diff < 0 {
		return NotAvailable
	}
	return formatMinutes(int(diff.Minutes()))
}

func formatMinutes(mins int) string {
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}
