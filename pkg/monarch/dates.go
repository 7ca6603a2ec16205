package monarch

import "time"

// dateLayout is the service's wire format for calendar dates.
const dateLayout = "2006-01-02"

func monthStart(t time.Time) string {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).Format(dateLayout)
}

func monthEnd(t time.Time) string {
	// day zero of the next month normalizes to the last day of this one
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Format(dateLayout)
}
