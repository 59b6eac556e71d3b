// Package rail provides CRUD functionality for the collected rail network
// records: stations, current train snapshots, train movements and station
// boards. Each entity carries its own write policy; see the Replace/Upsert/
// Append functions on the individual record types.
package rail

import "time"

// Route classifications derived from a service's origin and destination.
const (
	RouteIntercity      = "Intercity"
	RouteDublinCommuter = "Dublin_Commuter"
	RouteRegional       = "Regional"
	RouteUnknown        = "Unknown"
)

// Train type labels. TypeUnknown is a valid resolved value, the column is
// never null.
const (
	TypeDART       = "DART"
	TypeIntercity  = "Intercity"
	TypeFreight    = "Freight"
	TypeEnterprise = "Enterprise"
	TypeCommuter   = "Commuter"
	TypeSpecial    = "Special"
	TypeRegional   = "Regional"
	TypeUnknown    = "Unknown"
)

// Day types for a service date on the collection calendar.
const (
	DayWeekday  = "Weekday"
	DaySaturday = "Saturday"
	DaySunday   = "Sunday"
	DayHoliday  = "Holiday"
)

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02T15:04:05")
}
