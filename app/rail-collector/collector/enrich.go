package collector

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/emeraldtransit/railwatch/business/data/rail"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/ie"
)

// Enrichment heuristics. The feed carries no authoritative delay, position or
// classification fields, so everything here is derived from free text by
// upper-cased substring matching. False positives are possible and accepted.

var delayPattern = regexp.MustCompile(`\(([+-]?\d+) mins late\)`)

// delayMinutes extracts the signed delay from a public message such as
// "A105 08:00 - Belfast to Dublin (5 mins late)". A message without a delay
// annotation is treated as on time and reported as 0, the feed does not
// distinguish "on time" from "no data".
func delayMinutes(message string) int {
	match := delayPattern.FindStringSubmatch(message)
	if match == nil {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimPrefix(match[1], "+"))
	if err != nil {
		return 0
	}
	return minutes
}

var (
	departedPattern = regexp.MustCompile(`Departed (.+?) next stop`)
	arrivedPattern  = regexp.MustCompile(`Arrived (.+?)(?: next stop|$)`)
)

// currentLocation extracts the train's last reported location from a public
// message. "Departed X next stop Y" wins over "Arrived X"; nil when the
// message names no location.
func currentLocation(message string) *string {
	if match := departedPattern.FindStringSubmatch(message); match != nil {
		location := strings.TrimSpace(match[1])
		return &location
	}
	if match := arrivedPattern.FindStringSubmatch(message); match != nil {
		location := strings.TrimSpace(match[1])
		return &location
	}
	return nil
}

// trainCategory returns the coarse single-letter tag from a train code,
// "N/A" when the code is missing.
func trainCategory(trainCode string) string {
	if trainCode == "" {
		return "N/A"
	}
	return trainCode[:1]
}

var (
	dublinAreaKeywords = []string{"DUBLIN", "CONNOLLY", "HEUSTON", "PEARSE"}
	majorCityKeywords  = []string{"CORK", "GALWAY", "LIMERICK", "WATERFORD", "BELFAST", "SLIGO"}
)

// classifyRoute buckets a service by its endpoints: any Dublin-area keyword
// on either end makes it Dublin traffic, which is Intercity when a major
// city is also involved and Dublin_Commuter otherwise. No Dublin involvement
// means Regional. Missing endpoints mean Unknown.
func classifyRoute(origin, destination *string) string {
	if origin == nil || destination == nil {
		return rail.RouteUnknown
	}
	originUpper := strings.ToUpper(*origin)
	destUpper := strings.ToUpper(*destination)

	if containsAny(originUpper, dublinAreaKeywords) || containsAny(destUpper, dublinAreaKeywords) {
		if containsAny(originUpper, majorCityKeywords) || containsAny(destUpper, majorCityKeywords) {
			return rail.RouteIntercity
		}
		return rail.RouteDublinCommuter
	}
	return rail.RouteRegional
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// newServiceCalendar builds the Irish public holiday calendar used to label
// service dates.
func newServiceCalendar() *cal.BusinessCalendar {
	calendar := cal.NewBusinessCalendar()
	calendar.AddHoliday(ie.Holidays...)
	return calendar
}

// dayType labels a service date as Holiday, Saturday, Sunday or Weekday.
// Holidays win over the weekend labels.
func dayType(calendar *cal.BusinessCalendar, serviceDate time.Time) string {
	if _, observed, _ := calendar.IsHoliday(serviceDate); observed {
		return rail.DayHoliday
	}
	switch serviceDate.Weekday() {
	case time.Saturday:
		return rail.DaySaturday
	case time.Sunday:
		return rail.DaySunday
	default:
		return rail.DayWeekday
	}
}
