package collector

import (
	"testing"
	"time"

	"github.com/emeraldtransit/railwatch/business/data/rail"
)

func Test_delayMinutes(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    int
	}{
		{"late train", "A105 08:00 - Belfast to Dublin (5 mins late)", 5},
		{"early train", "(-3 mins late)", -3},
		{"explicit plus sign", "(+7 mins late)", 7},
		{"no delay annotation assumed on time", "No delay info", 0},
		{"empty message", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := delayMinutes(tt.message); got != tt.want {
				t.Errorf("delayMinutes() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_currentLocation(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    *string
	}{
		{"departed wins", "Departed Dundalk next stop Newry", testStringPointer("Dundalk")},
		{"departed beats arrived", "Arrived Connolly Departed Dundalk next stop Newry", testStringPointer("Dundalk")},
		{"arrived with next stop", "Arrived Malahide next stop Portmarnock", testStringPointer("Malahide")},
		{"arrived at end of message", "Arrived Connolly", testStringPointer("Connolly")},
		{"no location", "TERMINATED Maynooth at 10:12", nil},
		{"empty message", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := currentLocation(tt.message)
			if (got == nil) != (tt.want == nil) {
				t.Errorf("currentLocation() got = %v, want %v", got, tt.want)
				return
			}
			if got != nil && *got != *tt.want {
				t.Errorf("currentLocation() got = %q, want %q", *got, *tt.want)
			}
		})
	}
}

func Test_trainCategory(t *testing.T) {
	tests := []struct {
		name      string
		trainCode string
		want      string
	}{
		{"intercity code", "A105", "A"},
		{"dart code", "D204", "D"},
		{"empty code", "", "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trainCategory(tt.trainCode); got != tt.want {
				t.Errorf("trainCategory() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_classifyRoute(t *testing.T) {
	tests := []struct {
		name        string
		origin      *string
		destination *string
		want        string
	}{
		{"dublin to major city", testStringPointer("Dublin Connolly"), testStringPointer("Cork"), rail.RouteIntercity},
		{"major city to dublin", testStringPointer("Belfast Central"), testStringPointer("Dublin Connolly"), rail.RouteIntercity},
		{"dublin commuter", testStringPointer("Dublin Connolly"), testStringPointer("Malahide"), rail.RouteDublinCommuter},
		{"heuston keyword", testStringPointer("Heuston"), testStringPointer("Newbridge"), rail.RouteDublinCommuter},
		{"regional", testStringPointer("Cork"), testStringPointer("Tralee"), rail.RouteRegional},
		{"missing origin", nil, testStringPointer("Cork"), rail.RouteUnknown},
		{"missing destination", testStringPointer("Cork"), nil, rail.RouteUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyRoute(tt.origin, tt.destination); got != tt.want {
				t.Errorf("classifyRoute() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_dayType(t *testing.T) {
	calendar := newServiceCalendar()
	tests := []struct {
		name string
		date string
		want string
	}{
		{"plain weekday", "2024-01-09", rail.DayWeekday},
		{"saturday", "2024-01-13", rail.DaySaturday},
		{"sunday", "2024-01-14", rail.DaySunday},
		{"christmas day", "2024-12-25", rail.DayHoliday},
		{"st stephens day", "2024-12-26", rail.DayHoliday},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := time.Parse("2006-01-02", tt.date)
			if err != nil {
				t.Fatalf("unable to parse test date %s: %v", tt.date, err)
			}
			if got := dayType(calendar, date); got != tt.want {
				t.Errorf("dayType(%s) got = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}
