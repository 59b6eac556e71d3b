package collector

import (
	"reflect"
	"testing"

	"github.com/emeraldtransit/railwatch/foundation/irishrail"
)

func testStringPointer(s string) *string {
	return &s
}

func testRecord(pairs map[string]*string) irishrail.Record {
	record := make(irishrail.Record, len(pairs))
	for k, v := range pairs {
		record[k] = v
	}
	return record
}

func Test_trimWhitespace_idempotent(t *testing.T) {
	rows := []irishrail.Record{
		testRecord(map[string]*string{"name": testStringPointer("  Malahide \n"), "other": testStringPointer(" x ")}),
		testRecord(map[string]*string{"name": nil, "other": nil}),
	}
	rows = trimWhitespace(rows, "name")
	if got := *rows[0]["name"]; got != "Malahide" {
		t.Errorf("trimWhitespace() got = %q, want %q", got, "Malahide")
	}
	// untouched column keeps its whitespace
	if got := *rows[0]["other"]; got != " x " {
		t.Errorf("trimWhitespace() touched unlisted column, got = %q", got)
	}
	// trimming again changes nothing
	again := trimWhitespace(rows, "name")
	if got := *again[0]["name"]; got != "Malahide" {
		t.Errorf("trimWhitespace() not idempotent, got = %q", got)
	}
	if again[1]["name"] != nil {
		t.Errorf("trimWhitespace() invented a value for a nil cell")
	}
}

func Test_stripLinebreaks(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"embedded newline", "Departed Dundalk\nnext stop Newry", "Departed Dundalk next stop Newry"},
		{"escaped newline from feed", "A105\\nDublin", "A105 Dublin"},
		{"crlf and trailing break", "line one\r\nline two\n", "line one line two"},
		{"already clean", "no breaks here", "no breaks here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []irishrail.Record{testRecord(map[string]*string{"message": testStringPointer(tt.value)})}
			rows = stripLinebreaks(rows, "message")
			if got := *rows[0]["message"]; got != tt.want {
				t.Errorf("stripLinebreaks() got = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_coerceFloats(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  *string
	}{
		{"valid float", testStringPointer("53.4509"), testStringPointer("53.4509")},
		{"valid with whitespace", testStringPointer(" -6.1506 "), testStringPointer("-6.1506")},
		{"unparsable fails soft to nil", testStringPointer("not a number"), nil},
		{"empty string fails soft to nil", testStringPointer(""), nil},
		{"nil stays nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []irishrail.Record{testRecord(map[string]*string{"latitude": tt.value})}
			rows = coerceFloats(rows, "latitude")
			if !reflect.DeepEqual(rows[0]["latitude"], tt.want) {
				t.Errorf("coerceFloats() got = %v, want %v", rows[0]["latitude"], tt.want)
			}
		})
	}
}

func Test_coerceDates(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  *string
	}{
		{"feed form", testStringPointer("09 Jan 2024"), testStringPointer("2024-01-09")},
		{"single digit day", testStringPointer("9 Jan 2024"), testStringPointer("2024-01-09")},
		{"already normalized", testStringPointer("2024-01-09"), testStringPointer("2024-01-09")},
		{"unparsable fails soft to nil", testStringPointer("sometime soon"), nil},
		{"nil stays nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []irishrail.Record{testRecord(map[string]*string{"service_date": tt.value})}
			rows = coerceDates(rows, "service_date")
			if !reflect.DeepEqual(rows[0]["service_date"], tt.want) {
				t.Errorf("coerceDates() got = %v, want %v", rows[0]["service_date"], tt.want)
			}
		})
	}
}

func Test_coerceClockTimes(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  *string
	}{
		{"full clock", testStringPointer("08:15:30"), testStringPointer("08:15:30")},
		{"short clock normalized", testStringPointer("08:15"), testStringPointer("08:15:00")},
		{"unparsable fails soft to nil", testStringPointer("late"), nil},
		{"nil stays nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []irishrail.Record{testRecord(map[string]*string{"scheduled_arrival": tt.value})}
			rows = coerceClockTimes(rows, "scheduled_arrival")
			if !reflect.DeepEqual(rows[0]["scheduled_arrival"], tt.want) {
				t.Errorf("coerceClockTimes() got = %v, want %v", rows[0]["scheduled_arrival"], tt.want)
			}
		})
	}
}

func Test_dropNullRows(t *testing.T) {
	rows := []irishrail.Record{
		testRecord(map[string]*string{"train_code": testStringPointer("A105"), "service_date": testStringPointer("2024-01-09")}),
		testRecord(map[string]*string{"train_code": nil, "service_date": testStringPointer("2024-01-09")}),
		testRecord(map[string]*string{"train_code": testStringPointer("D204"), "service_date": nil}),
	}
	got := dropNullRows(rows, "train_code", "service_date")
	if len(got) != 1 {
		t.Errorf("dropNullRows() kept %d rows, want 1", len(got))
		return
	}
	if *got[0]["train_code"] != "A105" {
		t.Errorf("dropNullRows() kept wrong row: %+v", got[0])
	}
}

func Test_dropDuplicateRows(t *testing.T) {
	rows := []irishrail.Record{
		testRecord(map[string]*string{"train_code": testStringPointer("A105"), "location_order": testStringPointer("1")}),
		testRecord(map[string]*string{"train_code": testStringPointer("D204"), "location_order": testStringPointer("1")}),
		testRecord(map[string]*string{"train_code": testStringPointer("A105"), "location_order": testStringPointer("1")}),
		testRecord(map[string]*string{"train_code": testStringPointer("A105"), "location_order": testStringPointer("2")}),
	}
	got := dropDuplicateRows(rows, "train_code", "location_order")
	if len(got) != 3 {
		t.Errorf("dropDuplicateRows() kept %d rows, want 3", len(got))
		return
	}
	// first occurrence wins and relative order is preserved
	wantOrder := []string{"A105/1", "D204/1", "A105/2"}
	for i, row := range got {
		key := *row["train_code"] + "/" + *row["location_order"]
		if key != wantOrder[i] {
			t.Errorf("dropDuplicateRows() row %d = %s, want %s", i, key, wantOrder[i])
		}
	}
}
