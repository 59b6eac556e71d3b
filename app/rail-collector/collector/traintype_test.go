package collector

import (
	"testing"

	"github.com/emeraldtransit/railwatch/business/data/rail"
)

func Test_typeFromCode(t *testing.T) {
	tests := []struct {
		name      string
		trainCode string
		want      string
	}{
		{"dart", "D204", rail.TypeDART},
		{"intercity", "A105", rail.TypeIntercity},
		{"freight", "P602", rail.TypeFreight},
		{"ambiguous e code", "E108", typeECode},
		{"commuter", "C331", rail.TypeCommuter},
		{"special m", "M401", rail.TypeSpecial},
		{"special l", "L500", rail.TypeSpecial},
		{"lower case code", "d204", rail.TypeDART},
		{"unrecognized prefix", "X999", rail.TypeUnknown},
		{"empty", "", rail.TypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := typeFromCode(tt.trainCode); got != tt.want {
				t.Errorf("typeFromCode() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_typeFromRoute(t *testing.T) {
	tests := []struct {
		name        string
		origin      *string
		destination *string
		want        string
	}{
		{"enterprise belfast to dublin", testStringPointer("Belfast Central"), testStringPointer("Dublin Connolly"), rail.TypeEnterprise},
		{"enterprise dublin to belfast", testStringPointer("Dublin Connolly"), testStringPointer("Belfast Central"), rail.TypeEnterprise},
		{"dart corridor both ends", testStringPointer("Howth"), testStringPointer("Bray"), rail.TypeDART},
		{"intercity major city to terminal", testStringPointer("Cork"), testStringPointer("Heuston"), rail.TypeIntercity},
		{"commuter one terminal endpoint", testStringPointer("Heuston"), testStringPointer("Newbridge"), rail.TypeCommuter},
		{"regional", testStringPointer("Limerick"), testStringPointer("Ballybrophy"), rail.TypeRegional},
		{"missing endpoint", nil, testStringPointer("Cork"), rail.TypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := typeFromRoute(tt.origin, tt.destination); got != tt.want {
				t.Errorf("typeFromRoute() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_typeFromMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"dart mention", "Dart service to Howth", rail.TypeDART},
		{"enterprise mention", "ENTERPRISE 08:00 Belfast", rail.TypeEnterprise},
		{"intercity mention", "InterCity 09:25 to Cork", rail.TypeIntercity},
		{"no mention", "08:10 Maynooth to Connolly", rail.TypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := typeFromMessage(tt.message); got != tt.want {
				t.Errorf("typeFromMessage() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_resolveTrainType(t *testing.T) {
	tests := []struct {
		name        string
		trainCode   string
		origin      *string
		destination *string
		message     string
		want        string
	}{
		{
			// route signal overrides the code-derived Intercity
			name:        "route beats code",
			trainCode:   "A101",
			origin:      testStringPointer("Belfast Central"),
			destination: testStringPointer("Dublin Connolly"),
			want:        rail.TypeEnterprise,
		},
		{
			name:      "code fills in when route unknown",
			trainCode: "D204",
			want:      rail.TypeDART,
		},
		{
			// the ambiguous E-code marker must not escape
			name:      "e code without route resolves unknown",
			trainCode: "E108",
			want:      rail.TypeUnknown,
		},
		{
			name:      "message fills in when route and code give nothing",
			trainCode: "E108",
			message:   "Enterprise 08:00 Belfast to Dublin",
			want:      rail.TypeEnterprise,
		},
		{
			name: "nothing known",
			want: rail.TypeUnknown,
		},
		{
			// Regional from the route classifier is a real answer, not a fallback trigger
			name:        "regional route wins over code",
			trainCode:   "A999",
			origin:      testStringPointer("Limerick"),
			destination: testStringPointer("Ballybrophy"),
			want:        rail.TypeRegional,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveTrainType(tt.trainCode, tt.origin, tt.destination, tt.message); got != tt.want {
				t.Errorf("resolveTrainType() got = %v, want %v", got, tt.want)
			}
		})
	}
}
