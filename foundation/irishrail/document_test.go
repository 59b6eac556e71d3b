package irishrail

import (
	"reflect"
	"testing"
	"time"
)

func testStringPointer(s string) *string {
	return &s
}

func mustDate(t *testing.T, s string) time.Time {
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("unable to parse test date %s: %v", s, err)
	}
	return parsed
}

const trainPositionsXML = `<?xml version="1.0" encoding="utf-8"?>
<ArrayOfObjTrainPositions xmlns="http://api.irishrail.ie/realtime/">
  <objTrainPositions>
    <TrainCode>A105</TrainCode>
    <TrainStatus>R</TrainStatus>
    <PublicMessage>A105 08:00 - Belfast to Dublin (5 mins late)</PublicMessage>
  </objTrainPositions>
  <objTrainPositions>
    <TrainCode>D204</TrainCode>
    <TrainStatus>R</TrainStatus>
  </objTrainPositions>
  <objTrainPositions>
    <TrainCode>A105</TrainCode>
    <TrainStatus>R</TrainStatus>
  </objTrainPositions>
</ArrayOfObjTrainPositions>`

func Test_MapRecords(t *testing.T) {
	fieldMap := map[string]string{
		"train_code": "TrainCode",
		"status":     "TrainStatus",
		"message":    "PublicMessage",
	}

	tests := []struct {
		name      string
		xml       string
		recordTag string
		fieldMap  map[string]string
		want      []Record
	}{
		{
			name:      "records in document order, missing children are nil, duplicates kept",
			xml:       trainPositionsXML,
			recordTag: "objTrainPositions",
			fieldMap:  fieldMap,
			want: []Record{
				{
					"train_code": testStringPointer("A105"),
					"status":     testStringPointer("R"),
					"message":    testStringPointer("A105 08:00 - Belfast to Dublin (5 mins late)"),
				},
				{
					"train_code": testStringPointer("D204"),
					"status":     testStringPointer("R"),
					"message":    nil,
				},
				{
					"train_code": testStringPointer("A105"),
					"status":     testStringPointer("R"),
					"message":    nil,
				},
			},
		},
		{
			name:      "no matching record tags yields empty batch",
			xml:       trainPositionsXML,
			recordTag: "objStation",
			fieldMap:  fieldMap,
			want:      []Record{},
		},
		{
			name: "record with no mapped children yields all-nil record",
			xml: `<ArrayOfObjTrainPositions xmlns="http://api.irishrail.ie/realtime/">
				<objTrainPositions><Unrelated>x</Unrelated></objTrainPositions>
				</ArrayOfObjTrainPositions>`,
			recordTag: "objTrainPositions",
			fieldMap:  fieldMap,
			want: []Record{
				{"train_code": nil, "status": nil, "message": nil},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument([]byte(tt.xml))
			if err != nil {
				t.Errorf("Unable to parse test document %s", err)
				return
			}
			got := MapRecords(doc, tt.recordTag, tt.fieldMap)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MapRecords() got = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func Test_ParseDocument_malformed(t *testing.T) {
	_, err := ParseDocument([]byte("<unclosed"))
	if err == nil {
		t.Errorf("ParseDocument() produced no error for malformed xml, but we want one")
	}
}

func Test_TrainMovementsURL(t *testing.T) {
	got := TrainMovementsURL("A105", mustDate(t, "2024-01-09"))
	want := "http://api.irishrail.ie/realtime/realtime.asmx/getTrainMovementsXML?TrainDate=09+Jan+2024&TrainId=A105"
	if got != want {
		t.Errorf("TrainMovementsURL() got = %v, want %v", got, want)
	}
}

func Test_StationBoardURL(t *testing.T) {
	got := StationBoardURL("MHIDE", 90)
	want := "http://api.irishrail.ie/realtime/realtime.asmx/getStationDataByCodeXML_WithNumMins?NumMins=90&StationCode=MHIDE"
	if got != want {
		t.Errorf("StationBoardURL() got = %v, want %v", got, want)
	}
}
