package collector

// Record tags used by the realtime feed, one per entity document.
const (
	stationRecordTag       = "objStation"
	currentTrainRecordTag  = "objTrainPositions"
	trainMovementRecordTag = "objTrainMovements"
	stationBoardRecordTag  = "objStationData"
)

// The field maps are the hand-maintained projection from feed child tags to
// pipeline column names. An upstream schema change is handled by editing
// these tables, not the pipeline code.

var stationFields = map[string]string{
	"station_code": "StationCode",
	"name":         "StationDesc",
	"alias":        "StationAlias",
	"station_type": "StationType",
	"latitude":     "StationLatitude",
	"longitude":    "StationLongitude",
}

var currentTrainFields = map[string]string{
	"train_code":     "TrainCode",
	"service_date":   "TrainDate",
	"direction":      "Direction",
	"status":         "TrainStatus",
	"public_message": "PublicMessage",
	"latitude":       "TrainLatitude",
	"longitude":      "TrainLongitude",
	"raw_type":       "TrainType",
}

var trainMovementFields = map[string]string{
	"train_code":          "TrainCode",
	"service_date":        "TrainDate",
	"location_code":       "LocationCode",
	"location_name":       "LocationFullName",
	"location_order":      "LocationOrder",
	"location_type":       "LocationType",
	"origin":              "TrainOrigin",
	"destination":         "TrainDestination",
	"scheduled_arrival":   "ScheduledArrival",
	"scheduled_departure": "ScheduledDeparture",
	"actual_arrival":      "Arrival",
	"actual_departure":    "Departure",
	"stop_type":           "StopType",
}

var stationBoardFields = map[string]string{
	"station_code":     "Stationcode",
	"station_name":     "Stationfullname",
	"train_code":       "Traincode",
	"service_date":     "Traindate",
	"origin":           "Origin",
	"destination":      "Destination",
	"origin_time":      "Origintime",
	"destination_time": "Destinationtime",
	"status":           "Status",
	"last_location":    "Lastlocation",
	"due_in_minutes":   "Duein",
	"late_minutes":     "Late",
	"exp_arrival":      "Exparrival",
	"exp_departure":    "Expdepart",
	"sch_arrival":      "Scharrival",
	"sch_departure":    "Schdepart",
	"direction":        "Direction",
	"raw_type":         "Traintype",
	"location_type":    "Locationtype",
	"query_time":       "Querytime",
}
