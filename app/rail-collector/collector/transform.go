package collector

import (
	"time"

	"github.com/emeraldtransit/railwatch/business/data/rail"
	"github.com/emeraldtransit/railwatch/foundation/irishrail"
	"github.com/rickar/cal/v2"
)

// Transformers turn raw feed batches into persistable rows: the entity's
// cleaner sequence, then enrichment, then the collection timestamp. An empty
// batch passes straight through so loaders never see degenerate data.

func transformStations(rows []irishrail.Record, now time.Time) []*rail.Station {
	if len(rows) == 0 {
		return nil
	}
	rows = trimWhitespace(rows, "station_code", "name", "alias", "station_type")
	rows = coerceFloats(rows, "latitude", "longitude")
	rows = dropNullRows(rows, "station_code")
	rows = dropDuplicateRows(rows, "station_code")

	stations := make([]*rail.Station, 0, len(rows))
	for _, row := range rows {
		stations = append(stations, &rail.Station{
			StationCode: stringValue(row, "station_code"),
			Name:        stringValue(row, "name"),
			Alias:       textValue(row, "alias"),
			StationType: textValue(row, "station_type"),
			Latitude:    floatValue(row, "latitude"),
			Longitude:   floatValue(row, "longitude"),
			UpdatedAt:   now,
		})
	}
	return stations
}

func transformCurrentTrains(calendar *cal.BusinessCalendar, rows []irishrail.Record, now time.Time) []*rail.CurrentTrain {
	if len(rows) == 0 {
		return nil
	}
	rows = stripLinebreaks(rows, "public_message")
	rows = trimWhitespace(rows, "train_code", "direction", "status", "public_message", "raw_type")
	rows = coerceFloats(rows, "latitude", "longitude")
	rows = coerceDates(rows, "service_date")
	rows = dropNullRows(rows, "train_code", "service_date")
	rows = dropDuplicateRows(rows, "train_code", "service_date")

	trains := make([]*rail.CurrentTrain, 0, len(rows))
	for _, row := range rows {
		code := stringValue(row, "train_code")
		message := stringValue(row, "public_message")
		serviceDate, _ := dateValue(row, "service_date")

		trains = append(trains, &rail.CurrentTrain{
			TrainCode:     code,
			ServiceDate:   serviceDate,
			Direction:     textValue(row, "direction"),
			Status:        textValue(row, "status"),
			PublicMessage: textValue(row, "public_message"),
			Latitude:      floatValue(row, "latitude"),
			Longitude:     floatValue(row, "longitude"),
			RawType:       textValue(row, "raw_type"),

			DelayMinutes:    delayMinutes(message),
			CurrentLocation: currentLocation(message),
			TrainCategory:   trainCategory(code),
			// The positions document has no endpoints to classify on.
			RouteClass:  classifyRoute(nil, nil),
			TrainType:   resolveTrainType(code, nil, nil, message),
			DayType:     dayType(calendar, serviceDate),
			CollectedAt: now,
		})
	}
	return trains
}

func transformTrainMovements(calendar *cal.BusinessCalendar, typeCache *trainTypeCache, rows []irishrail.Record, now time.Time) []*rail.TrainMovement {
	if len(rows) == 0 {
		return nil
	}
	rows = trimWhitespace(rows, "train_code", "location_code", "location_name",
		"location_type", "origin", "destination", "stop_type")
	rows = coerceDates(rows, "service_date")
	rows = coerceInts(rows, "location_order")
	rows = coerceClockTimes(rows, "scheduled_arrival", "scheduled_departure",
		"actual_arrival", "actual_departure")
	rows = dropNullRows(rows, "train_code", "service_date", "location_order")
	rows = dropDuplicateRows(rows, "train_code", "service_date", "location_order")

	movements := make([]*rail.TrainMovement, 0, len(rows))
	for _, row := range rows {
		code := stringValue(row, "train_code")
		serviceDate, _ := dateValue(row, "service_date")
		locationOrder, _ := intValue(row, "location_order")
		origin := textValue(row, "origin")
		destination := textValue(row, "destination")

		fetchedAt := now
		if stamp := row["fetched_at"]; stamp != nil {
			if parsed, err := time.ParseInLocation(stampLayout, *stamp, time.Local); err == nil {
				fetchedAt = parsed
			}
		}

		movements = append(movements, &rail.TrainMovement{
			TrainCode:          code,
			ServiceDate:        serviceDate,
			LocationOrder:      locationOrder,
			LocationCode:       textValue(row, "location_code"),
			LocationName:       textValue(row, "location_name"),
			LocationType:       textValue(row, "location_type"),
			Origin:             origin,
			Destination:        destination,
			ScheduledArrival:   textValue(row, "scheduled_arrival"),
			ScheduledDeparture: textValue(row, "scheduled_departure"),
			ActualArrival:      textValue(row, "actual_arrival"),
			ActualDeparture:    textValue(row, "actual_departure"),
			StopType:           textValue(row, "stop_type"),
			RawType:            typeCache.get(code),

			TrainCategory: trainCategory(code),
			RouteClass:    classifyRoute(origin, destination),
			TrainType:     resolveTrainType(code, origin, destination, ""),
			DayType:       dayType(calendar, serviceDate),

			FetchedAt:   fetchedAt,
			CollectedAt: now,
		})
	}
	return movements
}

func transformStationBoard(rows []irishrail.Record, now time.Time) []*rail.StationBoardEntry {
	if len(rows) == 0 {
		return nil
	}
	rows = trimWhitespace(rows, "station_code", "station_name", "train_code",
		"origin", "destination", "status", "last_location", "direction",
		"raw_type", "location_type", "query_time")
	rows = coerceDates(rows, "service_date")
	rows = coerceFloats(rows, "due_in_minutes", "late_minutes")
	rows = coerceClockTimes(rows, "origin_time", "destination_time",
		"exp_arrival", "exp_departure", "sch_arrival", "sch_departure")
	rows = dropNullRows(rows, "station_code", "train_code", "service_date")

	entries := make([]*rail.StationBoardEntry, 0, len(rows))
	for _, row := range rows {
		serviceDate, _ := dateValue(row, "service_date")
		entries = append(entries, &rail.StationBoardEntry{
			StationCode:  stringValue(row, "station_code"),
			StationName:  textValue(row, "station_name"),
			TrainCode:    stringValue(row, "train_code"),
			ServiceDate:  serviceDate,
			Origin:       textValue(row, "origin"),
			Destination:  textValue(row, "destination"),
			OriginTime:   textValue(row, "origin_time"),
			DestTime:     textValue(row, "destination_time"),
			Status:       textValue(row, "status"),
			LastLocation: textValue(row, "last_location"),
			DueInMinutes: floatValue(row, "due_in_minutes"),
			LateMinutes:  floatValue(row, "late_minutes"),
			ExpArrival:   textValue(row, "exp_arrival"),
			ExpDeparture: textValue(row, "exp_departure"),
			SchArrival:   textValue(row, "sch_arrival"),
			SchDeparture: textValue(row, "sch_departure"),
			Direction:    textValue(row, "direction"),
			RawType:      textValue(row, "raw_type"),
			LocationType: textValue(row, "location_type"),
			QueryTime:    textValue(row, "query_time"),
			CollectedAt:  now,
		})
	}
	return entries
}
