package rail

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// StationBoardEntry is one arrival/departure line from a station's live
// board, fetched on demand for a single station with a lookahead window.
// Entries are appended as fetched; each collection is a point-in-time
// observation, not a replacement of earlier ones.
type StationBoardEntry struct {
	StationCode  string    `db:"station_code" json:"station_code"`
	StationName  *string   `db:"station_name" json:"station_name"`
	TrainCode    string    `db:"train_code" json:"train_code"`
	ServiceDate  time.Time `db:"service_date" json:"service_date"`
	Origin       *string   `db:"origin" json:"origin"`
	Destination  *string   `db:"destination" json:"destination"`
	OriginTime   *string   `db:"origin_time" json:"origin_time"`
	DestTime     *string   `db:"destination_time" json:"destination_time"`
	Status       *string   `db:"status" json:"status"`
	LastLocation *string   `db:"last_location" json:"last_location"`
	// DueInMinutes and LateMinutes are the board's own countdown and delay
	// figures at query time.
	DueInMinutes *float64  `db:"due_in_minutes" json:"due_in_minutes"`
	LateMinutes  *float64  `db:"late_minutes" json:"late_minutes"`
	ExpArrival   *string   `db:"exp_arrival" json:"exp_arrival"`
	ExpDeparture *string   `db:"exp_departure" json:"exp_departure"`
	SchArrival   *string   `db:"sch_arrival" json:"sch_arrival"`
	SchDeparture *string   `db:"sch_departure" json:"sch_departure"`
	Direction    *string   `db:"direction" json:"direction"`
	RawType      *string   `db:"raw_type" json:"raw_type"`
	LocationType *string   `db:"location_type" json:"location_type"`
	QueryTime    *string   `db:"query_time" json:"query_time"`
	CollectedAt  time.Time `db:"collected_at" json:"collected_at"`
}

func (s StationBoardEntry) String() string {
	return fmt.Sprintf("StationBoardEntry station:%s, train:%s, collected:%s",
		s.StationCode, s.TrainCode, formatTime(&s.CollectedAt))
}

// AppendStationBoard appends entries to the station_board table. An empty
// slice is a no-op. Returns the number of rows written.
func AppendStationBoard(db *sqlx.DB, entries []*StationBoardEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	statementString := "insert into station_board ( " +
		"station_code, " +
		"station_name, " +
		"train_code, " +
		"service_date, " +
		"origin, " +
		"destination, " +
		"origin_time, " +
		"destination_time, " +
		"status, " +
		"last_location, " +
		"due_in_minutes, " +
		"late_minutes, " +
		"exp_arrival, " +
		"exp_departure, " +
		"sch_arrival, " +
		"sch_departure, " +
		"direction, " +
		"raw_type, " +
		"location_type, " +
		"query_time, " +
		"collected_at) " +
		"values (" +
		":station_code, " +
		":station_name, " +
		":train_code, " +
		":service_date, " +
		":origin, " +
		":destination, " +
		":origin_time, " +
		":destination_time, " +
		":status, " +
		":last_location, " +
		":due_in_minutes, " +
		":late_minutes, " +
		":exp_arrival, " +
		":exp_departure, " +
		":sch_arrival, " +
		":sch_departure, " +
		":direction, " +
		":raw_type, " +
		":location_type, " +
		":query_time, " +
		":collected_at)"
	statementString = db.Rebind(statementString)
	_, err := db.NamedExec(statementString, entries)
	if err != nil {
		return 0, fmt.Errorf("inserting into station_board table: %w", err)
	}
	return int64(len(entries)), nil
}
