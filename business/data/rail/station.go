package rail

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Station is reference data describing one station on the network. Keyed by
// StationCode, refreshed wholesale on every collection run since stations
// rarely change.
type Station struct {
	StationCode string    `db:"station_code" json:"station_code"`
	Name        string    `db:"name" json:"name"`
	Alias       *string   `db:"alias" json:"alias"`
	StationType *string   `db:"station_type" json:"station_type"`
	Latitude    *float64  `db:"latitude" json:"latitude"`
	Longitude   *float64  `db:"longitude" json:"longitude"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

func (s Station) String() string {
	return fmt.Sprintf("Station code:%s, name:%s, updated:%s", s.StationCode, s.Name, formatTime(&s.UpdatedAt))
}

// ReplaceStations replaces the entire contents of the station table with
// stations inside one transaction. An empty slice is a no-op and touches
// nothing. Returns the number of rows written.
func ReplaceStations(db *sqlx.DB, stations []*Station) (int64, error) {
	if len(stations) == 0 {
		return 0, nil
	}
	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("starting station replace transaction: %w", err)
	}
	_, err = tx.Exec("delete from station")
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("clearing station table: %w", err)
	}
	statementString := "insert into station ( " +
		"station_code, " +
		"name, " +
		"alias, " +
		"station_type, " +
		"latitude, " +
		"longitude, " +
		"updated_at) " +
		"values (" +
		":station_code, " +
		":name, " +
		":alias, " +
		":station_type, " +
		":latitude, " +
		":longitude, " +
		":updated_at)"
	statementString = tx.Rebind(statementString)
	_, err = tx.NamedExec(statementString, stations)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("inserting into station table: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing station replace: %w", err)
	}
	return int64(len(stations)), nil
}

// GetStations retrieves all stations ordered by station code.
func GetStations(db *sqlx.DB) ([]Station, error) {
	query := "select * from station order by station_code"
	var results []Station
	err := db.Select(&results, query)
	return results, err
}
