package rail

import (
	"fmt"
	"time"

	"github.com/emeraldtransit/railwatch/foundation/database"
	"github.com/jmoiron/sqlx"
)

// CurrentTrain is one train's live position snapshot for a service date.
// Snapshots model "where is everything right now": rows for the current
// service date are replaced wholesale on every collection run rather than
// accumulated.
type CurrentTrain struct {
	TrainCode   string    `db:"train_code" json:"train_code"`
	ServiceDate time.Time `db:"service_date" json:"service_date"`
	Direction   *string   `db:"direction" json:"direction"`
	Status      *string   `db:"status" json:"status"`
	// PublicMessage is the free text status line the feed publishes for the
	// train, the only source of delay and position-in-words information.
	PublicMessage *string  `db:"public_message" json:"public_message"`
	Latitude      *float64 `db:"latitude" json:"latitude"`
	Longitude     *float64 `db:"longitude" json:"longitude"`
	// RawType is the train type as supplied by the feed, usually empty.
	RawType *string `db:"raw_type" json:"raw_type"`

	// DelayMinutes is parsed out of PublicMessage. Negative means early.
	// No delay annotation in the message is recorded as 0.
	DelayMinutes    int     `db:"delay_minutes" json:"delay_minutes"`
	CurrentLocation *string `db:"current_location" json:"current_location"`
	TrainCategory   string  `db:"train_category" json:"train_category"`
	RouteClass      string  `db:"route_class" json:"route_class"`
	TrainType       string  `db:"train_type" json:"train_type"`
	DayType         string  `db:"day_type" json:"day_type"`

	CollectedAt time.Time `db:"collected_at" json:"collected_at"`
}

func (c CurrentTrain) String() string {
	return fmt.Sprintf("CurrentTrain code:%s, date:%s, type:%s, delay:%d",
		c.TrainCode, c.ServiceDate.Format("2006-01-02"), c.TrainType, c.DelayMinutes)
}

// ReplaceCurrentTrains deletes every current_train row for the service dates
// present in trains and inserts trains in their place, inside one
// transaction, so stale same-day snapshots never coexist with fresh ones.
// The delete dates come from the batch itself: a feed still reporting
// yesterday's date just after midnight replaces yesterday's rows instead of
// colliding with them. An empty slice is a no-op. Returns the number of rows
// written.
func ReplaceCurrentTrains(db *sqlx.DB, trains []*CurrentTrain) (int64, error) {
	if len(trains) == 0 {
		return 0, nil
	}
	serviceDates := snapshotServiceDates(trains)
	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("starting current_train replace transaction: %w", err)
	}
	deleteString, deleteArgs, err := sqlx.In("delete from current_train where service_date in (?)", serviceDates)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("building current_train delete statement: %w", err)
	}
	_, err = tx.Exec(tx.Rebind(deleteString), deleteArgs...)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("clearing current_train rows: %w", err)
	}
	statementString := "insert into current_train ( " +
		"train_code, " +
		"service_date, " +
		"direction, " +
		"status, " +
		"public_message, " +
		"latitude, " +
		"longitude, " +
		"raw_type, " +
		"delay_minutes, " +
		"current_location, " +
		"train_category, " +
		"route_class, " +
		"train_type, " +
		"day_type, " +
		"collected_at) " +
		"values (" +
		":train_code, " +
		":service_date, " +
		":direction, " +
		":status, " +
		":public_message, " +
		":latitude, " +
		":longitude, " +
		":raw_type, " +
		":delay_minutes, " +
		":current_location, " +
		":train_category, " +
		":route_class, " +
		":train_type, " +
		":day_type, " +
		":collected_at)"
	statementString = tx.Rebind(statementString)
	_, err = tx.NamedExec(statementString, trains)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("inserting into current_train table: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing current_train replace: %w", err)
	}
	return int64(len(trains)), nil
}

// snapshotServiceDates returns the distinct service dates in trains, in first
// seen order. A collection run straddling midnight yields both dates.
func snapshotServiceDates(trains []*CurrentTrain) []time.Time {
	dates := make([]time.Time, 0, 1)
	seen := make(map[time.Time]bool, 1)
	for _, train := range trains {
		if seen[train.ServiceDate] {
			continue
		}
		seen[train.ServiceDate] = true
		dates = append(dates, train.ServiceDate)
	}
	return dates
}

// GetCurrentTrains retrieves the snapshot rows for serviceDate ordered by
// train code.
func GetCurrentTrains(db *sqlx.DB, serviceDate time.Time) ([]CurrentTrain, error) {
	statementString := "select * from current_train where service_date = :service_date order by train_code"
	rows, err := database.NamedQueryRows(db, statementString, map[string]interface{}{
		"service_date": serviceDate,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	results := make([]CurrentTrain, 0)
	for rows.Next() {
		train := CurrentTrain{}
		if err = rows.StructScan(&train); err != nil {
			return nil, err
		}
		results = append(results, train)
	}

	// check the error from rows
	err = rows.Err()
	if err != nil {
		return nil, err
	}
	return results, nil
}

// DelaySummary aggregates snapshot delays for one service date.
type DelaySummary struct {
	ServiceDate     time.Time `db:"service_date" json:"service_date"`
	TrainCount      int       `db:"train_count" json:"train_count"`
	OnTimeCount     int       `db:"on_time_count" json:"on_time_count"`
	AvgDelayMinutes float64   `db:"avg_delay_minutes" json:"avg_delay_minutes"`
	MaxDelayMinutes int       `db:"max_delay_minutes" json:"max_delay_minutes"`
}

// OnTimePercent returns the share of trains with no recorded delay, in the
// 0-100 range. Returns 0 when the summary covers no trains.
func (d *DelaySummary) OnTimePercent() float64 {
	if d.TrainCount == 0 {
		return 0
	}
	return float64(d.OnTimeCount) / float64(d.TrainCount) * 100
}

// GetDelaySummary aggregates the current_train snapshot for serviceDate.
func GetDelaySummary(db *sqlx.DB, serviceDate time.Time) (*DelaySummary, error) {
	query := "select " +
		"count(*) as train_count, " +
		"count(*) filter (where delay_minutes <= 0) as on_time_count, " +
		"coalesce(avg(delay_minutes), 0) as avg_delay_minutes, " +
		"coalesce(max(delay_minutes), 0) as max_delay_minutes " +
		"from current_train where service_date = ?"
	summary := DelaySummary{ServiceDate: serviceDate}
	err := db.Get(&summary, db.Rebind(query), serviceDate)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
