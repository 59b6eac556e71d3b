package rail

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// TrainMovement is one location in a train's journey on a service date:
// origin, scheduled stop, timing point or destination, with scheduled and
// actual times. The stop sequence for a service day is stable while the
// actual times fill in as the journey progresses, so the same key is fetched
// and rewritten many times during the day.
// Primary key: (train_code, service_date, location_order).
type TrainMovement struct {
	TrainCode     string    `db:"train_code" json:"train_code"`
	ServiceDate   time.Time `db:"service_date" json:"service_date"`
	LocationOrder int       `db:"location_order" json:"location_order"`
	LocationCode  *string   `db:"location_code" json:"location_code"`
	LocationName  *string   `db:"location_name" json:"location_name"`
	// LocationType is O (origin), S (stop), T (timing point) or D (destination).
	LocationType *string `db:"location_type" json:"location_type"`
	Origin       *string `db:"origin" json:"origin"`
	Destination  *string `db:"destination" json:"destination"`
	// Times of day in HH:MM:SS form. Actuals are nil until the train has
	// passed the location.
	ScheduledArrival   *string `db:"scheduled_arrival" json:"scheduled_arrival"`
	ScheduledDeparture *string `db:"scheduled_departure" json:"scheduled_departure"`
	ActualArrival      *string `db:"actual_arrival" json:"actual_arrival"`
	ActualDeparture    *string `db:"actual_departure" json:"actual_departure"`
	// StopType is C (current) or N (next) when the feed marks the train's
	// position against this location.
	StopType *string `db:"stop_type" json:"stop_type"`
	// RawType is the feed-supplied train type if one was observed for this
	// train code during the run, the movements document never carries one.
	RawType *string `db:"raw_type" json:"raw_type"`

	TrainCategory string `db:"train_category" json:"train_category"`
	RouteClass    string `db:"route_class" json:"route_class"`
	TrainType     string `db:"train_type" json:"train_type"`
	DayType       string `db:"day_type" json:"day_type"`

	FetchedAt   time.Time `db:"fetched_at" json:"fetched_at"`
	CollectedAt time.Time `db:"collected_at" json:"collected_at"`
}

func (m TrainMovement) String() string {
	return fmt.Sprintf("TrainMovement code:%s, date:%s, order:%d",
		m.TrainCode, m.ServiceDate.Format("2006-01-02"), m.LocationOrder)
}

// UpsertTrainMovements inserts movements, overwriting every non-key column of
// any row that already exists for (train_code, service_date, location_order).
// Later fetches of a journey update earlier partial rows in place without
// duplicating the stop, and rows from prior service days are never touched.
// An empty slice is a no-op. Returns the number of rows written.
func UpsertTrainMovements(db *sqlx.DB, movements []*TrainMovement) (int64, error) {
	if len(movements) == 0 {
		return 0, nil
	}
	statementString := "insert into train_movement ( " +
		"train_code, " +
		"service_date, " +
		"location_order, " +
		"location_code, " +
		"location_name, " +
		"location_type, " +
		"origin, " +
		"destination, " +
		"scheduled_arrival, " +
		"scheduled_departure, " +
		"actual_arrival, " +
		"actual_departure, " +
		"stop_type, " +
		"raw_type, " +
		"train_category, " +
		"route_class, " +
		"train_type, " +
		"day_type, " +
		"fetched_at, " +
		"collected_at) " +
		"values (" +
		":train_code, " +
		":service_date, " +
		":location_order, " +
		":location_code, " +
		":location_name, " +
		":location_type, " +
		":origin, " +
		":destination, " +
		":scheduled_arrival, " +
		":scheduled_departure, " +
		":actual_arrival, " +
		":actual_departure, " +
		":stop_type, " +
		":raw_type, " +
		":train_category, " +
		":route_class, " +
		":train_type, " +
		":day_type, " +
		":fetched_at, " +
		":collected_at) " +
		"on conflict (train_code, service_date, location_order) do update set " +
		"location_code = excluded.location_code, " +
		"location_name = excluded.location_name, " +
		"location_type = excluded.location_type, " +
		"origin = excluded.origin, " +
		"destination = excluded.destination, " +
		"scheduled_arrival = excluded.scheduled_arrival, " +
		"scheduled_departure = excluded.scheduled_departure, " +
		"actual_arrival = excluded.actual_arrival, " +
		"actual_departure = excluded.actual_departure, " +
		"stop_type = excluded.stop_type, " +
		"raw_type = excluded.raw_type, " +
		"train_category = excluded.train_category, " +
		"route_class = excluded.route_class, " +
		"train_type = excluded.train_type, " +
		"day_type = excluded.day_type, " +
		"fetched_at = excluded.fetched_at, " +
		"collected_at = excluded.collected_at"
	statementString = db.Rebind(statementString)
	_, err := db.NamedExec(statementString, movements)
	if err != nil {
		return 0, fmt.Errorf("upserting into train_movement table: %w", err)
	}
	return int64(len(movements)), nil
}

// GetTrainMovements retrieves the recorded journey for one train on one
// service date in stop order.
func GetTrainMovements(db *sqlx.DB, trainCode string, serviceDate time.Time) ([]TrainMovement, error) {
	query := "select * from train_movement " +
		"where train_code = ? and service_date = ? order by location_order"
	var results []TrainMovement
	err := db.Select(&results, db.Rebind(query), trainCode, serviceDate)
	return results, err
}
