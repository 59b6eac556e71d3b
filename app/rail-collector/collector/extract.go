package collector

import (
	"fmt"
	"log"
	"time"

	"github.com/emeraldtransit/railwatch/foundation/irishrail"
)

// fetchFunc retrieves one feed document. Swapped for a stub in tests.
type fetchFunc func(url string) (*irishrail.Document, error)

// extractor fetches feed documents and projects them into raw record
// batches. A failed fetch is returned as an error so the caller can decide
// to degrade to an empty batch; the per-train movements loop is the
// exception and skips individual failures itself.
type extractor struct {
	log   *log.Logger
	fetch fetchFunc
	// movementDelay throttles the per-train movements loop so the feed is
	// not hit with a burst of back-to-back requests.
	movementDelay time.Duration
}

func newExtractor(log *log.Logger) *extractor {
	return &extractor{
		log:           log,
		fetch:         irishrail.Fetch,
		movementDelay: 200 * time.Millisecond,
	}
}

// extractStations fetches the station list document.
func (e *extractor) extractStations() ([]irishrail.Record, error) {
	doc, err := e.fetch(irishrail.AllStationsURL())
	if err != nil {
		return nil, fmt.Errorf("fetching station list: %w", err)
	}
	return irishrail.MapRecords(doc, stationRecordTag, stationFields), nil
}

// extractCurrentTrains fetches the current train positions document.
func (e *extractor) extractCurrentTrains() ([]irishrail.Record, error) {
	doc, err := e.fetch(irishrail.CurrentTrainsURL())
	if err != nil {
		return nil, fmt.Errorf("fetching current trains: %w", err)
	}
	return irishrail.MapRecords(doc, currentTrainRecordTag, currentTrainFields), nil
}

// extractTrainMovements fetches the movements document for every currently
// running train, tagging each row with the fetch time. typeCache is filled
// with the type hints from the current trains batch before the loop starts.
// One train's fetch failure is logged and skipped, it does not abort the
// remaining trains. The returned error covers only the initial current
// trains fetch.
func (e *extractor) extractTrainMovements(typeCache *trainTypeCache) ([]irishrail.Record, error) {
	trains, err := e.extractCurrentTrains()
	if err != nil {
		return nil, err
	}
	trains = trimWhitespace(trains, "train_code", "raw_type")
	trains = coerceDates(trains, "service_date")
	typeCache.fill(trains)
	e.log.Printf("extracting movements for %d trains, %d type hints cached", len(trains), typeCache.size())

	movements := make([]irishrail.Record, 0)
	first := true
	for _, train := range trains {
		code := stringValue(train, "train_code")
		serviceDate, ok := dateValue(train, "service_date")
		if code == "" || !ok {
			e.log.Printf("skipping movements for train with missing code or date")
			continue
		}
		if !first {
			time.Sleep(e.movementDelay)
		}
		first = false

		doc, err := e.fetch(irishrail.TrainMovementsURL(code, serviceDate))
		if err != nil {
			e.log.Printf("skipping movements for train %s: %v", code, err)
			continue
		}
		rows := irishrail.MapRecords(doc, trainMovementRecordTag, trainMovementFields)
		fetchedAt := time.Now().Format(stampLayout)
		for _, row := range rows {
			stamp := fetchedAt
			row["fetched_at"] = &stamp
		}
		movements = append(movements, rows...)
	}
	return movements, nil
}

// extractStationBoard fetches the live board for one station looking
// lookaheadMins minutes ahead.
func (e *extractor) extractStationBoard(stationCode string, lookaheadMins int) ([]irishrail.Record, error) {
	doc, err := e.fetch(irishrail.StationBoardURL(stationCode, lookaheadMins))
	if err != nil {
		return nil, fmt.Errorf("fetching station board for %s: %w", stationCode, err)
	}
	return irishrail.MapRecords(doc, stationBoardRecordTag, stationBoardFields), nil
}
