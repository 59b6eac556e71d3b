package irishrail

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const baseURL = "http://api.irishrail.ie/realtime/realtime.asmx"

// CurrentTrainsURL is the endpoint listing every train currently running on
// the network.
func CurrentTrainsURL() string {
	return baseURL + "/getCurrentTrainsXML"
}

// AllStationsURL is the endpoint listing every station on the network.
func AllStationsURL() string {
	return baseURL + "/getAllStationsXML"
}

// TrainMovementsURL builds the per-train movements URL for one train on one
// service day. The feed expects the date in "02 Jan 2006" form.
func TrainMovementsURL(trainCode string, serviceDate time.Time) string {
	q := make(url.Values)
	q.Set("TrainId", trainCode)
	q.Set("TrainDate", serviceDate.Format("02 Jan 2006"))
	return baseURL + "/getTrainMovementsXML?" + q.Encode()
}

// StationBoardURL builds the station board URL for stationCode, covering
// arrivals and departures over the next lookaheadMins minutes.
func StationBoardURL(stationCode string, lookaheadMins int) string {
	q := make(url.Values)
	q.Set("StationCode", stationCode)
	q.Set("NumMins", strconv.Itoa(lookaheadMins))
	return baseURL + "/getStationDataByCodeXML_WithNumMins?" + q.Encode()
}

// Fetch retrieves the feed document at url and parses it.
func Fetch(url string) (*Document, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d for %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading feed response from %s: %w", url, err)
	}
	return ParseDocument(body)
}
