// Package railstats serves read-only aggregates over the collected rail
// tables as json, for dashboard style consumers.
package railstats

import (
	"context"
	"encoding/json"
	logger "log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/emeraldtransit/railwatch/business/data/rail"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
)

// defaultHttpHandler simple default http handler for default route
type defaultHttpHandler struct {
}

// ServeHTTP implements defaultHttpHandler http.Handler interface
func (h *defaultHttpHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Add("Application-Status", "OK")
}

// stationsHandler serves the station reference table.
type stationsHandler struct {
	log *logger.Logger
	db  *sqlx.DB
}

func (s *stationsHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	stations, err := rail.GetStations(s.db)
	if err != nil {
		s.log.Printf("error retrieving stations: %v", err)
		http.Error(w, "Error serving request", http.StatusInternalServerError)
		return
	}
	writeJSON(s.log, w, stations)
}

// currentTrainsHandler serves the live snapshot for a service date,
// defaulting to today. The date query parameter takes YYYY-MM-DD.
type currentTrainsHandler struct {
	log *logger.Logger
	db  *sqlx.DB
}

func (c *currentTrainsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	serviceDate, err := serviceDateParam(r)
	if err != nil {
		http.Error(w, "invalid date parameter, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	trains, err := rail.GetCurrentTrains(c.db, serviceDate)
	if err != nil {
		c.log.Printf("error retrieving current trains: %v", err)
		http.Error(w, "Error serving request", http.StatusInternalServerError)
		return
	}
	writeJSON(c.log, w, trains)
}

// delayStatsHandler serves the aggregated delay figures for a service date.
type delayStatsHandler struct {
	log *logger.Logger
	db  *sqlx.DB
}

// delayStatsResponse wraps the summary with the derived on-time percentage.
type delayStatsResponse struct {
	*rail.DelaySummary
	OnTimePercent float64 `json:"on_time_percent"`
}

func (d *delayStatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	serviceDate, err := serviceDateParam(r)
	if err != nil {
		http.Error(w, "invalid date parameter, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	summary, err := rail.GetDelaySummary(d.db, serviceDate)
	if err != nil {
		d.log.Printf("error retrieving delay summary: %v", err)
		http.Error(w, "Error serving request", http.StatusInternalServerError)
		return
	}
	writeJSON(d.log, w, delayStatsResponse{DelaySummary: summary, OnTimePercent: summary.OnTimePercent()})
}

// serviceDateParam reads the date query parameter, defaulting to today.
func serviceDateParam(r *http.Request) (time.Time, error) {
	dateString := r.FormValue("date")
	if len(dateString) == 0 {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", dateString)
}

func writeJSON(log *logger.Logger, w http.ResponseWriter, payload interface{}) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		log.Printf("error marshaling response to json: %v", err)
		http.Error(w, "Error serving request", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	byteCount, err := w.Write(jsonData)
	if err != nil {
		log.Printf("error writing json response: %v", err)
		return
	}
	log.Printf("wrote %d bytes in json response", byteCount)
}

// createServer creates configured http.Server for the stats endpoints
func createServer(log *logger.Logger, db *sqlx.DB, httpPort int) *http.Server {
	r := mux.NewRouter()
	r.Handle("/", &defaultHttpHandler{})
	r.Handle("/v1/stations", &stationsHandler{log: log, db: db})
	r.Handle("/v1/trains", &currentTrainsHandler{log: log, db: db})
	r.Handle("/v1/stats/delays", &delayStatsHandler{log: log, db: db})
	srv := &http.Server{
		Addr: strings.Join([]string{"0.0.0.0", strconv.Itoa(httpPort)}, ":"),
		// Good practice to set timeouts to avoid Slowloris attacks.
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      r,
	}
	return srv
}

// RunWebService starts the stats web service and terminates on shutdown
// signal.
func RunWebService(log *logger.Logger, db *sqlx.DB, httpPort int, shutdownSignal chan os.Signal) error {
	srv := createServer(log, db, httpPort)
	log.Printf("Starting server on port %d", httpPort)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Printf("server ListenAndServe ended. %s", err)
		}
	}()

	<-shutdownSignal
	log.Printf("ending webservice on shutdown signal")
	shutdownCtx, serverCancelFunc := context.WithTimeout(context.Background(), time.Duration(5)*time.Second)
	defer serverCancelFunc()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("error shutting down webservice, error:%s", err)
	}
	return nil
}
