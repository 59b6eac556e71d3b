package main

import (
	"fmt"
	logger "log"
	"os"

	"github.com/ardanlabs/conf"
	"github.com/emeraldtransit/railwatch/app/rail-collector/collector"
	"github.com/emeraldtransit/railwatch/foundation/database"
	"github.com/nats-io/nats.go"
)

var build = "develop"

func main() {
	log := logger.New(os.Stdout, "RAIL_COLLECTOR : ", logger.LstdFlags|logger.Lmicroseconds|logger.Lshortfile)
	if err := run(log); err != nil {
		log.Printf("main: error: %v", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	var cfg struct {
		conf.Version
		Args conf.Args
		DB   struct {
			User       string `conf:"default:postgres"`
			Password   string `conf:"default:postgres,noprint"`
			Host       string `conf:"default:0.0.0.0"`
			Name       string `conf:"default:postgres"`
			DisableTLS bool   `conf:"default:true"`
		}
		NATS struct {
			// URL enables live snapshot publishing when set.
			URL     string
			Subject string `conf:"default:rail.current-trains"`
		}
		Board struct {
			LookaheadMins int `conf:"default:90"`
		}
	}
	cfg.Version.SVN = build
	cfg.Version.Desc = "Collect Irish Rail realtime feed data into the database"
	const prefix = "RAIL_COLLECTOR"
	if err := conf.Parse(os.Args[1:], prefix, &cfg); err != nil {
		switch err {
		case conf.ErrHelpWanted:
			usage, err := conf.Usage(prefix, &cfg)
			if err != nil {
				return fmt.Errorf("generating config usage: %w", err)
			}
			fmt.Println(usage)
			return nil
		case conf.ErrVersionWanted:
			version, err := conf.VersionString(prefix, &cfg)
			if err != nil {
				return fmt.Errorf("generating config version: %w", err)
			}
			fmt.Println(version)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Printf("main : Started : Application initializing : version %s", build)
	defer log.Println("main: Completed")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Printf("main: Config :\n%v\n", out)

	// =========================================================================
	// Start Database

	log.Println("main: Initializing database support")

	db, err := database.Open(database.Config{
		User:       cfg.DB.User,
		Password:   cfg.DB.Password,
		Host:       cfg.DB.Host,
		Name:       cfg.DB.Name,
		DisableTLS: cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer func() {
		log.Printf("main: Database Stopping : %s", cfg.DB.Host)
		err = db.Close()
		if err != nil {
			log.Printf("main: error closing database: %v", err)
		}
	}()

	var natsConnection *nats.Conn
	if len(cfg.NATS.URL) > 0 {
		log.Printf("main: Connecting to nats at %s", cfg.NATS.URL)
		natsConnection, err = nats.Connect(cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("connecting to nats: %w", err)
		}
		defer natsConnection.Close()
	}

	c := collector.NewCollector(log, db, natsConnection, cfg.NATS.Subject)

	switch cfg.Args.Num(0) {
	case "stations":
		return c.RunStationsETL()
	case "trains":
		return c.RunCurrentTrainsETL()
	case "movements":
		return c.RunTrainMovementsETL()
	case "board":
		stationCode := cfg.Args.Num(1)
		if len(stationCode) < 1 {
			return fmt.Errorf("expected station code with command board")
		}
		return c.RunStationBoardETL(stationCode, cfg.Board.LookaheadMins)
	case "all":
		if err = c.RunStationsETL(); err != nil {
			return err
		}
		if err = c.RunCurrentTrainsETL(); err != nil {
			return err
		}
		return c.RunTrainMovementsETL()
	default:
		fmt.Println("expected command: stations, trains, movements, board <station code>, or all")
		return nil
	}
}
