package main

import (
	"database/sql"
	"flag"
	"os"
	"path/filepath"

	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fleetops/tracking-backend-go/internal/api"
	"github.com/fleetops/tracking-backend-go/internal/config"
	"github.com/fleetops/tracking-backend-go/internal/database"
	"github.com/fleetops/tracking-backend-go/internal/handler"
	"github.com/fleetops/tracking-backend-go/internal/ingest"
	"github.com/fleetops/tracking-backend-go/internal/repository"
	"github.com/fleetops/tracking-backend-go/internal/service"
)

func main() {
	configPath := flag.String("c", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	configureLogging(cfg)

	db, store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open sample store: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	if cfg.MQTTBroker != "" {
		client, err := ingest.Connect(cfg.MQTTBroker, cfg.MQTTClientID)
		if err != nil {
			log.Fatalf("Failed to connect to MQTT broker: %v", err)
		}
		defer client.Disconnect(250)

		subscriber := ingest.NewSubscriber(client, store)
		if err := subscriber.Start(); err != nil {
			log.Fatalf("Failed to subscribe to location topic: %v", err)
		}
		log.WithField("broker", cfg.MQTTBroker).Info("location ingest started")
	}

	trackingService := service.NewTrackingService(store, nil)
	trackingHandler := handler.NewTrackingHandler(trackingService)
	router := api.SetupRouter(cfg, trackingHandler)

	log.WithField("port", cfg.Port).Info("server starting")
	if err := router.Run(cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func openStore(cfg *config.Config) (*sql.DB, repository.SampleStore, error) {
	if cfg.DBDriver == "postgres" {
		db, err := database.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return db, repository.NewPostgresSampleStore(db), nil
	}
	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return db, repository.NewSQLiteSampleStore(db), nil
}

func configureLogging(cfg *config.Config) {
	log.SetLevel(cfg.GetLogLevel())
	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: false})
	log.SetOutput(os.Stdout)

	if cfg.LogFilePath == "" {
		return
	}

	logDir := filepath.Dir(cfg.LogFilePath)
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
			log.Fatalf("Failed to create log directory: %v", err)
		}
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.LogFilePath,
		MaxSize:    100,
		MaxBackups: 30,
		MaxAge:     cfg.LogMaxAgeDays,
		Compress:   true,
	}

	fileFmt := &log.TextFormatter{DisableColors: true, FullTimestamp: true}
	log.AddHook(lfshook.NewHook(lfshook.WriterMap{
		log.PanicLevel: rotated,
		log.FatalLevel: rotated,
		log.ErrorLevel: rotated,
		log.WarnLevel:  rotated,
		log.InfoLevel:  rotated,
		log.DebugLevel: rotated,
		log.TraceLevel: rotated,
	}, fileFmt))
}
