package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/router"
	"github.com/danielhkuo/quickly-survey/views"
)

func main() {
	var err error

	// Load .env if present; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("failed to load .env")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("Error parsing flags")
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("invalid log level")
	}
	log.SetLevel(level)

	// Connect to the database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		log.WithError(err).Fatal("schema creation failed")
	}
	log.WithField("database_type", cfg.DatabaseType).Info("Database schema ready")

	renderer, err := views.New()
	if err != nil {
		log.WithError(err).Fatal("failed to load views")
	}

	// Create router
	mux := router.NewRouter(db.NewStore(dbConn, cfg.DatabaseType), renderer)

	// Create server
	server := http.Server{
		Handler:      mux,
		Addr:         ":" + strconv.Itoa(cfg.Port),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
			server.Close()
		}
	}()

	// Start server
	log.WithField("port", cfg.Port).Info("Listening")
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("Server closed")
	} else {
		log.Info("Server closed")
	}
}
