package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/muhammadolammi/cvmatch/internal/analysis"
	"github.com/muhammadolammi/cvmatch/internal/database"
	"github.com/muhammadolammi/cvmatch/internal/events"
	"github.com/muhammadolammi/cvmatch/internal/logging"
	"github.com/muhammadolammi/cvmatch/internal/storage"
)

// sideChannels opens the optional archive, audit and event collaborators.
// The returned cleanup closes whatever was opened.
func sideChannels(ctx context.Context, cfg Config) ([]analysis.Option, func(), error) {
	logger := logging.FromContext(ctx)
	var opts []analysis.Option
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.R2 != nil {
		archiver, err := storage.NewR2Archiver(ctx, *cfg.R2)
		if err != nil {
			return nil, func() {}, err
		}
		opts = append(opts, analysis.WithArchiver(archiver))
		logger.Info("archiving uploads to r2", "bucket", cfg.R2.Bucket)
	}

	if cfg.DBURL != "" {
		db, err := sql.Open("postgres", cfg.DBURL)
		if err != nil {
			return nil, func() {}, fmt.Errorf("error opening db: %w", err)
		}
		closers = append(closers, func() { db.Close() })
		if err := db.PingContext(ctx); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("error connecting to db: %w", err)
		}
		opts = append(opts, analysis.WithRecorder(database.NewRecorder(db)))
		logger.Info("recording analysis status in postgres")
	}

	if cfg.RabbitMQURL != "" {
		publisher, err := events.Dial(cfg.RabbitMQURL, events.DefaultExchange)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, func() { publisher.Close() })
		opts = append(opts, analysis.WithPublisher(publisher))
		logger.Info("publishing status updates", "exchange", events.DefaultExchange)
	}

	return opts, cleanup, nil
}
