package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"ytingest/catalog"
	"ytingest/config"
	"ytingest/handler"
	"ytingest/ingest"
	"ytingest/storage"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", err)
		os.Exit(1)
	}

	store, err := newObjectStore(cfg)
	if err != nil {
		logger.Error("unable to set up object store", err, slog.String("backend", cfg.StorageBackend))
		os.Exit(1)
	}

	ytClient, err := youtube.NewService(ctx, option.WithAPIKey(cfg.YouTubeAPIKey))
	if err != nil {
		logger.Error("unable to create youtube service", err)
		os.Exit(1)
	}
	cat := catalog.NewClient(ytClient, cfg.APIRate, logger)

	ledgerStore := storage.NewLedgerStore(store, logger)
	videoStore := storage.NewVideoStore(store)
	ingestor := ingest.NewIngestor(cat, ledgerStore, videoStore, cfg.FanOutWorkers, logger)

	server := handler.NewServer(
		handler.NewIngestAPI(ingestor, cfg.DefaultChannel, cfg.DefaultMaxResults, cfg.IngestTimeout, logger),
		handler.NewStatusAPI(ledgerStore),
		handler.NewHealthAPI(cfg.YouTubeAPIKey != "", store),
		promhttp.Handler(),
		logger,
	)

	go http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), server)
	logger.Info("http server started", slog.String("port", cfg.Port), slog.String("backend", cfg.StorageBackend))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	logger.Info("service stopped")
}

func newObjectStore(cfg config.Config) (storage.ObjectStore, error) {
	switch cfg.StorageBackend {
	case config.BackendS3:
		return storage.NewS3Store(storage.S3Info{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		})
	case config.BackendPostgres:
		return storage.NewPostgresStore(storage.PostgresInfo{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPassword,
			Database: cfg.PostgresDatabase,
		})
	default:
		return storage.NewFileStore(cfg.DataDir)
	}
}
