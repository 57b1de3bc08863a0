package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
	"google.golang.org/api/youtube/v3"

	"ytingest/catalog"
	"ytingest/model"
)

// Catalog lists and details videos on the remote platform.
type Catalog interface {
	ResolveChannelID(ctx context.Context, identifier string) (string, error)
	ListChannelVideos(ctx context.Context, channelID string, maxResults int64) ([]string, error)
	ListPlaylistVideos(ctx context.Context, playlistID string, maxResults int64) ([]string, error)
	FetchVideoDetails(ctx context.Context, videoIDs []string) ([]*youtube.Video, error)
}

// LedgerStore reads and writes the dedupe ledger.
type LedgerStore interface {
	Load(ctx context.Context) *model.Ledger
	Save(ctx context.Context, ledger *model.Ledger) error
}

// VideoStore persists one metadata document per video.
type VideoStore interface {
	StoreMetadata(ctx context.Context, video model.VideoMetadata) error
}

// Report summarizes one ingestion run, including per-video failures.
type Report struct {
	Processed        int      `json:"processed"`
	Failed           int      `json:"failed"`
	TotalFound       int      `json:"totalFound"`
	AlreadyProcessed int      `json:"alreadyProcessed"`
	TotalInDatabase  int      `json:"totalInDatabase"`
	Errors           []string `json:"errors,omitempty"`
}

// Ingestor runs the fetch/transform/dedupe/persist pipeline. The mutex
// serializes the ledger read-modify-write, so overlapping triggers within one
// process cannot lose each other's entries.
type Ingestor struct {
	catalog Catalog
	ledger  LedgerStore
	videos  VideoStore
	workers int
	logger  *slog.Logger
	mu      sync.Mutex
}

func NewIngestor(cat Catalog, ledger LedgerStore, videos VideoStore, workers int, logger *slog.Logger) *Ingestor {
	if workers < 1 {
		workers = 1
	}
	return &Ingestor{
		catalog: cat,
		ledger:  ledger,
		videos:  videos,
		workers: workers,
		logger:  logger,
	}
}

// Ingest resolves the source, lists candidate videos, fetches their details
// in one batched call, and persists everything not yet in the ledger.
// Per-video persistence failures are counted and reported, they never abort
// the run. Resolution and listing failures do.
func (i *Ingestor) Ingest(ctx context.Context, src model.SourceSpec, maxResults int64) (*Report, error) {
	start := time.Now()
	metricRuns.Inc()
	defer func() { metricRunDuration.Observe(time.Since(start).Seconds()) }()

	logger := i.logger.With(
		slog.String("run", uuid.NewString()),
		slog.String("source", src.String()))

	if maxResults < 1 {
		maxResults = 10
	}
	if maxResults > catalog.MaxBatchSize {
		maxResults = catalog.MaxBatchSize
	}

	videos, err := i.fetch(ctx, src, maxResults)
	if err != nil {
		return nil, err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	ledger := i.ledger.Load(ctx)
	unseen := ledger.FilterUnseen(videos)
	logger.Info("listed videos",
		slog.Int("found", len(videos)),
		slog.Int("new", len(unseen)),
		slog.Int("in_ledger", ledger.TotalVideos))

	if len(unseen) == 0 {
		return &Report{
			TotalFound:       len(videos),
			AlreadyProcessed: len(videos),
			TotalInDatabase:  ledger.TotalVideos,
		}, nil
	}

	results := i.storeAll(ctx, unseen)

	processed := 0
	var failures []string
	for _, res := range results {
		if res.err != nil {
			failures = append(failures, res.err.Error())
			metricVideosFailed.Inc()
			logger.Error("failed to store video metadata", res.err, slog.String("videoid", res.video.VideoID))
			continue
		}
		processed++
		metricVideosProcessed.Inc()
		ledger.Add(res.video.VideoID, model.LedgerEntry{
			ProcessedAt: time.Now().UTC().Format(time.RFC3339),
			Title:       res.video.Title,
			Status:      model.StatusProcessed,
		})
	}

	if err := i.ledger.Save(ctx, ledger); err != nil {
		return nil, fmt.Errorf("save ledger: %w", err)
	}

	logger.Info("ingestion finished",
		slog.Int("processed", processed),
		slog.Int("failed", len(failures)))

	return &Report{
		Processed:        processed,
		Failed:           len(failures),
		TotalFound:       len(videos),
		AlreadyProcessed: len(videos) - len(unseen),
		TotalInDatabase:  ledger.TotalVideos,
		Errors:           failures,
	}, nil
}

// fetch resolves the source to a canonical id, lists video ids and fetches
// their detail records in a single batched call.
func (i *Ingestor) fetch(ctx context.Context, src model.SourceSpec, maxResults int64) ([]model.VideoMetadata, error) {
	var sourceID string
	var ids []string
	var err error

	switch src.Type {
	case model.SourcePlaylist:
		sourceID, err = catalog.ExtractPlaylistID(src.Identifier)
		if err != nil {
			return nil, err
		}
		ids, err = i.catalog.ListPlaylistVideos(ctx, sourceID, maxResults)
	default:
		sourceID, err = i.catalog.ResolveChannelID(ctx, src.Identifier)
		if err != nil {
			return nil, err
		}
		ids, err = i.catalog.ListChannelVideos(ctx, sourceID, maxResults)
	}
	if err != nil {
		return nil, err
	}

	records, err := i.catalog.FetchVideoDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	videos := make([]model.VideoMetadata, 0, len(records))
	for _, record := range records {
		videos = append(videos, Transform(record, src.Type, sourceID, now))
	}

	return videos, nil
}

type storeResult struct {
	video model.VideoMetadata
	err   error
}

// storeAll persists the videos concurrently over a bounded worker pool and
// waits for every write to settle. Results keep input order and carry the
// video they belong to, so ledger entries can be matched by identity.
func (i *Ingestor) storeAll(ctx context.Context, videos []model.VideoMetadata) []storeResult {
	results := make([]storeResult, len(videos))
	sem := make(chan struct{}, i.workers)
	var wg sync.WaitGroup

	for idx, video := range videos {
		wg.Add(1)
		go func(idx int, video model.VideoMetadata) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			err := i.videos.StoreMetadata(ctx, video)
			if err != nil {
				err = fmt.Errorf("store %s: %w", video.VideoID, err)
			}
			results[idx] = storeResult{video: video, err: err}
		}(idx, video)
	}
	wg.Wait()

	return results
}
