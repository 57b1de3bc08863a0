package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"ytingest/model"
)

// LedgerKey is the object key of the singleton ledger document.
const LedgerKey = "processed_videos.json"

const jsonContentType = "application/json"

// LedgerStore reads and writes the processed-videos ledger as one whole
// document. Loading never fails: any read problem degrades to a fresh empty
// ledger, trading correctness for availability.
type LedgerStore struct {
	store  ObjectStore
	logger *slog.Logger
}

func NewLedgerStore(store ObjectStore, logger *slog.Logger) *LedgerStore {
	return &LedgerStore{store: store, logger: logger}
}

func (s *LedgerStore) Load(ctx context.Context) *model.Ledger {
	data, err := s.store.Get(ctx, LedgerKey)
	if err != nil {
		s.logger.Warn("could not read ledger, starting from an empty one", slog.String("err", err.Error()))
		return model.NewLedger(time.Now())
	}

	ledger := &model.Ledger{}
	if err := json.Unmarshal(data, ledger); err != nil {
		s.logger.Warn("could not parse ledger, starting from an empty one", slog.String("err", err.Error()))
		return model.NewLedger(time.Now())
	}
	if ledger.Videos == nil {
		ledger.Videos = map[string]model.LedgerEntry{}
	}

	return ledger
}

// Save overwrites the whole ledger document. Last writer wins.
func (s *LedgerStore) Save(ctx context.Context, ledger *model.Ledger) error {
	ledger.Touch(time.Now())

	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}

	return s.store.Put(ctx, LedgerKey, data, jsonContentType)
}

// VideoStore writes one metadata document per video. Documents are content
// addressed by video id and never overwritten in normal operation.
type VideoStore struct {
	store ObjectStore
}

func NewVideoStore(store ObjectStore) *VideoStore {
	return &VideoStore{store: store}
}

func (s *VideoStore) StoreMetadata(ctx context.Context, video model.VideoMetadata) error {
	data, err := json.MarshalIndent(video, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal video %s: %w", video.VideoID, err)
	}

	return s.store.Put(ctx, MetadataKey(video.VideoID), data, jsonContentType)
}

// MetadataKey returns the object key of a video's metadata document.
func MetadataKey(videoID string) string {
	return fmt.Sprintf("videos/%s/metadata.json", videoID)
}
