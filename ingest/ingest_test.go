package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"golang.org/x/exp/slog"
	"google.golang.org/api/youtube/v3"

	"ytingest/model"
)

type fakeCatalog struct {
	channelID string
	videoIDs  []string
	listErr   error
}

func (f *fakeCatalog) ResolveChannelID(_ context.Context, identifier string) (string, error) {
	if f.channelID == "" {
		return "", errors.New("resolution failed")
	}
	return f.channelID, nil
}

func (f *fakeCatalog) ListChannelVideos(_ context.Context, _ string, _ int64) ([]string, error) {
	return f.videoIDs, f.listErr
}

func (f *fakeCatalog) ListPlaylistVideos(_ context.Context, _ string, _ int64) ([]string, error) {
	return f.videoIDs, f.listErr
}

func (f *fakeCatalog) FetchVideoDetails(_ context.Context, videoIDs []string) ([]*youtube.Video, error) {
	videos := make([]*youtube.Video, 0, len(videoIDs))
	for _, id := range videoIDs {
		videos = append(videos, &youtube.Video{
			Id:      id,
			Snippet: &youtube.VideoSnippet{Title: "title " + id},
		})
	}
	return videos, nil
}

// fakeLedgerStore keeps the saved ledger across runs, like the real store.
type fakeLedgerStore struct {
	ledger  *model.Ledger
	saveErr error
	saves   int
}

func (f *fakeLedgerStore) Load(_ context.Context) *model.Ledger {
	if f.ledger == nil {
		return model.NewLedger(time.Now())
	}
	return f.ledger
}

func (f *fakeLedgerStore) Save(_ context.Context, ledger *model.Ledger) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	ledger.Touch(time.Now())
	f.ledger = ledger
	f.saves++
	return nil
}

type fakeVideoStore struct {
	mu      sync.Mutex
	failIDs map[string]bool
	stored  map[string]bool
}

func newFakeVideoStore(failIDs ...string) *fakeVideoStore {
	fail := map[string]bool{}
	for _, id := range failIDs {
		fail[id] = true
	}
	return &fakeVideoStore{failIDs: fail, stored: map[string]bool{}}
}

func (f *fakeVideoStore) StoreMetadata(_ context.Context, video model.VideoMetadata) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[video.VideoID] {
		return fmt.Errorf("write denied for %s", video.VideoID)
	}
	f.stored[video.VideoID] = true
	return nil
}

func newTestIngestor(cat Catalog, ledger LedgerStore, videos VideoStore) *Ingestor {
	return NewIngestor(cat, ledger, videos, 4, slog.New(slog.NewTextHandler(io.Discard)))
}

func TestIngestHappyPath(t *testing.T) {
	cat := &fakeCatalog{channelID: "UCchannel", videoIDs: []string{"v1", "v2", "v3"}}
	ledger := &fakeLedgerStore{}
	videos := newFakeVideoStore()
	ingestor := newTestIngestor(cat, ledger, videos)

	report, err := ingestor.Ingest(context.Background(), model.SourceSpec{Type: model.SourceChannel, Identifier: "@someone"}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Processed != 3 || report.Failed != 0 {
		t.Errorf("report %+v, want processed 3 failed 0", report)
	}
	if report.TotalFound != 3 || report.AlreadyProcessed != 0 {
		t.Errorf("report %+v, want totalFound 3 alreadyProcessed 0", report)
	}
	if report.TotalInDatabase != 3 {
		t.Errorf("totalInDatabase %d, want 3", report.TotalInDatabase)
	}
	if ledger.saves != 1 {
		t.Errorf("expected a single ledger save, got %d", ledger.saves)
	}
}

func TestIngestIdempotent(t *testing.T) {
	cat := &fakeCatalog{channelID: "UCchannel", videoIDs: []string{"v1", "v2"}}
	ledger := &fakeLedgerStore{}
	videos := newFakeVideoStore()
	ingestor := newTestIngestor(cat, ledger, videos)

	src := model.SourceSpec{Type: model.SourceChannel, Identifier: "@someone"}
	if _, err := ingestor.Ingest(context.Background(), src, 10); err != nil {
		t.Fatalf("first run: %v", err)
	}

	report, err := ingestor.Ingest(context.Background(), src, 10)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if report.Processed != 0 {
		t.Errorf("second run processed %d, want 0", report.Processed)
	}
	if report.AlreadyProcessed != 2 || report.TotalFound != 2 {
		t.Errorf("report %+v, want everything already processed", report)
	}
	// the second run found nothing new and must not have rewritten the ledger
	if ledger.saves != 1 {
		t.Errorf("expected 1 ledger save across both runs, got %d", ledger.saves)
	}
}

func TestIngestPartialFailure(t *testing.T) {
	cat := &fakeCatalog{channelID: "UCchannel", videoIDs: []string{"v1", "v2", "v3"}}
	ledger := &fakeLedgerStore{}
	videos := newFakeVideoStore("v2")
	ingestor := newTestIngestor(cat, ledger, videos)

	report, err := ingestor.Ingest(context.Background(), model.SourceSpec{Type: model.SourceChannel, Identifier: "@someone"}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Processed != 2 || report.Failed != 1 {
		t.Errorf("report %+v, want processed 2 failed 1", report)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected 1 error message, got %v", report.Errors)
	}

	// ledger entries must match the writes that actually succeeded, not the
	// first two by listing order
	if _, ok := ledger.ledger.Videos["v2"]; ok {
		t.Error("failed video v2 must not be in the ledger")
	}
	for _, id := range []string{"v1", "v3"} {
		entry, ok := ledger.ledger.Videos[id]
		if !ok {
			t.Errorf("video %s missing from ledger", id)
			continue
		}
		if entry.Status != model.StatusProcessed {
			t.Errorf("video %s status %q, want processed", id, entry.Status)
		}
	}
	if ledger.ledger.TotalVideos != 2 {
		t.Errorf("totalVideos %d, want 2", ledger.ledger.TotalVideos)
	}
}

func TestIngestResolutionFailurePropagates(t *testing.T) {
	cat := &fakeCatalog{} // resolution fails
	ledger := &fakeLedgerStore{}
	ingestor := newTestIngestor(cat, ledger, newFakeVideoStore())

	_, err := ingestor.Ingest(context.Background(), model.SourceSpec{Type: model.SourceChannel, Identifier: "@ghost"}, 10)
	if err == nil {
		t.Fatal("expected error")
	}
	if ledger.saves != 0 {
		t.Errorf("ledger must not be touched on resolution failure, got %d saves", ledger.saves)
	}
}

func TestIngestInvalidPlaylistPropagates(t *testing.T) {
	ingestor := newTestIngestor(&fakeCatalog{}, &fakeLedgerStore{}, newFakeVideoStore())

	_, err := ingestor.Ingest(context.Background(), model.SourceSpec{Type: model.SourcePlaylist, Identifier: "not-a-playlist"}, 10)
	if err == nil {
		t.Fatal("expected error for invalid playlist input")
	}
}

func TestIngestLedgerSaveFailure(t *testing.T) {
	cat := &fakeCatalog{channelID: "UCchannel", videoIDs: []string{"v1"}}
	ledger := &fakeLedgerStore{saveErr: errors.New("disk full")}
	ingestor := newTestIngestor(cat, ledger, newFakeVideoStore())

	_, err := ingestor.Ingest(context.Background(), model.SourceSpec{Type: model.SourceChannel, Identifier: "@someone"}, 10)
	if err == nil {
		t.Fatal("expected error when the ledger save fails")
	}
}
