package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"ytingest/model"
)

// LedgerReader exposes the current ledger for reporting.
type LedgerReader interface {
	Load(ctx context.Context) *model.Ledger
}

// StatusAPI reports ingestion statistics from the ledger.
type StatusAPI struct {
	ledger LedgerReader
}

func NewStatusAPI(ledger LedgerReader) *StatusAPI {
	return &StatusAPI{ledger: ledger}
}

type recentVideo struct {
	VideoID     string            `json:"videoId"`
	ProcessedAt string            `json:"processedAt"`
	Title       string            `json:"title"`
	Status      model.VideoStatus `json:"status"`
}

func (a *StatusAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		Error(w, http.StatusMethodNotAllowed, "Method not allowed", "Use GET to read the status")
		return
	}

	ledger := a.ledger.Load(r.Context())

	recent := make([]recentVideo, 0, len(ledger.Videos))
	for id, entry := range ledger.Videos {
		recent = append(recent, recentVideo{
			VideoID:     id,
			ProcessedAt: entry.ProcessedAt,
			Title:       entry.Title,
			Status:      entry.Status,
		})
	}
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].ProcessedAt > recent[j].ProcessedAt
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}

	JSON(w, http.StatusOK, struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
		Stats     any    `json:"stats"`
	}{
		Status:    "operational",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Stats: struct {
			TotalVideosProcessed int           `json:"totalVideosProcessed"`
			LastUpdated          string        `json:"lastUpdated"`
			RecentVideos         []recentVideo `json:"recentVideos"`
		}{
			TotalVideosProcessed: ledger.TotalVideos,
			LastUpdated:          ledger.LastUpdated,
			RecentVideos:         recent,
		},
	})
}
