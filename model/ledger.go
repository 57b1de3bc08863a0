package model

import "time"

// LedgerEntry records one ingested video inside the ledger document.
type LedgerEntry struct {
	ProcessedAt string      `json:"processedAt"`
	Title       string      `json:"title"`
	Status      VideoStatus `json:"status"`
}

// Ledger is the singleton processed_videos.json document. TotalVideos always
// equals the number of keys in Videos after a write; Touch maintains that.
type Ledger struct {
	LastUpdated string                 `json:"lastUpdated"`
	TotalVideos int                    `json:"totalVideos"`
	Videos      map[string]LedgerEntry `json:"videos"`
}

func NewLedger(now time.Time) *Ledger {
	return &Ledger{
		LastUpdated: now.UTC().Format(time.RFC3339),
		Videos:      map[string]LedgerEntry{},
	}
}

// FilterUnseen returns the videos whose id is not yet in the ledger,
// preserving input order. Dedupe is global, not per source.
func (l *Ledger) FilterUnseen(videos []VideoMetadata) []VideoMetadata {
	unseen := make([]VideoMetadata, 0, len(videos))
	for _, v := range videos {
		if _, ok := l.Videos[v.VideoID]; !ok {
			unseen = append(unseen, v)
		}
	}
	return unseen
}

func (l *Ledger) Add(videoID string, entry LedgerEntry) {
	if l.Videos == nil {
		l.Videos = map[string]LedgerEntry{}
	}
	l.Videos[videoID] = entry
}

// Touch recounts the videos and stamps the update time.
func (l *Ledger) Touch(now time.Time) {
	l.TotalVideos = len(l.Videos)
	l.LastUpdated = now.UTC().Format(time.RFC3339)
}
