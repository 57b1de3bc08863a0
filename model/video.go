package model

import "fmt"

type VideoStatus string

const (
	StatusPending   VideoStatus = "pending"
	StatusProcessed VideoStatus = "processed"
	StatusFailed    VideoStatus = "failed"
)

type SourceType string

const (
	SourceChannel  SourceType = "channel"
	SourcePlaylist SourceType = "playlist"
)

// SourceSpec identifies what an ingestion run should pull from: a channel
// (by handle, legacy username or channel id) or a playlist (by id or URL).
type SourceSpec struct {
	Type       SourceType
	Identifier string
}

func (s SourceSpec) String() string {
	return fmt.Sprintf("%s: %s", s.Type, s.Identifier)
}

// VideoMetadata is the per-video document written to the object store under
// videos/{videoId}/metadata.json. It is immutable once written.
type VideoMetadata struct {
	VideoID           string            `json:"videoId"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	PublishedAt       string            `json:"publishedAt"`
	Duration          string            `json:"duration"`
	ViewCount         int64             `json:"viewCount"`
	LikeCount         int64             `json:"likeCount"`
	ChannelID         string            `json:"channelId"`
	ChannelTitle      string            `json:"channelTitle"`
	Thumbnails        map[string]string `json:"thumbnails"`
	Tags              []string          `json:"tags"`
	CategoryID        string            `json:"categoryId"`
	DefaultLanguage   string            `json:"defaultLanguage"`
	CaptionsAvailable bool              `json:"captionsAvailable"`
	ProcessedAt       string            `json:"processedAt"`
	Status            VideoStatus       `json:"status"`
	SourceType        SourceType        `json:"sourceType"`
	SourceID          string            `json:"sourceId"`
}
