package ingest

import (
	"time"

	"google.golang.org/api/youtube/v3"

	"ytingest/model"
)

// Transform normalizes a raw catalog record into the stored metadata shape.
// Pure: missing upstream parts become zero counts, "en" language and empty
// tags. Status starts as pending, promotion happens after persistence.
func Transform(video *youtube.Video, sourceType model.SourceType, sourceID string, now time.Time) model.VideoMetadata {
	md := model.VideoMetadata{
		VideoID:         video.Id,
		Thumbnails:      map[string]string{},
		Tags:            []string{},
		DefaultLanguage: "en",
		ProcessedAt:     now.UTC().Format(time.RFC3339),
		Status:          model.StatusPending,
		SourceType:      sourceType,
		SourceID:        sourceID,
		// Captions are a later phase, nothing computes this yet.
		CaptionsAvailable: false,
	}

	if snippet := video.Snippet; snippet != nil {
		md.Title = snippet.Title
		md.Description = snippet.Description
		md.PublishedAt = snippet.PublishedAt
		md.ChannelID = snippet.ChannelId
		md.ChannelTitle = snippet.ChannelTitle
		md.CategoryID = snippet.CategoryId
		if snippet.DefaultLanguage != "" {
			md.DefaultLanguage = snippet.DefaultLanguage
		}
		if len(snippet.Tags) > 0 {
			md.Tags = snippet.Tags
		}
		md.Thumbnails = thumbnailURLs(snippet.Thumbnails)
	}

	if stats := video.Statistics; stats != nil {
		md.ViewCount = int64(stats.ViewCount)
		md.LikeCount = int64(stats.LikeCount)
	}

	if details := video.ContentDetails; details != nil {
		md.Duration = details.Duration
	}

	return md
}

func thumbnailURLs(details *youtube.ThumbnailDetails) map[string]string {
	urls := map[string]string{}
	if details == nil {
		return urls
	}
	for label, thumb := range map[string]*youtube.Thumbnail{
		"default":  details.Default,
		"medium":   details.Medium,
		"high":     details.High,
		"standard": details.Standard,
		"maxres":   details.Maxres,
	} {
		if thumb != nil && thumb.Url != "" {
			urls[label] = thumb.Url
		}
	}
	return urls
}
