package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/youtube/v3"
)

// MaxBatchSize caps a single listing and the one batched detail fetch per
// ingestion run. The upstream Videos.List endpoint accepts at most 50 ids.
const MaxBatchSize = 50

const searchCandidates = 5

var errNoResults = errors.New("no results")

// Client wraps the three remote catalog operations an ingestion run needs:
// resolve a channel, list video ids for a channel or playlist, and fetch
// detail records for a batch of ids. All calls pass a shared rate limiter
// first to stay inside the upstream quota.
type Client struct {
	svc     *youtube.Service
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewClient(svc *youtube.Service, requestsPerSecond float64, logger *slog.Logger) *Client {
	return &Client{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:  logger,
	}
}

// ListChannelVideos returns up to maxResults video ids for the channel,
// newest first.
func (c *Client) ListChannelVideos(ctx context.Context, channelID string, maxResults int64) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	response, err := c.svc.Search.
		List([]string{"id"}).
		ChannelId(channelID).
		MaxResults(clampMaxResults(maxResults)).
		Order("date").
		Type("video").
		Context(ctx).
		Do()
	if err != nil {
		return nil, remoteErr("list channel videos", err)
	}

	ids := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		ids = append(ids, item.Id.VideoId)
	}

	return ids, nil
}

// ListPlaylistVideos returns up to maxResults video ids for the playlist, in
// playlist order. A playlist with zero items is an error.
func (c *Client) ListPlaylistVideos(ctx context.Context, playlistID string, maxResults int64) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	response, err := c.svc.PlaylistItems.
		List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(clampMaxResults(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, remoteErr("list playlist videos", err)
	}

	if len(response.Items) == 0 {
		return nil, &EmptyPlaylistError{PlaylistID: playlistID}
	}

	ids := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil || item.Snippet.ResourceId == nil {
			continue
		}
		ids = append(ids, item.Snippet.ResourceId.VideoId)
	}

	return ids, nil
}

// FetchVideoDetails fetches the raw detail records for the given ids in one
// batched call. One call per ingestion run is a hard requirement, the quota
// cost of per-video fetches adds up fast.
func (c *Client) FetchVideoDetails(ctx context.Context, videoIDs []string) ([]*youtube.Video, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	if len(videoIDs) > MaxBatchSize {
		return nil, fmt.Errorf("batch of %d exceeds the maximum of %d", len(videoIDs), MaxBatchSize)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	response, err := c.svc.Videos.
		List([]string{"snippet", "statistics", "contentDetails"}).
		Id(strings.Join(videoIDs, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, remoteErr("fetch video details", err)
	}

	return response.Items, nil
}

func (c *Client) channelByHandle(ctx context.Context, identifier string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	response, err := c.svc.Channels.
		List([]string{"id", "snippet"}).
		ForHandle(identifier).
		Context(ctx).
		Do()
	if err != nil {
		return "", remoteErr("channel by handle", err)
	}
	if len(response.Items) == 0 {
		return "", errNoResults
	}

	return response.Items[0].Id, nil
}

func (c *Client) channelByID(ctx context.Context, identifier string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	response, err := c.svc.Channels.
		List([]string{"id", "snippet"}).
		Id(identifier).
		Context(ctx).
		Do()
	if err != nil {
		return "", remoteErr("channel by id", err)
	}
	if len(response.Items) == 0 {
		return "", errNoResults
	}

	return response.Items[0].Id, nil
}

func (c *Client) channelByUsername(ctx context.Context, identifier string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	response, err := c.svc.Channels.
		List([]string{"id", "snippet"}).
		ForUsername(strings.TrimPrefix(identifier, "@")).
		Context(ctx).
		Do()
	if err != nil {
		return "", remoteErr("channel by username", err)
	}
	if len(response.Items) == 0 {
		return "", errNoResults
	}

	return response.Items[0].Id, nil
}

// searchChannel is the last resort: free-text channel search, first candidate
// wins. Relevance ranking is left to the remote side.
func (c *Client) searchChannel(ctx context.Context, identifier string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	response, err := c.svc.Search.
		List([]string{"snippet"}).
		Q(identifier).
		Type("channel").
		MaxResults(searchCandidates).
		Context(ctx).
		Do()
	if err != nil {
		return "", remoteErr("channel search", err)
	}
	if len(response.Items) == 0 || response.Items[0].Snippet == nil {
		return "", errNoResults
	}

	return response.Items[0].Snippet.ChannelId, nil
}

func clampMaxResults(maxResults int64) int64 {
	if maxResults < 1 {
		return 1
	}
	if maxResults > MaxBatchSize {
		return MaxBatchSize
	}
	return maxResults
}

func remoteErr(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &RemoteError{Op: op, Status: gerr.Code, Message: gerr.Message}
	}
	return fmt.Errorf("%s: %w", op, err)
}
