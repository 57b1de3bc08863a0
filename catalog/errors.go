package catalog

import (
	"fmt"
	"strings"
)

// ChannelNotFoundError is returned when every resolution strategy failed.
// Attempted lists the strategies that were tried, for diagnostics.
type ChannelNotFoundError struct {
	Identifier string
	Attempted  []string
}

func (e *ChannelNotFoundError) Error() string {
	return fmt.Sprintf("channel not found: %s (tried %s)", e.Identifier, strings.Join(e.Attempted, ", "))
}

// InvalidPlaylistError is returned when an input matches none of the accepted
// playlist shapes.
type InvalidPlaylistError struct {
	Input string
}

func (e *InvalidPlaylistError) Error() string {
	return fmt.Sprintf("invalid playlist format: %s, expected a playlist URL or an id starting with 'PL'", e.Input)
}

// EmptyPlaylistError is returned when a playlist resolves but contains no items.
type EmptyPlaylistError struct {
	PlaylistID string
}

func (e *EmptyPlaylistError) Error() string {
	return fmt.Sprintf("no videos found in playlist: %s", e.PlaylistID)
}

// RemoteError carries the upstream status and message of a non-2xx catalog
// API response.
type RemoteError struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: youtube api error: %d %s", e.Op, e.Status, e.Message)
}
