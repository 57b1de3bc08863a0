package catalog

import (
	"context"
	"strings"

	"golang.org/x/exp/slog"
)

// resolveStrategy is one way of turning a user-supplied channel identifier
// into a canonical channel id. Strategies are evaluated in a fixed order and
// any failure falls through to the next one.
type resolveStrategy struct {
	name    string
	applies func(identifier string) bool
	run     func(ctx context.Context, identifier string) (string, error)
}

func always(string) bool { return true }

func isHandle(identifier string) bool {
	return strings.HasPrefix(identifier, "@")
}

// isChannelID matches the canonical channel id shape: "UC" followed by 22
// characters, 24 in total.
func isChannelID(identifier string) bool {
	return strings.HasPrefix(identifier, "UC") && len(identifier) == 24
}

// ResolveChannelID tries handle lookup, direct-id lookup, legacy-username
// lookup and free-text search, in that order, returning the first channel id
// found. If every strategy comes up empty it fails with ChannelNotFoundError.
func (c *Client) ResolveChannelID(ctx context.Context, identifier string) (string, error) {
	strategies := []resolveStrategy{
		{name: "handle", applies: isHandle, run: c.channelByHandle},
		{name: "id", applies: isChannelID, run: c.channelByID},
		{name: "username", applies: always, run: c.channelByUsername},
		{name: "search", applies: always, run: c.searchChannel},
	}

	return resolveFirst(ctx, identifier, strategies, c.logger)
}

// resolveFirst evaluates the strategies in order and returns the first
// success. Individual strategy failures are logged, never propagated.
func resolveFirst(ctx context.Context, identifier string, strategies []resolveStrategy, logger *slog.Logger) (string, error) {
	attempted := make([]string, 0, len(strategies))
	for _, strategy := range strategies {
		if !strategy.applies(identifier) {
			continue
		}
		attempted = append(attempted, strategy.name)

		channelID, err := strategy.run(ctx, identifier)
		if err != nil {
			logger.Debug("channel resolution strategy failed",
				slog.String("strategy", strategy.name),
				slog.String("identifier", identifier),
				slog.String("err", err.Error()))
			continue
		}
		logger.Info("resolved channel",
			slog.String("strategy", strategy.name),
			slog.String("identifier", identifier),
			slog.String("channelid", channelID))
		return channelID, nil
	}

	return "", &ChannelNotFoundError{Identifier: identifier, Attempted: attempted}
}
