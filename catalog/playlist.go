package catalog

import (
	"regexp"
	"strings"
)

// Accepted URL shapes, checked in order. The captured group is the playlist id.
var playlistPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[?&]list=([^&]+)`),
	regexp.MustCompile(`youtube\.com/playlist\?list=([^&]+)`),
	regexp.MustCompile(`youtu\.be/.*[?&]list=([^&]+)`),
}

// ExtractPlaylistID turns a raw playlist id or any of the accepted URL shapes
// into a canonical playlist id. A trimmed input starting with "PL" and longer
// than 10 characters is treated as already canonical.
func ExtractPlaylistID(input string) (string, error) {
	cleaned := strings.TrimSpace(input)

	if strings.HasPrefix(cleaned, "PL") && len(cleaned) > 10 {
		return cleaned, nil
	}

	for _, pattern := range playlistPatterns {
		match := pattern.FindStringSubmatch(cleaned)
		if len(match) > 1 && match[1] != "" {
			// Drop anything joined on with further parameters.
			id, _, _ := strings.Cut(match[1], "&")
			return id, nil
		}
	}

	return "", &InvalidPlaylistError{Input: input}
}
