package catalog

import (
	"errors"
	"testing"
)

func TestExtractPlaylistID(t *testing.T) {
	for _, tt := range []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "canonical id returned verbatim",
			input: "PLabcdefghij",
			want:  "PLabcdefghij",
		},
		{
			name:  "canonical id with surrounding whitespace",
			input: "  PL1234567890abc \n",
			want:  "PL1234567890abc",
		},
		{
			name:  "full playlist url",
			input: "https://youtube.com/playlist?list=PLxyz&si=abc",
			want:  "PLxyz",
		},
		{
			name:  "watch url with list parameter",
			input: "https://www.youtube.com/watch?v=abc123&list=PLqwerty",
			want:  "PLqwerty",
		},
		{
			name:  "short link with query",
			input: "https://youtu.be/abc123?list=PLshort",
			want:  "PLshort",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractPlaylistID(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractPlaylistIDInvalid(t *testing.T) {
	for _, input := range []string{
		"not-a-playlist",
		"",
		"PLshort", // too short to be canonical, matches no url shape
		"https://youtube.com/watch?v=abc123",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ExtractPlaylistID(input)
			if err == nil {
				t.Fatal("expected error")
			}
			var invalid *InvalidPlaylistError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidPlaylistError, got %T: %v", err, err)
			}
			if invalid.Input != input {
				t.Errorf("error names %q, want %q", invalid.Input, input)
			}
		})
	}
}
