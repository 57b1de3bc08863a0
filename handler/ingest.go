package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"ytingest/catalog"
	"ytingest/ingest"
	"ytingest/model"
)

// Ingestor runs one ingestion and reports on it.
type Ingestor interface {
	Ingest(ctx context.Context, src model.SourceSpec, maxResults int64) (*ingest.Report, error)
}

// IngestAPI triggers ingestion runs. POST only.
type IngestAPI struct {
	ingestor       Ingestor
	defaultChannel string
	defaultMax     int64
	timeout        time.Duration
	logger         *slog.Logger
}

func NewIngestAPI(ingestor Ingestor, defaultChannel string, defaultMax int64, timeout time.Duration, logger *slog.Logger) *IngestAPI {
	return &IngestAPI{
		ingestor:       ingestor,
		defaultChannel: defaultChannel,
		defaultMax:     defaultMax,
		timeout:        timeout,
		logger:         logger,
	}
}

type ingestRequest struct {
	ChannelHandle string `json:"channelHandle"`
	PlaylistURL   string `json:"playlistUrl"`
	MaxResults    int64  `json:"maxResults"`
}

type ingestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Source  string `json:"source"`
	*ingest.Report
}

func (a *IngestAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		Error(w, http.StatusMethodNotAllowed, "Method not allowed", "Use POST to trigger ingestion")
		return
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		Error(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	src := model.SourceSpec{Type: model.SourceChannel, Identifier: req.ChannelHandle}
	if req.PlaylistURL != "" {
		src = model.SourceSpec{Type: model.SourcePlaylist, Identifier: req.PlaylistURL}
	}
	if src.Type == model.SourceChannel && src.Identifier == "" {
		src.Identifier = a.defaultChannel
	}
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = a.defaultMax
	}

	ctx, cancel := context.WithTimeout(r.Context(), a.timeout)
	defer cancel()

	report, err := a.ingestor.Ingest(ctx, src, maxResults)
	if err != nil {
		a.logger.Error("ingestion failed", err, slog.String("source", src.String()))
		status, name := failureStatus(err)
		Error(w, status, name, err.Error())
		return
	}

	message := "Ingestion completed"
	if report.Processed == 0 && report.Failed == 0 {
		message = "No new videos to process"
	}

	JSON(w, http.StatusOK, ingestResponse{
		Success: true,
		Message: message,
		Source:  src.String(),
		Report:  report,
	})
}

// failureStatus maps pipeline failures to an HTTP status reflecting the
// failure class: bad input 400, unresolvable channel 404, everything else 500.
func failureStatus(err error) (int, string) {
	var invalidPlaylist *catalog.InvalidPlaylistError
	var notFound *catalog.ChannelNotFoundError
	var remote *catalog.RemoteError

	switch {
	case errors.As(err, &invalidPlaylist):
		return http.StatusBadRequest, "Invalid playlist"
	case errors.As(err, &notFound):
		return http.StatusNotFound, "Channel not found"
	case errors.As(err, &remote):
		return http.StatusInternalServerError, fmt.Sprintf("YouTube API error (%d)", remote.Status)
	default:
		return http.StatusInternalServerError, "Ingestion failed"
	}
}
