package handler

import (
	"net/http"
	"net/http/httptest"
	"path"
	"strings"

	"golang.org/x/exp/slog"
)

// Server routes the small HTTP surface of the worker: /ingest, /status,
// /health and /metrics.
type Server struct {
	apis   map[string]http.Handler
	logger *slog.Logger
}

func NewServer(ingest *IngestAPI, status *StatusAPI, health *HealthAPI, metrics http.Handler, logger *slog.Logger) *Server {
	return &Server{
		apis: map[string]http.Handler{
			"ingest":  ingest,
			"status":  status,
			"health":  health,
			"metrics": metrics,
		},
		logger: logger,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	originalPath := r.URL.Path
	rec := httptest.NewRecorder() // records the response to be able to mix writing headers and content

	w.Header().Add("Content-Type", "application/json")

	// route to api
	head, tail := ShiftPath(r.URL.Path)
	if len(head) == 0 {
		Index(rec)
		returnResponse(w, rec)
		return
	}
	api, ok := s.apis[head]
	if !ok {
		Error(rec, http.StatusNotFound, "Not found", r.URL.Path+" is not a valid path")
	} else {
		r.URL.Path = tail
		api.ServeHTTP(rec, r)
	}

	returnResponse(w, rec)
	s.logger.Info("request served",
		slog.String("path", originalPath),
		slog.String("method", r.Method),
		slog.Int("status", rec.Code))
}

func returnResponse(w http.ResponseWriter, rec *httptest.ResponseRecorder) {
	for k, v := range rec.Header() {
		w.Header()[k] = v
	}
	w.WriteHeader(rec.Code)
	w.Write(rec.Body.Bytes())
}

// ShiftPath splits off the first component of p, which will be cleaned of
// relative components before processing. head will never contain a slash and
// tail will always be a rooted path without trailing slash.
// See https://blog.merovius.de/posts/2017-06-18-how-not-to-use-an-http-router/
func ShiftPath(p string) (string, string) {
	p = path.Clean("/" + p)

	i := strings.Index(p[1:], "/") + 1
	if i <= 0 {
		return p[1:], "/"
	}
	return p[1:i], p[i:]
}
