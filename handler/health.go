package handler

import (
	"errors"
	"net/http"
	"time"

	"ytingest/storage"
)

// HealthAPI reports presence of the required credential and reachability of
// the object store.
type HealthAPI struct {
	apiKeyPresent bool
	store         storage.ObjectStore
}

func NewHealthAPI(apiKeyPresent bool, store storage.ObjectStore) *HealthAPI {
	return &HealthAPI{apiKeyPresent: apiKeyPresent, store: store}
}

func (a *HealthAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		Error(w, http.StatusMethodNotAllowed, "Method not allowed", "Use GET for health checks")
		return
	}

	checks := map[string]string{}
	healthy := true

	if a.apiKeyPresent {
		checks["youtube_api_key"] = "present"
	} else {
		checks["youtube_api_key"] = "missing"
		healthy = false
	}

	// A missing probe object still proves the store answers.
	err := a.store.Head(r.Context(), "health-check")
	switch {
	case err == nil, errors.Is(err, storage.ErrNotExist):
		checks["object_store"] = "accessible"
	default:
		checks["object_store"] = "error: " + err.Error()
		healthy = false
	}

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "unhealthy"
		code = http.StatusInternalServerError
	}

	JSON(w, code, struct {
		Status    string            `json:"status"`
		Timestamp string            `json:"timestamp"`
		Checks    map[string]string `json:"checks"`
	}{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}
