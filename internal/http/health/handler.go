package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	applog "github.com/janisto/little-lemon/internal/platform/logging"
	"github.com/janisto/little-lemon/internal/service/kvstore"
)

const (
	probeInstallation = "_health"
	probeKey          = "probe"
	probeTimeout      = 2 * time.Second
)

// Response is the payload for the health endpoint.
type Response struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// Handler returns a plain HTTP handler that reports healthy when the
// key-value backend answers a read.
func Handler(backend string, provider kvstore.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		defer cancel()

		resp := Response{Status: "healthy", Backend: backend}
		status := http.StatusOK
		if _, _, err := provider.Store(probeInstallation).Get(ctx, probeKey); err != nil {
			applog.LogError(ctx, "health probe failed", err)
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
