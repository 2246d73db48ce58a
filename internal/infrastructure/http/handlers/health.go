package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// Check is one named dependency check.
type Check func(ctx context.Context) error

// HealthHandler serves /health with a content API check and optional Redis check.
type HealthHandler struct {
	redis  *redis.Client
	checks map[string]Check
}

// NewHealthHandler creates a health handler (redis optional). checks are extra checks keyed by name.
func NewHealthHandler(redisClient *redis.Client, checks map[string]Check) *HealthHandler {
	return &HealthHandler{redis: redisClient, checks: checks}
}

type healthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Message string            `json:"message,omitempty"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]string)
	allOK := true
	record := func(name string, err error) {
		if err != nil {
			checks[name] = "down: " + err.Error()
			allOK = false
			return
		}
		checks[name] = "ok"
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		record(name, h.checks[name](ctx))
	}
	if h.redis != nil {
		record("redis", h.redis.Ping(ctx).Err())
	}

	w.Header().Set("Content-Type", "application/json")
	if !allOK {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:  "unhealthy",
			Checks:  checks,
			Message: "one or more checks failed",
		})
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status: "ok",
		Checks: checks,
	})
}
