package handlers

import (
	"net/http"
	"time"

	"jobsite/internal/cache"
)

func Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, map[string]string{"status": "success"})
	}
}

// CacheStatus reports when the dataset last changed; null until the
// first mutation.
func CacheStatus(m *cache.Marker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var last interface{}
		if t := m.LastUpdate(); !t.IsZero() {
			last = t.Format(time.RFC3339Nano)
		}
		respondJSON(w, map[string]interface{}{"lastUpdateTime": last})
	}
}
