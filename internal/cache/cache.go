// Package cache tracks when the dataset last changed. The marker is
// informational only: clients poll it to decide whether their local
// copies are stale, nothing in the server keys correctness off it.
package cache

import (
	"net/http"
	"sync"
	"time"
)

type Marker struct {
	mu         sync.Mutex
	lastUpdate time.Time
}

func NewMarker() *Marker { return &Marker{} }

// Invalidate advances the marker. Time never moves backwards here even
// if callers race.
func (m *Marker) Invalidate() {
	now := time.Now()
	m.mu.Lock()
	if now.After(m.lastUpdate) {
		m.lastUpdate = now
	}
	m.mu.Unlock()
}

// LastUpdate returns the zero time when nothing has mutated yet.
func (m *Marker) LastUpdate() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastUpdate
}

// Middleware advances the marker on every mutating request.
func (m *Marker) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			m.Invalidate()
		}
		next.ServeHTTP(w, r)
	})
}
